package catalog

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/catalog"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

type ListServices struct {
	repo  domain.Repository
	cache ServiceListCache
}

func NewListServices(
	repo domain.Repository,
	cache ServiceListCache,
) *ListServices {
	return &ListServices{
		repo:  repo,
		cache: cache,
	}
}

func (uc *ListServices) Execute(ctx context.Context) ([]models.Service, error) {
	if cached, ok := uc.cache.GetServiceList(ctx); ok {
		return cached, nil
	}

	services, err := uc.repo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	_ = uc.cache.SetServiceList(ctx, services)
	return services, nil
}
