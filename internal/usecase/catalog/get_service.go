package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/catalog"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

type GetService struct {
	repo domain.Repository
}

func NewGetService(repo domain.Repository) *GetService {
	return &GetService{repo: repo}
}

func (uc *GetService) Execute(ctx context.Context, id uint) (*models.Service, error) {
	return findService(ctx, uc.repo, id)
}

func findService(ctx context.Context, repo domain.Repository, id uint) (*models.Service, error) {
	s, err := repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
		}
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return s, nil
}
