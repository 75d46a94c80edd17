package catalog

import (
	"context"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// ServiceListCache caches the full catalog listing.
type ServiceListCache interface {
	GetServiceList(ctx context.Context) ([]models.Service, bool)
	SetServiceList(ctx context.Context, services []models.Service) error
	InvalidateServiceList(ctx context.Context) error
}
