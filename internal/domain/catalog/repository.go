package catalog

import (
	"context"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

type Repository interface {
	ListServices(ctx context.Context) ([]models.Service, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	// GetServicesByIDs returns the services that exist among ids, in id order.
	GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error)

	CreateService(ctx context.Context, s *models.Service) error

	UpdateService(ctx context.Context, s *models.Service) error

	DeleteService(ctx context.Context, id uint) error

	// CountServiceReferences counts appointment links pointing at the service.
	CountServiceReferences(ctx context.Context, id uint) (int64, error)
}
