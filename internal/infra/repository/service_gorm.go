package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/catalog"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	services := []models.Service{}
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceGormRepository) GetServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	services := []models.Service{}
	if len(ids) == 0 {
		return services, nil
	}

	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceGormRepository) DeleteService(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceGormRepository) CountServiceReferences(
	ctx context.Context,
	id uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AppointmentService{}).
		Where("service_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*ServiceGormRepository)(nil)
