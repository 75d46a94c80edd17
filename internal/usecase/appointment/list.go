package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/dto"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

func findAppointment(ctx context.Context, repo domain.Repository, id uint) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound(httperr.CodeAppointmentNotFound)
		}
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return ap, nil
}

// ------------------------------------------------------

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return findAppointment(ctx, uc.repo, id)
}

// ------------------------------------------------------

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(ctx context.Context) ([]dto.AppointmentDTO, error) {
	aps, err := uc.repo.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return dto.NewAppointmentDTOs(aps), nil
}

// ------------------------------------------------------

type ListAppointmentsByEmail struct {
	repo domain.Repository
}

func NewListAppointmentsByEmail(repo domain.Repository) *ListAppointmentsByEmail {
	return &ListAppointmentsByEmail{repo: repo}
}

func (uc *ListAppointmentsByEmail) Execute(ctx context.Context, email string) ([]dto.AppointmentDTO, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return []dto.AppointmentDTO{}, nil
	}

	aps, err := uc.repo.ListAppointmentsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list appointments by email: %w", err)
	}
	return dto.NewAppointmentDTOs(aps), nil
}
