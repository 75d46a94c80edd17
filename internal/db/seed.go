package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

var defaultServices = []models.Service{
	{Name: "Bridal Makeup", DurationMinutes: 120, Price: 3500},
	{Name: "Evening Makeup", DurationMinutes: 90, Price: 2500},
	{Name: "Soft Makeup", DurationMinutes: 60, Price: 1500},
}

// SeedServices inserts the default catalog entries that are missing by name
// and returns how many were created.
func SeedServices(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range defaultServices {
			var existing models.Service
			err := tx.Where("name = ?", def.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			s := def
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed services: %w", err)
	}

	return created, nil
}
