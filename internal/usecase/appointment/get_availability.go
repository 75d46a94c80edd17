package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/timezone"
)

// StudioHours is the daily bookable window, as wall clock times in Location.
type StudioHours struct {
	Location *time.Location
	Open     string
	Close    string
	Step     time.Duration
}

type GetAvailability struct {
	repo    domain.Repository
	catalog domain.Catalog
	hours   StudioHours
	now     func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	catalog domain.Catalog,
	hours StudioHours,
) *GetAvailability {
	return &GetAvailability{
		repo:    repo,
		catalog: catalog,
		hours:   hours,
		now:     time.Now,
	}
}

// Execute lists the free start times on in.Date for the combined duration of
// in.ServiceIDs.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	services, err := resolveServices(ctx, uc.catalog, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	date := in.Date.In(uc.hours.Location)

	open, err := timezone.At(date, uc.hours.Open)
	if err != nil {
		return nil, err
	}
	closing, err := timezone.At(date, uc.hours.Close)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListActiveAppointmentsBetween(ctx, open, closing)
	if err != nil {
		return nil, fmt.Errorf("list appointments for availability: %w", err)
	}

	busy := make([]domain.Interval, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, domain.IntervalOf(ap))
	}

	duration := time.Duration(domain.TotalDuration(services)) * time.Minute
	day := domain.StudioDay{Open: open, Close: closing, Step: uc.hours.Step}

	slots := domain.FreeSlots(day, duration, busy, uc.now())
	for i := range slots {
		slots[i].Start = slots[i].Start.In(uc.hours.Location)
		slots[i].End = slots[i].End.In(uc.hours.Location)
	}
	return slots, nil
}
