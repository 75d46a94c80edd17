package appointment

import (
	"time"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, minutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

func IntervalOf(ap models.Appointment) Interval {
	return NewInterval(ap.AppointmentDate, ap.DurationMinutes)
}

// Overlaps is false for intervals that only touch at an endpoint.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// NormalizeStart stores starts in UTC at second precision.
func NormalizeStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
