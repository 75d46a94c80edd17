package appointment

import (
	"time"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to status to and stamps the matching timestamp.
// It reports whether anything changed.
func Transition(ap *models.Appointment, to Status, now time.Time) (bool, error) {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return true, nil
}

func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) (bool, error) {
	return Transition(ap, StatusCompleted, now)
}
