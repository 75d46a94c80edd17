package appointment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Numeric codes accepted on input for older clients.
var statusByCode = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for _, st := range statusByCode {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Code is the numeric form of s used on the wire, or -1 for an unknown
// status.
func (s Status) Code() int {
	for i, st := range statusByCode {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive reports whether the appointment still occupies its time slot.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		if code < 0 || code >= len(statusByCode) {
			return fmt.Errorf("unknown appointment status %d", code)
		}
		*s = statusByCode[code]
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("appointment status must be a name or a number")
	}

	st, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ===============================
// Validations
// ===============================

// CanTransition checks a status change against the lifecycle. Moving to the
// current status is allowed and changes nothing.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if from.IsTerminal() {
		return httperr.ErrInvalidTransition(string(from), string(to))
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrInvalidTransition(string(from), string(to))
}
