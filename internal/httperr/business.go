package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error; the HTTP layer maps kinds to status codes.
type Kind int

const (
	KindBusiness Kind = iota
	KindValidation
	KindNotFound
	KindInvalidReference
	KindConflict
	KindInvalidState
	KindReferenced
	KindForbidden
)

const (
	CodeValidation              = "validation_failed"
	CodeServiceNotFound         = "service_not_found"
	CodeAppointmentNotFound     = "appointment_not_found"
	CodeInvalidServiceReference = "invalid_service_reference"
	CodeTimeConflict            = "time_conflict"
	CodeInvalidState            = "invalid_state"
	CodeServiceInUse            = "service_in_use"
	CodeForbidden               = "forbidden"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

type BusinessError struct {
	Code    string
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrValidation(fields []FieldError) error {
	return BusinessError{
		Code:    CodeValidation,
		Kind:    KindValidation,
		Message: "one or more fields are invalid",
		Fields:  fields,
	}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

// ErrInvalidServiceReference names the first requested service id that does
// not exist in the catalog.
func ErrInvalidServiceReference(id uint) error {
	return BusinessError{
		Code:    CodeInvalidServiceReference,
		Kind:    KindInvalidReference,
		Message: fmt.Sprintf("service %d does not exist", id),
	}
}

func ErrSlotConflict() error {
	return BusinessError{
		Code:    CodeTimeConflict,
		Kind:    KindConflict,
		Message: "the requested time slot is already taken",
	}
}

func ErrInvalidTransition(from, to string) error {
	return BusinessError{
		Code:    CodeInvalidState,
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("cannot move appointment from %s to %s", from, to),
	}
}

func ErrReferenced(code string) error {
	return BusinessError{Code: code, Kind: KindReferenced}
}

func ErrForbidden() error {
	return BusinessError{Code: CodeForbidden, Kind: KindForbidden}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
