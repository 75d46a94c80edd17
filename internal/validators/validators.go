package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-.]{6,20}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so clients can match them to inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// IsPhone accepts an optional leading '+', digits and the usual separators,
// with at least six digits overall.
func IsPhone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 6
}

func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Struct validates s and returns a validation business error listing every
// violated field, or nil.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]httperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, httperr.FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return httperr.ErrValidation(fields)
}
