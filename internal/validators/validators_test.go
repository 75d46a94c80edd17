package validators

import (
	"errors"
	"testing"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
)

func TestIsPhone(t *testing.T) {
	valid := []string{"+389 70 123 456", "070123456", "(555) 123-4567", "+1.555.123.4567"}
	for _, p := range valid {
		if !IsPhone(p) {
			t.Fatalf("expected %q to be a valid phone", p)
		}
	}

	invalid := []string{"", "12345", "phone", "+38970abc456", "() -- ..", "123456789012345678901"}
	for _, p := range invalid {
		if IsPhone(p) {
			t.Fatalf("expected %q to be rejected", p)
		}
	}
}

func TestIsEmail(t *testing.T) {
	if !IsEmail("ana@example.com") {
		t.Fatalf("expected valid email")
	}
	for _, e := range []string{"", "ana", "ana@", "@example.com"} {
		if IsEmail(e) {
			t.Fatalf("expected %q to be rejected", e)
		}
	}
}

type booking struct {
	Name  string `json:"name" validate:"required,max=10"`
	Phone string `json:"phoneNumber" validate:"required,phone"`
	Email string `json:"email" validate:"required,email"`
}

func TestStruct_ReportsEveryViolatedField(t *testing.T) {
	err := Struct(booking{Name: "a name that is far too long", Phone: "x", Email: "nope"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var be httperr.BusinessError
	if !errors.As(err, &be) {
		t.Fatalf("expected business error, got %T", err)
	}
	if be.Kind != httperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", be.Kind)
	}
	if len(be.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", be.Fields)
	}

	want := map[string]string{"name": "max", "phoneNumber": "phone", "email": "email"}
	for _, f := range be.Fields {
		if want[f.Field] != f.Rule {
			t.Fatalf("unexpected field error %+v", f)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(booking{Name: "Ana", Phone: "+389 70 123 456", Email: "ana@example.com"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
