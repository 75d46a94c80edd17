package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return w, body
}

func TestRespond_MapsKindsToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", ErrNotFound(CodeServiceNotFound), http.StatusNotFound, CodeServiceNotFound},
		{"validation", ErrValidation([]FieldError{{Field: "name", Rule: "required"}}), http.StatusBadRequest, CodeValidation},
		{"invalid reference", ErrInvalidServiceReference(7), http.StatusBadRequest, CodeInvalidServiceReference},
		{"slot conflict", ErrSlotConflict(), http.StatusConflict, CodeTimeConflict},
		{"invalid transition", ErrInvalidTransition("Completed", "Pending"), http.StatusConflict, CodeInvalidState},
		{"referenced", ErrReferenced(CodeServiceInUse), http.StatusConflict, CodeServiceInUse},
		{"forbidden", ErrForbidden(), http.StatusForbidden, CodeForbidden},
		{"wrapped", fmt.Errorf("outer: %w", ErrSlotConflict()), http.StatusConflict, CodeTimeConflict},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := respond(t, tc.err)
			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
			if body.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Code)
			}
		})
	}
}

func TestRespond_IncludesFieldErrors(t *testing.T) {
	_, body := respond(t, ErrValidation([]FieldError{
		{Field: "name", Rule: "required"},
		{Field: "price", Rule: "min", Param: "0"},
	}))

	if len(body.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(body.Fields))
	}
	if body.Fields[1].Field != "price" || body.Fields[1].Param != "0" {
		t.Fatalf("unexpected field error %+v", body.Fields[1])
	}
}

func TestRespond_InfrastructureErrorHidesDetails(t *testing.T) {
	_, body := respond(t, errors.New("dial tcp 10.0.0.1:5432: timeout"))
	if body.Message != "An unexpected error occurred." {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestInvalidServiceReferenceNamesID(t *testing.T) {
	_, body := respond(t, ErrInvalidServiceReference(42))
	if body.Message != "service 42 does not exist" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestPostgresErrorCodes(t *testing.T) {
	fk := fmt.Errorf("delete service: %w", &pgconn.PgError{Code: "23503"})
	if !IsForeignKeyViolation(fk) {
		t.Fatalf("expected foreign key violation")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("unique violation is not a foreign key violation")
	}
	sq := fmt.Errorf("delete service: %w", sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintForeignKey,
	})
	if !IsForeignKeyViolation(sq) {
		t.Fatalf("expected sqlite foreign key violation")
	}
	if IsForeignKeyViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}) {
		t.Fatalf("sqlite unique violation is not a foreign key violation")
	}
	if IsForeignKeyViolation(errors.New("plain")) {
		t.Fatalf("plain error is not a pg error")
	}
}

func TestIsBusinessAndKind(t *testing.T) {
	err := fmt.Errorf("ctx: %w", ErrNotFound(CodeAppointmentNotFound))
	if !IsBusiness(err, CodeAppointmentNotFound) {
		t.Fatalf("expected business code match")
	}
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found kind")
	}
	if IsKind(errors.New("x"), KindNotFound) {
		t.Fatalf("plain error has no kind")
	}
}
