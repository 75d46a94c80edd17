package cache

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

func TestNew_WithoutAddressIsDisabled(t *testing.T) {
	c := New(Config{}, zerolog.Nop())
	defer c.Close()

	if c.IsAvailable() {
		t.Fatalf("expected disabled cache")
	}
}

func TestDisabledCache_BehavesAsMiss(t *testing.T) {
	c := Disabled(zerolog.Nop())
	ctx := context.Background()

	if err := c.SetServiceList(ctx, []models.Service{{ID: 1, Name: "Soft Makeup"}}); err != nil {
		t.Fatalf("set on disabled cache: %v", err)
	}
	if _, ok := c.GetServiceList(ctx); ok {
		t.Fatalf("disabled cache must never hit")
	}
	if err := c.InvalidateServiceList(ctx); err != nil {
		t.Fatalf("invalidate on disabled cache: %v", err)
	}
}
