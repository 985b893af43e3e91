package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WithCarriesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	l := logger{zap: zap.New(core)}

	l.With(String("driver_id", "d-1")).Info("driver verified", Int("attempt", 2))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["driver_id"] != "d-1" {
		t.Errorf("expected driver_id field, got %v", fields)
	}
	if fields["attempt"] != int64(2) {
		t.Errorf("expected attempt field, got %v", fields["attempt"])
	}
}

func TestLogger_WarningMapsToWarnLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	l := logger{zap: zap.New(core)}

	l.Warning("cache unavailable")

	if logs.FilterMessage("cache unavailable").FilterLevelExact(zap.WarnLevel).Len() != 1 {
		t.Error("expected one warn-level entry")
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	l, err := New("rideshare-test", "not-a-level")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if l == nil {
		t.Fatal("expected logger")
	}
}
