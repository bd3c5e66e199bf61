package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"firing_curve/internal/models"
)

func newTestKiln(t *testing.T) (*KilnService, *ProgramStore, *fakeStateRepo, *fakeEventRepo) {
	t.Helper()
	store, _ := newTestStore(t)
	states := &fakeStateRepo{}
	events := &fakeEventRepo{}
	k := NewKilnService(states, events, store)
	k.now = func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) }
	return k, store, states, events
}

func TestKilnService_Start(t *testing.T) {
	k, store, states, events := newTestKiln(t)
	v := sampleProgram(t, store)

	if err := k.Start(context.Background(), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	st := states.state
	if !st.IsRunning || st.ProgramID != v.ID || st.ID != 1 {
		t.Fatalf("unexpected state: %+v", st)
	}
	if st.SetpointC != 20 || st.PhaseIndex != 0 || st.RemainingMinutes != v.TotalMinutes {
		t.Fatalf("run not initialized from program: %+v", st)
	}
	if !st.StartedAt.Equal(k.now()) {
		t.Fatalf("StartedAt: got %v", st.StartedAt)
	}

	ev := events.last()
	if ev.Type != models.EventStart || ev.ProgramID != v.ID || ev.EventID == "" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestKilnService_Start_Refusals(t *testing.T) {
	ctx := context.Background()

	t.Run("already running", func(t *testing.T) {
		k, store, states, events := newTestKiln(t)
		v := sampleProgram(t, store)
		states.state = models.KilnState{ID: 1, ProgramID: "other", IsRunning: true}

		if err := k.Start(ctx, v.ID); !errors.Is(err, ErrKilnRunning) {
			t.Fatalf("expected ErrKilnRunning, got %v", err)
		}
		if len(states.saves()) != 0 || len(events.types()) != 0 {
			t.Fatalf("refused start must not save or log")
		}
	})

	t.Run("unknown program", func(t *testing.T) {
		k, _, _, _ := newTestKiln(t)
		if err := k.Start(ctx, "missing"); !errors.Is(err, ErrProgramNotFound) {
			t.Fatalf("expected ErrProgramNotFound, got %v", err)
		}
	})

	t.Run("empty program", func(t *testing.T) {
		k, store, _, _ := newTestKiln(t)
		v, err := store.Create(ctx, "empty", 20)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := k.Start(ctx, v.ID); !errors.Is(err, ErrEmptyProgram) {
			t.Fatalf("expected ErrEmptyProgram, got %v", err)
		}
	})

	t.Run("load error", func(t *testing.T) {
		k, store, states, _ := newTestKiln(t)
		v := sampleProgram(t, store)
		states.loadErr = errors.New("db down")
		if err := k.Start(ctx, v.ID); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestKilnService_Stop(t *testing.T) {
	k, _, states, events := newTestKiln(t)
	states.state = models.KilnState{ID: 1, ProgramID: "p-1", IsRunning: true, PhaseIndex: 3, RemainingMinutes: 40, SetpointC: 480}

	if err := k.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	st := states.state
	if st.IsRunning || st.PhaseIndex != -1 || st.RemainingMinutes != 0 {
		t.Fatalf("run not cleared: %+v", st)
	}
	if st.SetpointC != 480 {
		t.Fatalf("Stop should keep the last setpoint, got %v", st.SetpointC)
	}
	ev := events.last()
	if ev.Type != models.EventStop || ev.ProgramID != "p-1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestKilnService_Stop_IdleCreatesBaselineRow(t *testing.T) {
	k, _, states, _ := newTestKiln(t)

	if err := k.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if states.state.ID != 1 {
		t.Fatalf("expected row id 1, got %d", states.state.ID)
	}
}

func TestKilnService_Stop_SaveError(t *testing.T) {
	k, _, states, events := newTestKiln(t)
	states.saveErr = errors.New("disk full")

	if err := k.Stop(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if len(events.types()) != 0 {
		t.Fatalf("no event expected when save fails")
	}
}
