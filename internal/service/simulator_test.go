package service

import (
	"context"
	"math"
	"testing"
	"time"

	"go.uber.org/goleak"

	"firing_curve/internal/models"
)

func startedRun(t *testing.T, speed float64) (*SimulatorService, *ProgramStore, *fakeStateRepo, *fakeEventRepo, models.ProgramView, time.Time) {
	t.Helper()
	k, store, states, events := newTestKiln(t)
	v := sampleProgram(t, store)
	if err := k.Start(context.Background(), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sim := NewSimulatorService(states, events, store, speed)
	return sim, store, states, events, v, k.now()
}

func TestSimulator_FollowsCurve(t *testing.T) {
	sim, _, states, events, v, t0 := startedRun(t, 60)
	ctx := context.Background()

	// 48 wall seconds at speed 60 is minute 48, half way up the first ramp.
	if err := sim.step(ctx, t0.Add(48*time.Second)); err != nil {
		t.Fatalf("step: %v", err)
	}
	st := states.state
	if st.PhaseIndex != 0 || math.Abs(st.SetpointC-260) > 0.01 {
		t.Fatalf("unexpected state at minute 48: %+v", st)
	}
	if st.RemainingMinutes != v.TotalMinutes-48 {
		t.Fatalf("remaining: got %d", st.RemainingMinutes)
	}
	if got := events.types(); len(got) != 1 {
		t.Fatalf("no event expected inside a phase, got %v", got)
	}

	if err := sim.step(ctx, t0.Add(100*time.Second)); err != nil {
		t.Fatalf("step: %v", err)
	}
	st = states.state
	if st.PhaseIndex != 1 {
		t.Fatalf("expected phase 1, got %d", st.PhaseIndex)
	}
	want := 500 + 290*4.0/18.0
	if math.Abs(st.SetpointC-want) > 0.01 {
		t.Fatalf("setpoint: got %v want %v", st.SetpointC, want)
	}
	ev := events.last()
	if ev.Type != models.EventPhaseChange || ev.ProgramID != v.ID {
		t.Fatalf("expected PHASE_CHANGE, got %+v", ev)
	}
	if meta := ev.Metadata.(map[string]any); meta["from"] != 0 || meta["to"] != 1 {
		t.Fatalf("unexpected metadata: %v", meta)
	}

	if err := sim.step(ctx, t0.Add(500*time.Second)); err != nil {
		t.Fatalf("step: %v", err)
	}
	st = states.state
	if st.IsRunning || st.RemainingMinutes != 0 || st.ElapsedMinutes != float64(v.TotalMinutes) {
		t.Fatalf("run not completed: %+v", st)
	}
	if st.SetpointC != 516 {
		t.Fatalf("final setpoint: got %v", st.SetpointC)
	}
	if events.last().Type != models.EventComplete {
		t.Fatalf("expected COMPLETE, got %v", events.types())
	}

	// A finished run is left alone.
	saves := len(states.saves())
	if err := sim.step(ctx, t0.Add(600*time.Second)); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(states.saves()) != saves {
		t.Fatalf("idle kiln must not be saved")
	}
}

func TestSimulator_ProgramDeletedDuringRun(t *testing.T) {
	sim, store, states, events, v, t0 := startedRun(t, 60)
	ctx := context.Background()

	if err := store.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := sim.step(ctx, t0.Add(10*time.Second)); err != nil {
		t.Fatalf("step: %v", err)
	}

	st := states.state
	if st.IsRunning || st.PhaseIndex != -1 {
		t.Fatalf("run not aborted: %+v", st)
	}
	if len(st.ErrorCodes) != 1 || st.ErrorCodes[0] != CodeProgramMissing {
		t.Fatalf("error codes: %v", st.ErrorCodes)
	}
	ev := events.last()
	if ev.Type != models.EventError || ev.ProgramID != v.ID {
		t.Fatalf("expected ERROR event, got %+v", ev)
	}
}

func TestSimulator_ProgramMinutes(t *testing.T) {
	sim := NewSimulatorService(&fakeStateRepo{}, &fakeEventRepo{}, nil, 0)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := sim.programMinutes(t0, t0.Add(90*time.Second)); got != 1.5 {
		t.Fatalf("speed 0 should run in real time, got %v", got)
	}
	if got := sim.programMinutes(t0, t0.Add(-time.Minute)); got != 0 {
		t.Fatalf("clock skew must clamp to 0, got %v", got)
	}
	if got := sim.programMinutes(time.Time{}, t0); got != 0 {
		t.Fatalf("zero start must be 0, got %v", got)
	}
}

func TestSimulator_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	sim, _, states, _, _, _ := startedRun(t, 6000)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sim.Run(ctx, 5*time.Millisecond)
	}()

	deadline := time.After(2 * time.Second)
	for len(states.saves()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("simulator did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
