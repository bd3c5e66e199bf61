package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"firing_curve/internal/models"
	"firing_curve/internal/repository"

	"github.com/google/uuid"
)

// Error codes set on the run state.
const (
	CodeProgramMissing = "PROGRAM_MISSING"
)

// SimulatorService follows the active program over time: it moves the
// setpoint along the firing curve and ends the run when the curve is done.
type SimulatorService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	programs  programReader
	speed     float64 // programmed minutes per wall-clock minute
}

// NewSimulatorService returns a simulator; speed <= 0 runs in real time.
func NewSimulatorService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, programs programReader, speed float64) *SimulatorService {
	if speed <= 0 {
		speed = 1
	}
	return &SimulatorService{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		programs:  programs,
		speed:     speed,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			// A failed tick is retried on the next one.
			_ = s.step(ctx, now)
		}
	}
}

// programMinutes converts wall time since start into programmed minutes.
func (s *SimulatorService) programMinutes(startedAt, now time.Time) float64 {
	if startedAt.IsZero() || now.Before(startedAt) {
		return 0
	}
	return now.Sub(startedAt).Minutes() * s.speed
}

// step advances the run state to now.
func (s *SimulatorService) step(ctx context.Context, now time.Time) error {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 || !st.IsRunning {
		return nil
	}
	now = now.UTC()
	minute := s.programMinutes(st.StartedAt, now)

	sample, err := s.programs.Sample(ctx, st.ProgramID, minute)
	if errors.Is(err, ErrProgramNotFound) {
		return s.abort(ctx, st, now, minute)
	}
	if err != nil {
		return err
	}

	prevIndex := st.PhaseIndex
	total := float64(sample.TotalMinutes)

	st.SetpointC = sample.TempC
	st.PhaseIndex = sample.PhaseIndex
	st.ElapsedMinutes = math.Min(minute, total)
	st.RemainingMinutes = int(math.Max(0, math.Ceil(total-minute)))
	st.UpdatedAt = now
	if sample.Done {
		st.IsRunning = false
		st.RemainingMinutes = 0
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	if sample.PhaseIndex != prevIndex && !sample.Done {
		if err := s.record(ctx, now, st.ProgramID, models.EventPhaseChange,
			fmt.Sprintf("Phase %d started", sample.PhaseIndex),
			map[string]any{"from": prevIndex, "to": sample.PhaseIndex, "setpoint_c": sample.TempC},
		); err != nil {
			return err
		}
	}
	if sample.Done {
		return s.record(ctx, now, st.ProgramID, models.EventComplete, "Program complete",
			map[string]any{"total_minutes": sample.TotalMinutes},
		)
	}
	return nil
}

// abort ends a run whose program no longer exists.
func (s *SimulatorService) abort(ctx context.Context, st models.KilnState, now time.Time, minute float64) error {
	st.IsRunning = false
	st.PhaseIndex = -1
	st.RemainingMinutes = 0
	st.UpdatedAt = now
	if !slices.Contains(st.ErrorCodes, CodeProgramMissing) {
		st.ErrorCodes = append(st.ErrorCodes, CodeProgramMissing)
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}
	return s.record(ctx, now, st.ProgramID, models.EventError, "Program deleted during run",
		map[string]any{"code": CodeProgramMissing, "elapsed_minutes": minute},
	)
}

func (s *SimulatorService) record(ctx context.Context, at time.Time, programID, typ, description string, meta map[string]any) error {
	return s.eventRepo.Append(ctx, models.ProgramEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  at,
		ProgramID:   programID,
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
}
