package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firing_curve/internal/models"
	"firing_curve/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrKilnRunning  = errors.New("kiln is already running a program")
	ErrEmptyProgram = errors.New("program has no phases")
)

// programReader is the part of the program store the kiln and simulator use.
type programReader interface {
	Get(ctx context.Context, id string) (models.ProgramView, error)
	Sample(ctx context.Context, id string, minute float64) (Sample, error)
}

type KilnService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	programs  programReader
	now       func() time.Time
}

func NewKilnService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, programs programReader) *KilnService {
	return &KilnService{stateRepo: stateRepo, eventRepo: eventRepo, programs: programs, now: time.Now}
}

// Start begins running programID at its room temperature.
// It refuses while another run is active.
func (s *KilnService) Start(ctx context.Context, programID string) error {
	now := s.now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.IsRunning {
		return fmt.Errorf("program %s: %w", st.ProgramID, ErrKilnRunning)
	}

	p, err := s.programs.Get(ctx, programID)
	if err != nil {
		return err
	}
	if p.PhaseCount == 0 {
		return fmt.Errorf("program %s: %w", programID, ErrEmptyProgram)
	}

	st = models.KilnState{
		ID:               1,
		ProgramID:        programID,
		IsRunning:        true,
		SetpointC:        float64(p.RoomTemp),
		PhaseIndex:       0,
		RemainingMinutes: p.TotalMinutes,
		StartedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.ProgramEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		ProgramID:   programID,
		Type:        models.EventStart,
		Description: "Program " + p.Name + " started",
		Metadata: map[string]any{
			"total_minutes": p.TotalMinutes,
			"total_time":    p.TotalTime,
		},
	})
}

// Stop ends the current run. Stopping an idle kiln is not an error.
func (s *KilnService) Stop(ctx context.Context) error {
	now := s.now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	programID := st.ProgramID

	st.ID = 1
	st.IsRunning = false
	st.PhaseIndex = -1
	st.RemainingMinutes = 0
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.ProgramEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		ProgramID:   programID,
		Type:        models.EventStop,
		Description: "Kiln stopped",
	})
}
