package service

import (
	"context"
	"time"

	"firing_curve/internal/models"
	"firing_curve/internal/repository"
)

const defaultRoomTempC = 20.0

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted run state.
// If nothing was persisted yet, it returns an idle snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.KilnState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.KilnState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	state.StartedAt = toUTC(state.StartedAt)
	return state, nil
}

// baselineState is the snapshot of a kiln that never ran.
func (s *MonitoringService) baselineState() models.KilnState {
	return models.KilnState{
		ID:         1, // DB schema enforces single-row state with id=1
		SetpointC:  defaultRoomTempC,
		PhaseIndex: -1,
		UpdatedAt:  time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
