package service

import (
	"context"
	"sync"

	"firing_curve/internal/models"
	"firing_curve/internal/repository"
)

// fakeStateRepo is an in-memory repository.StateRepo.
type fakeStateRepo struct {
	mu         sync.Mutex
	state      models.KilnState
	loadErr    error
	saveErr    error
	savedCalls []models.KilnState
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.KilnState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.KilnState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedCalls = append(f.savedCalls, s)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = s
	return nil
}

func (f *fakeStateRepo) saves() []models.KilnState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.KilnState(nil), f.savedCalls...)
}

// fakeEventRepo records appended events and captures List filters.
type fakeEventRepo struct {
	mu        sync.Mutex
	appendErr error
	events    []models.ProgramEvent

	gotFilter repository.EventFilter
	listResp  []models.ProgramEvent
	listErr   error
	listCalls int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.ProgramEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.appendErr
}

func (f *fakeEventRepo) List(ctx context.Context, filter repository.EventFilter) ([]models.ProgramEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.gotFilter = filter
	return f.listResp, f.listErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func (f *fakeEventRepo) last() models.ProgramEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return models.ProgramEvent{}
	}
	return f.events[len(f.events)-1]
}
