package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"firing_curve/internal/builder"
	"firing_curve/internal/chart"
	"firing_curve/internal/curve"
	"firing_curve/internal/glass"
	"firing_curve/internal/models"
	"firing_curve/internal/repository"

	"github.com/google/uuid"
)

var ErrProgramNotFound = errors.New("program not found")

type program struct {
	id        string
	name      string
	createdAt time.Time
	curve     *curve.FiringCurve
}

// ProgramStore keeps programs in memory. Every method holds the store lock
// for the whole curve edit, so a curve is never seen half-updated.
type ProgramStore struct {
	mu       sync.Mutex
	programs map[string]*program

	tables    *glass.Tables
	opts      builder.Options
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewProgramStore(tables *glass.Tables, opts builder.Options, eventRepo repository.EventRepo) *ProgramStore {
	return &ProgramStore{
		programs:  make(map[string]*program),
		tables:    tables,
		opts:      opts,
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// Create adds an empty program whose first phase will start at roomTemp.
func (s *ProgramStore) Create(ctx context.Context, name string, roomTemp int) (models.ProgramView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ProgramView{}, fmt.Errorf("program name is empty: %w", curve.ErrInvalidValue)
	}
	return s.add(ctx, name, curve.New(roomTemp), nil)
}

// Build derives a five-phase program from the glass tables.
func (s *ProgramStore) Build(ctx context.Context, name string, p builder.Params) (models.ProgramView, error) {
	if s.tables == nil {
		return models.ProgramView{}, errors.New("glass tables not loaded")
	}
	c, plan, err := builder.Build(s.tables, p, s.opts)
	if err != nil {
		return models.ProgramView{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = p.Glass
	}
	return s.add(ctx, name, c, map[string]any{
		"glass":      plan.Glass.Name,
		"firing":     p.Firing,
		"top_temp":   plan.TopTemp,
		"velocities": plan.Velocities,
	})
}

func (s *ProgramStore) add(ctx context.Context, name string, c *curve.FiringCurve, meta map[string]any) (models.ProgramView, error) {
	p := &program{id: uuid.NewString(), name: name, createdAt: s.now().UTC(), curve: c}

	s.mu.Lock()
	s.programs[p.id] = p
	v := p.view()
	s.mu.Unlock()

	if meta == nil {
		meta = map[string]any{}
	}
	meta["room_temp"] = c.RoomTemp()
	return v, s.record(ctx, p.id, models.EventProgramCreated, "Program "+name+" created", meta)
}

func (s *ProgramStore) Get(_ context.Context, id string) (models.ProgramView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(id)
	if err != nil {
		return models.ProgramView{}, err
	}
	return p.view(), nil
}

// List returns every program, oldest first.
func (s *ProgramStore) List(_ context.Context) ([]models.ProgramSummary, error) {
	s.mu.Lock()
	out := make([]models.ProgramSummary, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, p.summary())
	}
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b models.ProgramSummary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *ProgramStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	p, err := s.lookup(id)
	if err == nil {
		delete(s.programs, id)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.record(ctx, id, models.EventProgramDeleted, "Program "+p.name+" deleted", nil)
}

// InsertPhase inserts a phase at p.Index, or appends when p.Index is nil.
func (s *ProgramStore) InsertPhase(ctx context.Context, id string, p PhaseParams) (models.ProgramView, error) {
	var index int
	v, err := s.edit(id, func(c *curve.FiringCurve) error {
		index = c.Len()
		if p.Index != nil {
			index = *p.Index
		}
		return c.Insert(p.Velocity, p.EndTemp, p.HoldingTime, index)
	})
	if err != nil {
		return models.ProgramView{}, err
	}
	return v, s.record(ctx, id, models.EventPhaseInserted, fmt.Sprintf("Phase %d inserted", index), map[string]any{
		"index":        index,
		"velocity":     p.Velocity,
		"end_temp":     p.EndTemp,
		"holding_time": p.HoldingTime,
	})
}

func (s *ProgramStore) RemovePhase(ctx context.Context, id string, index int) (models.ProgramView, error) {
	v, err := s.edit(id, func(c *curve.FiringCurve) error {
		return c.Remove(index)
	})
	if err != nil {
		return models.ProgramView{}, err
	}
	return v, s.record(ctx, id, models.EventPhaseRemoved, fmt.Sprintf("Phase %d removed", index), map[string]any{"index": index})
}

// FindPhase returns curve.ErrPhaseNotFound when index is out of range.
func (s *ProgramStore) FindPhase(_ context.Context, id string, index int) (curve.PhaseValues, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(id)
	if err != nil {
		return curve.PhaseValues{}, err
	}
	ph, ok := p.curve.Find(index)
	if !ok {
		return curve.PhaseValues{}, fmt.Errorf("phase %d of program %s: %w", index, id, curve.ErrPhaseNotFound)
	}
	return ph.Values(), nil
}

// UpdatePhase applies every set field of u, or none of them.
func (s *ProgramStore) UpdatePhase(ctx context.Context, id string, index int, u PhaseUpdate) (models.ProgramView, error) {
	if u.empty() {
		return models.ProgramView{}, fmt.Errorf("no phase fields to update: %w", curve.ErrInvalidValue)
	}
	if u.HoldingTime != nil && *u.HoldingTime < 0 {
		return models.ProgramView{}, fmt.Errorf("holding time %d: %w", *u.HoldingTime, curve.ErrInvalidValue)
	}

	meta := map[string]any{"index": index}
	v, err := s.edit(id, func(c *curve.FiringCurve) error {
		if _, ok := c.Find(index); !ok {
			return fmt.Errorf("phase %d of program %s: %w", index, id, curve.ErrPhaseNotFound)
		}
		if u.EndTemp != nil {
			if err := c.ChangeEndTemp(index, *u.EndTemp); err != nil {
				return err
			}
			meta["end_temp"] = *u.EndTemp
		}
		if u.Velocity != nil {
			if err := c.ChangeVelocity(index, *u.Velocity); err != nil {
				return err
			}
			meta["velocity"] = *u.Velocity
		}
		if u.HoldingTime != nil {
			if err := c.ChangeHoldingTime(index, *u.HoldingTime); err != nil {
				return err
			}
			meta["holding_time"] = *u.HoldingTime
		}
		return nil
	})
	if err != nil {
		return models.ProgramView{}, err
	}
	return v, s.record(ctx, id, models.EventPhaseUpdated, fmt.Sprintf("Phase %d updated", index), meta)
}

func (s *ProgramStore) Chart(_ context.Context, id string) (chart.Chart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(id)
	if err != nil {
		return chart.Chart{}, err
	}
	return chart.Render(p.name, p.curve), nil
}

// GlassTypes lists the glass types the builder knows, sorted by name.
func (s *ProgramStore) GlassTypes() []glass.Type {
	if s.tables == nil {
		return nil
	}
	return s.tables.Types()
}

// Sample is the programmed kiln temperature at a point of a run.
type Sample struct {
	TempC        float64
	PhaseIndex   int
	Done         bool
	TotalMinutes int
}

// Sample evaluates program id at minute since the start of the run.
func (s *ProgramStore) Sample(_ context.Context, id string, minute float64) (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(id)
	if err != nil {
		return Sample{}, err
	}
	temp, index, done := p.curve.TemperatureAt(minute)
	return Sample{TempC: temp, PhaseIndex: index, Done: done, TotalMinutes: p.curve.TotalTimeMinutes()}, nil
}

func (s *ProgramStore) edit(id string, fn func(c *curve.FiringCurve) error) (models.ProgramView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(id)
	if err != nil {
		return models.ProgramView{}, err
	}
	if err := fn(p.curve); err != nil {
		return models.ProgramView{}, err
	}
	if err := p.curve.Check(); err != nil {
		return models.ProgramView{}, err
	}
	return p.view(), nil
}

func (s *ProgramStore) lookup(id string) (*program, error) {
	p, ok := s.programs[id]
	if !ok {
		return nil, fmt.Errorf("program %q: %w", id, ErrProgramNotFound)
	}
	return p, nil
}

func (s *ProgramStore) record(ctx context.Context, programID, typ, description string, meta map[string]any) error {
	if s.eventRepo == nil {
		return nil
	}
	ev := models.ProgramEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		ProgramID:   programID,
		Type:        typ,
		Description: description,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	return s.eventRepo.Append(ctx, ev)
}

func (p *program) summary() models.ProgramSummary {
	return models.ProgramSummary{
		ID:           p.id,
		Name:         p.name,
		RoomTemp:     p.curve.RoomTemp(),
		PhaseCount:   p.curve.Len(),
		TotalMinutes: p.curve.TotalTimeMinutes(),
		CreatedAt:    p.createdAt,
	}
}

func (p *program) view() models.ProgramView {
	return models.ProgramView{
		ProgramSummary: p.summary(),
		TotalTime:      p.curve.FormatTotalTime(),
		Phases:         p.curve.Snapshot(),
	}
}
