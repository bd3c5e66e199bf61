package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firing_curve/internal/builder"
	"firing_curve/internal/curve"
	"firing_curve/internal/glass"
	"firing_curve/internal/models"
)

func intPtr(v int) *int { return &v }

func newTestStore(t *testing.T) (*ProgramStore, *fakeEventRepo) {
	t.Helper()
	tables, err := glass.Load(filepath.Join("..", "..", "configs", "tables.yml"))
	require.NoError(t, err)
	events := &fakeEventRepo{}
	return NewProgramStore(tables, builder.DefaultOptions(), events), events
}

// sampleProgram creates a program with the phases (300,500,0), (999,790,10), (-300,516,0).
func sampleProgram(t *testing.T, s *ProgramStore) models.ProgramView {
	t.Helper()
	ctx := context.Background()
	v, err := s.Create(ctx, "sample", 20)
	require.NoError(t, err)
	for _, p := range []PhaseParams{
		{Velocity: 300, EndTemp: 500},
		{Velocity: 999, EndTemp: 790, HoldingTime: 10},
		{Velocity: -300, EndTemp: 516},
	} {
		v, err = s.InsertPhase(ctx, v.ID, p)
		require.NoError(t, err)
	}
	return v
}

func TestProgramStore_CreateAndGet(t *testing.T) {
	s, events := newTestStore(t)
	ctx := context.Background()

	v, err := s.Create(ctx, "  tack  ", 22)
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "tack", v.Name)
	assert.Equal(t, 22, v.RoomTemp)
	assert.Equal(t, 0, v.PhaseCount)
	assert.Empty(t, v.Phases)
	assert.Equal(t, "0 hours and 0 minutes", v.TotalTime)

	got, err := s.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	assert.Equal(t, []string{models.EventProgramCreated}, events.types())
	assert.Equal(t, v.ID, events.last().ProgramID)

	_, err = s.Create(ctx, " ", 20)
	assert.ErrorIs(t, err, curve.ErrInvalidValue)
}

func TestProgramStore_UnknownProgram(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrProgramNotFound)
	_, err = s.InsertPhase(ctx, "nope", PhaseParams{})
	assert.ErrorIs(t, err, ErrProgramNotFound)
	_, err = s.Chart(ctx, "nope")
	assert.ErrorIs(t, err, ErrProgramNotFound)
	_, err = s.Sample(ctx, "nope", 0)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestProgramStore_InsertRemoveChaining(t *testing.T) {
	s, events := newTestStore(t)
	ctx := context.Background()
	v := sampleProgram(t, s)

	require.Len(t, v.Phases, 3)
	assert.Equal(t, 20, v.Phases[0].StartTemp)
	assert.Equal(t, 500, v.Phases[1].StartTemp)
	assert.Equal(t, 790, v.Phases[2].StartTemp)
	assert.Equal(t, 96+28+55, v.TotalMinutes)

	v, err := s.InsertPhase(ctx, v.ID, PhaseParams{Velocity: 100, EndTemp: 600, Index: intPtr(1)})
	require.NoError(t, err)
	require.Len(t, v.Phases, 4)
	assert.Equal(t, 600, v.Phases[1].EndTemp)
	assert.Equal(t, 600, v.Phases[2].StartTemp)
	assert.Equal(t, 1, v.Phases[1].Index)

	v, err = s.RemovePhase(ctx, v.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 500, v.Phases[1].StartTemp)
	assert.Equal(t, 96+28+55, v.TotalMinutes)

	_, err = s.InsertPhase(ctx, v.ID, PhaseParams{Index: intPtr(9)})
	assert.ErrorIs(t, err, curve.ErrIndexOutOfRange)
	_, err = s.RemovePhase(ctx, v.ID, 3)
	assert.ErrorIs(t, err, curve.ErrIndexOutOfRange)

	assert.Equal(t, []string{
		models.EventProgramCreated,
		models.EventPhaseInserted, models.EventPhaseInserted, models.EventPhaseInserted,
		models.EventPhaseInserted,
		models.EventPhaseRemoved,
	}, events.types())
}

func TestProgramStore_FindPhase(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	v := sampleProgram(t, s)

	p, err := s.FindPhase(ctx, v.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, curve.PhaseValues{Index: 1, Velocity: 999, StartTemp: 500, EndTemp: 790, HoldingTime: 10, Duration: 28}, p)

	_, err = s.FindPhase(ctx, v.ID, 3)
	assert.ErrorIs(t, err, curve.ErrPhaseNotFound)
	_, err = s.FindPhase(ctx, v.ID, -1)
	assert.ErrorIs(t, err, curve.ErrPhaseNotFound)
}

func TestProgramStore_UpdatePhase(t *testing.T) {
	s, events := newTestStore(t)
	ctx := context.Background()
	v := sampleProgram(t, s)

	v, err := s.UpdatePhase(ctx, v.ID, 0, PhaseUpdate{EndTemp: intPtr(600), HoldingTime: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 600, v.Phases[0].EndTemp)
	assert.Equal(t, 5, v.Phases[0].HoldingTime)
	assert.Equal(t, 116+5, v.Phases[0].Duration)
	assert.Equal(t, 600, v.Phases[1].StartTemp)

	ev := events.last()
	assert.Equal(t, models.EventPhaseUpdated, ev.Type)
	assert.Equal(t, map[string]any{"index": 0, "end_temp": 600, "holding_time": 5}, ev.Metadata)

	before := v
	_, err = s.UpdatePhase(ctx, v.ID, 0, PhaseUpdate{EndTemp: intPtr(700), HoldingTime: intPtr(-1)})
	assert.ErrorIs(t, err, curve.ErrInvalidValue)
	_, err = s.UpdatePhase(ctx, v.ID, 7, PhaseUpdate{Velocity: intPtr(10)})
	assert.ErrorIs(t, err, curve.ErrPhaseNotFound)
	_, err = s.UpdatePhase(ctx, v.ID, 0, PhaseUpdate{})
	assert.ErrorIs(t, err, curve.ErrInvalidValue)

	after, err := s.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed updates must leave the program unchanged")
}

func TestProgramStore_BuildListDelete(t *testing.T) {
	s, events := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := s.Create(ctx, "first", 20)
	require.NoError(t, err)

	built, err := s.Build(ctx, "", builder.Params{
		Glass: "Bullseye COE 90", Oven: glass.OvenTop, Radius: 10, Layers: 2,
		HoldMinutes: 10, RoomTemp: 20, Firing: builder.FiringFull,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bullseye COE 90", built.Name)
	assert.Equal(t, 5, built.PhaseCount)
	assert.Equal(t, 1502, built.TotalMinutes)
	assert.Equal(t, 810, events.last().Metadata.(map[string]any)["top_temp"])

	_, err = s.Build(ctx, "bad", builder.Params{Glass: "Pyrex"})
	assert.ErrorIs(t, err, builder.ErrInvalidParams)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, built.ID, list[1].ID)

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.Equal(t, models.EventProgramDeleted, events.last().Type)
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NotEmpty(t, s.GlassTypes())
}

func TestProgramStore_ChartAndSample(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	v := sampleProgram(t, s)

	ch, err := s.Chart(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "sample", ch.Title)
	assert.Len(t, ch.Series, 3)

	smp, err := s.Sample(ctx, v.ID, 48)
	require.NoError(t, err)
	assert.Equal(t, 0, smp.PhaseIndex)
	assert.InDelta(t, 260.0, smp.TempC, 0.01)
	assert.False(t, smp.Done)
	assert.Equal(t, v.TotalMinutes, smp.TotalMinutes)

	smp, err = s.Sample(ctx, v.ID, 1000)
	require.NoError(t, err)
	assert.True(t, smp.Done)
	assert.Equal(t, 516.0, smp.TempC)
}

func TestProgramStore_EventAppendFailureIsReported(t *testing.T) {
	s, events := newTestStore(t)
	events.appendErr = errors.New("disk full")

	v, err := s.Create(context.Background(), "p", 20)
	require.Error(t, err)
	assert.NotEmpty(t, v.ID, "the program is created even when logging fails")
}
