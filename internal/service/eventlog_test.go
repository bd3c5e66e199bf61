package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"firing_curve/internal/models"
)

func TestEventLogService_List_NormalizesFilter(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{listResp: []models.ProgramEvent{{EventID: "1", Type: models.EventStart}}}
	svc := NewEventLogService(repo)

	cet := time.FixedZone("CET", 3600)
	from := time.Date(2025, 3, 1, 10, 0, 0, 0, cet)
	to := time.Date(2025, 3, 1, 12, 0, 0, 0, cet)

	got, err := svc.List(context.Background(), LogFilter{From: from, To: to, Type: "  phase_change ", ProgramID: " p-1 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", got)
	}

	f := repo.gotFilter
	if f.From.Location() != time.UTC || !f.From.Equal(from) {
		t.Fatalf("from not normalized to UTC: %v", f.From)
	}
	if f.To.Location() != time.UTC || !f.To.Equal(to) {
		t.Fatalf("to not normalized to UTC: %v", f.To)
	}
	if f.Type != "PHASE_CHANGE" {
		t.Fatalf("type: got %q", f.Type)
	}
	if f.ProgramID != "p-1" {
		t.Fatalf("program id: got %q", f.ProgramID)
	}
}

func TestEventLogService_List_ZeroBoundsStayZero(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.gotFilter.From.IsZero() || !repo.gotFilter.To.IsZero() {
		t.Fatalf("expected zero bounds, got %+v", repo.gotFilter)
	}
}

func TestEventLogService_List_InvalidRange(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	now := time.Now()
	_, err := svc.List(context.Background(), LogFilter{From: now, To: now.Add(-time.Minute)})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("repo must not be queried on invalid range")
	}
}

func TestEventLogService_List_RepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{listErr: errors.New("db down")}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
