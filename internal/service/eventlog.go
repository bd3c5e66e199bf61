package service

import (
	"context"
	"errors"
	"strings"

	"firing_curve/internal/models"
	"firing_curve/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// normalizeFilter converts times to UTC, canonicalizes the type and
// validates the range.
func normalizeFilter(f LogFilter) (repository.EventFilter, error) {
	out := repository.EventFilter{
		From:      toUTC(f.From),
		To:        toUTC(f.To),
		Type:      strings.ToUpper(strings.TrimSpace(f.Type)),
		ProgramID: strings.TrimSpace(f.ProgramID),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return repository.EventFilter{}, ErrInvalidTimeRange
	}
	return out, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ProgramEvent, error) {
	rf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, rf)
}
