package repository

import (
	"context"
	"database/sql"
	"time"

	"firing_curve/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, s models.KilnState) error
	Load(ctx context.Context) (models.KilnState, error)
}

// EventFilter narrows an event listing; zero fields do not filter.
type EventFilter struct {
	From      time.Time
	To        time.Time
	Type      string
	ProgramID string
}

type EventRepo interface {
	Append(ctx context.Context, e models.ProgramEvent) error
	List(ctx context.Context, f EventFilter) ([]models.ProgramEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
