package service

import (
	"context"
	"time"

	"firing_curve/internal/builder"
	"firing_curve/internal/chart"
	"firing_curve/internal/curve"
	"firing_curve/internal/glass"
	"firing_curve/internal/models"
	"firing_curve/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Programs edits the firing curves held in memory.
type Programs interface {
	Create(ctx context.Context, name string, roomTemp int) (models.ProgramView, error)
	Build(ctx context.Context, name string, p builder.Params) (models.ProgramView, error)
	Get(ctx context.Context, id string) (models.ProgramView, error)
	List(ctx context.Context) ([]models.ProgramSummary, error)
	Delete(ctx context.Context, id string) error
	InsertPhase(ctx context.Context, id string, p PhaseParams) (models.ProgramView, error)
	RemovePhase(ctx context.Context, id string, index int) (models.ProgramView, error)
	FindPhase(ctx context.Context, id string, index int) (curve.PhaseValues, error)
	UpdatePhase(ctx context.Context, id string, index int, u PhaseUpdate) (models.ProgramView, error)
	Chart(ctx context.Context, id string) (chart.Chart, error)
	GlassTypes() []glass.Type
}

// Kiln starts and stops a program run.
type Kiln interface {
	Start(ctx context.Context, programID string) error
	Stop(ctx context.Context) error
}

// Monitoring exposes the read-only run state.
type Monitoring interface {
	GetState(ctx context.Context) (models.KilnState, error)
}

// EventLog exposes the append-only program log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ProgramEvent, error)
}

// Simulator advances the active run. Stop it by canceling ctx.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Options carries the settings services take from configuration.
type Options struct {
	Tables     *glass.Tables
	Builder    builder.Options
	SigningKey string
	TokenTTL   time.Duration
	Speed      float64
}

type Service struct {
	Programs
	Kiln
	Monitoring
	EventLog
	Simulator
	Authorization
}

func NewService(repos *repository.Repository, opts Options) *Service {
	programs := NewProgramStore(opts.Tables, opts.Builder, repos.EventRepo)
	return &Service{
		Programs:      programs,
		Kiln:          NewKilnService(repos.StateRepo, repos.EventRepo, programs),
		Monitoring:    NewMonitoringService(repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(repos.StateRepo, repos.EventRepo, programs, opts.Speed),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
