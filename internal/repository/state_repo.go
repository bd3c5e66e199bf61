package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"firing_curve/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	kilnStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO kiln_state (id, program_id, running, setpoint_c, phase_index, elapsed_min, remaining_min, errors, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			program_id=excluded.program_id,
			running=excluded.running,
			setpoint_c=excluded.setpoint_c,
			phase_index=excluded.phase_index,
			elapsed_min=excluded.elapsed_min,
			remaining_min=excluded.remaining_min,
			errors=excluded.errors,
			started_at=excluded.started_at,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, program_id, running, setpoint_c, phase_index, elapsed_min, remaining_min, errors, started_at, updated_at
		FROM kiln_state WHERE id=?
	`
)

func marshalErrorCodes(codes []string) (string, error) {
	b, err := json.Marshal(codes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalErrorCodes(s string) ([]string, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	var codes []string
	if err := json.Unmarshal([]byte(s), &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// Save upserts the single kiln_state row. Times are stored in UTC; a zero
// UpdatedAt is replaced by now and a zero StartedAt is stored as NULL.
func (r *StateSQLite) Save(ctx context.Context, state models.KilnState) error {
	errorsJSON, err := marshalErrorCodes(state.ErrorCodes)
	if err != nil {
		return err
	}

	updated := state.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	var started any
	if !state.StartedAt.IsZero() {
		started = state.StartedAt.UTC()
	}

	_, err = r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		kilnStateRowID,
		state.ProgramID,
		state.IsRunning,
		state.SetpointC,
		state.PhaseIndex,
		state.ElapsedMinutes,
		state.RemainingMinutes,
		errorsJSON,
		started,
		updated.UTC(),
	)
	return err
}

// Load fetches the kiln_state row. A zero state (ID 0) means nothing was saved yet.
func (r *StateSQLite) Load(ctx context.Context) (models.KilnState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, kilnStateRowID)

	var (
		s          models.KilnState
		errorsJSON sql.NullString
		started    sql.NullTime
	)
	if err := row.Scan(
		&s.ID,
		&s.ProgramID,
		&s.IsRunning,
		&s.SetpointC,
		&s.PhaseIndex,
		&s.ElapsedMinutes,
		&s.RemainingMinutes,
		&errorsJSON,
		&started,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.KilnState{}, nil
		}
		return models.KilnState{}, err
	}

	codes, err := unmarshalErrorCodes(errorsJSON.String)
	if err != nil {
		return models.KilnState{}, err
	}
	s.ErrorCodes = codes
	if started.Valid {
		s.StartedAt = started.Time.UTC()
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
