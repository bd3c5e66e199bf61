package models

import "time"

// KilnState is the current snapshot of the (simulated) kiln running a program.
type KilnState struct {
	ID               int       `json:"id"`
	ProgramID        string    `json:"program_id,omitempty"`
	IsRunning        bool      `json:"is_running"`
	SetpointC        float64   `json:"setpoint_c"`              // °C
	PhaseIndex       int       `json:"phase_index"`             // -1 when idle
	ElapsedMinutes   float64   `json:"elapsed_minutes"`         // programmed minutes
	RemainingMinutes int       `json:"remaining_minutes"`       // programmed minutes
	ErrorCodes       []string  `json:"error_codes,omitempty"`   // e.g. ["PROGRAM_MISSING"]
	StartedAt        time.Time `json:"started_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}
