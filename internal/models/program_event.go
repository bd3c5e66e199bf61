package models

import "time"

// Event types written to the program log.
const (
	EventProgramCreated = "PROGRAM_CREATED"
	EventProgramDeleted = "PROGRAM_DELETED"
	EventPhaseInserted  = "PHASE_INSERTED"
	EventPhaseRemoved   = "PHASE_REMOVED"
	EventPhaseUpdated   = "PHASE_UPDATED"
	EventStart          = "START"
	EventStop           = "STOP"
	EventPhaseChange    = "PHASE_CHANGE"
	EventComplete       = "COMPLETE"
	EventError          = "ERROR"
)

// ProgramEvent is a single log entry.
type ProgramEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	ProgramID   string    `json:"program_id,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
