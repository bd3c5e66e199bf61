package service

import "time"

// PhaseParams describes a phase to insert. A nil Index appends.
type PhaseParams struct {
	Velocity    int  // °C/h, negative cools
	EndTemp     int  // °C
	HoldingTime int  // minutes
	Index       *int // position in [0, Len]
}

// PhaseUpdate changes the fields that are set. EndTemp is applied before
// Velocity and HoldingTime.
type PhaseUpdate struct {
	Velocity    *int
	EndTemp     *int
	HoldingTime *int
}

func (u PhaseUpdate) empty() bool {
	return u.Velocity == nil && u.EndTemp == nil && u.HoldingTime == nil
}

// LogFilter supports history filtering by time range, type and program.
type LogFilter struct {
	From      time.Time // inclusive; zero means no lower bound
	To        time.Time // inclusive; zero means no upper bound
	Type      string    // e.g. "START", "PHASE_CHANGE"; empty matches all
	ProgramID string
}
