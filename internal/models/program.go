package models

import (
	"time"

	"firing_curve/internal/curve"
)

// ProgramSummary is a program as listed.
type ProgramSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RoomTemp     int       `json:"room_temp"`
	PhaseCount   int       `json:"phase_count"`
	TotalMinutes int       `json:"total_minutes"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProgramView is a read-only view of a program and its phases.
type ProgramView struct {
	ProgramSummary
	TotalTime string              `json:"total_time"`
	Phases    []curve.PhaseValues `json:"phases"`
}
