// Package builder derives a kiln firing curve from glass reference data and the
// parameters chosen for a piece.
package builder

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"firing_curve/internal/curve"
	"firing_curve/internal/glass"
)

// Firing types.
const (
	FiringFull  = "f" // full fuse
	FiringSlump = "s"
	FiringTack  = "t" // tack fuse
)

// Default velocities in °C/h.
const (
	DefaultMaxHeatingVelocity   = 999
	DefaultFinalCoolingVelocity = -20
)

var (
	ValidRadii  = []int{5, 10, 20, 30, 40, 50, 60}
	ValidLayers = []int{1, 2, 3, 4, 5}
)

// Ranges accepted for hold minutes and room temperature.
const (
	MinHoldMinutes = 1
	MaxHoldMinutes = 15
	MinRoomTemp    = 10
	MaxRoomTemp    = 30
)

var ErrInvalidParams = errors.New("invalid firing parameters")

// Params are the user's choices for one firing.
type Params struct {
	Glass       string `json:"glass"`
	Oven        string `json:"oven"`
	Radius      int    `json:"radius"`       // cm, largest radius of the piece
	Layers      int    `json:"layers"`       // maximum number of stacked layers
	HoldMinutes int    `json:"hold_minutes"` // soak at top temperature
	RoomTemp    int    `json:"room_temp"`
	Firing      string `json:"firing"`
}

// Options tune the velocities not taken from the tables.
type Options struct {
	MaxHeatingVelocity   int
	FinalCoolingVelocity int
}

// DefaultOptions returns the velocities used by the kiln controller when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxHeatingVelocity:   DefaultMaxHeatingVelocity,
		FinalCoolingVelocity: DefaultFinalCoolingVelocity,
	}
}

// Plan records the values the curve was derived from.
type Plan struct {
	Glass            glass.Type `json:"glass"`
	TopTemp          int        `json:"top_temp"`
	InitialMeltPoint int        `json:"initial_melt_point"`
	HeatingMinutes   int        `json:"heating_minutes"`
	HoldingMinutes   int        `json:"holding_minutes"`
	AnnealingMinutes int        `json:"annealing_minutes"`
	Velocities       []int      `json:"velocities"`
}

// Validate checks p against the accepted ranges and the glass data.
func (p Params) Validate(tables *glass.Tables) error {
	g, err := tables.GlassType(p.Glass)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if !slices.Contains(glass.AllowedOvens(g.Category), p.Oven) {
		return invalidf("oven %q not allowed for %s glass", p.Oven, g.Category)
	}
	if !slices.Contains(ValidRadii, p.Radius) {
		return invalidf("radius %d, allowed %v", p.Radius, ValidRadii)
	}
	if !slices.Contains(ValidLayers, p.Layers) {
		return invalidf("layers %d, allowed %v", p.Layers, ValidLayers)
	}
	if p.HoldMinutes < MinHoldMinutes || p.HoldMinutes > MaxHoldMinutes {
		return invalidf("hold minutes %d, allowed %d to %d", p.HoldMinutes, MinHoldMinutes, MaxHoldMinutes)
	}
	if p.RoomTemp < MinRoomTemp || p.RoomTemp > MaxRoomTemp {
		return invalidf("room temperature %d, allowed %d to %d", p.RoomTemp, MinRoomTemp, MaxRoomTemp)
	}
	switch p.Firing {
	case FiringFull, FiringSlump, FiringTack:
	default:
		return invalidf("firing type %q, allowed f, s or t", p.Firing)
	}
	return nil
}

// TopTemp returns the peak temperature for a firing type: the rounded middle of the
// range for full fuse and slump, the fixed value for tack fuse.
func TopTemp(g glass.Type, firing string) (int, error) {
	switch firing {
	case FiringFull:
		return midpoint(g.FullFuseTop), nil
	case FiringSlump:
		return midpoint(g.SlumpTop), nil
	case FiringTack:
		return g.TackFuseTop, nil
	}
	return 0, invalidf("firing type %q", firing)
}

// Build derives a five phase curve: heat to the initial melt point, heat at full
// speed to the top temperature and hold, cool to the upper annealing point, anneal
// down to the lower annealing point, then cool to room temperature.
func Build(tables *glass.Tables, p Params, opts Options) (*curve.FiringCurve, Plan, error) {
	if err := p.Validate(tables); err != nil {
		return nil, Plan{}, err
	}
	g, _ := tables.GlassType(p.Glass)
	top, err := TopTemp(g, p.Firing)
	if err != nil {
		return nil, Plan{}, err
	}

	heating, err := tables.HeatingMinutes(g.Category, p.Oven, p.Radius, p.Layers)
	if err != nil {
		return nil, Plan{}, err
	}
	holding, err := tables.HoldingMinutes(g.Category, p.Radius, p.Layers)
	if err != nil {
		return nil, Plan{}, err
	}
	annealing, err := tables.AnnealingMinutes(g.Category, p.Radius, p.Layers)
	if err != nil {
		return nil, Plan{}, err
	}

	melt := tables.InitialMeltPoint
	first := velocity(melt-p.RoomTemp, heating)
	if first >= opts.MaxHeatingVelocity {
		first = opts.MaxHeatingVelocity
	}

	type step struct{ velocity, endTemp, hold int }
	steps := []step{
		{first, melt, 0},
		{opts.MaxHeatingVelocity, top, p.HoldMinutes},
		{velocity(g.UpperAnneal-top, holding), g.UpperAnneal, 0},
		{velocity(g.LowerAnneal-g.UpperAnneal, annealing), g.LowerAnneal, 0},
		{opts.FinalCoolingVelocity, p.RoomTemp, 0},
	}

	c := curve.New(p.RoomTemp)
	plan := Plan{
		Glass:            g,
		TopTemp:          top,
		InitialMeltPoint: melt,
		HeatingMinutes:   heating,
		HoldingMinutes:   holding,
		AnnealingMinutes: annealing,
	}
	for i, s := range steps {
		if err := c.Append(s.velocity, s.endTemp, s.hold); err != nil {
			return nil, Plan{}, fmt.Errorf("phase %d: %w", i+1, err)
		}
		if err := c.Check(); err != nil {
			return nil, Plan{}, fmt.Errorf("phase %d: %w", i+1, err)
		}
		plan.Velocities = append(plan.Velocities, s.velocity)
	}
	return c, plan, nil
}

// velocity converts a temperature change over minutes into °C/h, truncated toward zero.
func velocity(delta, minutes int) int {
	return int(math.Trunc(60 * float64(delta) / float64(minutes)))
}

func midpoint(r [2]int) int {
	return int(math.RoundToEven(float64(r[0]+r[1]) / 2))
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
