package curve

// Phase is one ramp-or-hold segment of a firing curve.
// Phases are owned by the FiringCurve that created them and are only mutated through it.
type Phase struct {
	velocity    int // °C per hour, negative when cooling, 0 for a pure hold
	endTemp     int
	holdingTime int // minutes at endTemp
	startTemp   int
	duration    int // minutes
	index       int

	color string

	// prev is a navigational back link; ownership runs forward from the curve head.
	prev *Phase
	next *Phase
}

func (p *Phase) Velocity() int    { return p.velocity }
func (p *Phase) EndTemp() int     { return p.endTemp }
func (p *Phase) HoldingTime() int { return p.holdingTime }
func (p *Phase) StartTemp() int   { return p.startTemp }
func (p *Phase) Duration() int    { return p.duration }
func (p *Phase) Index() int       { return p.index }

// Color returns the display tag assigned by a renderer, or "" if none was assigned yet.
func (p *Phase) Color() string { return p.color }

// SetColor assigns the display tag. It is the only setter exposed on a phase and
// does not take part in any curve invariant.
func (p *Phase) SetColor(color string) { p.color = color }

// RampMinutes is the part of the duration spent changing temperature.
func (p *Phase) RampMinutes() int { return p.duration - p.holdingTime }

// setStartTemp updates the chained start temperature and the derived duration.
func (p *Phase) setStartTemp(t int) {
	p.startTemp = t
	p.recompute()
}

func (p *Phase) recompute() {
	p.duration = ComputeDuration(p.startTemp, p.endTemp, p.velocity, p.holdingTime)
}

// ComputeDuration returns the whole minutes needed to go from startTemp to endTemp at
// velocity °C/h plus holdingTime. The ramp is rounded up to the next minute so the
// controller never runs short of the target. A zero velocity is a pure hold.
func ComputeDuration(startTemp, endTemp, velocity, holdingTime int) int {
	if velocity == 0 {
		return holdingTime
	}
	delta := abs(endTemp - startTemp)
	rate := abs(velocity)
	ramp := (60*delta + rate - 1) / rate
	return ramp + holdingTime
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
