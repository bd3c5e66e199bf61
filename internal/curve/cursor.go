package curve

import "iter"

// Cursor walks a curve from head to tail. Each cursor carries its own position, so
// any number of cursors may be active on the same curve. A cursor is invalidated by
// any edit of the curve made after it was created.
type Cursor struct {
	curve   *FiringCurve
	next    *Phase
	version uint64
	err     error
}

// Cursor returns a new cursor positioned before the first phase.
func (c *FiringCurve) Cursor() *Cursor {
	return &Cursor{curve: c, next: c.head, version: c.version}
}

// Next returns the next phase in index order. It returns false at the end of the
// curve or once the curve has been modified; Err tells the two apart.
func (cur *Cursor) Next() (*Phase, bool) {
	if cur.err != nil {
		return nil, false
	}
	if cur.version != cur.curve.version {
		cur.err = ErrCursorInvalidated
		cur.next = nil
		return nil, false
	}
	if cur.next == nil {
		return nil, false
	}
	p := cur.next
	cur.next = p.next
	return p, true
}

// Err reports ErrCursorInvalidated if iteration stopped because the curve changed.
func (cur *Cursor) Err() error { return cur.err }

// All yields (index, phase) pairs from head to tail. Iteration stops early if the
// curve is edited while the loop runs.
func (c *FiringCurve) All() iter.Seq2[int, *Phase] {
	return func(yield func(int, *Phase) bool) {
		cur := c.Cursor()
		for {
			p, ok := cur.Next()
			if !ok {
				return
			}
			if !yield(p.index, p) {
				return
			}
		}
	}
}

// PhaseValues is a detached copy of a phase's fields.
type PhaseValues struct {
	Index       int    `json:"index"`
	Velocity    int    `json:"velocity"`
	StartTemp   int    `json:"start_temp"`
	EndTemp     int    `json:"end_temp"`
	HoldingTime int    `json:"holding_time"`
	Duration    int    `json:"duration"`
	Color       string `json:"color,omitempty"`
}

// Values copies the phase's current fields.
func (p *Phase) Values() PhaseValues {
	return PhaseValues{
		Index:       p.index,
		Velocity:    p.velocity,
		StartTemp:   p.startTemp,
		EndTemp:     p.endTemp,
		HoldingTime: p.holdingTime,
		Duration:    p.duration,
		Color:       p.color,
	}
}

// Snapshot copies every phase in order.
func (c *FiringCurve) Snapshot() []PhaseValues {
	out := make([]PhaseValues, 0, c.phaseCount)
	for _, p := range c.All() {
		out = append(out, p.Values())
	}
	return out
}
