// Package curve holds the firing curve of a glass-fusing kiln program: an ordered,
// doubly linked chain of phases whose start temperatures, durations, indices and
// total time are kept consistent under every edit.
//
// A FiringCurve is not safe for concurrent use. Callers sharing a curve must
// serialize access themselves.
package curve

import "fmt"

// FiringCurve is an editable ordered sequence of phases starting and, usually,
// ending at room temperature.
type FiringCurve struct {
	roomTemp   int
	phaseCount int
	totalTime  int // minutes

	head *Phase
	tail *Phase

	// version is bumped by every successful mutation; cursors compare against it.
	version uint64
}

// New returns an empty curve whose first phase will start at roomTemp.
func New(roomTemp int) *FiringCurve {
	return &FiringCurve{roomTemp: roomTemp}
}

func (c *FiringCurve) RoomTemp() int { return c.roomTemp }

// Len returns the number of phases.
func (c *FiringCurve) Len() int { return c.phaseCount }

// TotalTimeMinutes returns the sum of all phase durations.
func (c *FiringCurve) TotalTimeMinutes() int { return c.totalTime }

// FormatTotalTime renders the total program time in hours and minutes.
func (c *FiringCurve) FormatTotalTime() string { return FormatTotalTime(c.totalTime) }

// Append adds a phase after the current last phase.
func (c *FiringCurve) Append(velocity, endTemp, holdingTime int) error {
	return c.Insert(velocity, endTemp, holdingTime, c.phaseCount)
}

// Insert places a new phase at index, shifting the phase currently there (and all
// after it) one step back. index must be within [0, Len()]; Len() appends.
func (c *FiringCurve) Insert(velocity, endTemp, holdingTime, index int) error {
	if index < 0 || index > c.phaseCount {
		return fmt.Errorf("insert at %d, valid [0, %d]: %w", index, c.phaseCount, ErrIndexOutOfRange)
	}
	if holdingTime < 0 {
		return fmt.Errorf("holding time %d: %w", holdingTime, ErrInvalidValue)
	}

	startTemp := c.roomTemp
	if index > 0 {
		prev, _ := c.Find(index - 1)
		startTemp = prev.endTemp
	}
	p := &Phase{
		velocity:    velocity,
		endTemp:     endTemp,
		holdingTime: holdingTime,
		index:       index,
	}
	p.setStartTemp(startTemp)

	switch {
	case index == 0:
		p.next = c.head
		if c.head != nil {
			c.head.prev = p
		}
		c.head = p
		if c.tail == nil {
			c.tail = p
		}
	case index == c.phaseCount:
		p.prev = c.tail
		c.tail.next = p
		c.tail = p
	default:
		prev, _ := c.Find(index - 1)
		p.prev = prev
		p.next = prev.next
		prev.next.prev = p
		prev.next = p
	}

	c.phaseCount++
	c.resync()
	return nil
}

// Remove deletes the phase at index. Removing the only phase empties the curve.
func (c *FiringCurve) Remove(index int) error {
	if index < 0 || index >= c.phaseCount {
		return fmt.Errorf("remove at %d, valid [0, %d]: %w", index, c.phaseCount-1, ErrIndexOutOfRange)
	}
	if c.phaseCount == 1 {
		c.clear()
		return nil
	}

	p, _ := c.Find(index)
	if p.prev != nil {
		p.prev.next = p.next
	} else {
		c.head = p.next
	}
	if p.next != nil {
		p.next.prev = p.prev
	} else {
		c.tail = p.prev
	}
	p.prev, p.next = nil, nil

	c.phaseCount--
	c.resync()
	return nil
}

// Clear removes every phase.
func (c *FiringCurve) Clear() { c.clear() }

func (c *FiringCurve) clear() {
	c.phaseCount = 0
	c.totalTime = 0
	c.head = nil
	c.tail = nil
	c.version++
}

// Find walks from the head to the phase at index. The second result is false when
// no such phase exists.
func (c *FiringCurve) Find(index int) (*Phase, bool) {
	if index < 0 || index >= c.phaseCount {
		return nil, false
	}
	p := c.head
	for i := 0; i < index; i++ {
		p = p.next
	}
	return p, true
}

// ChangeEndTemp sets the target temperature of the phase at index. The new value
// becomes the start temperature of the following phase.
func (c *FiringCurve) ChangeEndTemp(index, endTemp int) error {
	p, err := c.mustFind(index)
	if err != nil {
		return err
	}
	p.endTemp = endTemp
	p.recompute()
	if p.next != nil {
		p.next.setStartTemp(p.endTemp)
	}
	c.resync()
	return nil
}

// ChangeVelocity sets the ramp velocity (°C/h) of the phase at index.
func (c *FiringCurve) ChangeVelocity(index, velocity int) error {
	p, err := c.mustFind(index)
	if err != nil {
		return err
	}
	p.velocity = velocity
	p.recompute()
	c.resync()
	return nil
}

// ChangeHoldingTime sets the hold minutes of the phase at index.
func (c *FiringCurve) ChangeHoldingTime(index, holdingTime int) error {
	if holdingTime < 0 {
		return fmt.Errorf("holding time %d: %w", holdingTime, ErrInvalidValue)
	}
	p, err := c.mustFind(index)
	if err != nil {
		return err
	}
	p.holdingTime = holdingTime
	p.recompute()
	c.resync()
	return nil
}

func (c *FiringCurve) mustFind(index int) (*Phase, error) {
	p, ok := c.Find(index)
	if !ok {
		return nil, fmt.Errorf("phase %d of %d: %w", index, c.phaseCount, ErrPhaseNotFound)
	}
	return p, nil
}

// resync walks the chain once, restoring indices, chained start temperatures,
// durations and the total time after any edit.
func (c *FiringCurve) resync() {
	total := 0
	startTemp := c.roomTemp
	i := 0
	for p := c.head; p != nil; p = p.next {
		p.index = i
		p.setStartTemp(startTemp)
		total += p.duration
		startTemp = p.endTemp
		i++
	}
	c.totalTime = total
	c.version++
}
