package curve

import "fmt"

// Check verifies the structure of the curve by walking it forward from the head and
// backward from the tail. It returns nil for a healthy curve and otherwise an error
// wrapping ErrCorrupt that names the first violation found.
func (c *FiringCurve) Check() error {
	if c.phaseCount == 0 {
		if c.head != nil || c.tail != nil {
			return corrupt("empty curve has head or tail set")
		}
		if c.totalTime != 0 {
			return corrupt("empty curve has total time %d", c.totalTime)
		}
		return nil
	}
	if c.phaseCount < 0 {
		return corrupt("negative phase count %d", c.phaseCount)
	}
	if c.head == nil || c.tail == nil {
		return corrupt("%d phases but head or tail unset", c.phaseCount)
	}
	if c.head.prev != nil {
		return corrupt("head has a previous phase")
	}
	if c.tail.next != nil {
		return corrupt("tail has a next phase")
	}

	count, total := 0, 0
	startTemp := c.roomTemp
	var last *Phase
	for p := c.head; p != nil; p = p.next {
		if count >= c.phaseCount {
			return corrupt("forward walk exceeds %d phases", c.phaseCount)
		}
		if p.index != count {
			return corrupt("phase at position %d has index %d", count, p.index)
		}
		if p.prev != last {
			return corrupt("phase %d back link does not match forward order", count)
		}
		if p.startTemp != startTemp {
			return corrupt("phase %d starts at %d, want %d", count, p.startTemp, startTemp)
		}
		if want := ComputeDuration(p.startTemp, p.endTemp, p.velocity, p.holdingTime); p.duration != want {
			return corrupt("phase %d duration %d, want %d", count, p.duration, want)
		}
		total += p.duration
		startTemp = p.endTemp
		last = p
		count++
	}
	if count != c.phaseCount {
		return corrupt("forward walk found %d phases, want %d", count, c.phaseCount)
	}
	if last != c.tail {
		return corrupt("forward walk does not end at tail")
	}
	if total != c.totalTime {
		return corrupt("forward durations sum to %d, total time %d", total, c.totalTime)
	}

	count, total = 0, 0
	for p := c.tail; p != nil; p = p.prev {
		if count >= c.phaseCount {
			return corrupt("backward walk exceeds %d phases", c.phaseCount)
		}
		if want := c.phaseCount - 1 - count; p.index != want {
			return corrupt("backward walk: phase has index %d, want %d", p.index, want)
		}
		total += p.duration
		last = p
		count++
	}
	if count != c.phaseCount {
		return corrupt("backward walk found %d phases, want %d", count, c.phaseCount)
	}
	if last != c.head {
		return corrupt("backward walk does not end at head")
	}
	if total != c.totalTime {
		return corrupt("backward durations sum to %d, total time %d", total, c.totalTime)
	}
	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
