package curve

// TemperatureAt returns the programmed temperature minute minutes into the firing,
// the index of the phase running at that moment and whether the program is over.
// Ramps are linear; a hold keeps the end temperature. Past the end it reports the
// last end temperature (room temperature for an empty curve) with done set.
func (c *FiringCurve) TemperatureAt(minute float64) (temp float64, index int, done bool) {
	if c.phaseCount == 0 {
		return float64(c.roomTemp), -1, true
	}
	if minute < 0 {
		minute = 0
	}
	elapsed := 0.0
	for p := c.head; p != nil; p = p.next {
		end := elapsed + float64(p.duration)
		if minute < end {
			in := minute - elapsed
			ramp := float64(p.RampMinutes())
			if p.velocity == 0 || in >= ramp {
				if p.velocity == 0 {
					return float64(p.startTemp), p.index, false
				}
				return float64(p.endTemp), p.index, false
			}
			frac := in / ramp
			t := float64(p.startTemp) + frac*float64(p.endTemp-p.startTemp)
			return t, p.index, false
		}
		elapsed = end
	}
	last := c.tail
	if last.velocity == 0 {
		return float64(last.startTemp), last.index, true
	}
	return float64(last.endTemp), last.index, true
}
