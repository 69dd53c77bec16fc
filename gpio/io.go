package gpio

import "gd32hal/volatile"

// BOP and BC act on single bits in hardware, so writes need no masking.

// SetHigh drives p high.
func SetHigh[L LockState, M Driven](p Pin[L, M]) {
	p.live()
	p.port.raw.BOP.Set(1 << p.index)
}

// SetLow drives p low.
func SetLow[L LockState, M Driven](p Pin[L, M]) {
	p.live()
	p.port.raw.BC.Set(1 << p.index)
}

// Set drives p to level.
func Set[L LockState, M Driven](p Pin[L, M], high bool) {
	if high {
		SetHigh(p)
	} else {
		SetLow(p)
	}
}

// IsSetHigh reports the level last written to p.
func IsSetHigh[L LockState, M Driven](p Pin[L, M]) bool {
	p.live()
	return p.port.raw.OCTL.HasBits(1 << p.index)
}

// IsSetLow reports whether p was last driven low.
func IsSetLow[L LockState, M Driven](p Pin[L, M]) bool {
	return !IsSetHigh(p)
}

// Toggle inverts the output latch of p with one atomic instruction.
func Toggle[L LockState, M Driven](p Pin[L, M]) {
	p.live()
	volatile.ToggleBit(&p.port.raw.OCTL, p.index)
}

// IsHigh reports the level on the pad of p.
func IsHigh[L LockState, M Sensed](p Pin[L, M]) bool {
	p.live()
	return p.port.raw.ISTAT.HasBits(1 << p.index)
}

// IsLow reports whether the pad of p is low.
func IsLow[L LockState, M Sensed](p Pin[L, M]) bool {
	return !IsHigh(p)
}
