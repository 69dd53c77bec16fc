// Package ctimer reads the RISC-V machine timer (mtime), which counts at a
// quarter of the AHB clock, and builds busy-wait delays on top of it.
package ctimer

import (
	"time"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/rcu"
)

// CoreTimer owns the mtime and mtimecmp registers.
type CoreTimer struct {
	raw *dev.CTIMER_Type
}

func New(raw *dev.CTIMER_Type) *CoreTimer {
	if raw == nil {
		panic("ctimer: nil register block")
	}
	return &CoreTimer{raw: raw}
}

// Now returns the 64-bit counter. The high word is read on both sides of
// the low word and the read repeats if a carry happened in between.
func (c *CoreTimer) Now() uint64 {
	for {
		hi := c.raw.MTIME_HI.Get()
		lo := c.raw.MTIME_LO.Get()
		if c.raw.MTIME_HI.Get() == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}

// SetCompare programs mtimecmp. The high word is parked at its maximum
// while the low word changes so no spurious match fires.
func (c *CoreTimer) SetCompare(v uint64) {
	c.raw.MTIMECMP_HI.Set(0xFFFFFFFF)
	c.raw.MTIMECMP_LO.Set(uint32(v))
	c.raw.MTIMECMP_HI.Set(uint32(v >> 32))
}

// Compare returns mtimecmp.
func (c *CoreTimer) Compare() uint64 {
	return uint64(c.raw.MTIMECMP_HI.Get())<<32 | uint64(c.raw.MTIMECMP_LO.Get())
}

// Delay is a busy-wait delay provider.
type Delay struct {
	ct    *CoreTimer
	perMs uint64
}

// NewDelay derives the tick rate from the frozen clocks: mtime runs at
// AHB/4, so one millisecond is AHB/4000 ticks.
func NewDelay(ct *CoreTimer, clocks rcu.Clocks) *Delay {
	perMs := uint64(clocks.AHBClk()) / 4000
	if perMs == 0 {
		panic("ctimer: AHB clock too slow for delays")
	}
	return &Delay{ct: ct, perMs: perMs}
}

// TicksPerMs returns how many counter ticks make a millisecond.
func (d *Delay) TicksPerMs() uint64 {
	return d.perMs
}

func (d *Delay) spin(ticks uint64) {
	start := d.ct.Now()
	for d.ct.Now()-start < ticks {
	}
}

func (d *Delay) DelayMs(ms uint32) {
	d.spin(uint64(ms) * d.perMs)
}

// DelayUs waits us microseconds. A uint32 count times the tick rate always
// fits in 64 bits.
func (d *Delay) DelayUs(us uint32) {
	d.spin(uint64(us) * d.perMs / 1000)
}

// Sleep waits at least dur; non-positive durations return at once.
func (d *Delay) Sleep(dur time.Duration) {
	if dur <= 0 {
		return
	}
	d.spin(d.ticks(dur))
}

// ticks converts dur to counter ticks, rounding up. Whole milliseconds are
// scaled separately from the remainder: the longest Duration is under 1e13
// ms and perMs is at most 27000, so neither product can overflow.
func (d *Delay) ticks(dur time.Duration) uint64 {
	ms := uint64(dur / time.Millisecond)
	rem := uint64(dur % time.Millisecond)
	return ms*d.perMs + (rem*d.perMs+uint64(time.Millisecond)-1)/uint64(time.Millisecond)
}
