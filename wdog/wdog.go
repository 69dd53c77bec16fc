// Package wdog drives the free watchdog timer (FWDGT), clocked by the
// 40 kHz IRC40K oscillator. Once started it cannot be stopped, so the API
// moves from Free to Enabled one way only.
package wdog

import (
	"time"

	"gd32hal/critical"
	"gd32hal/dbg"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
)

const (
	maxPSC = 6
	maxRLD = dev.FWDGT_RLD_Msk

	// baseTick is the counter period at prescaler code 0 (/4 of 40 kHz).
	baseTick = 100 * time.Microsecond
)

// MaxPeriod is the longest timeout the watchdog supports.
const MaxPeriod = (maxRLD + 1) * baseTick << maxPSC

func tick(psc uint32) time.Duration {
	return baseTick << psc
}

// Timing returns the prescaler code and reload value for the shortest
// timeout not below period. It panics for a period of zero or above
// MaxPeriod.
func Timing(period time.Duration) (psc, rld uint32) {
	if period <= 0 || period > MaxPeriod {
		panic("wdog: period " + period.String() + " out of range")
	}
	for psc < maxPSC && (maxRLD+1)*tick(psc) < period {
		psc++
	}
	// (rld+1) ticks must cover the period
	rld = uint32((period - 1) / tick(psc))
	if rld > maxRLD {
		rld = maxRLD
	}
	return psc, rld
}

// Free is the watchdog before it is started.
type Free struct {
	raw *dev.FWDGT_Type
}

func New(raw *dev.FWDGT_Type) *Free {
	if raw == nil {
		panic("wdog: nil register block")
	}
	return &Free{raw: raw}
}

// StopOnDebug pauses the watchdog while a debugger halts the core.
func (f *Free) StopOnDebug(d *dbg.DBG) {
	d.SetHold(dbg.FWDGTHold, true)
}

// Start programs period and starts the watchdog. f must not be used
// afterwards.
func (f *Free) Start(period time.Duration) *Enabled {
	if f.raw == nil {
		panic("wdog: already started")
	}
	e := &Enabled{raw: f.raw}
	f.raw = nil
	critical.Section(func() {
		e.setup(period)
		e.raw.CTL.Set(dev.FWDGT_CTL_CMD_ENABLE)
	})
	debug.Println("[WDOG] started, interval " + e.Interval().String())
	return e
}

// Enabled is a running watchdog.
type Enabled struct {
	raw *dev.FWDGT_Type
}

func (e *Enabled) wait(flag uint32) {
	for e.raw.STAT.HasBits(flag) {
	}
}

// setup runs the unlock, modify, lock sequence with interrupts masked.
func (e *Enabled) setup(period time.Duration) {
	psc, rld := Timing(period)
	critical.Section(func() {
		e.raw.CTL.Set(dev.FWDGT_CTL_CMD_WRITE_ENABLE)
		e.wait(dev.FWDGT_STAT_PUD)
		e.raw.PSC.Set(psc)
		e.wait(dev.FWDGT_STAT_RUD)
		e.raw.RLD.Set(rld)
		e.wait(dev.FWDGT_STAT_PUD | dev.FWDGT_STAT_RUD)
		e.raw.CTL.Set(dev.FWDGT_CTL_CMD_WRITE_DISABLE)
		e.raw.CTL.Set(dev.FWDGT_CTL_CMD_RELOAD)
	})
}

// Feed reloads the counter.
func (e *Enabled) Feed() {
	e.raw.CTL.Set(dev.FWDGT_CTL_CMD_RELOAD)
}

// Interval returns the configured timeout, which is never shorter than the
// period requested.
func (e *Enabled) Interval() time.Duration {
	e.wait(dev.FWDGT_STAT_PUD | dev.FWDGT_STAT_RUD)
	psc := e.raw.PSC.Get() & dev.FWDGT_PSC_Msk
	if psc > maxPSC {
		psc = maxPSC
	}
	rld := e.raw.RLD.Get() & dev.FWDGT_RLD_Msk
	return time.Duration(rld+1) * tick(psc)
}

// Reconfigure changes the timeout of the running watchdog and feeds it.
func (e *Enabled) Reconfigure(period time.Duration) {
	e.setup(period)
}
