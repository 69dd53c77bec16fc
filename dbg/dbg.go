// Package dbg exposes the debug module: the device ID code and the bits
// that hold peripherals while the core is halted by a debugger.
package dbg

import dev "gd32hal/device/gd32vf103"

// Hold selects a peripheral or low-power mode kept under debug control.
type Hold uint32

const (
	SleepHold     Hold = dev.DBG_CTL_SLP_HOLD
	DeepSleepHold Hold = dev.DBG_CTL_DSLP_HOLD
	StandbyHold   Hold = dev.DBG_CTL_STB_HOLD
	FWDGTHold     Hold = dev.DBG_CTL_FWDGT_HOLD
	WWDGTHold     Hold = dev.DBG_CTL_WWDGT_HOLD
	Timer0Hold    Hold = dev.DBG_CTL_TIMER0_HOLD
	Timer1Hold    Hold = dev.DBG_CTL_TIMER1_HOLD
	Timer2Hold    Hold = dev.DBG_CTL_TIMER2_HOLD
	Timer3Hold    Hold = dev.DBG_CTL_TIMER3_HOLD
)

type DBG struct {
	raw *dev.DBG_Type
}

func New(raw *dev.DBG_Type) *DBG {
	if raw == nil {
		panic("dbg: nil register block")
	}
	return &DBG{raw: raw}
}

// ID returns the debug ID code (device and revision).
func (d *DBG) ID() uint32 {
	return d.raw.ID.Get()
}

// SetHold stops (on) or keeps running (off) the selected units while the
// core is halted.
func (d *DBG) SetHold(h Hold, on bool) {
	if on {
		d.raw.CTL.SetBits(uint32(h))
	} else {
		d.raw.CTL.ClearBits(uint32(h))
	}
}

// Held reports whether every unit in h is held.
func (d *DBG) Held(h Hold) bool {
	return d.raw.CTL.HasBits(uint32(h))
}
