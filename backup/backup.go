// Package backup gives access to the battery-backed domain: 42 16-bit data
// slots, the tamper pin monitor and the RTC calibration output.
package backup

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
	"gd32hal/volatile"
)

// Slots is the number of backup data registers.
const Slots = 42

// Parts is the split backup domain.
type Parts struct {
	Data   *Data
	Tamper *Tamper
	OCTL   *OCTL
}

// Split clocks the PMU and backup interface and lifts the backup domain
// write protection. The three steps run masked so an interrupt never sees a
// half-opened domain.
func Split(raw *dev.BKP_Type, pmu *dev.PMU_Type, apb1 *rcu.APB1) *Parts {
	if raw == nil || pmu == nil {
		panic("backup: nil register block")
	}
	critical.Section(func() {
		apb1.Enable(rcu.PMU)
		apb1.Enable(rcu.BKPI)
		pmu.CTL.SetBits(dev.PMU_CTL_BKPWEN)
	})
	return &Parts{
		Data:   &Data{raw: raw},
		Tamper: &Tamper{raw: raw},
		OCTL:   &OCTL{raw: raw},
	}
}

// Data owns the data slots. Slots 0-9 sit at DATA0..DATA9, slots 10-41 at
// DATA10..DATA41 after a gap for the control registers.
type Data struct {
	raw *dev.BKP_Type
}

func (d *Data) reg(idx int) *volatile.Register32 {
	switch {
	case idx >= 0 && idx < 10:
		return &d.raw.DATA0[idx]
	case idx >= 10 && idx < Slots:
		return &d.raw.DATA1[idx-10]
	}
	panic("backup: slot " + debug.Itoa(idx) + " out of range")
}

// Read returns slot idx. idx must be below Slots.
func (d *Data) Read(idx int) uint16 {
	return uint16(d.reg(idx).Get())
}

// Write stores v in slot idx. idx must be below Slots.
func (d *Data) Write(idx int, v uint16) {
	d.reg(idx).Set(uint32(v))
}

// Clear resets the whole backup domain, which also drops the tamper
// configuration.
func (d *Data) Clear(bd *rcu.BDCTL) {
	bd.ResetBackupDomain()
}

// Level is the active level of the tamper pin.
type Level uint8

const (
	ActiveHigh Level = iota
	ActiveLow
)

// Tamper owns the tamper pin control and status registers. Every method is
// one atomic bit operation.
type Tamper struct {
	raw *dev.BKP_Type
}

const (
	bitTPEN = 0
	bitTPAL = 1

	bitTER  = 0
	bitTIR  = 1
	bitTPIE = 2
)

// Enable starts watching the tamper pin. The pin is no longer a GPIO while
// detection is enabled.
func (t *Tamper) Enable() { volatile.SetBit(&t.raw.TPCTL, true, bitTPEN) }

// Disable stops watching the tamper pin.
func (t *Tamper) Disable() { volatile.SetBit(&t.raw.TPCTL, false, bitTPEN) }

// SetActiveLevel selects which level raises a tamper event. Change it only
// while detection is disabled.
func (t *Tamper) SetActiveLevel(l Level) {
	volatile.SetBit(&t.raw.TPCTL, l == ActiveLow, bitTPAL)
}

// Listen enables the tamper interrupt.
func (t *Tamper) Listen() { volatile.SetBit(&t.raw.TPCS, true, bitTPIE) }

// Unlisten disables the tamper interrupt.
func (t *Tamper) Unlisten() { volatile.SetBit(&t.raw.TPCS, false, bitTPIE) }

// CheckEvent reports whether a tamper event has been latched.
func (t *Tamper) CheckEvent() bool { return t.raw.TPCS.HasBits(dev.BKP_TPCS_TEF) }

// ClearEvent clears the latched event.
func (t *Tamper) ClearEvent() { volatile.SetBit(&t.raw.TPCS, true, bitTER) }

// CheckInterrupt reports whether the tamper interrupt is pending.
func (t *Tamper) CheckInterrupt() bool { return t.raw.TPCS.HasBits(dev.BKP_TPCS_TIF) }

// ClearInterrupt clears the pending interrupt.
func (t *Tamper) ClearInterrupt() { volatile.SetBit(&t.raw.TPCS, true, bitTIR) }

// OCTL owns the RTC output control register.
type OCTL struct {
	raw *dev.BKP_Type
}

// SetCalibration sets the RTC clock calibration value, 0 to 0x7F.
func (o *OCTL) SetCalibration(v uint8) {
	if v > dev.BKP_OCTL_RCCV_Msk {
		panic("backup: calibration value " + debug.Utoa(uint32(v)) + " out of range")
	}
	critical.Section(func() {
		o.raw.OCTL.ReplaceBits(uint32(v), dev.BKP_OCTL_RCCV_Msk, 0)
	})
}

// Calibration returns the RTC calibration value.
func (o *OCTL) Calibration() uint8 {
	return uint8(o.raw.OCTL.Field(dev.BKP_OCTL_RCCV_Msk, 0))
}

// EnableCalibrationOutput puts the RTC clock divided by 64 on the tamper
// pin.
func (o *OCTL) EnableCalibrationOutput(on bool) {
	volatile.SetBit(&o.raw.OCTL, on, 7)
}

// AlarmOutput selects what the RTC drives on the tamper pin when its
// calibration output is off.
type AlarmOutput uint8

const (
	OutputNone AlarmOutput = iota
	OutputAlarm
	OutputSecond
)

// SetAlarmOutput selects the RTC alarm or second pulse output.
func (o *OCTL) SetAlarmOutput(a AlarmOutput) {
	critical.Section(func() {
		v := o.raw.OCTL.Get() &^ (dev.BKP_OCTL_ASOEN | dev.BKP_OCTL_ROSEL)
		switch a {
		case OutputAlarm:
			v |= dev.BKP_OCTL_ASOEN
		case OutputSecond:
			v |= dev.BKP_OCTL_ASOEN | dev.BKP_OCTL_ROSEL
		}
		o.raw.OCTL.Set(v)
	})
}
