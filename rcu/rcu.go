// Package rcu owns the reset and clock unit: per-bus enable and reset
// handles for peripheral construction, and the Strict clock tree builder
// that produces the frozen Clocks snapshot.
package rcu

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

// RCU is the constrained reset and clock unit. Each field is an exclusive
// handle over a disjoint set of RCU registers.
type RCU struct {
	AHB   *AHB
	APB1  *APB1
	APB2  *APB2
	CFG   *CFG
	BDCTL *BDCTL
}

// Constrain splits raw into its handles.
func Constrain(raw *dev.RCU_Type) *RCU {
	if raw == nil {
		panic("rcu: nil register block")
	}
	return &RCU{
		AHB:   &AHB{bus{en: &raw.AHBEN, rst: &raw.AHBRST}},
		APB1:  &APB1{bus{en: &raw.APB1EN, rst: &raw.APB1RST}},
		APB2:  &APB2{bus{en: &raw.APB2EN, rst: &raw.APB2RST}},
		CFG:   &CFG{raw: raw},
		BDCTL: &BDCTL{reg: &raw.BDCTL},
	}
}

// bus is an enable/reset register pair. Single enable bits change with one
// atomic instruction; a reset pulse is two writes and runs masked.
type bus struct {
	en, rst *volatile.Register32
}

func (b *bus) enable(bit uint8) {
	volatile.SetBit(b.en, true, bit)
}

func (b *bus) disable(bit uint8) {
	volatile.SetBit(b.en, false, bit)
}

func (b *bus) enabled(bit uint8) bool {
	return b.en.HasBits(1 << bit)
}

func (b *bus) reset(bit uint8) {
	critical.Section(func() {
		volatile.SetBit(b.rst, true, bit)
		volatile.SetBit(b.rst, false, bit)
	})
}

// enableReset clocks a peripheral and pulses its reset without letting an
// interrupt observe the clocked but not yet reset state.
func (b *bus) enableReset(bit uint8) {
	critical.Section(func() {
		b.enable(bit)
		b.reset(bit)
	})
}

// AHB gates the AHB peripherals. It owns AHBEN and AHBRST.
type AHB struct{ bus }

// Enable turns on the clock of p.
func (h *AHB) Enable(p AHBPeriph) { h.enable(uint8(p)) }

// Disable gates the clock of p.
func (h *AHB) Disable(p AHBPeriph) { h.disable(uint8(p)) }

// Enabled reports whether p is clocked.
func (h *AHB) Enabled(p AHBPeriph) bool { return h.enabled(uint8(p)) }

// APB1 gates the APB1 peripherals. It owns APB1EN and APB1RST.
type APB1 struct{ bus }

// Enable turns on the clock of p.
func (h *APB1) Enable(p APB1Periph) { h.enable(uint8(p)) }

// Disable gates the clock of p.
func (h *APB1) Disable(p APB1Periph) { h.disable(uint8(p)) }

// Enabled reports whether p is clocked.
func (h *APB1) Enabled(p APB1Periph) bool { return h.enabled(uint8(p)) }

// Reset pulses the reset line of p.
func (h *APB1) Reset(p APB1Periph) { h.reset(uint8(p)) }

// EnableReset clocks p and pulses its reset line.
func (h *APB1) EnableReset(p APB1Periph) { h.enableReset(uint8(p)) }

// APB2 gates the APB2 peripherals. It owns APB2EN and APB2RST.
type APB2 struct{ bus }

// Enable turns on the clock of p.
func (h *APB2) Enable(p APB2Periph) { h.enable(uint8(p)) }

// Disable gates the clock of p.
func (h *APB2) Disable(p APB2Periph) { h.disable(uint8(p)) }

// Enabled reports whether p is clocked.
func (h *APB2) Enabled(p APB2Periph) bool { return h.enabled(uint8(p)) }

// Reset pulses the reset line of p.
func (h *APB2) Reset(p APB2Periph) { h.reset(uint8(p)) }

// EnableReset clocks p and pulses its reset line.
func (h *APB2) EnableReset(p APB2Periph) { h.enableReset(uint8(p)) }

// BDCTL owns the backup domain control register.
type BDCTL struct {
	reg *volatile.Register32
}

// ResetBackupDomain clears every backup register and the tamper
// configuration. The backup domain must be write enabled.
func (b *BDCTL) ResetBackupDomain() {
	critical.Section(func() {
		b.reg.SetBits(dev.RCU_BDCTL_BKPRST)
		b.reg.ClearBits(dev.RCU_BDCTL_BKPRST)
	})
}
