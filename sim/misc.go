//go:build !tinygo

package sim

import (
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

// Values the read-only identification registers report.
const (
	DebugID       = 0x20000410
	MemoryDensity = 0x00200080 // 32 KiB SRAM, 128 KiB flash
)

// UniqueID is the simulated 96-bit device serial number.
var UniqueID = [3]uint32{0x3836A21C, 0xC1C04C4E, 0x0A1B2C3D}

func readOnly() *volatile.Hook {
	return &volatile.Hook{Write: func(old, value uint32) uint32 { return old }}
}

func (c *Chip) installSignature() {
	poke(&c.P.DBG.ID, DebugID)
	c.hook(&c.P.DBG.ID, readOnly())
	poke(&c.P.ESIG.MEMORY_DENSITY, MemoryDensity)
	c.hook(&c.P.ESIG.MEMORY_DENSITY, readOnly())
	for i := range c.P.ESIG.UNIQUE_ID {
		poke(&c.P.ESIG.UNIQUE_ID[i], UniqueID[i])
		c.hook(&c.P.ESIG.UNIQUE_ID[i], readOnly())
	}
}

func (c *Chip) installAFIO() {
	af := c.P.AFIO
	b := &block{name: "AFIO", en: &c.P.RCU.APB2EN, bit: dev.RCU_APB2_AF, reset: func() {
		poke(&af.EC, 0)
		poke(&af.PCF0, 0)
		poke(&af.PCF1, 0)
	}}
	c.apb2 = append(c.apb2, b)
	c.gate(b, &af.EC, "EC", &volatile.Hook{})
	c.gate(b, &af.PCF0, "PCF0", &volatile.Hook{})
	c.gate(b, &af.PCF1, "PCF1", &volatile.Hook{})
}

// The core timer counts on every read of the low word so busy-wait loops
// make progress.
func (c *Chip) installCoreTimer() {
	ct := c.P.CTIMER
	c.hook(&ct.MTIME_LO, &volatile.Hook{
		Read: func(uint32) uint32 {
			c.mtime += c.MtimeStep
			return uint32(c.mtime)
		},
		Write: func(old, value uint32) uint32 {
			c.mtime = c.mtime&^0xFFFFFFFF | uint64(value)
			return value
		},
	})
	c.hook(&ct.MTIME_HI, &volatile.Hook{
		Read: func(uint32) uint32 { return uint32(c.mtime >> 32) },
		Write: func(old, value uint32) uint32 {
			c.mtime = c.mtime&0xFFFFFFFF | uint64(value)<<32
			return value
		},
	})
}

// SetMtime loads the core timer counter.
func (c *Chip) SetMtime(v uint64) {
	c.mtime = v
}

// Mtime returns the core timer counter without advancing it.
func (c *Chip) Mtime() uint64 {
	return c.mtime
}
