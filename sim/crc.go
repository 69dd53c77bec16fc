//go:build !tinygo

package sim

import (
	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/crcsw"
	"gd32hal/volatile"
)

func (c *Chip) installCRC() {
	raw := c.P.CRC
	b := &block{name: "CRC", en: &c.P.RCU.AHBEN, bit: dev.RCU_AHBEN_CRCEN}
	poke(&raw.DATA, crcsw.Initial)

	c.gate(b, &raw.DATA, "DATA", &volatile.Hook{Write: func(old, value uint32) uint32 {
		return crcsw.Update(old, value)
	}})
	c.gate(b, &raw.FDATA, "FDATA", &volatile.Hook{Write: func(old, value uint32) uint32 {
		return value & 0xFF
	}})
	// RST reloads the accumulator and reads back set exactly once, so
	// callers polling for completion take one turn through their loop.
	c.gate(b, &raw.CTL, "CTL", &volatile.Hook{
		Write: func(old, value uint32) uint32 {
			if value&dev.CRC_CTL_RST != 0 {
				poke(&raw.DATA, crcsw.Initial)
			}
			return value & dev.CRC_CTL_RST
		},
		Read: func(stored uint32) uint32 {
			if stored&dev.CRC_CTL_RST != 0 {
				poke(&raw.CTL, stored&^dev.CRC_CTL_RST)
			}
			return stored
		},
	})
}
