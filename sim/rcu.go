//go:build !tinygo

package sim

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

const (
	oscEnables = dev.RCU_CTL_IRC8MEN | dev.RCU_CTL_HXTALEN | dev.RCU_CTL_PLLEN |
		dev.RCU_CTL_PLL1EN | dev.RCU_CTL_PLL2EN
	oscStable = dev.RCU_CTL_IRC8MSTB | dev.RCU_CTL_HXTALSTB | dev.RCU_CTL_PLLSTB |
		dev.RCU_CTL_PLL1STB | dev.RCU_CTL_PLL2STB

	pllFields = dev.RCU_CFG0_PLLSEL | dev.RCU_CFG0_PLLMF_4 |
		dev.RCU_CFG0_PLLMF_Msk<<dev.RCU_CFG0_PLLMF_Pos
)

func (c *Chip) installRCU() {
	rcu := c.P.RCU
	poke(&rcu.CTL, dev.RCU_CTL_IRC8MEN|dev.RCU_CTL_IRC8MSTB)

	// Each stable flag sits one bit above its enable and follows it
	// immediately.
	c.hook(&rcu.CTL, &volatile.Hook{Write: func(old, value uint32) uint32 {
		value &^= oscStable
		value |= (value & oscEnables) << 1
		if value&dev.RCU_CTL_IRC8MEN == 0 && old&dev.RCU_CTL_IRC8MEN != 0 && sysSource(rcu) == dev.RCU_SCS_IRC8M {
			c.violate("RCU: IRC8M disabled while driving the system clock")
		}
		return value
	}})

	c.hook(&rcu.CFG0, &volatile.Hook{Write: func(old, value uint32) uint32 {
		if peek(&rcu.CTL)&dev.RCU_CTL_PLLEN != 0 && (old^value)&pllFields != 0 {
			c.violate("RCU: PLL reconfigured while enabled")
		}
		ctl := peek(&rcu.CTL)
		switch value >> dev.RCU_CFG0_SCS_Pos & dev.RCU_CFG0_SCS_Msk {
		case dev.RCU_SCS_HXTAL:
			if ctl&dev.RCU_CTL_HXTALSTB == 0 {
				c.violate("RCU: HXTAL selected before it is stable")
			}
		case dev.RCU_SCS_PLL:
			if ctl&dev.RCU_CTL_PLLSTB == 0 {
				c.violate("RCU: PLL selected before it is stable")
			}
		}
		scs := value >> dev.RCU_CFG0_SCS_Pos & dev.RCU_CFG0_SCS_Msk
		value &^= dev.RCU_CFG0_SCSS_Msk << dev.RCU_CFG0_SCSS_Pos
		return value | scs<<dev.RCU_CFG0_SCSS_Pos
	}})

	c.hook(&rcu.CFG1, &volatile.Hook{Write: func(old, value uint32) uint32 {
		if peek(&rcu.CTL)&dev.RCU_CTL_PLLEN != 0 && old != value {
			c.violate("RCU: PREDV0 changed while the PLL is enabled")
		}
		return value
	}})

	c.hook(&rcu.APB2RST, c.resetHook("APB2", c.apb2))
	c.hook(&rcu.APB1RST, c.resetHook("APB1", c.apb1))
}

// resetHook applies the reset values of every block whose reset bit rises.
// A reset pulse is two writes; an interrupt between them must not see the
// peripheral half reset, so both have to happen masked.
func (c *Chip) resetHook(bus string, blocks []*block) *volatile.Hook {
	return &volatile.Hook{Write: func(old, value uint32) uint32 {
		if old != value && !critical.Active() {
			c.violate("%s reset pulse issued with interrupts enabled", bus)
		}
		for _, b := range blocks {
			if value&b.bit != 0 && old&b.bit == 0 && b.reset != nil {
				b.reset()
			}
		}
		return value
	}}
}

func sysSource(rcu *dev.RCU_Type) uint32 {
	return peek(&rcu.CFG0) >> dev.RCU_CFG0_SCSS_Pos & dev.RCU_CFG0_SCSS_Msk
}

// Enabled reports whether any of bits is set in the given enable register.
func (c *Chip) Enabled(en *volatile.Register32, bits uint32) bool {
	return peek(en)&bits != 0
}
