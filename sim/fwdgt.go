//go:build !tinygo

package sim

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

// updateReads is how many STAT reads a prescaler or reload update stays
// in progress.
const updateReads = 2

type fwdgt struct {
	writable bool
	started  bool
	reloads  int
	counter  uint32
	pud, rud int
}

func (c *Chip) installWatchdog() {
	raw, w := c.P.FWDGT, &c.wdog
	poke(&raw.RLD, dev.FWDGT_RLD_Msk)

	// CTL is write only; any key but the unlock key drops write access.
	c.hook(&raw.CTL, &volatile.Hook{
		Read: func(uint32) uint32 { return 0 },
		Write: func(old, value uint32) uint32 {
			switch value & 0xFFFF {
			case dev.FWDGT_CTL_CMD_WRITE_ENABLE:
				if !critical.Active() {
					c.violate("FWDGT unlock key written with interrupts enabled")
				}
				w.writable = true
				return 0
			case dev.FWDGT_CTL_CMD_RELOAD:
				w.reloads++
				w.counter = peek(&raw.RLD)
			case dev.FWDGT_CTL_CMD_ENABLE:
				w.started = true
				w.counter = peek(&raw.RLD)
			}
			w.writable = false
			return 0
		},
	})
	update := func(reg string, mask uint32, busy *int) *volatile.Hook {
		return &volatile.Hook{Write: func(old, value uint32) uint32 {
			if !w.writable {
				c.violate("FWDGT.%s written without the unlock key", reg)
				return old
			}
			if !critical.Active() {
				c.violate("FWDGT.%s written with interrupts enabled", reg)
			}
			if *busy > 0 {
				c.violate("FWDGT.%s written while a previous update is in progress", reg)
			}
			*busy = updateReads
			return value & mask
		}}
	}
	c.hook(&raw.PSC, update("PSC", dev.FWDGT_PSC_Msk, &w.pud))
	c.hook(&raw.RLD, update("RLD", dev.FWDGT_RLD_Msk, &w.rud))
	c.hook(&raw.STAT, &volatile.Hook{
		Read: func(uint32) uint32 {
			var stat uint32
			if w.pud > 0 {
				stat |= dev.FWDGT_STAT_PUD
				w.pud--
			}
			if w.rud > 0 {
				stat |= dev.FWDGT_STAT_RUD
				w.rud--
			}
			return stat
		},
		Write: func(old, value uint32) uint32 { return old },
	})
}

// WatchdogStarted reports whether the free watchdog has been enabled.
func (c *Chip) WatchdogStarted() bool {
	return c.wdog.started
}

// WatchdogReloads returns how many times the reload key has been written.
func (c *Chip) WatchdogReloads() int {
	return c.wdog.reloads
}
