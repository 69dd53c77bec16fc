//go:build !tinygo

package sim

import (
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

func (c *Chip) installBackup() {
	rcu, bkp, pmu := c.P.RCU, c.P.BKP, c.P.PMU
	pmuBlk := &block{name: "PMU", en: &rcu.APB1EN, bit: dev.RCU_APB1_PMU, reset: func() {
		poke(&pmu.CTL, 0)
	}}
	c.apb1 = append(c.apb1, pmuBlk)
	c.gate(pmuBlk, &pmu.CTL, "CTL", &volatile.Hook{})

	bkpBlk := &block{name: "BKP", en: &rcu.APB1EN, bit: dev.RCU_APB1_BKPI}
	c.apb1 = append(c.apb1, bkpBlk)

	// The backup domain ignores writes until BKPWEN is set.
	writable := func(reg string) bool {
		if peek(&pmu.CTL)&dev.PMU_CTL_BKPWEN == 0 {
			c.violate("BKP.%s written while the backup domain is write protected", reg)
			return false
		}
		return true
	}
	protect := func(reg string, mask uint32) *volatile.Hook {
		return &volatile.Hook{Write: func(old, value uint32) uint32 {
			if !writable(reg) {
				return old
			}
			return value & mask
		}}
	}
	for i := range bkp.DATA0 {
		c.gate(bkpBlk, &bkp.DATA0[i], "DATA", protect("DATA", 0xFFFF))
	}
	for i := range bkp.DATA1 {
		c.gate(bkpBlk, &bkp.DATA1[i], "DATA", protect("DATA", 0xFFFF))
	}
	c.gate(bkpBlk, &bkp.OCTL, "OCTL", protect("OCTL", 0x3FF))
	c.gate(bkpBlk, &bkp.TPCTL, "TPCTL", protect("TPCTL", dev.BKP_TPCTL_TPEN|dev.BKP_TPCTL_TPAL))

	// TER and TIR are write-one-to-clear commands for TEF and TIF.
	c.gate(bkpBlk, &bkp.TPCS, "TPCS", &volatile.Hook{Write: func(old, value uint32) uint32 {
		if !writable("TPCS") {
			return old
		}
		flags := old & (dev.BKP_TPCS_TEF | dev.BKP_TPCS_TIF)
		if value&dev.BKP_TPCS_TER != 0 {
			flags &^= dev.BKP_TPCS_TEF
		}
		if value&dev.BKP_TPCS_TIR != 0 {
			flags &^= dev.BKP_TPCS_TIF
		}
		return flags | value&dev.BKP_TPCS_TPIE
	}})
}

func (c *Chip) installBackupReset() {
	bkp, pmu := c.P.BKP, c.P.PMU
	c.hook(&c.P.RCU.BDCTL, &volatile.Hook{Write: func(old, value uint32) uint32 {
		if peek(&pmu.CTL)&dev.PMU_CTL_BKPWEN == 0 {
			c.violate("RCU.BDCTL written while the backup domain is write protected")
			return old
		}
		if value&dev.RCU_BDCTL_BKPRST != 0 && old&dev.RCU_BDCTL_BKPRST == 0 {
			for i := range bkp.DATA0 {
				poke(&bkp.DATA0[i], 0)
			}
			for i := range bkp.DATA1 {
				poke(&bkp.DATA1[i], 0)
			}
			poke(&bkp.OCTL, 0)
			poke(&bkp.TPCTL, 0)
			poke(&bkp.TPCS, 0)
		}
		return value
	}})
}

// Tamper raises a tamper event if detection is enabled.
func (c *Chip) Tamper() {
	bkp := c.P.BKP
	if peek(&bkp.TPCTL)&dev.BKP_TPCTL_TPEN == 0 {
		return
	}
	tpcs := peek(&bkp.TPCS) | dev.BKP_TPCS_TEF
	if tpcs&dev.BKP_TPCS_TPIE != 0 {
		tpcs |= dev.BKP_TPCS_TIF
	}
	poke(&bkp.TPCS, tpcs)
}
