package rcu

import (
	dev "gd32hal/device/gd32vf103"
)

// CFG owns the clock configuration registers CTL, CFG0 and CFG1. It is
// consumed by the first Freeze.
type CFG struct {
	raw    *dev.RCU_Type
	frozen bool
}

// commit writes p in the order the hardware requires. The stable-flag waits
// have no timeout: a dead crystal hangs here.
func (c *CFG) commit(p *ClockPlan) {
	if c.frozen {
		panic("rcu: clock configuration already frozen")
	}
	c.frozen = true
	r := c.raw

	// Run from IRC8M while the PLL and prescalers change.
	r.CTL.SetBits(dev.RCU_CTL_IRC8MEN)
	for !r.CTL.HasBits(dev.RCU_CTL_IRC8MSTB) {
	}
	c.selectSource(dev.RCU_SCS_IRC8M)
	if r.CTL.HasBits(dev.RCU_CTL_PLLEN) {
		r.CTL.ClearBits(dev.RCU_CTL_PLLEN)
		for r.CTL.HasBits(dev.RCU_CTL_PLLSTB) {
		}
	}

	if p.Source == SourceHXTAL || p.PLLFromHXTAL {
		r.CTL.SetBits(dev.RCU_CTL_HXTALEN)
		for !r.CTL.HasBits(dev.RCU_CTL_HXTALSTB) {
		}
	}

	// Prescalers go in before the switch so no bus ever runs above its
	// limit, even for one cycle.
	r.CFG0.ReplaceBits(ahbCode(p.AHBShift), dev.RCU_CFG0_AHBPSC_Msk, dev.RCU_CFG0_AHBPSC_Pos)
	r.CFG0.ReplaceBits(apbCode(p.APB1Shift), dev.RCU_CFG0_APB1PSC_Msk, dev.RCU_CFG0_APB1PSC_Pos)
	r.CFG0.ReplaceBits(apbCode(p.APB2Shift), dev.RCU_CFG0_APB2PSC_Msk, dev.RCU_CFG0_APB2PSC_Pos)
	adc := adcCode(p.ADCDiv)
	r.CFG0.ReplaceBits(adc&0b11, dev.RCU_CFG0_ADCPSC_Msk, dev.RCU_CFG0_ADCPSC_Pos)
	if adc&0b100 != 0 {
		r.CFG0.SetBits(dev.RCU_CFG0_ADCPSC_2)
	} else {
		r.CFG0.ClearBits(dev.RCU_CFG0_ADCPSC_2)
	}

	if p.Source == SourcePLL {
		if p.PLLFromHXTAL {
			r.CFG1.ClearBits(dev.RCU_CFG1_PREDV0SEL)
			r.CFG1.ReplaceBits(uint32(p.PREDV0-1), dev.RCU_CFG1_PREDV0_Msk, dev.RCU_CFG1_PREDV0_Pos)
			r.CFG0.SetBits(dev.RCU_CFG0_PLLSEL)
		} else {
			r.CFG0.ClearBits(dev.RCU_CFG0_PLLSEL)
		}
		r.CFG0.ReplaceBits(uint32(p.PLLMF)&0xF, dev.RCU_CFG0_PLLMF_Msk, dev.RCU_CFG0_PLLMF_Pos)
		if p.PLLMF&0x10 != 0 {
			r.CFG0.SetBits(dev.RCU_CFG0_PLLMF_4)
		} else {
			r.CFG0.ClearBits(dev.RCU_CFG0_PLLMF_4)
		}
		if p.USBValid {
			r.CFG0.ReplaceBits(uint32(p.USBPSC), dev.RCU_CFG0_USBFSPSC_Msk, dev.RCU_CFG0_USBFSPSC_Pos)
		}
		r.CTL.SetBits(dev.RCU_CTL_PLLEN)
		for !r.CTL.HasBits(dev.RCU_CTL_PLLSTB) {
		}
	}

	switch p.Source {
	case SourceHXTAL:
		c.selectSource(dev.RCU_SCS_HXTAL)
	case SourcePLL:
		c.selectSource(dev.RCU_SCS_PLL)
	}
}

func (c *CFG) selectSource(scs uint32) {
	r := c.raw
	r.CFG0.ReplaceBits(scs, dev.RCU_CFG0_SCS_Msk, dev.RCU_CFG0_SCS_Pos)
	for r.CFG0.Field(dev.RCU_CFG0_SCSS_Msk, dev.RCU_CFG0_SCSS_Pos) != scs {
	}
}

// ahbCode maps a shift to AHBPSC. /32 has no code, so shifts 6..9 sit one
// code lower than 1..4 would suggest.
func ahbCode(shift uint8) uint32 {
	switch {
	case shift == 0:
		return 0
	case shift <= 4:
		return 0b1000 + uint32(shift-1)
	case shift >= 6 && shift <= 9:
		return 0b1000 + uint32(shift-2)
	}
	panic("rcu: invalid AHB shift")
}

func apbCode(shift uint8) uint32 {
	switch {
	case shift == 0:
		return 0
	case shift <= 4:
		return 0b100 + uint32(shift-1)
	}
	panic("rcu: invalid APB shift")
}

// adcCode returns the 3-bit ADCPSC value; bit 2 lives in ADCPSC_2.
func adcCode(div uint8) uint32 {
	switch div {
	case 2:
		return 0b000
	case 4:
		return 0b001
	case 6:
		return 0b010
	case 8:
		return 0b011
	case 12:
		return 0b101
	case 16:
		return 0b111
	}
	panic("rcu: invalid ADC divider")
}
