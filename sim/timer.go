//go:build !tinygo

package sim

import (
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

func (c *Chip) installTimers() {
	timers := []struct {
		name string
		raw  *dev.TIMER_Type
		en   *volatile.Register32
		bit  uint32
		apb2 bool
	}{
		{"TIMER0", c.P.TIMER0, &c.P.RCU.APB2EN, dev.RCU_APB2_TIMER0, true},
		{"TIMER1", c.P.TIMER1, &c.P.RCU.APB1EN, dev.RCU_APB1_TIMER1, false},
		{"TIMER2", c.P.TIMER2, &c.P.RCU.APB1EN, dev.RCU_APB1_TIMER2, false},
		{"TIMER3", c.P.TIMER3, &c.P.RCU.APB1EN, dev.RCU_APB1_TIMER3, false},
		{"TIMER4", c.P.TIMER4, &c.P.RCU.APB1EN, dev.RCU_APB1_TIMER4, false},
		{"TIMER5", c.P.TIMER5, &c.P.RCU.APB1EN, dev.RCU_APB1_TIMER5, false},
		{"TIMER6", c.P.TIMER6, &c.P.RCU.APB1EN, dev.RCU_APB1_TIMER6, false},
	}
	for _, td := range timers {
		raw := td.raw
		b := &block{name: td.name, en: td.en, bit: td.bit, reset: func() {
			for _, r := range []*volatile.Register32{&raw.CTL0, &raw.DMAINTEN, &raw.INTF, &raw.CNT, &raw.PSC, &raw.CAR} {
				poke(r, 0)
			}
		}}
		if td.apb2 {
			c.apb2 = append(c.apb2, b)
		} else {
			c.apb1 = append(c.apb1, b)
		}
		c.gate(b, &raw.CTL0, "CTL0", &volatile.Hook{})
		c.gate(b, &raw.DMAINTEN, "DMAINTEN", &volatile.Hook{})
		c.gate(b, &raw.CNT, "CNT", &volatile.Hook{})
		c.gate(b, &raw.PSC, "PSC", &volatile.Hook{Write: func(old, value uint32) uint32 { return value & 0xFFFF }})
		c.gate(b, &raw.CAR, "CAR", &volatile.Hook{Write: func(old, value uint32) uint32 { return value & 0xFFFF }})
		// flags clear on a zero write
		c.gate(b, &raw.INTF, "INTF", &volatile.Hook{Write: func(old, value uint32) uint32 {
			return old & value
		}})
		c.gate(b, &raw.SWEVG, "SWEVG", &volatile.Hook{Write: func(old, value uint32) uint32 {
			if value&dev.TIMER_SWEVG_UPG != 0 {
				poke(&raw.CNT, 0)
				poke(&raw.INTF, peek(&raw.INTF)|dev.TIMER_INTF_UPIF)
			}
			return 0
		}})
	}
}

// Expire simulates the counter of raw reaching zero.
func (c *Chip) Expire(raw *dev.TIMER_Type) {
	if peek(&raw.CTL0)&dev.TIMER_CTL0_CEN != 0 {
		poke(&raw.INTF, peek(&raw.INTF)|dev.TIMER_INTF_UPIF)
	}
}
