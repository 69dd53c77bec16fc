//go:build !tinygo

package sim

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

const gpioCtlReset = 0x44444444

type port struct {
	raw *dev.GPIO_Type
	blk *block

	// key sequence progress: 0 idle, 1..3 writes accepted
	seq     int
	seqBits uint32
	frozen  bool
	locked  uint32

	pads   uint16
	driven uint16
}

func (c *Chip) installGPIO() {
	ports := []struct {
		name string
		raw  *dev.GPIO_Type
		bit  uint32
	}{
		{"GPIOA", c.P.GPIOA, dev.RCU_APB2_PA},
		{"GPIOB", c.P.GPIOB, dev.RCU_APB2_PB},
		{"GPIOC", c.P.GPIOC, dev.RCU_APB2_PC},
		{"GPIOD", c.P.GPIOD, dev.RCU_APB2_PD},
		{"GPIOE", c.P.GPIOE, dev.RCU_APB2_PE},
	}
	for _, pd := range ports {
		p := &port{raw: pd.raw}
		p.blk = &block{name: pd.name, en: &c.P.RCU.APB2EN, bit: pd.bit, reset: p.reset}
		p.reset()
		c.apb2 = append(c.apb2, p.blk)
		c.ports[pd.raw] = p
		c.installPort(p)
	}
}

func (p *port) reset() {
	poke(&p.raw.CTL0, gpioCtlReset)
	poke(&p.raw.CTL1, gpioCtlReset)
	poke(&p.raw.OCTL, 0)
	poke(&p.raw.BOP, 0)
	poke(&p.raw.BC, 0)
	poke(&p.raw.LOCK, 0)
	p.seq, p.seqBits, p.frozen, p.locked = 0, 0, false, 0
}

func (c *Chip) installPort(p *port) {
	name := p.blk.name
	ctl := func(first int) *volatile.Hook {
		return &volatile.Hook{Write: func(old, value uint32) uint32 {
			if !p.frozen {
				return value
			}
			// locked nibbles are read-only
			for i := 0; i < 8; i++ {
				if p.locked&(1<<(first+i)) != 0 {
					m := uint32(0xF) << (4 * i)
					value = value&^m | old&m
				}
			}
			return value
		}}
	}
	c.gate(p.blk, &p.raw.CTL0, "CTL0", ctl(0))
	c.gate(p.blk, &p.raw.CTL1, "CTL1", ctl(8))
	c.gate(p.blk, &p.raw.OCTL, "OCTL", &volatile.Hook{Write: func(old, value uint32) uint32 {
		return value & 0xFFFF
	}})
	c.gate(p.blk, &p.raw.BOP, "BOP", &volatile.Hook{Write: func(old, value uint32) uint32 {
		octl := peek(&p.raw.OCTL)
		poke(&p.raw.OCTL, octl&^(value>>16)|value&0xFFFF)
		return 0
	}})
	c.gate(p.blk, &p.raw.BC, "BC", &volatile.Hook{Write: func(old, value uint32) uint32 {
		poke(&p.raw.OCTL, peek(&p.raw.OCTL)&^(value&0xFFFF))
		return 0
	}})
	c.hook(&p.raw.ISTAT, &volatile.Hook{
		Read:  func(uint32) uint32 { return uint32(p.levels()) },
		Write: func(old, value uint32) uint32 { return old },
	})
	c.gate(p.blk, &p.raw.LOCK, "LOCK", &volatile.Hook{
		Write: func(old, value uint32) uint32 {
			if p.frozen {
				return old
			}
			key := value&dev.GPIO_LOCK_LKK != 0
			bits := value & 0xFFFF
			switch {
			case p.seq == 0 && key:
				p.seq, p.seqBits = 1, bits
			case p.seq == 1 && !key && bits == p.seqBits:
				p.seq = 2
			case p.seq == 2 && key && bits == p.seqBits:
				p.seq = 3
			case key:
				p.seq, p.seqBits = 1, bits
			default:
				p.seq = 0
			}
			if p.seq > 0 && !critical.Active() {
				c.violate("%s lock key sequence written with interrupts enabled", name)
			}
			return value & (dev.GPIO_LOCK_LKK | 0xFFFF)
		},
		Read: func(stored uint32) uint32 {
			switch {
			case p.seq == 3:
				// first read after a complete sequence latches the lock
				p.seq = 0
				p.frozen = true
				p.locked = p.seqBits
				return stored &^ dev.GPIO_LOCK_LKK
			case p.frozen:
				return p.locked | dev.GPIO_LOCK_LKK
			}
			return stored
		},
	})
}

// levels computes the input status register from the pin modes, the output
// latch and whatever the test drives onto the pads.
func (p *port) levels() uint16 {
	octl := uint16(peek(&p.raw.OCTL))
	var in uint16
	for i := 0; i < 16; i++ {
		ctl := &p.raw.CTL0
		if i >= 8 {
			ctl = &p.raw.CTL1
		}
		nibble := peek(ctl) >> (4 * (i % 8)) & 0xF
		md, cfg := nibble&0b11, nibble>>2
		bit := uint16(1) << i
		ext := p.driven&bit != 0
		var high bool
		switch {
		case md == 0 && cfg == 0: // analog
		case md == 0 && cfg == 1:
			high = ext && p.pads&bit != 0
		case md == 0:
			if ext {
				high = p.pads&bit != 0
			} else {
				high = octl&bit != 0
			}
		case cfg&1 == 0: // push-pull drives both levels
			high = octl&bit != 0
		default: // open-drain: released pads float high unless pulled low
			high = octl&bit != 0 && (!ext || p.pads&bit != 0)
		}
		if high {
			in |= bit
		}
	}
	return in
}

func (c *Chip) port(raw *dev.GPIO_Type) *port {
	p, ok := c.ports[raw]
	if !ok {
		panic("sim: unknown GPIO port")
	}
	return p
}

// Drive forces an external level onto pin of the given port.
func (c *Chip) Drive(raw *dev.GPIO_Type, pin int, high bool) {
	p := c.port(raw)
	bit := uint16(1) << pin
	p.driven |= bit
	if high {
		p.pads |= bit
	} else {
		p.pads &^= bit
	}
}

// Float stops driving pin externally.
func (c *Chip) Float(raw *dev.GPIO_Type, pin int) {
	p := c.port(raw)
	p.driven &^= uint16(1) << pin
}

// LockState reports the latched lock bits of a port and whether the key
// sequence has frozen it.
func (c *Chip) LockState(raw *dev.GPIO_Type) (pins uint16, frozen bool) {
	p := c.port(raw)
	return uint16(p.locked), p.frozen
}
