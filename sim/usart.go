//go:build !tinygo

package sim

import (
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

const (
	usartStatReset = dev.USART_STAT_TC | dev.USART_STAT_TBE
	usartErrors    = dev.USART_STAT_PERR | dev.USART_STAT_FERR | dev.USART_STAT_NERR | dev.USART_STAT_ORERR
)

// USART models one serial port: transmitted bytes are collected in Tx and
// received bytes are queued by Receive.
type USART struct {
	Tx []byte

	raw      *dev.USART_Type
	blk      *block
	rx       []uint16
	cur      uint16
	statRead bool
	stalled  bool
}

func (c *Chip) installUSART() {
	uarts := []struct {
		name string
		raw  *dev.USART_Type
		en   *volatile.Register32
		bit  uint32
		apb2 bool
	}{
		{"USART0", c.P.USART0, &c.P.RCU.APB2EN, dev.RCU_APB2_USART0, true},
		{"USART1", c.P.USART1, &c.P.RCU.APB1EN, dev.RCU_APB1_USART1, false},
		{"USART2", c.P.USART2, &c.P.RCU.APB1EN, dev.RCU_APB1_USART2, false},
	}
	for _, ud := range uarts {
		u := &USART{raw: ud.raw}
		u.blk = &block{name: ud.name, en: ud.en, bit: ud.bit, reset: u.reset}
		u.reset()
		if ud.apb2 {
			c.apb2 = append(c.apb2, u.blk)
		} else {
			c.apb1 = append(c.apb1, u.blk)
		}
		c.uarts[ud.raw] = u
		c.installUSARTRegs(u)
	}
}

func (u *USART) reset() {
	poke(&u.raw.STAT, usartStatReset)
	for _, r := range []*volatile.Register32{&u.raw.DATA, &u.raw.BAUD, &u.raw.CTL0, &u.raw.CTL1, &u.raw.CTL2, &u.raw.GP} {
		poke(r, 0)
	}
	u.Tx, u.rx, u.cur, u.statRead, u.stalled = nil, nil, 0, false, false
}

func (u *USART) enabled(dir uint32) bool {
	ctl := peek(&u.raw.CTL0)
	return ctl&dev.USART_CTL0_UEN != 0 && ctl&dir != 0
}

func (c *Chip) installUSARTRegs(u *USART) {
	name := u.blk.name
	c.gate(u.blk, &u.raw.STAT, "STAT", &volatile.Hook{
		Read: func(stored uint32) uint32 {
			u.statRead = true
			if u.stalled {
				stored &^= dev.USART_STAT_TBE | dev.USART_STAT_TC
			}
			return stored
		},
		// TC and RBNE clear on a zero write, everything else is read only
		Write: func(old, value uint32) uint32 {
			return old &^ (^value & (dev.USART_STAT_TC | dev.USART_STAT_RBNE))
		},
	})
	c.gate(u.blk, &u.raw.DATA, "DATA", &volatile.Hook{
		Read: func(uint32) uint32 {
			stat := peek(&u.raw.STAT)
			if u.statRead {
				stat &^= usartErrors
				u.statRead = false
			}
			v := u.cur
			stat &^= dev.USART_STAT_RBNE
			if len(u.rx) > 0 {
				u.cur, u.rx = u.rx[0], u.rx[1:]
				stat |= dev.USART_STAT_RBNE
			}
			poke(&u.raw.STAT, stat)
			return uint32(v)
		},
		Write: func(old, value uint32) uint32 {
			u.statRead = false
			if !u.enabled(dev.USART_CTL0_TEN) {
				c.violate("%s.DATA written with the transmitter disabled", name)
				return old
			}
			if u.stalled {
				c.violate("%s.DATA written while the transmit buffer is full", name)
				return old
			}
			u.Tx = append(u.Tx, byte(value))
			poke(&u.raw.STAT, peek(&u.raw.STAT)|dev.USART_STAT_TBE|dev.USART_STAT_TC)
			return value & 0x1FF
		},
	})
	for _, r := range []struct {
		reg  *volatile.Register32
		name string
	}{{&u.raw.BAUD, "BAUD"}, {&u.raw.CTL0, "CTL0"}, {&u.raw.CTL1, "CTL1"}, {&u.raw.CTL2, "CTL2"}} {
		c.gate(u.blk, r.reg, r.name, &volatile.Hook{})
	}
}

// UART returns the model of raw.
func (c *Chip) UART(raw *dev.USART_Type) *USART {
	u, ok := c.uarts[raw]
	if !ok {
		panic("sim: unknown USART")
	}
	return u
}

// Receive queues bytes as if they arrived on the RX line.
func (u *USART) Receive(data ...byte) {
	if !u.enabled(dev.USART_CTL0_REN) {
		return
	}
	for _, b := range data {
		u.rx = append(u.rx, uint16(b))
	}
	stat := peek(&u.raw.STAT)
	if stat&dev.USART_STAT_RBNE == 0 && len(u.rx) > 0 {
		u.cur, u.rx = u.rx[0], u.rx[1:]
		poke(&u.raw.STAT, stat|dev.USART_STAT_RBNE)
	}
}

// Fault raises receive error flags (USART_STAT_PERR and friends) together
// with a received byte, as the hardware does.
func (u *USART) Fault(flags uint32, data byte) {
	u.cur = uint16(data)
	poke(&u.raw.STAT, peek(&u.raw.STAT)|flags&usartErrors|dev.USART_STAT_RBNE)
}

// Stall makes the transmit buffer report full until called with false.
func (u *USART) Stall(full bool) {
	u.stalled = full
}
