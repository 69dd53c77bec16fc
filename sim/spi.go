//go:build !tinygo

package sim

import (
	dev "gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

const spiErrors = dev.SPI_STAT_CONFERR | dev.SPI_STAT_RXORERR | dev.SPI_STAT_CRCERR | dev.SPI_STAT_FERR

// SPI models one SPI master. Every frame written to DATA is recorded in Sent
// and answered by Reply; without a Reply the bus loops MOSI back to MISO.
type SPI struct {
	Sent  []uint16
	Reply func(out uint16) uint16

	raw      *dev.SPI_Type
	blk      *block
	rx       uint16
	dataRead bool
	statRead bool
	stalled  bool
}

func (c *Chip) installSPI() {
	spis := []struct {
		name string
		raw  *dev.SPI_Type
		en   *volatile.Register32
		bit  uint32
		apb2 bool
	}{
		{"SPI0", c.P.SPI0, &c.P.RCU.APB2EN, dev.RCU_APB2_SPI0, true},
		{"SPI1", c.P.SPI1, &c.P.RCU.APB1EN, dev.RCU_APB1_SPI1, false},
		{"SPI2", c.P.SPI2, &c.P.RCU.APB1EN, dev.RCU_APB1_SPI2, false},
	}
	for _, sd := range spis {
		s := &SPI{raw: sd.raw}
		s.blk = &block{name: sd.name, en: sd.en, bit: sd.bit, reset: s.reset}
		s.reset()
		if sd.apb2 {
			c.apb2 = append(c.apb2, s.blk)
		} else {
			c.apb1 = append(c.apb1, s.blk)
		}
		c.spis[sd.raw] = s
		c.installSPIRegs(s)
	}
}

func (s *SPI) reset() {
	poke(&s.raw.CTL0, 0)
	poke(&s.raw.CTL1, 0)
	poke(&s.raw.STAT, dev.SPI_STAT_TBE)
	poke(&s.raw.DATA, 0)
	poke(&s.raw.CRCPOLY, 7)
	s.Sent, s.rx, s.dataRead, s.statRead, s.stalled = nil, 0, false, false, false
}

func (c *Chip) installSPIRegs(s *SPI) {
	name := s.blk.name
	c.gate(s.blk, &s.raw.STAT, "STAT", &volatile.Hook{
		Read: func(stored uint32) uint32 {
			// overrun clears with a DATA read followed by a STAT read
			if s.dataRead {
				poke(&s.raw.STAT, stored&^dev.SPI_STAT_RXORERR)
				s.dataRead = false
			}
			s.statRead = true
			if s.stalled {
				stored &^= dev.SPI_STAT_TBE
			}
			return stored
		},
		Write: func(old, value uint32) uint32 {
			return old &^ (^value & (dev.SPI_STAT_CRCERR | dev.SPI_STAT_FERR))
		},
	})
	// configuration fault clears with a STAT read followed by a CTL0 write
	c.gate(s.blk, &s.raw.CTL0, "CTL0", &volatile.Hook{Write: func(old, value uint32) uint32 {
		if s.statRead {
			poke(&s.raw.STAT, peek(&s.raw.STAT)&^dev.SPI_STAT_CONFERR)
		}
		return value & 0xFFFF
	}})
	c.gate(s.blk, &s.raw.CTL1, "CTL1", &volatile.Hook{})
	c.gate(s.blk, &s.raw.DATA, "DATA", &volatile.Hook{
		Read: func(uint32) uint32 {
			poke(&s.raw.STAT, peek(&s.raw.STAT)&^dev.SPI_STAT_RBNE)
			s.dataRead, s.statRead = true, false
			return uint32(s.rx)
		},
		Write: func(old, value uint32) uint32 {
			s.statRead = false
			ctl := peek(&s.raw.CTL0)
			if ctl&dev.SPI_CTL0_SPIEN == 0 {
				c.violate("%s.DATA written with the peripheral disabled", name)
				return old
			}
			frame := uint16(value)
			if ctl&dev.SPI_CTL0_FF16 == 0 {
				frame &= 0xFF
			}
			s.Sent = append(s.Sent, frame)
			reply := frame
			if s.Reply != nil {
				reply = s.Reply(frame)
			}
			stat := peek(&s.raw.STAT)
			if stat&dev.SPI_STAT_RBNE != 0 {
				stat |= dev.SPI_STAT_RXORERR
			} else {
				s.rx = reply
			}
			poke(&s.raw.STAT, stat|dev.SPI_STAT_RBNE|dev.SPI_STAT_TBE)
			return value
		},
	})
}

// SPIBus returns the model of raw.
func (c *Chip) SPIBus(raw *dev.SPI_Type) *SPI {
	s, ok := c.spis[raw]
	if !ok {
		panic("sim: unknown SPI")
	}
	return s
}

// Fault raises SPI error flags (SPI_STAT_CONFERR and friends).
func (s *SPI) Fault(flags uint32) {
	poke(&s.raw.STAT, peek(&s.raw.STAT)|flags&spiErrors)
}

// Stall makes the transmit buffer report full until called with false.
func (s *SPI) Stall(full bool) {
	s.stalled = full
}
