// Package spi drives the SPI peripherals as 8-bit, MSB-first masters with
// software slave select.
package spi

import (
	"errors"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
	"tinygo.org/x/drivers"
)

var (
	// ErrWouldBlock means the hardware is not ready yet; retry later.
	ErrWouldBlock = errors.New("spi: would block")

	ErrModeFault = errors.New("spi: mode fault")
	ErrOverrun   = errors.New("spi: receive overrun")
	ErrCRC       = errors.New("spi: CRC mismatch")
	ErrFormat    = errors.New("spi: frame format error")

	// ErrSliceSize is returned by Tx when both slices are given with
	// different lengths.
	ErrSliceSize = errors.New("spi: tx and rx lengths differ")
)

var _ drivers.SPI = (*SPI)(nil)

// Polarity is the clock level while idle.
type Polarity uint8

const (
	IdleLow Polarity = iota
	IdleHigh
)

// Phase selects the clock edge that samples data.
type Phase uint8

const (
	CaptureOnFirstTransition Phase = iota
	CaptureOnSecondTransition
)

// Mode is the clock polarity and phase pair.
type Mode struct {
	Polarity Polarity
	Phase    Phase
}

var (
	Mode0 = Mode{IdleLow, CaptureOnFirstTransition}
	Mode1 = Mode{IdleLow, CaptureOnSecondTransition}
	Mode2 = Mode{IdleHigh, CaptureOnFirstTransition}
	Mode3 = Mode{IdleHigh, CaptureOnSecondTransition}
)

func (m Mode) bits() uint32 {
	var v uint32
	if m.Polarity == IdleHigh {
		v |= dev.SPI_CTL0_CKPL
	}
	if m.Phase == CaptureOnSecondTransition {
		v |= dev.SPI_CTL0_CKPH
	}
	return v
}

// Prescaler returns the PSC code and resulting bus frequency for the
// fastest clock not above freq. The divider is a power of two from 2 to
// 256; a request below clk/256 panics.
func Prescaler(clk, freq rcu.Hertz) (uint32, rcu.Hertz) {
	if freq == 0 {
		panic("spi: zero frequency")
	}
	ratio := (clk + freq - 1) / freq
	for code := uint32(0); code < 8; code++ {
		div := rcu.Hertz(2) << code
		if div >= ratio {
			return code, clk / div
		}
	}
	panic("spi: " + debug.MHz(uint32(freq)) + " unreachable from " + debug.MHz(uint32(clk)))
}

// SPI is an open SPI master.
type SPI struct {
	name string
	raw  *dev.SPI_Type
	ctl0 uint32
	freq rcu.Hertz
}

func open(name string, raw *dev.SPI_Type, mode Mode, clk, freq rcu.Hertz) *SPI {
	code, actual := Prescaler(clk, freq)
	ctl0 := dev.SPI_CTL0_MSTMOD | dev.SPI_CTL0_SWNSSEN | dev.SPI_CTL0_SWNSS |
		code<<dev.SPI_CTL0_PSC_Pos | mode.bits()

	raw.CTL1.Set(0)
	raw.CTL0.Set(ctl0)
	ctl0 |= dev.SPI_CTL0_SPIEN
	raw.CTL0.Set(ctl0)

	debug.Println("[SPI] " + name + " at " + debug.MHz(uint32(actual)))
	return &SPI{name: name, raw: raw, ctl0: ctl0, freq: actual}
}

func (s *SPI) live() {
	if s.raw == nil {
		panic("spi: bus used after Release")
	}
}

// Frequency returns the bus clock actually configured.
func (s *SPI) Frequency() rcu.Hertz {
	return s.freq
}

// check reports a pending error and performs the clearing sequence for it.
func (s *SPI) check(stat uint32) error {
	switch {
	case stat&dev.SPI_STAT_RXORERR != 0:
		s.raw.DATA.Get()
		s.raw.STAT.Get()
		return ErrOverrun
	case stat&dev.SPI_STAT_CONFERR != 0:
		// STAT was read by the caller; the CTL0 write completes the clear
		// and re-arms master mode.
		s.raw.CTL0.Set(s.ctl0)
		return ErrModeFault
	case stat&dev.SPI_STAT_CRCERR != 0:
		s.raw.STAT.Set(0xFFFF &^ dev.SPI_STAT_CRCERR)
		return ErrCRC
	case stat&dev.SPI_STAT_FERR != 0:
		s.raw.STAT.Set(0xFFFF &^ dev.SPI_STAT_FERR)
		return ErrFormat
	}
	return nil
}

// Send queues b, or returns ErrWouldBlock while the transmit buffer is full.
func (s *SPI) Send(b byte) error {
	s.live()
	stat := s.raw.STAT.Get()
	if err := s.check(stat); err != nil {
		return err
	}
	if stat&dev.SPI_STAT_TBE == 0 {
		return ErrWouldBlock
	}
	s.raw.DATA.Set(uint32(b))
	return nil
}

// Read returns the last received byte, or ErrWouldBlock when nothing has
// arrived.
func (s *SPI) Read() (byte, error) {
	s.live()
	stat := s.raw.STAT.Get()
	if err := s.check(stat); err != nil {
		return 0, err
	}
	if stat&dev.SPI_STAT_RBNE == 0 {
		return 0, ErrWouldBlock
	}
	return byte(s.raw.DATA.Get()), nil
}

// Transfer sends w and returns the byte clocked in at the same time.
func (s *SPI) Transfer(w byte) (byte, error) {
	for {
		err := s.Send(w)
		if err == nil {
			break
		}
		if err != ErrWouldBlock {
			return 0, err
		}
	}
	for {
		r, err := s.Read()
		if err != ErrWouldBlock {
			return r, err
		}
	}
}

// Tx runs a full-duplex transfer. A nil w sends zeros for len(r) bytes and
// a nil r discards what comes back.
func (s *SPI) Tx(w, r []byte) error {
	n := len(w)
	switch {
	case w == nil:
		n = len(r)
	case r != nil && len(r) != len(w):
		return ErrSliceSize
	}
	for i := 0; i < n; i++ {
		var out byte
		if w != nil {
			out = w[i]
		}
		in, err := s.Transfer(out)
		if err != nil {
			return err
		}
		if r != nil {
			r[i] = in
		}
	}
	return nil
}

// release disables the bus, gates its clock through disable and returns
// the register block.
func (s *SPI) release(name string, disable func()) *dev.SPI_Type {
	s.live()
	if s.name != name {
		panic("spi: " + s.name + " released as " + name)
	}
	raw := s.raw
	raw.CTL0.Set(0)
	disable()
	s.raw = nil
	return raw
}
