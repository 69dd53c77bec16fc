// Package serial drives the USART peripherals as asynchronous serial ports.
// Single-byte operations never block; they return ErrWouldBlock and the
// caller retries.
package serial

import (
	"errors"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
)

var (
	// ErrWouldBlock means the hardware is not ready yet; retry later.
	ErrWouldBlock = errors.New("serial: would block")

	ErrOverrun = errors.New("serial: receive overrun")
	ErrNoise   = errors.New("serial: noise detected")
	ErrFraming = errors.New("serial: framing error")
	ErrParity  = errors.New("serial: parity error")
)

// Parity selects the parity bit. With parity enabled the frame carries
// nine bits so the data stays eight bits wide.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// StopBits selects the stop bit length.
type StopBits uint8

const (
	StopBits1 StopBits = iota
	StopBits0_5
	StopBits2
	StopBits1_5
)

// Config holds the frame format.
type Config struct {
	Baud     uint32
	Parity   Parity
	StopBits StopBits
}

// DefaultConfig returns 115200 8N1.
func DefaultConfig() Config {
	return Config{
		Baud:     115200,
		Parity:   ParityNone,
		StopBits: StopBits1,
	}
}

// Divisor returns round(clk / baud), the value of USART_BAUD. It panics
// when the result does not fit the 16-bit register or is below 16, the
// smallest divisor the oversampling receiver accepts.
func Divisor(clk rcu.Hertz, baud uint32) uint32 {
	if baud == 0 {
		panic("serial: zero baud rate")
	}
	div := (uint32(clk) + baud/2) / baud
	if div < 0x10 || div > 0xFFFF {
		panic("serial: baud " + debug.Utoa(baud) + " unreachable from " + debug.MHz(uint32(clk)))
	}
	return div
}

// frameBits returns the CTL0 word length and parity bits and the CTL1 stop
// bit field for cfg.
func frameBits(cfg Config) (ctl0, stb uint32) {
	switch cfg.Parity {
	case ParityEven:
		ctl0 = dev.USART_CTL0_WL | dev.USART_CTL0_PCEN
	case ParityOdd:
		ctl0 = dev.USART_CTL0_WL | dev.USART_CTL0_PCEN | dev.USART_CTL0_PM
	}
	switch cfg.StopBits {
	case StopBits0_5:
		stb = 0b01
	case StopBits2:
		stb = 0b10
	case StopBits1_5:
		stb = 0b11
	}
	return ctl0, stb
}

// Serial is an open USART.
type Serial struct {
	name string
	raw  *dev.USART_Type
	tx   Tx
	rx   Rx
}

func open(name string, raw *dev.USART_Type, clk rcu.Hertz, cfg Config) *Serial {
	div := Divisor(clk, cfg.Baud)
	ctl0, stb := frameBits(cfg)

	raw.CTL0.Set(0)
	raw.CTL1.ReplaceBits(stb, dev.USART_CTL1_STB_Msk, dev.USART_CTL1_STB_Pos)
	raw.CTL2.Set(0)
	raw.BAUD.Set(div)
	raw.CTL0.Set(ctl0 | dev.USART_CTL0_TEN | dev.USART_CTL0_REN)
	raw.CTL0.SetBits(dev.USART_CTL0_UEN)

	debug.Println("[SERIAL] " + name + " " + debug.Utoa(cfg.Baud) + " baud, divisor " + debug.Utoa(div))
	s := &Serial{name: name, raw: raw}
	s.tx.s, s.rx.s = s, s
	return s
}

func (s *Serial) live() {
	if s.raw == nil {
		panic("serial: port used after Release")
	}
}

// ReadByte returns the next received byte, ErrWouldBlock, or a receive
// error. Implements io.ByteReader.
func (s *Serial) ReadByte() (byte, error) {
	return s.rx.ReadByte()
}

// WriteByte queues b, or returns ErrWouldBlock. Implements io.ByteWriter.
func (s *Serial) WriteByte(b byte) error {
	return s.tx.WriteByte(b)
}

// Flush returns ErrWouldBlock until the last frame has left the shifter.
func (s *Serial) Flush() error {
	return s.tx.Flush()
}

// Write sends p, spinning while the transmit buffer is full.
func (s *Serial) Write(p []byte) (int, error) {
	return s.tx.Write(p)
}

// Split hands out independent transmit and receive halves, for example to
// give the receiver to an interrupt handler. The Serial itself stays valid
// for release, and both halves panic once it has been released.
func (s *Serial) Split() (*Tx, *Rx) {
	s.live()
	return &s.tx, &s.rx
}

// release disables the USART, gates its clock through disable and returns
// the register block. name guards against closing one port with another
// port's clock gate.
func (s *Serial) release(name string, disable func()) *dev.USART_Type {
	s.live()
	if s.name != name {
		panic("serial: " + s.name + " released as " + name)
	}
	raw := s.raw
	raw.CTL0.Set(0)
	disable()
	s.raw = nil
	return raw
}

// Tx is the transmit half of a USART.
type Tx struct {
	s *Serial
}

// WriteByte queues b, or returns ErrWouldBlock while the data register is
// still full.
func (t *Tx) WriteByte(b byte) error {
	t.s.live()
	raw := t.s.raw
	if !raw.STAT.HasBits(dev.USART_STAT_TBE) {
		return ErrWouldBlock
	}
	raw.DATA.Set(uint32(b))
	return nil
}

// Flush returns ErrWouldBlock until transmission is complete.
func (t *Tx) Flush() error {
	t.s.live()
	if !t.s.raw.STAT.HasBits(dev.USART_STAT_TC) {
		return ErrWouldBlock
	}
	return nil
}

// Write sends p, spinning on ErrWouldBlock.
func (t *Tx) Write(p []byte) (int, error) {
	for i, b := range p {
		for {
			err := t.WriteByte(b)
			if err == nil {
				break
			}
			if err != ErrWouldBlock {
				return i, err
			}
		}
	}
	return len(p), nil
}

// Rx is the receive half of a USART.
type Rx struct {
	s *Serial
}

// ReadByte returns the next byte. Errors are reported in priority order
// overrun, noise, framing, parity; reporting one clears them all by reading
// STAT then DATA, so the next call starts clean.
func (r *Rx) ReadByte() (byte, error) {
	r.s.live()
	raw := r.s.raw
	stat := raw.STAT.Get()
	var err error
	switch {
	case stat&dev.USART_STAT_ORERR != 0:
		err = ErrOverrun
	case stat&dev.USART_STAT_NERR != 0:
		err = ErrNoise
	case stat&dev.USART_STAT_FERR != 0:
		err = ErrFraming
	case stat&dev.USART_STAT_PERR != 0:
		err = ErrParity
	case stat&dev.USART_STAT_RBNE != 0:
		return byte(raw.DATA.Get()), nil
	default:
		return 0, ErrWouldBlock
	}
	raw.DATA.Get()
	return 0, err
}
