// Package serial opens the host end of the board's console USART.
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gd32hal/config"
)

// ErrFrame is returned when the board's frame format has no host
// equivalent.
var ErrFrame = errors.New("serial: frame format not supported by the host port")

// Port is the host end of the console. Native ports use
// github.com/tarm/serial; tests substitute an in-memory pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush discards input the board sent before we started listening.
	Flush() error
}

// Parity mirrors the USART parity setting on the host side.
type Parity byte

const (
	ParityNone Parity = 'N'
	ParityEven Parity = 'E'
	ParityOdd  Parity = 'O'
)

// StopBits is the host stop bit count, in half bits.
type StopBits byte

const (
	Stop1     StopBits = 2
	Stop1Half StopBits = 3
	Stop2     StopBits = 4
)

// Config is what the host needs to talk to the console.
type Config struct {
	Device      string // e.g. "/dev/ttyUSB0" or "COM3"
	Baud        int
	Parity      Parity
	StopBits    StopBits
	ReadTimeout time.Duration // zero blocks
}

// DefaultConfig matches the firmware's 115200 8N1 console.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		Parity:      ParityNone,
		StopBits:    Stop1,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// FromBoard derives the host settings from a board description so both
// ends agree on the frame. Half a stop bit only exists on the USART side.
func FromBoard(b *config.BoardConfig) (*Config, error) {
	cfg := DefaultConfig(b.Host.Device)
	cfg.Baud = b.Host.Baud
	switch b.Serial.Parity {
	case "", "none":
	case "even":
		cfg.Parity = ParityEven
	case "odd":
		cfg.Parity = ParityOdd
	default:
		return nil, fmt.Errorf("%w: parity %q", ErrFrame, b.Serial.Parity)
	}
	switch b.Serial.StopBits {
	case "", "1":
	case "1.5":
		cfg.StopBits = Stop1Half
	case "2":
		cfg.StopBits = Stop2
	default:
		return nil, fmt.Errorf("%w: %s stop bits", ErrFrame, b.Serial.StopBits)
	}
	return cfg, nil
}
