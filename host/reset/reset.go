// Package reset drives the board's NRST and BOOT0 lines from host GPIOs.
package reset

import (
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Line is an output the sequence drives; gpio.PinIO satisfies it.
type Line interface {
	Out(l gpio.Level) error
}

// Lines are the two control signals of a GD32VF103.
type Lines struct {
	NRST  Line // active low reset
	BOOT0 Line // high enters the ROM bootloader; nil leaves it alone
}

// Open initializes the periph.io host drivers and looks up the named pins
// (BCM names such as "GPIO17" on a Raspberry Pi). An empty boot0 name
// skips BOOT0.
func Open(nrst, boot0 string) (*Lines, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: host init failed: %w", err)
	}

	l := &Lines{}
	p := gpioreg.ByName(nrst)
	if p == nil {
		return nil, fmt.Errorf("gpio: failed to open %s (NRST)", nrst)
	}
	l.NRST = p
	if boot0 != "" {
		p := gpioreg.ByName(boot0)
		if p == nil {
			return nil, fmt.Errorf("gpio: failed to open %s (BOOT0)", boot0)
		}
		l.BOOT0 = p
	}
	return l, nil
}

// Pulse resets the board: NRST low, BOOT0 set, hold, NRST high, then wait
// for the core to come up. The GD32VF103 samples BOOT0 on the rising edge
// of NRST.
func (l *Lines) Pulse(bootloader bool, hold time.Duration) error {
	if bootloader && l.BOOT0 == nil {
		return fmt.Errorf("gpio: bootloader entry needs a BOOT0 line")
	}
	if err := l.NRST.Out(gpio.Low); err != nil {
		return fmt.Errorf("gpio: failed to assert NRST: %w", err)
	}
	if l.BOOT0 != nil {
		level := gpio.Low
		if bootloader {
			level = gpio.High
		}
		if err := l.BOOT0.Out(level); err != nil {
			return fmt.Errorf("gpio: failed to set BOOT0: %w", err)
		}
	}

	time.Sleep(hold)

	if err := l.NRST.Out(gpio.High); err != nil {
		return fmt.Errorf("gpio: failed to release NRST: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	slog.Debug("gpio: board reset complete",
		"hold", hold,
		"bootloader", bootloader)
	return nil
}
