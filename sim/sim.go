//go:build !tinygo

// Package sim is a behavioural model of the GD32VF103 register file used by
// host tests. It wraps a freshly allocated register file with volatile hooks
// that reproduce the hardware side effects the HAL relies on: oscillator
// stable flags, peripheral reset pulses, clock gating, the GPIO lock key
// latch, the CRC unit, USART and SPI status flags, timer update events and
// the watchdog key protocol.
//
// Sequences the HAL must run with interrupts masked are checked against
// critical.Active. Every contract breach is recorded and reported by
// Violations instead of panicking, so a test can assert on it.
package sim

import (
	"fmt"
	"sync/atomic"

	"gd32hal/device/gd32vf103"
	"gd32hal/volatile"
)

// Chip is one simulated GD32VF103.
type Chip struct {
	P *gd32vf103.Peripherals

	// MtimeStep is how far the core timer advances on every read of its
	// low word.
	MtimeStep uint64

	hooked     []*volatile.Register32
	violations []string

	apb2  []*block
	apb1  []*block
	ports map[*gd32vf103.GPIO_Type]*port
	uarts map[*gd32vf103.USART_Type]*USART
	spis  map[*gd32vf103.SPI_Type]*SPI
	wdog  fwdgt
	mtime uint64
}

// block is a clock-gated peripheral behind one bus enable bit.
type block struct {
	name  string
	en    *volatile.Register32
	bit   uint32
	reset func()
}

func (b *block) clocked() bool {
	return peek(b.en)&b.bit != 0
}

// New returns a chip in its power-on reset state with every model installed.
func New() *Chip {
	c := &Chip{
		P:         gd32vf103.NewPeripherals(),
		MtimeStep: 1,
		ports:     make(map[*gd32vf103.GPIO_Type]*port),
		uarts:     make(map[*gd32vf103.USART_Type]*USART),
		spis:      make(map[*gd32vf103.SPI_Type]*SPI),
	}
	c.installGPIO()
	c.installAFIO()
	c.installCRC()
	c.installUSART()
	c.installSPI()
	c.installTimers()
	c.installBackup()
	c.installBackupReset()
	c.installWatchdog()
	c.installCoreTimer()
	c.installSignature()
	// RCU last: its reset hooks dispatch to the blocks registered above.
	c.installRCU()
	return c
}

// Close removes every hook so the register file can be garbage collected.
func (c *Chip) Close() {
	for _, r := range c.hooked {
		volatile.Intercept(r, nil)
	}
	c.hooked = nil
}

// Violations returns the contract breaches observed so far.
func (c *Chip) Violations() []string {
	return append([]string(nil), c.violations...)
}

func (c *Chip) violate(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

func (c *Chip) hook(r *volatile.Register32, h *volatile.Hook) {
	volatile.Intercept(r, h)
	c.hooked = append(c.hooked, r)
}

// gate installs h on r with writes ignored while b's clock is off.
func (c *Chip) gate(b *block, r *volatile.Register32, reg string, h *volatile.Hook) {
	write := h.Write
	gated := &volatile.Hook{Read: h.Read}
	gated.Write = func(old, value uint32) uint32 {
		if !b.clocked() {
			c.violate("%s.%s written with its clock disabled", b.name, reg)
			return old
		}
		if write == nil {
			return value
		}
		return write(old, value)
	}
	c.hook(r, gated)
}

// peek and poke bypass the hooks; models use them for side effects.
func peek(r *volatile.Register32) uint32 {
	return atomic.LoadUint32(&r.Reg)
}

func poke(r *volatile.Register32, v uint32) {
	atomic.StoreUint32(&r.Reg, v)
}
