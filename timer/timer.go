// Package timer runs the general purpose timers as count-down timers.
package timer

import (
	"errors"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
)

// ErrWouldBlock is returned by Wait while the period has not elapsed.
var ErrWouldBlock = errors.New("timer: would block")

// Event is a timer interrupt source.
type Event uint8

const (
	// Update fires each time the counter reloads.
	Update Event = iota
)

// Timer is a clocked timer owned by the caller.
type Timer struct {
	name    string
	raw     *dev.TIMER_Type
	clk     rcu.Hertz
	disable func()
}

// NewTimer0 enables TIMER0 on APB2.
func NewTimer0(raw *dev.TIMER_Type, clocks rcu.Clocks, apb2 *rcu.APB2) *Timer {
	apb2.EnableReset(rcu.TIMER0)
	return &Timer{
		name:    "TIMER0",
		raw:     raw,
		clk:     clocks.Timer0Clk(),
		disable: func() { apb2.Disable(rcu.TIMER0) },
	}
}

func newAPB1(name string, p rcu.APB1Periph, raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	apb1.EnableReset(p)
	return &Timer{
		name:    name,
		raw:     raw,
		clk:     clocks.Timer1Clk(),
		disable: func() { apb1.Disable(p) },
	}
}

func NewTimer1(raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	return newAPB1("TIMER1", rcu.TIMER1, raw, clocks, apb1)
}

func NewTimer2(raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	return newAPB1("TIMER2", rcu.TIMER2, raw, clocks, apb1)
}

func NewTimer3(raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	return newAPB1("TIMER3", rcu.TIMER3, raw, clocks, apb1)
}

func NewTimer4(raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	return newAPB1("TIMER4", rcu.TIMER4, raw, clocks, apb1)
}

// NewTimer5 and NewTimer6 are the basic timers; they only count.
func NewTimer5(raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	return newAPB1("TIMER5", rcu.TIMER5, raw, clocks, apb1)
}

func NewTimer6(raw *dev.TIMER_Type, clocks rcu.Clocks, apb1 *rcu.APB1) *Timer {
	return newAPB1("TIMER6", rcu.TIMER6, raw, clocks, apb1)
}

func (t *Timer) live() {
	if t.raw == nil {
		panic("timer: used after Release")
	}
}

// Clock returns the frequency the counter is fed with.
func (t *Timer) Clock() rcu.Hertz {
	return t.clk
}

// Reload returns the prescaler and auto-reload values that make a timer
// clocked at clk expire at freq. One update period lasts (psc+1)*(car+1)
// clock cycles. It panics when freq is zero or above clk/2, since CAR 0
// stops the counter.
func Reload(clk, freq rcu.Hertz) (psc, car uint32) {
	if freq == 0 || freq > clk/2 {
		panic("timer: frequency out of range")
	}
	ticks := uint32(clk / freq)
	// psc+1 >= ceil(ticks/65536), so car+1 always fits 16 bits
	psc = (ticks - 1) >> 16
	car = ticks/(psc+1) - 1
	return psc, car
}

// StartCount (re)starts the timer so that Wait succeeds freq times per
// second.
func (t *Timer) StartCount(freq rcu.Hertz) {
	t.live()
	psc, car := Reload(t.clk, freq)

	t.raw.CTL0.ClearBits(dev.TIMER_CTL0_CEN)
	t.raw.CNT.Set(0)
	t.raw.INTF.Set(^uint32(dev.TIMER_INTF_UPIF))
	t.raw.PSC.Set(psc)
	t.raw.CAR.Set(car)
	// the update event loads PSC but also raises UPIF
	t.raw.SWEVG.Set(dev.TIMER_SWEVG_UPG)
	t.raw.INTF.Set(^uint32(dev.TIMER_INTF_UPIF))
	t.raw.CTL0.SetBits(dev.TIMER_CTL0_CEN)
}

// Wait returns nil once per elapsed period and ErrWouldBlock otherwise.
func (t *Timer) Wait() error {
	t.live()
	if !t.raw.INTF.HasBits(dev.TIMER_INTF_UPIF) {
		return ErrWouldBlock
	}
	t.raw.INTF.Set(^uint32(dev.TIMER_INTF_UPIF))
	return nil
}

// Cancel stops the counter.
func (t *Timer) Cancel() {
	t.live()
	t.raw.CTL0.ClearBits(dev.TIMER_CTL0_CEN)
}

// Listen enables the interrupt for ev.
func (t *Timer) Listen(ev Event) {
	t.live()
	switch ev {
	case Update:
		t.raw.DMAINTEN.SetBits(dev.TIMER_DMAINTEN_UPIE)
	}
}

// Unlisten disables the interrupt for ev.
func (t *Timer) Unlisten(ev Event) {
	t.live()
	switch ev {
	case Update:
		t.raw.DMAINTEN.ClearBits(dev.TIMER_DMAINTEN_UPIE)
	}
}

// ClearUpdate acknowledges the update flag from an interrupt handler.
func (t *Timer) ClearUpdate() {
	t.live()
	t.raw.INTF.Set(^uint32(dev.TIMER_INTF_UPIF))
}

// Release stops the timer, gates its clock and returns the register block.
func (t *Timer) Release() *dev.TIMER_Type {
	t.live()
	raw := t.raw
	raw.CTL0.ClearBits(dev.TIMER_CTL0_CEN)
	raw.DMAINTEN.Set(0)
	t.disable()
	t.raw = nil
	debug.Println("[TIMER] " + t.name + " released")
	return raw
}
