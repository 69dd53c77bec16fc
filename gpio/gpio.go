// Package gpio models GD32VF103 pins as typestate values. A pin's electrical
// mode and lock state are type parameters of Pin, so only the operations
// that make sense for a configuration compile:
//
//	parts := gpio.Split(p.GPIOC, gpio.PortC, r.APB2)
//	led := gpio.IntoPushPullOutput(parts.Pins[13], parts.CTL1)
//	gpio.SetLow(led)
//	locked := gpio.LockPin(led, parts.Lock)
//	parts.Lock.Freeze()
//
// Passing locked to IntoFloatingInput, or reading the level of a push-pull
// output with IsHigh, is a compile error.
//
// Go cannot forbid copying a value, so handles approximate single ownership
// at run time: every transition consumes its input pin, and using a consumed
// pin again panics.
package gpio

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
	"gd32hal/volatile"
)

// Port names one of the five GPIO ports.
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
)

func (p Port) String() string {
	return "P" + string(rune('A'+p))
}

func (p Port) periph() rcu.APB2Periph {
	return rcu.PA + rcu.APB2Periph(p)
}

// portState is shared by every handle split from one port.
type portState struct {
	raw  *dev.GPIO_Type
	port Port
	gens [16]uint32
}

// Parts is a split GPIO port.
type Parts struct {
	// CTL0 configures pins 0-7, CTL1 pins 8-15.
	CTL0 *CTL
	CTL1 *CTL
	OCTL *OCTL
	Lock *Lock

	// Pins come out of reset as floating inputs.
	Pins [16]Pin[Unlocked, Input[Floating]]
}

// Split clocks and resets port, then hands out its registers and pins.
func Split(raw *dev.GPIO_Type, port Port, apb2 *rcu.APB2) *Parts {
	if raw == nil || port > PortE {
		panic("gpio: invalid port")
	}
	apb2.EnableReset(port.periph())

	ps := &portState{raw: raw, port: port}
	parts := &Parts{
		CTL0: &CTL{port: ps, half: 0, reg: &raw.CTL0},
		CTL1: &CTL{port: ps, half: 1, reg: &raw.CTL1},
		OCTL: &OCTL{port: ps},
		Lock: newLock(ps),
	}
	for i := range parts.Pins {
		parts.Pins[i] = Pin[Unlocked, Input[Floating]]{port: ps, index: uint8(i)}
	}
	debug.Println("[GPIO] " + port.String() + " split")
	return parts
}

// CTL is the mode control register for one half of a port.
type CTL struct {
	port *portState
	half uint8
	reg  *volatile.Register32
}

func (c *CTL) check(port *portState, index uint8) {
	if c == nil || c.port != port || c.half != index/8 {
		panic("gpio: " + pinName(port.port, index) + " configured through the wrong CTL register")
	}
}

// OCTL is the output control register. Transitions into pulled inputs use
// it to select the pull direction.
type OCTL struct {
	port *portState
}

func (o *OCTL) check(port *portState) {
	if o == nil || o.port != port {
		panic("gpio: OCTL of another port")
	}
}

// Pin is pin index of a port, in lock state L and mode M. The zero Pin is
// not usable.
type Pin[L any, M any] struct {
	port  *portState
	index uint8
	gen   uint32
}

// live panics if p has been consumed by a transition.
func (p Pin[L, M]) live() {
	if p.port == nil {
		panic("gpio: use of zero Pin")
	}
	if p.port.gens[p.index] != p.gen {
		panic("gpio: " + pinName(p.port.port, p.index) + " used after it was consumed")
	}
}

// Port returns the port of p.
func (p Pin[L, M]) Port() Port {
	p.live()
	return p.port.port
}

// Index returns the position of p in its port, 0 to 15.
func (p Pin[L, M]) Index() uint8 {
	p.live()
	return p.index
}

func (p Pin[L, M]) String() string {
	if p.port == nil {
		return "P?"
	}
	return pinName(p.port.port, p.index)
}

// Erased describes a pin without its type parameters, for tables and logs.
type Erased struct {
	Port   Port
	Index  uint8
	Mode   string
	Locked bool
}

func (e Erased) String() string {
	s := pinName(e.Port, e.Index) + " " + e.Mode
	if e.Locked {
		s += " locked"
	}
	return s
}

// Erase returns the run-time description of p. p stays usable.
func (p Pin[L, M]) Erase() Erased {
	p.live()
	var l L
	_, locked := any(l).(Locked)
	return Erased{Port: p.port.port, Index: p.index, Mode: modeName[M](), Locked: locked}
}

// consume retires p and returns its successor in the new state.
func consume[L2, M2, L, M any](p Pin[L, M]) Pin[L2, M2] {
	p.live()
	p.port.gens[p.index]++
	return Pin[L2, M2]{port: p.port, index: p.index, gen: p.port.gens[p.index]}
}

func pinName(port Port, index uint8) string {
	return port.String() + debug.Utoa(uint32(index))
}

// offset is the first bit of the pin's nibble inside its CTL register.
func offset(index uint8) uint8 {
	return 4 * index % 32
}

// writeNibble replaces the pin's control nibble. The register is shared by
// eight pins, so the read-modify-write runs masked.
func writeNibble(ctl *CTL, index uint8, nibble uint32) {
	critical.Section(func() {
		ctl.reg.ReplaceBits(nibble, 0xF, offset(index))
	})
}
