package gpio

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/internal/debug"
	"gd32hal/volatile"
)

// Lock is the port's lock register. Marking pins only updates a RAM shadow;
// Freeze writes the shadow to hardware with the key sequence, after which
// the marked pins' modes are fixed until the chip resets. Freeze consumes
// the handle, so nothing can be locked or unlocked afterwards.
type Lock struct {
	port   *portState
	shadow volatile.Register32
	frozen bool
}

func newLock(ps *portState) *Lock {
	l := &Lock{port: ps}
	l.shadow.Set(ps.raw.LOCK.Get() & 0xFFFF)
	return l
}

func (l *Lock) check(port *portState) {
	if l == nil || l.port != port {
		panic("gpio: lock handle of another port")
	}
	if l.frozen {
		panic("gpio: port " + port.port.String() + " lock already frozen")
	}
}

// LockPin marks p to be locked by the next Freeze.
func LockPin[M Mode](p Pin[Unlocked, M], l *Lock) Pin[Locked, M] {
	p.live()
	l.check(p.port)
	q := consume[Locked, M](p)
	volatile.SetBit(&l.shadow, true, q.index)
	return q
}

// UnlockPin withdraws the mark set by LockPin.
func UnlockPin[M Mode](p Pin[Locked, M], l *Lock) Pin[Unlocked, M] {
	p.live()
	l.check(p.port)
	q := consume[Unlocked, M](p)
	volatile.SetBit(&l.shadow, false, q.index)
	return q
}

// Pending returns the pins marked so far.
func (l *Lock) Pending() uint16 {
	return uint16(l.shadow.Get())
}

// Frozen records what a Freeze committed.
type Frozen struct {
	Port Port
	Pins uint16
}

// Locked reports whether pin index is locked.
func (f Frozen) Locked(index uint8) bool {
	return f.Pins&(1<<index) != 0
}

// Freeze commits the marked pins. The key is written 1, 0, 1 with the pin
// bits unchanged, and the register must then read back key 0 followed by
// key 1. Any other answer means the port is in an unknown state, which is
// not recoverable.
func (l *Lock) Freeze() Frozen {
	l.check(l.port)
	l.frozen = true

	bits := l.shadow.Get() & 0xFFFF
	reg := &l.port.raw.LOCK
	var first, second uint32
	critical.Section(func() {
		reg.Set(bits | dev.GPIO_LOCK_LKK)
		reg.Set(bits)
		reg.Set(bits | dev.GPIO_LOCK_LKK)
		first = reg.Get()
		second = reg.Get()
	})
	if first&dev.GPIO_LOCK_LKK != 0 || second&dev.GPIO_LOCK_LKK == 0 {
		panic("gpio: port " + l.port.port.String() + " lock did not latch, read " +
			debug.Hex(first) + " then " + debug.Hex(second))
	}
	debug.Println("[GPIO] " + l.port.port.String() + " frozen, pins " + debug.Hex(bits))
	return Frozen{Port: l.port.port, Pins: uint16(bits)}
}
