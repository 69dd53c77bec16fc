//go:build !tinygo

package volatile

import (
	"sync"
	"sync/atomic"
)

// Hook intercepts accesses to a register on the host so a hardware model can
// reproduce side effects such as self-clearing or read-only bits.
type Hook struct {
	// Read returns the value a load observes. stored is the backing value.
	Read func(stored uint32) uint32
	// Write returns the value to keep after old is overwritten with value.
	Write func(old, value uint32) uint32
}

var hooks sync.Map // *Register32 -> *Hook

// Intercept installs h on r. A nil h removes the hook.
func Intercept(r *Register32, h *Hook) {
	if h == nil {
		hooks.Delete(r)
		return
	}
	hooks.Store(r, h)
}

func hookOf(r *Register32) *Hook {
	h, ok := hooks.Load(r)
	if !ok {
		return nil
	}
	return h.(*Hook)
}

// Get returns the register value.
func (r *Register32) Get() uint32 {
	v := atomic.LoadUint32(&r.Reg)
	if h := hookOf(r); h != nil && h.Read != nil {
		v = h.Read(v)
	}
	return v
}

// Set stores value.
func (r *Register32) Set(value uint32) {
	if h := hookOf(r); h != nil && h.Write != nil {
		value = h.Write(atomic.LoadUint32(&r.Reg), value)
	}
	atomic.StoreUint32(&r.Reg, value)
}

// Intercepted registers go through Get/Set so the model sees the write;
// the host simulation is driven from a single goroutine.
func orBits(r *Register32, mask uint32) {
	if hookOf(r) != nil {
		r.Set(r.Get() | mask)
		return
	}
	atomic.OrUint32(&r.Reg, mask)
}

func andBits(r *Register32, mask uint32) {
	if hookOf(r) != nil {
		r.Set(r.Get() & mask)
		return
	}
	atomic.AndUint32(&r.Reg, mask)
}

func xorBits(r *Register32, mask uint32) {
	if hookOf(r) != nil {
		r.Set(r.Get() ^ mask)
		return
	}
	xorAtomic(&r.Reg, mask)
}
