//go:build tinygo

package volatile

import (
	"runtime/volatile"
	"sync/atomic"
)

// Get returns the register value with a volatile load.
func (r *Register32) Get() uint32 {
	return volatile.LoadUint32(&r.Reg)
}

// Set stores value with a volatile store.
func (r *Register32) Set(value uint32) {
	volatile.StoreUint32(&r.Reg, value)
}

func orBits(r *Register32, mask uint32) {
	atomic.OrUint32(&r.Reg, mask)
}

func andBits(r *Register32, mask uint32) {
	atomic.AndUint32(&r.Reg, mask)
}

func xorBits(r *Register32, mask uint32) {
	xorAtomic(&r.Reg, mask)
}
