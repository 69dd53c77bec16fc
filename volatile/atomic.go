package volatile

import "sync/atomic"

// SetBit sets (value == true) or clears bit index of r with a single atomic
// fetch-or or fetch-and-not. Ordering is relaxed: the target is single core,
// the operation only has to be indivisible with respect to interrupt
// handlers. index must be below 32; it is not checked.
func SetBit(r *Register32, value bool, index uint8) {
	mask := uint32(1) << index
	if value {
		orBits(r, mask)
	} else {
		andBits(r, ^mask)
	}
}

// ToggleBit flips bit index of r with a single atomic fetch-xor.
func ToggleBit(r *Register32, index uint8) {
	xorBits(r, uint32(1)<<index)
}

// xor has no sync/atomic primitive, so it retries a compare-and-swap; the
// loop only repeats when an interrupt changed the register in between.
func xorAtomic(addr *uint32, mask uint32) {
	for {
		old := atomic.LoadUint32(addr)
		if atomic.CompareAndSwapUint32(addr, old, old^mask) {
			return
		}
	}
}
