package volatile

import (
	"sync"
	"testing"
)

func TestSetBitAndToggleBit(t *testing.T) {
	var r Register32

	SetBit(&r, true, 3)
	SetBit(&r, true, 16)
	if got := r.Get(); got != 1<<3|1<<16 {
		t.Fatalf("after SetBit: got 0x%08X", got)
	}

	SetBit(&r, false, 3)
	if got := r.Get(); got != 1<<16 {
		t.Errorf("after clearing bit 3: got 0x%08X", got)
	}

	ToggleBit(&r, 31)
	ToggleBit(&r, 16)
	if got := r.Get(); got != 1<<31 {
		t.Errorf("after toggles: got 0x%08X", got)
	}
}

func TestBitHelpers(t *testing.T) {
	var r Register32
	r.Set(0x44444444)

	r.ReplaceBits(0b0011, 0xF, 8)
	if got := r.Get(); got != 0x44444344 {
		t.Errorf("ReplaceBits: got 0x%08X", got)
	}
	if f := r.Field(0xF, 8); f != 0b0011 {
		t.Errorf("Field: got %b", f)
	}

	r.SetBits(1 << 1)
	if !r.HasBits(1 << 1) {
		t.Error("HasBits after SetBits reported false")
	}
	r.ClearBits(1 << 1)
	if r.HasBits(1 << 1) {
		t.Error("HasBits after ClearBits reported true")
	}
}

// Concurrent single-bit updates must never lose a neighbour's bit.
func TestSetBitConcurrent(t *testing.T) {
	var r Register32
	var wg sync.WaitGroup
	for bit := uint8(0); bit < 32; bit++ {
		wg.Add(1)
		go func(bit uint8) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				ToggleBit(&r, bit)
			}
			SetBit(&r, true, bit)
		}(bit)
	}
	wg.Wait()

	if got := r.Get(); got != 0xFFFFFFFF {
		t.Errorf("lost updates: got 0x%08X", got)
	}
}

func TestInterceptedRegister(t *testing.T) {
	var r Register32
	// Bit 0 is write-one-to-set and self-clears on the next read.
	Intercept(&r, &Hook{
		Read: func(stored uint32) uint32 {
			r.Reg = stored &^ 1
			return stored
		},
	})
	defer Intercept(&r, nil)

	SetBit(&r, true, 0)
	if !r.HasBits(1) {
		t.Fatal("first read should observe the set bit")
	}
	if r.HasBits(1) {
		t.Error("second read should observe the cleared bit")
	}
}
