// Package volatile provides access to memory-mapped 32-bit registers of the
// GD32VF103 register file.
//
// The method set follows TinyGo's runtime/volatile so register blocks read
// the same way as the machine package. On a development host the registers
// live in ordinary memory and may be intercepted by a hardware model, see
// Intercept.
package volatile

// Register32 is a 32-bit memory-mapped register.
type Register32 struct {
	Reg uint32
}

// SetBits sets the bits in value, leaving the others unchanged.
// The read-modify-write is not atomic; use SetBit for interrupt-shared bits.
func (r *Register32) SetBits(value uint32) {
	r.Set(r.Get() | value)
}

// ClearBits clears the bits in value, leaving the others unchanged.
func (r *Register32) ClearBits(value uint32) {
	r.Set(r.Get() &^ value)
}

// HasBits reports whether any of the bits in value are set.
func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

// ReplaceBits replaces the field mask<<pos with value<<pos.
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | value<<pos)
}

// Field extracts the field mask<<pos, shifted down to bit 0.
func (r *Register32) Field(mask uint32, pos uint8) uint32 {
	return (r.Get() >> pos) & mask
}
