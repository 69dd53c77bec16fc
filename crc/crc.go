// Package crc drives the CRC calculation unit: a fixed CRC-32 polynomial
// (0x04C11DB7) over 32-bit words, four AHB cycles per word.
package crc

import (
	"encoding/binary"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/rcu"
)

// CRC owns the CRC unit while no digest is in progress.
type CRC struct {
	raw *dev.CRC_Type
}

// New clocks the CRC unit and takes ownership of it.
func New(raw *dev.CRC_Type, ahb *rcu.AHB) *CRC {
	if raw == nil {
		panic("crc: nil register block")
	}
	ahb.Enable(rcu.CRC)
	return &CRC{raw: raw}
}

func (c *CRC) live() {
	if c.raw == nil {
		panic("crc: handle used after NewDigest or Release")
	}
}

// NewDigest resets the accumulator to 0xFFFFFFFF and hands the unit to the
// returned digest until Free.
func (c *CRC) NewDigest() *Digest {
	c.live()
	raw := c.raw
	c.raw = nil
	raw.CTL.SetBits(dev.CRC_CTL_RST)
	// hardware clears RST once the reload is done
	for raw.CTL.HasBits(dev.CRC_CTL_RST) {
	}
	return &Digest{raw: raw}
}

// FreeData returns the 8-bit scratch register. It is not touched by the
// CRC calculation.
func (c *CRC) FreeData() uint8 {
	c.live()
	return uint8(c.raw.FDATA.Get())
}

// SetFreeData stores b in the scratch register.
func (c *CRC) SetFreeData(b uint8) {
	c.live()
	c.raw.FDATA.Set(uint32(b))
}

// Release gates the CRC clock and returns the register block.
func (c *CRC) Release(ahb *rcu.AHB) *dev.CRC_Type {
	c.live()
	raw := c.raw
	c.raw = nil
	ahb.Disable(rcu.CRC)
	return raw
}

// Digest is a CRC computation in progress. Besides the word interface it
// implements hash.Hash32: bytes are packed little-endian into words, the
// way the CPU loads them, and an incomplete trailing word is held back
// until it fills.
type Digest struct {
	raw     *dev.CRC_Type
	pending [4]byte
	n       int
}

func (d *Digest) live() {
	if d.raw == nil {
		panic("crc: digest used after Free")
	}
}

// WriteUint32 feeds one word.
func (d *Digest) WriteUint32(w uint32) {
	d.live()
	d.raw.DATA.Set(w)
}

// Sum32 returns the checksum of the words written so far. Reading does not
// disturb the accumulator, so more words may follow.
func (d *Digest) Sum32() uint32 {
	d.live()
	return d.raw.DATA.Get()
}

// Write feeds p. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	d.live()
	total := len(p)
	for len(p) > 0 {
		k := copy(d.pending[d.n:], p)
		d.n += k
		p = p[k:]
		if d.n == 4 {
			d.WriteUint32(binary.LittleEndian.Uint32(d.pending[:]))
			d.n = 0
		}
	}
	return total, nil
}

// Sum appends the big-endian checksum to b.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, d.Sum32())
}

// Reset restarts the digest from the initial value.
func (d *Digest) Reset() {
	d.live()
	d.n = 0
	d.raw.CTL.SetBits(dev.CRC_CTL_RST)
	for d.raw.CTL.HasBits(dev.CRC_CTL_RST) {
	}
}

func (d *Digest) Size() int      { return 4 }
func (d *Digest) BlockSize() int { return 4 }

// Free ends the digest and returns the unit.
func (d *Digest) Free() *CRC {
	d.live()
	raw := d.raw
	d.raw = nil
	return &CRC{raw: raw}
}
