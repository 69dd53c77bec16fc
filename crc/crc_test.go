//go:build !tinygo

package crc

import (
	"bytes"
	"hash"
	"testing"

	"gd32hal/internal/crcsw"
	"gd32hal/rcu"
	"gd32hal/sim"
)

var _ hash.Hash32 = (*Digest)(nil)

func newCRC(t *testing.T) (*sim.Chip, *rcu.RCU, *CRC) {
	t.Helper()
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	return chip, r, New(chip.P.CRC, r.AHB)
}

func TestGoldenDigest(t *testing.T) {
	chip, _, c := newCRC(t)
	d := c.NewDigest()
	d.WriteUint32(0xABCD1234)
	if got := d.Sum32(); got != 0xF7018A40 {
		t.Errorf("Sum32 = 0x%08X, expected 0xF7018A40", got)
	}
	// reading is not destructive
	d.WriteUint32(0x12345678)
	if got := d.Sum32(); got != 0xF36CB614 {
		t.Errorf("Sum32 after second word = 0x%08X, expected 0xF36CB614", got)
	}
	if v := chip.Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestNewDigestResets(t *testing.T) {
	_, _, c := newCRC(t)
	d := c.NewDigest()
	d.WriteUint32(0xDEADBEEF)
	d = d.Free().NewDigest()
	if got := d.Sum32(); got != crcsw.Initial {
		t.Errorf("fresh digest = 0x%08X", got)
	}
}

func TestHashInterface(t *testing.T) {
	_, _, c := newCRC(t)
	d := c.NewDigest()
	data := []byte{0x34, 0x12, 0xCD, 0xAB, 0x78, 0x56, 0x34, 0x12}
	d.Write(data[:3])
	d.Write(data[3:])
	if got := d.Sum32(); got != 0xF36CB614 {
		t.Errorf("Sum32 = 0x%08X", got)
	}
	if got := d.Sum(nil); !bytes.Equal(got, []byte{0xF3, 0x6C, 0xB6, 0x14}) {
		t.Errorf("Sum = % X", got)
	}
	d.Reset()
	if got := d.Sum32(); got != crcsw.Initial {
		t.Errorf("after Reset = 0x%08X", got)
	}
}

func TestOwnership(t *testing.T) {
	chip, r, c := newCRC(t)
	c.SetFreeData(0xA5)
	if got := c.FreeData(); got != 0xA5 {
		t.Errorf("FreeData = 0x%02X", got)
	}
	d := c.NewDigest()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("CRC handle usable while a digest holds the unit")
			}
		}()
		c.FreeData()
	}()
	c = d.Free()
	raw := c.Release(r.AHB)
	if raw != chip.P.CRC {
		t.Error("Release returned a different block")
	}
	if r.AHB.Enabled(rcu.CRC) {
		t.Error("clock left on after Release")
	}
}
