//go:build !tinygo

package esig

import (
	"testing"

	"gd32hal/sim"
)

func TestSignature(t *testing.T) {
	chip := sim.New()
	t.Cleanup(chip.Close)

	if got := UniqueID(chip.P.ESIG); got != sim.UniqueID {
		t.Errorf("UniqueID = %08X, expected %08X", got, sim.UniqueID)
	}
	if got := FlashDensity(chip.P.ESIG); got != 128 {
		t.Errorf("FlashDensity = %d KiB, expected 128", got)
	}
	if got := SRAMDensity(chip.P.ESIG); got != 32 {
		t.Errorf("SRAMDensity = %d KiB, expected 32", got)
	}
}
