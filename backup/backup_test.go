//go:build !tinygo

package backup

import (
	"testing"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/rcu"
	"gd32hal/sim"
)

func split(t *testing.T) (*sim.Chip, *rcu.RCU, *Parts) {
	t.Helper()
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	return chip, r, Split(chip.P.BKP, chip.P.PMU, r.APB1)
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestDataRoundTrip(t *testing.T) {
	chip, _, parts := split(t)
	for idx := 0; idx < Slots; idx++ {
		parts.Data.Write(idx, uint16(0xA000+idx))
	}
	for idx := 0; idx < Slots; idx++ {
		if got := parts.Data.Read(idx); got != uint16(0xA000+idx) {
			t.Errorf("slot %d = 0x%04X", idx, got)
		}
	}
	// slots land at their vendor offsets
	if chip.P.BKP.DATA0[9].Get() != 0xA009 || chip.P.BKP.DATA1[0].Get() != 0xA00A || chip.P.BKP.DATA1[31].Get() != 0xA029 {
		t.Error("slot mapping does not match DATA0/DATA1 layout")
	}
	if v := chip.Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestDataOutOfRange(t *testing.T) {
	_, _, parts := split(t)
	for _, idx := range []int{Slots, 100, -1} {
		expectPanic(t, "read", func() { parts.Data.Read(idx) })
		expectPanic(t, "write", func() { parts.Data.Write(idx, 1) })
	}
}

func TestClear(t *testing.T) {
	_, r, parts := split(t)
	parts.Data.Write(41, 0xBEEF)
	parts.Tamper.Enable()
	parts.Data.Clear(r.BDCTL)
	if got := parts.Data.Read(41); got != 0 {
		t.Errorf("slot 41 = 0x%04X after domain reset", got)
	}
}

func TestTamper(t *testing.T) {
	chip, _, parts := split(t)
	tp := parts.Tamper

	chip.Tamper()
	if tp.CheckEvent() {
		t.Fatal("event latched while detection disabled")
	}

	tp.SetActiveLevel(ActiveLow)
	tp.Enable()
	if !chip.P.BKP.TPCTL.HasBits(dev.BKP_TPCTL_TPAL | dev.BKP_TPCTL_TPEN) {
		t.Errorf("TPCTL = 0x%X", chip.P.BKP.TPCTL.Get())
	}
	tp.Listen()
	chip.Tamper()
	if !tp.CheckEvent() || !tp.CheckInterrupt() {
		t.Fatal("event or interrupt not latched")
	}
	tp.ClearInterrupt()
	if tp.CheckInterrupt() || !tp.CheckEvent() {
		t.Error("ClearInterrupt must only clear TIF")
	}
	tp.ClearEvent()
	if tp.CheckEvent() {
		t.Error("ClearEvent left TEF set")
	}
	tp.Unlisten()
	chip.Tamper()
	if tp.CheckInterrupt() {
		t.Error("interrupt raised while unlistened")
	}
	tp.Disable()
	if chip.P.BKP.TPCTL.HasBits(dev.BKP_TPCTL_TPEN) {
		t.Error("Disable left TPEN set")
	}
}

func TestOCTL(t *testing.T) {
	chip, _, parts := split(t)
	parts.OCTL.SetCalibration(0x55)
	parts.OCTL.EnableCalibrationOutput(true)
	parts.OCTL.SetAlarmOutput(OutputSecond)
	if got := parts.OCTL.Calibration(); got != 0x55 {
		t.Errorf("Calibration = 0x%X", got)
	}
	want := uint32(0x55 | dev.BKP_OCTL_COEN | dev.BKP_OCTL_ASOEN | dev.BKP_OCTL_ROSEL)
	if got := chip.P.BKP.OCTL.Get(); got != want {
		t.Errorf("OCTL = 0x%03X, expected 0x%03X", got, want)
	}
	expectPanic(t, "calibration 0x80", func() { parts.OCTL.SetCalibration(0x80) })
}
