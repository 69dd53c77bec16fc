//go:build !tinygo

package afio

import (
	"testing"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/rcu"
	"gd32hal/sim"
)

func TestRemapAndDebugPort(t *testing.T) {
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	parts := Split(chip.P.AFIO, r.APB2)

	parts.PCF0.RemapUSART0(true)
	parts.PCF0.RemapSPI0(true)
	parts.PCF0.SetDebugPort(JTAGNoReset)
	if !parts.PCF0.USART0Remapped() || !parts.PCF0.SPI0Remapped() {
		t.Errorf("remaps not set: PCF0 = 0x%08X", chip.P.AFIO.PCF0.Get())
	}
	if got := chip.P.AFIO.PCF0.Field(dev.AFIO_PCF0_SWJ_CFG_Msk, dev.AFIO_PCF0_SWJ_CFG_Pos); got != 0b001 {
		t.Errorf("SWJ_CFG = %03b", got)
	}
	parts.PCF0.RemapSPI0(false)
	if parts.PCF0.SPI0Remapped() || !parts.PCF0.USART0Remapped() {
		t.Error("clearing the SPI0 remap disturbed USART0")
	}
	if v := chip.Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestEventOutput(t *testing.T) {
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	parts := Split(chip.P.AFIO, r.APB2)
	gpioc := gpio.Split(chip.P.GPIOC, gpio.PortC, r.APB2)

	pin := gpio.IntoPushPullAlternate(gpioc.Pins[5], gpioc.CTL0)
	EnableEventOutput(parts.EC, pin)
	want := uint32(2<<dev.AFIO_EC_PORT_Pos | 5 | dev.AFIO_EC_EOE)
	if got := chip.P.AFIO.EC.Get(); got != want {
		t.Errorf("EC = 0x%02X, expected 0x%02X", got, want)
	}
	parts.EC.DisableEventOutput()
	if chip.P.AFIO.EC.HasBits(dev.AFIO_EC_EOE) {
		t.Error("EOE still set")
	}
	parts.Release(r.APB2)
	if r.APB2.Enabled(rcu.AF) {
		t.Error("AFIO clock left on")
	}
}
