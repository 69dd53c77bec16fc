// Package afio owns the alternate function I/O block: peripheral pin
// remapping, the debug port configuration and the event output.
package afio

import (
	"gd32hal/critical"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/rcu"
	"gd32hal/volatile"
)

// Parts is the split AFIO block.
type Parts struct {
	PCF0 *PCF0
	EC   *EC
}

// Split clocks AFIO and hands out its registers.
func Split(raw *dev.AFIO_Type, apb2 *rcu.APB2) *Parts {
	if raw == nil {
		panic("afio: nil register block")
	}
	apb2.Enable(rcu.AF)
	return &Parts{PCF0: &PCF0{raw: raw}, EC: &EC{raw: raw}}
}

// PCF0 is the pin remap register. Peripheral constructors consult it to
// find out which pins a peripheral is routed to.
type PCF0 struct {
	raw *dev.AFIO_Type
}

const (
	bitSPI0Remap   = 0
	bitUSART0Remap = 2
)

// RemapUSART0 moves USART0 TX/RX from PA9/PA10 to PB6/PB7.
func (p *PCF0) RemapUSART0(on bool) {
	volatile.SetBit(&p.raw.PCF0, on, bitUSART0Remap)
}

// USART0Remapped reports whether USART0 uses PB6/PB7.
func (p *PCF0) USART0Remapped() bool {
	return p.raw.PCF0.HasBits(dev.AFIO_PCF0_USART0_REMAP)
}

// RemapSPI0 moves SPI0 SCK/MISO/MOSI from PA5/PA6/PA7 to PB3/PB4/PB5.
func (p *PCF0) RemapSPI0(on bool) {
	volatile.SetBit(&p.raw.PCF0, on, bitSPI0Remap)
}

// SPI0Remapped reports whether SPI0 uses PB3/PB4/PB5.
func (p *PCF0) SPI0Remapped() bool {
	return p.raw.PCF0.HasBits(dev.AFIO_PCF0_SPI0_REMAP)
}

// DebugPort selects which JTAG pins stay reserved for the debugger.
type DebugPort uint8

const (
	JTAGFull    DebugPort = 0b000
	JTAGNoReset DebugPort = 0b001 // NJTRST released
	JTAGOff     DebugPort = 0b100 // all JTAG pins are GPIO
)

// SetDebugPort configures the debug pins. With JTAGOff the chip can only be
// reprogrammed through the boot loader.
func (p *PCF0) SetDebugPort(d DebugPort) {
	critical.Section(func() {
		p.raw.PCF0.ReplaceBits(uint32(d), dev.AFIO_PCF0_SWJ_CFG_Msk, dev.AFIO_PCF0_SWJ_CFG_Pos)
	})
}

// EC is the event output control register.
type EC struct {
	raw *dev.AFIO_Type
}

// EnableEventOutput routes the RISC-V event output to pin, which must
// already be a push-pull alternate function output.
func EnableEventOutput[L gpio.LockState, S gpio.Speed](ec *EC, pin gpio.Pin[L, gpio.Alternate[gpio.PushPull, S]]) {
	v := uint32(pin.Port())<<dev.AFIO_EC_PORT_Pos | uint32(pin.Index())<<dev.AFIO_EC_PIN_Pos | dev.AFIO_EC_EOE
	ec.raw.EC.Set(v)
}

// DisableEventOutput stops the event output.
func (ec *EC) DisableEventOutput() {
	volatile.SetBit(&ec.raw.EC, false, 7)
}

// Release gates the AFIO clock and returns the register block. Remaps stay
// in effect.
func (p *Parts) Release(apb2 *rcu.APB2) *dev.AFIO_Type {
	raw := p.PCF0.raw
	apb2.Disable(rcu.AF)
	return raw
}
