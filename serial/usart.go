package serial

import (
	"gd32hal/afio"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
)

// RxMode is an input configuration usable for a receive line.
type RxMode interface {
	gpio.Input[gpio.Floating] | gpio.Input[gpio.PullUp]
}

func checkPin(pin string, port gpio.Port, index uint8, wantPort gpio.Port, wantIndex uint8) {
	if port != wantPort || index != wantIndex {
		panic("serial: " + pin + " must be " + wantPort.String() + debug.Utoa(uint32(wantIndex)))
	}
}

// NewUSART0 opens USART0 on PA9/PA10, or PB6/PB7 when pcf0 has the USART0
// remap set. The pins must already be in alternate push-pull (TX) and input
// (RX) mode.
func NewUSART0[L1, L2 gpio.LockState, S gpio.Speed, R RxMode](
	raw *dev.USART_Type,
	tx gpio.Pin[L1, gpio.Alternate[gpio.PushPull, S]],
	rx gpio.Pin[L2, R],
	pcf0 *afio.PCF0,
	cfg Config,
	clocks rcu.Clocks,
	apb2 *rcu.APB2,
) *Serial {
	if pcf0.USART0Remapped() {
		checkPin("TX", tx.Port(), tx.Index(), gpio.PortB, 6)
		checkPin("RX", rx.Port(), rx.Index(), gpio.PortB, 7)
	} else {
		checkPin("TX", tx.Port(), tx.Index(), gpio.PortA, 9)
		checkPin("RX", rx.Port(), rx.Index(), gpio.PortA, 10)
	}
	// validate before touching the clock
	Divisor(clocks.APB2Clk(), cfg.Baud)
	apb2.EnableReset(rcu.USART0)
	return open("USART0", raw, clocks.APB2Clk(), cfg)
}

// NewUSART1 opens USART1 on PA2/PA3.
func NewUSART1[L1, L2 gpio.LockState, S gpio.Speed, R RxMode](
	raw *dev.USART_Type,
	tx gpio.Pin[L1, gpio.Alternate[gpio.PushPull, S]],
	rx gpio.Pin[L2, R],
	cfg Config,
	clocks rcu.Clocks,
	apb1 *rcu.APB1,
) *Serial {
	checkPin("TX", tx.Port(), tx.Index(), gpio.PortA, 2)
	checkPin("RX", rx.Port(), rx.Index(), gpio.PortA, 3)
	Divisor(clocks.APB1Clk(), cfg.Baud)
	apb1.EnableReset(rcu.USART1)
	return open("USART1", raw, clocks.APB1Clk(), cfg)
}

// NewUSART2 opens USART2 on PB10/PB11.
func NewUSART2[L1, L2 gpio.LockState, S gpio.Speed, R RxMode](
	raw *dev.USART_Type,
	tx gpio.Pin[L1, gpio.Alternate[gpio.PushPull, S]],
	rx gpio.Pin[L2, R],
	cfg Config,
	clocks rcu.Clocks,
	apb1 *rcu.APB1,
) *Serial {
	checkPin("TX", tx.Port(), tx.Index(), gpio.PortB, 10)
	checkPin("RX", rx.Port(), rx.Index(), gpio.PortB, 11)
	Divisor(clocks.APB1Clk(), cfg.Baud)
	apb1.EnableReset(rcu.USART2)
	return open("USART2", raw, clocks.APB1Clk(), cfg)
}

// ReleaseUSART0 closes s, which must be USART0, and gates its clock.
func ReleaseUSART0(s *Serial, apb2 *rcu.APB2) *dev.USART_Type {
	return s.release("USART0", func() { apb2.Disable(rcu.USART0) })
}

// ReleaseUSART1 closes s, which must be USART1, and gates its clock.
func ReleaseUSART1(s *Serial, apb1 *rcu.APB1) *dev.USART_Type {
	return s.release("USART1", func() { apb1.Disable(rcu.USART1) })
}

// ReleaseUSART2 closes s, which must be USART2, and gates its clock.
func ReleaseUSART2(s *Serial, apb1 *rcu.APB1) *dev.USART_Type {
	return s.release("USART2", func() { apb1.Disable(rcu.USART2) })
}
