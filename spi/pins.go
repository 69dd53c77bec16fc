package spi

import (
	"gd32hal/afio"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
)

// MISOMode is an input configuration usable for the MISO line.
type MISOMode interface {
	gpio.Input[gpio.Floating] | gpio.Input[gpio.PullUp] | gpio.Input[gpio.PullDown]
}

type pinSet struct {
	sck, miso, mosi uint8
	port            gpio.Port
}

func checkPins(bus string, want pinSet, sck, miso, mosi gpio.Erased) {
	for _, p := range []struct {
		role  string
		pin   gpio.Erased
		index uint8
	}{{"SCK", sck, want.sck}, {"MISO", miso, want.miso}, {"MOSI", mosi, want.mosi}} {
		if p.pin.Port != want.port || p.pin.Index != p.index {
			panic("spi: " + bus + " " + p.role + " must be " + want.port.String() + debug.Utoa(uint32(p.index)))
		}
	}
}

// NewSPI0 opens SPI0 on PA5/PA6/PA7, or PB3/PB4/PB5 when pcf0 has the SPI0
// remap set.
func NewSPI0[L1, L2, L3 gpio.LockState, S1, S3 gpio.Speed, R MISOMode](
	raw *dev.SPI_Type,
	sck gpio.Pin[L1, gpio.Alternate[gpio.PushPull, S1]],
	miso gpio.Pin[L2, R],
	mosi gpio.Pin[L3, gpio.Alternate[gpio.PushPull, S3]],
	pcf0 *afio.PCF0,
	mode Mode,
	freq rcu.Hertz,
	clocks rcu.Clocks,
	apb2 *rcu.APB2,
) *SPI {
	want := pinSet{5, 6, 7, gpio.PortA}
	if pcf0.SPI0Remapped() {
		want = pinSet{3, 4, 5, gpio.PortB}
	}
	checkPins("SPI0", want, sck.Erase(), miso.Erase(), mosi.Erase())
	Prescaler(clocks.APB2Clk(), freq)
	apb2.EnableReset(rcu.SPI0)
	return open("SPI0", raw, mode, clocks.APB2Clk(), freq)
}

// NewSPI1 opens SPI1 on PB13/PB14/PB15.
func NewSPI1[L1, L2, L3 gpio.LockState, S1, S3 gpio.Speed, R MISOMode](
	raw *dev.SPI_Type,
	sck gpio.Pin[L1, gpio.Alternate[gpio.PushPull, S1]],
	miso gpio.Pin[L2, R],
	mosi gpio.Pin[L3, gpio.Alternate[gpio.PushPull, S3]],
	mode Mode,
	freq rcu.Hertz,
	clocks rcu.Clocks,
	apb1 *rcu.APB1,
) *SPI {
	checkPins("SPI1", pinSet{13, 14, 15, gpio.PortB}, sck.Erase(), miso.Erase(), mosi.Erase())
	Prescaler(clocks.APB1Clk(), freq)
	apb1.EnableReset(rcu.SPI1)
	return open("SPI1", raw, mode, clocks.APB1Clk(), freq)
}

// ReleaseSPI0 closes s, which must be SPI0, and gates its clock.
func ReleaseSPI0(s *SPI, apb2 *rcu.APB2) *dev.SPI_Type {
	return s.release("SPI0", func() { apb2.Disable(rcu.SPI0) })
}

// ReleaseSPI1 closes s, which must be SPI1, and gates its clock.
func ReleaseSPI1(s *SPI, apb1 *rcu.APB1) *dev.SPI_Type {
	return s.release("SPI1", func() { apb1.Disable(rcu.SPI1) })
}
