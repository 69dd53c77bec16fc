//go:build !tinygo

package spi

import (
	"bytes"
	"testing"

	"gd32hal/afio"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/rcu"
	"gd32hal/sim"
	"tinygo.org/x/drivers"
)

type rig struct {
	chip   *sim.Chip
	rcu    *rcu.RCU
	afio   *afio.Parts
	gpioa  *gpio.Parts
	gpiob  *gpio.Parts
	clocks rcu.Clocks
}

func newRig(t *testing.T, sys rcu.Hertz) *rig {
	t.Helper()
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	return &rig{
		chip:   chip,
		rcu:    r,
		afio:   afio.Split(chip.P.AFIO, r.APB2),
		gpioa:  gpio.Split(chip.P.GPIOA, gpio.PortA, r.APB2),
		gpiob:  gpio.Split(chip.P.GPIOB, gpio.PortB, r.APB2),
		clocks: rcu.NewStrict().SysClk(sys).Freeze(r.CFG),
	}
}

func (g *rig) spi0(t *testing.T, mode Mode, freq rcu.Hertz) *SPI {
	t.Helper()
	sck := gpio.IntoPushPullAlternate(g.gpioa.Pins[5], g.gpioa.CTL0)
	mosi := gpio.IntoPushPullAlternate(g.gpioa.Pins[7], g.gpioa.CTL0)
	return NewSPI0(g.chip.P.SPI0, sck, g.gpioa.Pins[6], mosi, g.afio.PCF0, mode, freq, g.clocks, g.rcu.APB2)
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected a panic", name)
		}
	}()
	f()
}

func TestPrescaler(t *testing.T) {
	testCases := []struct {
		clk, freq rcu.Hertz
		code      uint32
		actual    rcu.Hertz
	}{
		{8 * rcu.MHz, 4 * rcu.MHz, 0, 4 * rcu.MHz},
		{8 * rcu.MHz, 8 * rcu.MHz, 0, 4 * rcu.MHz},
		{8 * rcu.MHz, 3 * rcu.MHz, 1, 2 * rcu.MHz},
		{108 * rcu.MHz, 1 * rcu.MHz, 6, 843_750},
		{8 * rcu.MHz, 31_250, 7, 31_250},
	}
	for _, tc := range testCases {
		code, actual := Prescaler(tc.clk, tc.freq)
		if code != tc.code || actual != tc.actual {
			t.Errorf("Prescaler(%d, %d) = %d, %d; expected %d, %d", tc.clk, tc.freq, code, actual, tc.code, tc.actual)
		}
		if actual > tc.freq {
			t.Errorf("Prescaler(%d, %d) runs faster than requested", tc.clk, tc.freq)
		}
	}
	mustPanic(t, "below clk/256", func() { Prescaler(8*rcu.MHz, 31_249) })
	mustPanic(t, "zero", func() { Prescaler(8*rcu.MHz, 0) })
}

func TestOpenProgramsControl(t *testing.T) {
	testCases := []struct {
		name string
		mode Mode
		bits uint32
	}{
		{"mode0", Mode0, 0},
		{"mode1", Mode1, dev.SPI_CTL0_CKPH},
		{"mode2", Mode2, dev.SPI_CTL0_CKPL},
		{"mode3", Mode3, dev.SPI_CTL0_CKPL | dev.SPI_CTL0_CKPH},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newRig(t, 8*rcu.MHz)
			s := g.spi0(t, tc.mode, 1*rcu.MHz)
			ctl0 := g.chip.P.SPI0.CTL0.Get()
			if got := ctl0 & (dev.SPI_CTL0_CKPL | dev.SPI_CTL0_CKPH); got != tc.bits {
				t.Errorf("clock bits = %02b, expected %02b", got, tc.bits)
			}
			want := uint32(dev.SPI_CTL0_MSTMOD | dev.SPI_CTL0_SPIEN | dev.SPI_CTL0_SWNSSEN | dev.SPI_CTL0_SWNSS)
			if ctl0&want != want {
				t.Errorf("CTL0 = 0x%04X, missing 0x%04X", ctl0, want)
			}
			if got := g.chip.P.SPI0.CTL0.Field(dev.SPI_CTL0_PSC_Msk, dev.SPI_CTL0_PSC_Pos); got != 2 {
				t.Errorf("PSC = %d, expected 2 (/8)", got)
			}
			if s.Frequency() != 1*rcu.MHz {
				t.Errorf("Frequency = %d", s.Frequency())
			}
		})
	}
}

func TestWrongPinsPanic(t *testing.T) {
	g := newRig(t, 8*rcu.MHz)
	g.afio.PCF0.RemapSPI0(true)
	sck := gpio.IntoPushPullAlternate(g.gpioa.Pins[5], g.gpioa.CTL0)
	mosi := gpio.IntoPushPullAlternate(g.gpioa.Pins[7], g.gpioa.CTL0)
	mustPanic(t, "PA pins while remapped", func() {
		NewSPI0(g.chip.P.SPI0, sck, g.gpioa.Pins[6], mosi, g.afio.PCF0, Mode0, rcu.MHz, g.clocks, g.rcu.APB2)
	})

	sckB := gpio.IntoPushPullAlternate(g.gpiob.Pins[3], g.gpiob.CTL0)
	misoB := gpio.IntoPullDownInput(g.gpiob.Pins[4], g.gpiob.CTL0, g.gpiob.OCTL)
	mosiB := gpio.IntoPushPullAlternate(g.gpiob.Pins[5], g.gpiob.CTL0)
	s := NewSPI0(g.chip.P.SPI0, sckB, misoB, mosiB, g.afio.PCF0, Mode0, rcu.MHz, g.clocks, g.rcu.APB2)
	if _, err := s.Transfer(0xA5); err != nil {
		t.Errorf("Transfer on remapped pins: %v", err)
	}
}

func TestSendRead(t *testing.T) {
	g := newRig(t, 8*rcu.MHz)
	s := g.spi0(t, Mode0, rcu.MHz)
	model := g.chip.SPIBus(g.chip.P.SPI0)

	if _, err := s.Read(); err != ErrWouldBlock {
		t.Errorf("Read before Send = %v, expected ErrWouldBlock", err)
	}
	model.Stall(true)
	if err := s.Send(1); err != ErrWouldBlock {
		t.Errorf("Send while full = %v, expected ErrWouldBlock", err)
	}
	model.Stall(false)

	model.Reply = func(out uint16) uint16 { return out ^ 0xFF }
	if err := s.Send(0x0F); err != nil {
		t.Fatalf("Send: %v", err)
	}
	b, err := s.Read()
	if err != nil || b != 0xF0 {
		t.Errorf("Read = 0x%02X, %v; expected 0xF0", b, err)
	}
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name     string
		flags    uint32
		expected error
	}{
		{"mode fault", dev.SPI_STAT_CONFERR, ErrModeFault},
		{"crc", dev.SPI_STAT_CRCERR, ErrCRC},
		{"format", dev.SPI_STAT_FERR, ErrFormat},
		{"overrun before crc", dev.SPI_STAT_RXORERR | dev.SPI_STAT_CRCERR, ErrOverrun},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newRig(t, 8*rcu.MHz)
			s := g.spi0(t, Mode0, rcu.MHz)
			g.chip.SPIBus(g.chip.P.SPI0).Fault(tc.flags)
			if err := s.Send(0); err != tc.expected {
				t.Errorf("Send = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestOverrunClears(t *testing.T) {
	g := newRig(t, 8*rcu.MHz)
	s := g.spi0(t, Mode0, rcu.MHz)
	if err := s.Send(1); err != nil {
		t.Fatal(err)
	}
	// second frame lands on a full receive buffer
	if err := s.Send(2); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Read(); err != ErrOverrun {
		t.Fatalf("Read = %v, expected ErrOverrun", err)
	}
	if b, err := s.Transfer(3); err != nil || b != 3 {
		t.Errorf("Transfer after overrun = %d, %v", b, err)
	}
}

func TestModeFaultRearms(t *testing.T) {
	g := newRig(t, 8*rcu.MHz)
	s := g.spi0(t, Mode0, rcu.MHz)
	g.chip.SPIBus(g.chip.P.SPI0).Fault(dev.SPI_STAT_CONFERR)
	if _, err := s.Transfer(9); err != ErrModeFault {
		t.Fatalf("Transfer = %v, expected ErrModeFault", err)
	}
	if g.chip.P.SPI0.STAT.HasBits(dev.SPI_STAT_CONFERR) {
		t.Error("CONFERR not cleared")
	}
	if b, err := s.Transfer(9); err != nil || b != 9 {
		t.Errorf("Transfer after clear = %d, %v", b, err)
	}
}

func TestDriversInterface(t *testing.T) {
	g := newRig(t, 108*rcu.MHz)
	var bus drivers.SPI = g.spi0(t, Mode3, 10*rcu.MHz)
	model := g.chip.SPIBus(g.chip.P.SPI0)

	w := []byte{0x9F, 0x01, 0x02}
	r := make([]byte, len(w))
	if err := bus.Tx(w, r); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(r, w) {
		t.Errorf("loopback read % X, expected % X", r, w)
	}

	model.Sent = nil
	if err := bus.Tx(nil, make([]byte, 2)); err != nil {
		t.Fatalf("Tx(nil, r): %v", err)
	}
	if len(model.Sent) != 2 || model.Sent[0] != 0 || model.Sent[1] != 0 {
		t.Errorf("read-only transfer sent %v, expected two zeros", model.Sent)
	}
	if err := bus.Tx([]byte{1}, nil); err != nil {
		t.Errorf("Tx(w, nil): %v", err)
	}
	if err := bus.Tx([]byte{1, 2}, make([]byte, 1)); err != ErrSliceSize {
		t.Errorf("mismatched Tx = %v, expected ErrSliceSize", err)
	}
	if v := g.chip.Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestRelease(t *testing.T) {
	g := newRig(t, 8*rcu.MHz)
	s := g.spi0(t, Mode0, rcu.MHz)
	mustPanic(t, "wrong bus", func() { ReleaseSPI1(s, g.rcu.APB1) })
	if !g.rcu.APB2.Enabled(rcu.SPI0) {
		t.Error("SPI0 clock gated by a failed release")
	}
	if raw := ReleaseSPI0(s, g.rcu.APB2); raw != g.chip.P.SPI0 {
		t.Error("Release returned a different register block")
	}
	if g.rcu.APB2.Enabled(rcu.SPI0) {
		t.Error("SPI0 clock left on")
	}
	mustPanic(t, "use after release", func() { s.Send(0) })
}
