//go:build !tinygo

package timer

import (
	"testing"

	dev "gd32hal/device/gd32vf103"
	"gd32hal/rcu"
	"gd32hal/sim"
	"gd32hal/volatile"
)

func newTimer1(t *testing.T, sys rcu.Hertz) (*sim.Chip, *rcu.RCU, *Timer) {
	t.Helper()
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	clocks := rcu.NewStrict().SysClk(sys).Freeze(r.CFG)
	return chip, r, NewTimer1(chip.P.TIMER1, clocks, r.APB1)
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

func TestReload(t *testing.T) {
	testCases := []struct {
		clk, freq rcu.Hertz
		psc, car  uint32
	}{
		{8 * rcu.MHz, 1 * rcu.KHz, 0, 7999},
		{8 * rcu.MHz, 1, 122, 65039},
		{108 * rcu.MHz, 1, 1647, 65532},
		{8 * rcu.MHz, 4 * rcu.MHz, 0, 1},
		{65536 * 100, 100, 0, 0xFFFF},
		{65537 * 100, 100, 1, 32767},
	}
	for _, tc := range testCases {
		psc, car := Reload(tc.clk, tc.freq)
		if psc != tc.psc || car != tc.car {
			t.Errorf("Reload(%d, %d) = %d, %d; expected %d, %d", tc.clk, tc.freq, psc, car, tc.psc, tc.car)
		}
		// the update period is (psc+1)*(car+1) cycles
		if period, want := (psc+1)*(car+1), uint32(tc.clk/tc.freq); period > want || want-period > psc {
			t.Errorf("Reload(%d, %d) period %d cycles, expected %d", tc.clk, tc.freq, period, want)
		}
	}
	mustPanic(t, "zero", func() { Reload(8*rcu.MHz, 0) })
	mustPanic(t, "above clock", func() { Reload(8*rcu.MHz, 9*rcu.MHz) })
	mustPanic(t, "at clock", func() { Reload(8*rcu.MHz, 8*rcu.MHz) })
}

func TestTimerClock(t *testing.T) {
	_, _, tim := newTimer1(t, 108*rcu.MHz)
	// APB1 runs at 54 MHz behind /2, so the timer sees 108 MHz
	if tim.Clock() != 108*rcu.MHz {
		t.Errorf("Clock = %d, expected 108 MHz", tim.Clock())
	}
}

func TestStartCount(t *testing.T) {
	chip, _, tim := newTimer1(t, 8*rcu.MHz)
	raw := chip.P.TIMER1

	var intf []uint32
	volatile.Intercept(&raw.INTF, &volatile.Hook{Write: func(old, value uint32) uint32 {
		intf = append(intf, value)
		return old & value
	}})

	tim.StartCount(1 * rcu.KHz)
	if raw.PSC.Get() != 0 || raw.CAR.Get() != 7999 {
		t.Errorf("PSC/CAR = %d/%d, expected 0/7999", raw.PSC.Get(), raw.CAR.Get())
	}
	if !raw.CTL0.HasBits(dev.TIMER_CTL0_CEN) {
		t.Error("counter not enabled")
	}
	if len(intf) != 2 {
		t.Errorf("UPIF cleared %d times, expected before and after the update event", len(intf))
	}
	if err := tim.Wait(); err != ErrWouldBlock {
		t.Errorf("Wait right after start = %v, expected ErrWouldBlock", err)
	}

	chip.Expire(raw)
	if err := tim.Wait(); err != nil {
		t.Errorf("Wait after expiry = %v", err)
	}
	if err := tim.Wait(); err != ErrWouldBlock {
		t.Errorf("Wait did not consume the update flag: %v", err)
	}

	tim.Cancel()
	chip.Expire(raw)
	if err := tim.Wait(); err != ErrWouldBlock {
		t.Errorf("cancelled timer expired: %v", err)
	}
}

func TestListen(t *testing.T) {
	chip, _, tim := newTimer1(t, 8*rcu.MHz)
	tim.Listen(Update)
	if !chip.P.TIMER1.DMAINTEN.HasBits(dev.TIMER_DMAINTEN_UPIE) {
		t.Error("UPIE not set")
	}
	tim.StartCount(10)
	chip.Expire(chip.P.TIMER1)
	tim.ClearUpdate()
	if chip.P.TIMER1.INTF.HasBits(dev.TIMER_INTF_UPIF) {
		t.Error("ClearUpdate left UPIF set")
	}
	tim.Unlisten(Update)
	if chip.P.TIMER1.DMAINTEN.HasBits(dev.TIMER_DMAINTEN_UPIE) {
		t.Error("UPIE still set")
	}
}

func TestTimer0OnAPB2(t *testing.T) {
	chip := sim.New()
	t.Cleanup(chip.Close)
	r := rcu.Constrain(chip.P.RCU)
	clocks := rcu.NewStrict().Freeze(r.CFG)
	tim := NewTimer0(chip.P.TIMER0, clocks, r.APB2)
	if !r.APB2.Enabled(rcu.TIMER0) {
		t.Fatal("TIMER0 clock not enabled")
	}
	tim.StartCount(1)
	if v := chip.Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
	tim.Release()
	if r.APB2.Enabled(rcu.TIMER0) {
		t.Error("TIMER0 clock left on")
	}
	mustPanic(t, "use after release", func() { tim.Wait() })
}
