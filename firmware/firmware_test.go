//go:build !tinygo

package firmware

import (
	"strings"
	"testing"

	"gd32hal/config"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
	"gd32hal/sim"
)

func setup(t *testing.T, cfg *config.BoardConfig) (*sim.Chip, *Board) {
	t.Helper()
	chip := sim.New()
	t.Cleanup(func() {
		debug.SetEnabled(false)
		debug.SetWriter(nil)
		chip.Close()
	})
	b, err := Setup(chip.P, cfg)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return chip, b
}

// exec sends one console line and returns what the board printed.
func exec(chip *sim.Chip, b *Board, cmd string) string {
	uart := chip.UART(chip.P.USART0)
	uart.Tx = nil
	uart.Receive([]byte(cmd + "\r\n")...)
	b.Poll()
	return string(uart.Tx)
}

func TestSetupLongan(t *testing.T) {
	chip, b := setup(t, config.DefaultLongan())

	if b.Clocks.SysClk() != 108*rcu.MHz {
		t.Errorf("SysClk = %d", b.Clocks.SysClk())
	}
	if len(b.LEDs) != 3 {
		t.Fatalf("LEDs = %d", len(b.LEDs))
	}
	for _, led := range b.LEDs {
		if led.On() {
			t.Errorf("%s lit after setup", led.Name)
		}
	}
	if !chip.P.GPIOC.OCTL.HasBits(1 << 13) {
		t.Error("active-low PC13 not driven high")
	}

	frozen := map[gpio.Port]uint16{}
	for _, f := range b.Frozen {
		frozen[f.Port] = f.Pins
	}
	if frozen[gpio.PortA] != 1<<1|1<<2 || frozen[gpio.PortC] != 1<<13 || len(frozen) != 2 {
		t.Errorf("frozen = %v", b.Frozen)
	}
	if bits, ok := chip.LockState(chip.P.GPIOC); !ok || bits != 1<<13 {
		t.Errorf("GPIOC lock = 0x%04X, %v", bits, ok)
	}

	if b.Boots != 1 || chip.P.BKP.DATA0[0].Get() != 1 {
		t.Errorf("boot counter = %d", b.Boots)
	}
	if b.Watchdog == nil || !chip.WatchdogStarted() {
		t.Error("watchdog not running")
	}
	if !chip.P.DBG.CTL.HasBits(dev.DBG_CTL_FWDGT_HOLD) {
		t.Error("watchdog not held in debug")
	}
	if v := chip.Violations(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestConsoleCommands(t *testing.T) {
	chip, b := setup(t, config.DefaultLongan())

	tests := []struct {
		cmd      string
		expected string
	}{
		{"id", "dbg=0x20000410 uid=3836A21C-C1C04C4E-0A1B2C3D flash=128 sram=32 sysclk=108000000\r\nok\r\n"},
		{"clocks", "sys=108MHz ahb=108MHz apb1=54MHz apb2=108MHz adc=13.500MHz\r\n"},
		{"crc abcd1234", "crc=0xF7018A40\r\nok\r\n"},
		{"crc -c 12345678", "crc=0xF36CB614\r\nok\r\n"},
		{"crc abcd1234 12345678", "crc=0xF36CB614\r\nok\r\n"},
		{"crc xyz", "err bad number\r\n"},
		{"bkp 5 0x1234", "bkp5=4660\r\nok\r\n"},
		{"bkp 5", "bkp5=4660\r\nok\r\n"},
		{"bkp 42", "err bad number\r\n"},
		{"led 1 on", "ok\r\n"},
		{"led 9 on", "err no such led\r\n"},
		{"led 0 dim", "err want on, off or toggle\r\n"},
		{"lock", "PC=0x00002000\r\nPA=0x00000006\r\nok\r\n"},
		{"wdog", "wdog=2s\r\nok\r\n"},
		{"reboot", "err unknown command\r\n"},
	}
	for _, test := range tests {
		got := exec(chip, b, test.cmd)
		if !strings.HasPrefix(got, test.expected) {
			t.Errorf("%q: got %q, expected %q", test.cmd, got, test.expected)
		}
	}
	if !b.LEDs[1].On() || chip.P.GPIOA.OCTL.HasBits(1<<1) {
		t.Error("led 1 on did not drive PA1 low")
	}
	if got := chip.P.BKP.DATA0[5].Get(); got != 0x1234 {
		t.Errorf("BKP DATA5 = 0x%X", got)
	}
}

func TestPollBlinksAndFeeds(t *testing.T) {
	chip, b := setup(t, config.DefaultLongan())
	reloads := chip.WatchdogReloads()

	b.Poll()
	if b.LEDs[0].On() {
		t.Error("LED toggled before the blink period")
	}
	chip.Expire(chip.P.TIMER1)
	b.Poll()
	if !b.LEDs[0].On() {
		t.Error("LED not toggled on timer expiry")
	}
	if chip.WatchdogReloads() != reloads+2 {
		t.Errorf("watchdog fed %d times, expected 2", chip.WatchdogReloads()-reloads)
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	chip := sim.New()
	t.Cleanup(chip.Close)

	cfg := config.DefaultLongan()
	cfg.Clocks.HXTAL = 0
	cfg.Clocks.SysClk = 50_000_000
	if _, err := Setup(chip.P, cfg); err == nil {
		t.Fatal("unreachable clock accepted")
	}
	if chip.P.RCU.CFG0.Field(dev.RCU_CFG0_SCS_Msk, dev.RCU_CFG0_SCS_Pos) != dev.RCU_SCS_IRC8M {
		t.Error("clock tree touched before the plan was validated")
	}

	cfg = config.DefaultLongan()
	cfg.Serial.Parity = "mark"
	if _, err := Setup(chip.P, cfg); err == nil {
		t.Error("bad parity accepted")
	}
}

func TestRemappedConsoleWithoutWatchdog(t *testing.T) {
	cfg := config.DefaultStart()
	cfg.Serial.Remap = true
	cfg.WatchdogMs = 0
	chip, b := setup(t, cfg)

	if b.Watchdog != nil || chip.WatchdogStarted() {
		t.Error("watchdog started with watchdog_ms 0")
	}
	if !chip.P.AFIO.PCF0.HasBits(dev.AFIO_PCF0_USART0_REMAP) {
		t.Error("USART0 not remapped")
	}
	if got := exec(chip, b, "wdog"); got != "wdog=off\r\nok\r\n" {
		t.Errorf("wdog = %q", got)
	}
	if b.LEDs[0].ActiveLow || chip.P.GPIOA.OCTL.HasBits(1<<7) {
		t.Error("active-high PA7 not driven low when off")
	}
}
