package config

import (
	"errors"
	"testing"
	"time"

	"gd32hal/gpio"
	"gd32hal/rcu"
	"gd32hal/serial"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"leds": ["PC13"]}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Clocks.SysClk != uint32(rcu.IRC8M) {
		t.Errorf("SysClk = %d, expected the IRC8M default", cfg.Clocks.SysClk)
	}
	if cfg.Serial.Baud != 115200 || cfg.Serial.Parity != "none" || cfg.Serial.StopBits != "1" {
		t.Errorf("serial defaults = %+v", cfg.Serial)
	}
	if cfg.Host.Baud != 115200 || cfg.Host.ResetHold != 50 {
		t.Errorf("host defaults = %+v", cfg.Host)
	}
	if cfg.WatchdogPeriod() != 0 {
		t.Errorf("watchdog enabled by default: %v", cfg.WatchdogPeriod())
	}
}

func TestLoadConfigCrystalDefaultsToFullSpeed(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"clocks": {"hxtal": 8000000}}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Clocks.SysClk != 108_000_000 {
		t.Errorf("SysClk = %d, expected 108 MHz", cfg.Clocks.SysClk)
	}
	plan, err := cfg.Strict().Plan()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Source != rcu.SourcePLL || !plan.PLLFromHXTAL {
		t.Errorf("plan = %+v, expected PLL from HXTAL", plan)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{`{"serial": {"parity": "mark"}}`, ErrParity},
		{`{"serial": {"stopbits": "3"}}`, ErrStopBits},
		{`{"leds": ["PF1"]}`, ErrPin},
		{`{"leds": ["PA16"]}`, ErrPin},
	}
	for _, test := range tests {
		_, err := LoadConfig([]byte(test.input))
		if !errors.Is(err, test.err) {
			t.Errorf("LoadConfig(%s) = %v, expected %v", test.input, err, test.err)
		}
	}

	if _, err := LoadConfig([]byte(`{"leds_active": "sideways"}`)); err == nil {
		t.Error("bad leds_active accepted")
	}
	if _, err := LoadConfig([]byte(`{`)); err == nil {
		t.Error("truncated JSON accepted")
	}
}

func TestSerialConfig(t *testing.T) {
	cfg := DefaultLongan()
	cfg.Serial.Parity = "odd"
	cfg.Serial.StopBits = "1.5"
	sc, err := cfg.SerialConfig()
	if err != nil {
		t.Fatal(err)
	}
	expected := serial.Config{Baud: 115200, Parity: serial.ParityOdd, StopBits: serial.StopBits1_5}
	if sc != expected {
		t.Errorf("SerialConfig = %+v, expected %+v", sc, expected)
	}
}

func TestParsePin(t *testing.T) {
	tests := []struct {
		name  string
		port  gpio.Port
		index uint8
		ok    bool
	}{
		{"PC13", gpio.PortC, 13, true},
		{"PA1", gpio.PortA, 1, true},
		{"PE15", gpio.PortE, 15, true},
		{"PA", 0, 0, false},
		{"PB1x", 0, 0, false},
		{"GPIO4", 0, 0, false},
		{"PA100", 0, 0, false},
	}
	for _, test := range tests {
		port, index, err := ParsePin(test.name)
		if (err == nil) != test.ok {
			t.Errorf("ParsePin(%q) error = %v", test.name, err)
			continue
		}
		if test.ok && (port != test.port || index != test.index) {
			t.Errorf("ParsePin(%q) = %v, %d", test.name, port, index)
		}
	}
}

func TestPresets(t *testing.T) {
	for _, cfg := range []*BoardConfig{DefaultLongan(), DefaultStart()} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", cfg.Name, err)
		}
		if _, err := cfg.Strict().Plan(); err != nil {
			t.Errorf("%s: clock plan: %v", cfg.Name, err)
		}
		if cfg.WatchdogPeriod() != 2*time.Second {
			t.Errorf("%s: watchdog = %v", cfg.Name, cfg.WatchdogPeriod())
		}
	}
}
