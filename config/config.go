package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gd32hal/gpio"
	"gd32hal/rcu"
	"gd32hal/serial"
)

// ClockConfig holds the clock tree targets; zero means "let the planner pick"
type ClockConfig struct {
	HXTAL  uint32 `json:"hxtal"`  // External crystal in Hz, 0 for none
	SysClk uint32 `json:"sysclk"` // System clock in Hz
	AHBClk uint32 `json:"ahbclk"` // AHB clock in Hz
	APB1   uint32 `json:"apb1"`   // APB1 clock in Hz
	APB2   uint32 `json:"apb2"`   // APB2 clock in Hz
	ADCClk uint32 `json:"adcclk"` // ADC clock in Hz
}

// SerialConfig is the console USART frame format
type SerialConfig struct {
	Baud     uint32 `json:"baud"`
	Parity   string `json:"parity"`   // "none", "even" or "odd"
	StopBits string `json:"stopbits"` // "1", "0.5", "2" or "1.5"
	Remap    bool   `json:"remap"`    // Use PB6/PB7 instead of PA9/PA10
}

// HostConfig describes how the host tool reaches the board
type HostConfig struct {
	Device    string `json:"device"`     // Serial device path
	Baud      int    `json:"baud"`       // Host side baud rate
	ResetPin  string `json:"reset_pin"`  // Host GPIO wired to NRST
	Boot0Pin  string `json:"boot0_pin"`  // Host GPIO wired to BOOT0
	ResetHold int    `json:"reset_hold"` // NRST low time in ms
}

// BoardConfig represents the complete board description
type BoardConfig struct {
	Name       string       `json:"name"`
	Clocks     ClockConfig  `json:"clocks"`
	Serial     SerialConfig `json:"serial"`
	LEDs       []string     `json:"leds"`        // Pins such as "PC13"
	LEDsActive string       `json:"leds_active"` // "low" or "high"
	WatchdogMs uint32       `json:"watchdog_ms"` // 0 disables the watchdog
	Host       HostConfig   `json:"host"`
}

// LoadConfig parses a JSON configuration and returns a BoardConfig
func LoadConfig(jsonData []byte) (*BoardConfig, error) {
	var config BoardConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *BoardConfig) {
	if config.Name == "" {
		config.Name = "gd32vf103"
	}

	// Default clocks: run from the internal oscillator
	if config.Clocks.SysClk == 0 {
		if config.Clocks.HXTAL != 0 {
			config.Clocks.SysClk = 108_000_000
		} else {
			config.Clocks.SysClk = uint32(rcu.IRC8M)
		}
	}

	// Default console
	if config.Serial.Baud == 0 {
		config.Serial.Baud = 115200
	}
	if config.Serial.Parity == "" {
		config.Serial.Parity = "none"
	}
	if config.Serial.StopBits == "" {
		config.Serial.StopBits = "1"
	}

	if config.LEDsActive == "" {
		config.LEDsActive = "low"
	}

	// Default host link
	if config.Host.Baud == 0 {
		config.Host.Baud = int(config.Serial.Baud)
	}
	if config.Host.ResetHold == 0 {
		config.Host.ResetHold = 50
	}
}

var (
	ErrParity   = errors.New("config: unknown parity")
	ErrStopBits = errors.New("config: unknown stop bits")
	ErrPin      = errors.New("config: bad pin name")
)

// Validate checks the fields that have a fixed vocabulary
func (c *BoardConfig) Validate() error {
	if _, err := c.SerialConfig(); err != nil {
		return err
	}
	for _, led := range c.LEDs {
		if _, _, err := ParsePin(led); err != nil {
			return err
		}
	}
	if c.LEDsActive != "low" && c.LEDsActive != "high" {
		return fmt.Errorf("config: leds_active %q: want low or high", c.LEDsActive)
	}
	return nil
}

// Strict returns a clock builder loaded with the configured targets
func (c *BoardConfig) Strict() *rcu.Strict {
	s := rcu.NewStrict().SysClk(rcu.Hertz(c.Clocks.SysClk))
	if c.Clocks.HXTAL != 0 {
		s = s.UseHXTAL(rcu.Hertz(c.Clocks.HXTAL))
	}
	if c.Clocks.AHBClk != 0 {
		s = s.AHBClk(rcu.Hertz(c.Clocks.AHBClk))
	}
	if c.Clocks.APB1 != 0 {
		s = s.APB1Clk(rcu.Hertz(c.Clocks.APB1))
	}
	if c.Clocks.APB2 != 0 {
		s = s.APB2Clk(rcu.Hertz(c.Clocks.APB2))
	}
	if c.Clocks.ADCClk != 0 {
		s = s.ADCClk(rcu.Hertz(c.Clocks.ADCClk))
	}
	return s
}

// SerialConfig converts the console settings to a serial.Config
func (c *BoardConfig) SerialConfig() (serial.Config, error) {
	cfg := serial.Config{Baud: c.Serial.Baud}
	switch c.Serial.Parity {
	case "none":
		cfg.Parity = serial.ParityNone
	case "even":
		cfg.Parity = serial.ParityEven
	case "odd":
		cfg.Parity = serial.ParityOdd
	default:
		return cfg, fmt.Errorf("%w: %q", ErrParity, c.Serial.Parity)
	}
	switch c.Serial.StopBits {
	case "1":
		cfg.StopBits = serial.StopBits1
	case "0.5":
		cfg.StopBits = serial.StopBits0_5
	case "2":
		cfg.StopBits = serial.StopBits2
	case "1.5":
		cfg.StopBits = serial.StopBits1_5
	default:
		return cfg, fmt.Errorf("%w: %q", ErrStopBits, c.Serial.StopBits)
	}
	return cfg, nil
}

// WatchdogPeriod returns the watchdog timeout, 0 when disabled
func (c *BoardConfig) WatchdogPeriod() time.Duration {
	return time.Duration(c.WatchdogMs) * time.Millisecond
}

// ParsePin splits a pin name such as "PC13" into port and index
func ParsePin(name string) (gpio.Port, uint8, error) {
	if len(name) < 3 || len(name) > 4 || name[0] != 'P' || name[1] < 'A' || name[1] > 'E' {
		return 0, 0, fmt.Errorf("%w: %q", ErrPin, name)
	}
	var index uint8
	for _, ch := range name[2:] {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrPin, name)
		}
		index = index*10 + uint8(ch-'0')
	}
	if index > 15 {
		return 0, 0, fmt.Errorf("%w: %q", ErrPin, name)
	}
	return gpio.PortA + gpio.Port(name[1]-'A'), index, nil
}

// DefaultLongan returns the configuration of the Sipeed Longan Nano: 8 MHz
// crystal, RGB LED on PC13/PA1/PA2 (active low), console on USART0
func DefaultLongan() *BoardConfig {
	return &BoardConfig{
		Name: "longan-nano",
		Clocks: ClockConfig{
			HXTAL:  8_000_000,
			SysClk: 108_000_000,
		},
		Serial: SerialConfig{
			Baud:     115200,
			Parity:   "none",
			StopBits: "1",
		},
		LEDs:       []string{"PC13", "PA1", "PA2"},
		LEDsActive: "low",
		WatchdogMs: 2000,
		Host: HostConfig{
			Device:    "/dev/ttyUSB0",
			Baud:      115200,
			ResetPin:  "GPIO17",
			Boot0Pin:  "GPIO27",
			ResetHold: 50,
		},
	}
}

// DefaultStart returns the configuration of the GD32VF103C-START board:
// 8 MHz crystal, LED on PA7 (active high)
func DefaultStart() *BoardConfig {
	c := DefaultLongan()
	c.Name = "gd32vf103c-start"
	c.LEDs = []string{"PA7"}
	c.LEDsActive = "high"
	return c
}
