// Package firmware assembles the HAL into the board application: clocks
// from a BoardConfig, the USART0 console, locked status LEDs, a blink timer
// and the watchdog. The tinygo entry point only calls Setup and Poll, so
// the same code runs against the simulator in tests.
package firmware

import (
	"errors"

	"gd32hal/afio"
	"gd32hal/backup"
	"gd32hal/config"
	"gd32hal/console"
	"gd32hal/crc"
	"gd32hal/ctimer"
	"gd32hal/dbg"
	dev "gd32hal/device/gd32vf103"
	"gd32hal/gpio"
	"gd32hal/internal/debug"
	"gd32hal/rcu"
	"gd32hal/serial"
	"gd32hal/timer"
	"gd32hal/wdog"
)

// BlinkRate is how often the first LED toggles.
const BlinkRate = 2 * rcu.Hz

// Backup register holding the boot counter.
const bootSlot = 0

var ErrCRCSelfTest = errors.New("firmware: CRC unit self-test failed")

// LED is a status LED frozen in push-pull output mode.
type LED struct {
	Name      string
	ActiveLow bool
	pin       gpio.Pin[gpio.Locked, gpio.Output[gpio.PushPull, gpio.Speed2MHz]]
}

// Set turns the LED on or off honouring its polarity.
func (l *LED) Set(on bool) {
	gpio.Set(l.pin, on != l.ActiveLow)
}

// On reports whether the LED is lit.
func (l *LED) On() bool {
	return gpio.IsSetHigh(l.pin) != l.ActiveLow
}

func (l *LED) Toggle() {
	gpio.Toggle(l.pin)
}

// Board is the running application.
type Board struct {
	Config   *config.BoardConfig
	Clocks   rcu.Clocks
	Serial   *serial.Serial
	Console  *console.Console
	LEDs     []*LED
	Frozen   []gpio.Frozen
	Watchdog *wdog.Enabled
	Delay    *ctimer.Delay
	Boots    uint16

	p      *dev.Peripherals
	rcu    *rcu.RCU
	ports  map[gpio.Port]*gpio.Parts
	digest *crc.Digest
	backup *backup.Parts
	blink  *timer.Timer
	dbg    *dbg.DBG
}

func (b *Board) port(p gpio.Port) *gpio.Parts {
	if parts, ok := b.ports[p]; ok {
		return parts
	}
	raws := [...]*dev.GPIO_Type{b.p.GPIOA, b.p.GPIOB, b.p.GPIOC, b.p.GPIOD, b.p.GPIOE}
	parts := gpio.Split(raws[p], p, b.rcu.APB2)
	b.ports[p] = parts
	return parts
}

func ctlFor(parts *gpio.Parts, index uint8) *gpio.CTL {
	if index < 8 {
		return parts.CTL0
	}
	return parts.CTL1
}

// Setup brings the board up from cfg. Configuration mistakes are returned
// as errors before any clock is switched; HAL contract breaches panic.
func Setup(p *dev.Peripherals, cfg *config.BoardConfig) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Strict().Plan(); err != nil {
		return nil, err
	}
	sc, err := cfg.SerialConfig()
	if err != nil {
		return nil, err
	}

	b := &Board{
		Config: cfg,
		p:      p,
		rcu:    rcu.Constrain(p.RCU),
		ports:  make(map[gpio.Port]*gpio.Parts),
	}
	b.Clocks = cfg.Strict().Freeze(b.rcu.CFG)

	b.setupConsole(sc)
	if err := b.setupLEDs(); err != nil {
		return nil, err
	}
	if err := b.setupCRC(); err != nil {
		return nil, err
	}

	b.backup = backup.Split(p.BKP, p.PMU, b.rcu.APB1)
	b.Boots = b.backup.Data.Read(bootSlot) + 1
	b.backup.Data.Write(bootSlot, b.Boots)

	b.Delay = ctimer.NewDelay(ctimer.New(p.CTIMER), b.Clocks)
	b.blink = timer.NewTimer1(p.TIMER1, b.Clocks, b.rcu.APB1)
	b.blink.StartCount(BlinkRate)

	b.dbg = dbg.New(p.DBG)
	if period := cfg.WatchdogPeriod(); period > 0 {
		free := wdog.New(p.FWDGT)
		free.StopOnDebug(b.dbg)
		b.Watchdog = free.Start(period)
	}

	b.registerCommands()
	debug.Println("[BOARD] " + cfg.Name + " up, boot " + debug.Utoa(uint32(b.Boots)))
	return b, nil
}

func (b *Board) setupConsole(sc serial.Config) {
	af := afio.Split(b.p.AFIO, b.rcu.APB2)
	txPort, txIdx, rxIdx := gpio.PortA, uint8(9), uint8(10)
	if b.Config.Serial.Remap {
		af.PCF0.RemapUSART0(true)
		txPort, txIdx, rxIdx = gpio.PortB, 6, 7
	}
	parts := b.port(txPort)
	tx := gpio.IntoPushPullAlternateSpeed[gpio.Speed10MHz](parts.Pins[txIdx], ctlFor(parts, txIdx))
	rx := gpio.IntoPullUpInput(parts.Pins[rxIdx], ctlFor(parts, rxIdx), parts.OCTL)

	b.Serial = serial.NewUSART0(b.p.USART0, tx, rx, af.PCF0, sc, b.Clocks, b.rcu.APB2)
	b.Console = console.New(b.Serial)
	debug.SetWriter(func(s string) {
		b.Serial.Write([]byte(s))
		b.Serial.Write([]byte("\r\n"))
	})
	debug.SetEnabled(true)
}

func (b *Board) setupLEDs() error {
	var used []gpio.Port
	for _, name := range b.Config.LEDs {
		port, idx, err := config.ParsePin(name)
		if err != nil {
			return err
		}
		parts := b.port(port)
		pin := gpio.IntoPushPullOutputSpeed[gpio.Speed2MHz](parts.Pins[idx], ctlFor(parts, idx))
		led := &LED{
			Name:      name,
			ActiveLow: b.Config.LEDsActive == "low",
			pin:       gpio.LockPin(pin, parts.Lock),
		}
		led.Set(false)
		b.LEDs = append(b.LEDs, led)
		if !containsPort(used, port) {
			used = append(used, port)
		}
	}
	for _, port := range used {
		b.Frozen = append(b.Frozen, b.ports[port].Lock.Freeze())
	}
	return nil
}

func containsPort(ports []gpio.Port, p gpio.Port) bool {
	for _, q := range ports {
		if q == p {
			return true
		}
	}
	return false
}

func (b *Board) setupCRC() error {
	b.digest = crc.New(b.p.CRC, b.rcu.AHB).NewDigest()
	b.digest.WriteUint32(0xABCD1234)
	ok := b.digest.Sum32() == 0xF7018A40
	b.digest.Reset()
	if !ok {
		return ErrCRCSelfTest
	}
	return nil
}

// Poll runs one pass of the main loop without blocking: it feeds the
// watchdog, drains received bytes into the console and advances the blink.
func (b *Board) Poll() {
	if b.Watchdog != nil {
		b.Watchdog.Feed()
	}
	for {
		c, err := b.Serial.ReadByte()
		if err == serial.ErrWouldBlock {
			break
		}
		if err != nil {
			debug.Println("[SERIAL] " + err.Error())
			continue
		}
		b.Console.Feed(c)
	}
	if b.blink.Wait() == nil && len(b.LEDs) > 0 {
		b.LEDs[0].Toggle()
	}
}
