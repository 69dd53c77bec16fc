package rcu

// Hertz is a frequency in cycles per second.
type Hertz uint32

const (
	Hz  Hertz = 1
	KHz Hertz = 1_000
	MHz Hertz = 1_000_000
)

// Fixed oscillator frequencies and bus limits.
const (
	IRC8M Hertz = 8 * MHz

	HXTALMin Hertz = 4 * MHz
	HXTALMax Hertz = 32 * MHz

	SysClkMax  Hertz = 108 * MHz
	AHBClkMax  Hertz = 108 * MHz
	APB1ClkMax Hertz = 54 * MHz
	APB2ClkMax Hertz = 108 * MHz
	ADCClkMax  Hertz = 14 * MHz
)

// Clocks is the frozen clock tree: the system clock plus the divider of each
// bus below it. Only Strict.Freeze creates one, so every peripheral that
// derives a rate from it sees the frequencies actually committed.
type Clocks struct {
	sys       Hertz
	ahbShift  uint8
	apb1Shift uint8
	apb2Shift uint8
	adcDiv    uint8
	usb       bool
}

// SysClk returns CK_SYS.
func (c Clocks) SysClk() Hertz { return c.sys }

// AHBClk returns CK_AHB.
func (c Clocks) AHBClk() Hertz { return c.sys >> c.ahbShift }

// APB1Clk returns CK_APB1.
func (c Clocks) APB1Clk() Hertz { return c.AHBClk() >> c.apb1Shift }

// APB2Clk returns CK_APB2.
func (c Clocks) APB2Clk() Hertz { return c.AHBClk() >> c.apb2Shift }

// Timer0Clk returns the clock of TIMER0, which hangs off APB2. Timers run
// at twice their bus clock whenever the bus prescaler is not /1.
func (c Clocks) Timer0Clk() Hertz {
	if c.apb2Shift == 0 {
		return c.APB2Clk()
	}
	return c.APB2Clk() * 2
}

// Timer1Clk returns the clock of TIMER1..TIMER6 on APB1.
func (c Clocks) Timer1Clk() Hertz {
	if c.apb1Shift == 0 {
		return c.APB1Clk()
	}
	return c.APB1Clk() * 2
}

// ADCClk returns CK_ADC.
func (c Clocks) ADCClk() Hertz { return c.APB2Clk() / Hertz(c.adcDiv) }

// USBClk returns CK_USBFS and whether the PLL output can feed USB at all.
func (c Clocks) USBClk() (Hertz, bool) {
	if !c.usb {
		return 0, false
	}
	return 48 * MHz, true
}

// Shifts returns the AHB, APB1 and APB2 prescaler exponents.
func (c Clocks) Shifts() (ahb, apb1, apb2 uint8) {
	return c.ahbShift, c.apb1Shift, c.apb2Shift
}
