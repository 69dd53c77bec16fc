package rcu

import (
	"errors"

	"gd32hal/internal/debug"
)

var (
	ErrHXTALRange        = errors.New("rcu: HXTAL outside 4-32MHz")
	ErrTooFast           = errors.New("rcu: frequency above bus maximum")
	ErrSysClkUnreachable = errors.New("rcu: no exact PLL setting for system clock")
	ErrAHBUnreachable    = errors.New("rcu: no AHB prescaler gives exact frequency")
	ErrAPBUnreachable    = errors.New("rcu: no APB prescaler gives exact frequency")
	ErrADCUnreachable    = errors.New("rcu: no ADC prescaler gives exact frequency")
)

// PlanError carries the frequency that could not be reached.
type PlanError struct {
	Err  error
	Want Hertz
}

func (e *PlanError) Error() string {
	return e.Err.Error() + " (" + debug.MHz(uint32(e.Want)) + ")"
}

func (e *PlanError) Unwrap() error { return e.Err }

func planError(err error, want Hertz) error {
	return &PlanError{Err: err, Want: want}
}

// Source is the system clock source.
type Source uint8

const (
	SourceIRC8M Source = iota
	SourceHXTAL
	SourcePLL
)

func (s Source) String() string {
	switch s {
	case SourceIRC8M:
		return "IRC8M"
	case SourceHXTAL:
		return "HXTAL"
	case SourcePLL:
		return "PLL"
	}
	return "?"
}

// Strict builds a clock tree from exact target frequencies. Every target
// has to be reachable exactly; nothing is rounded.
type Strict struct {
	hxtal Hertz
	sys   Hertz
	ahb   Hertz
	apb1  Hertz
	apb2  Hertz
	adc   Hertz
}

// NewStrict returns a builder with every target left to its default.
func NewStrict() *Strict {
	return &Strict{}
}

// UseHXTAL declares an external crystal of frequency f.
func (s *Strict) UseHXTAL(f Hertz) *Strict {
	s.hxtal = f
	return s
}

func (s *Strict) SysClk(f Hertz) *Strict {
	s.sys = f
	return s
}

func (s *Strict) AHBClk(f Hertz) *Strict {
	s.ahb = f
	return s
}

func (s *Strict) APB1Clk(f Hertz) *Strict {
	s.apb1 = f
	return s
}

func (s *Strict) APB2Clk(f Hertz) *Strict {
	s.apb2 = f
	return s
}

func (s *Strict) ADCClk(f Hertz) *Strict {
	s.adc = f
	return s
}

// ClockPlan is the register-level result of planning: which oscillator and
// PLL setting to use and every prescaler field. Clocks is what the plan
// yields once committed.
type ClockPlan struct {
	Source Source
	HXTAL  Hertz

	// PLL settings, valid when Source is SourcePLL. PLLFromHXTAL selects
	// HXTAL/PREDV0 as the PLL input, otherwise IRC8M/2 feeds it.
	PLLFromHXTAL bool
	PREDV0       uint8 // 1..16
	PLLMF        uint8 // 5-bit PLLMF field code

	AHBShift  uint8
	APB1Shift uint8
	APB2Shift uint8
	ADCDiv    uint8

	USBValid bool
	USBPSC   uint8 // USBFSPSC code, valid with USBValid

	Clocks Clocks
}

// multiplier is a PLL factor num/den; the only fraction is x6.5.
type multiplier struct {
	num, den uint32
	code     uint8
}

// pllMultipliers lists every PLLMF setting in search order. x15 does not
// exist; x6.5 has its own code.
var pllMultipliers = func() []multiplier {
	var ms []multiplier
	for m := uint32(2); m <= 32; m++ {
		var code uint8
		switch {
		case m <= 14:
			code = uint8(m - 2)
		case m == 15:
			continue
		case m == 16:
			code = 0b01110
		default:
			code = uint8(m - 1)
		}
		ms = append(ms, multiplier{num: m, den: 1, code: code})
	}
	return append(ms, multiplier{num: 13, den: 2, code: 0b01101})
}()

// ahbShifts skips 5: the AHB prescaler has no /32 setting.
var ahbShifts = []uint8{0, 1, 2, 3, 4, 6, 7, 8, 9}

var adcDividers = []uint8{2, 4, 6, 8, 12, 16}

// Plan resolves the targets into register settings without touching the
// hardware.
func (s *Strict) Plan() (ClockPlan, error) {
	var p ClockPlan
	if s.hxtal != 0 && (s.hxtal < HXTALMin || s.hxtal > HXTALMax) {
		return p, planError(ErrHXTALRange, s.hxtal)
	}
	p.HXTAL = s.hxtal

	sys := s.sys
	if sys == 0 {
		sys = IRC8M
		if s.hxtal != 0 {
			sys = s.hxtal
		}
	}
	if sys > SysClkMax {
		return p, planError(ErrTooFast, sys)
	}

	switch {
	case s.hxtal != 0 && sys == s.hxtal:
		p.Source = SourceHXTAL
	case sys == IRC8M:
		p.Source = SourceIRC8M
	default:
		p.Source = SourcePLL
		if !s.planPLL(&p, sys) {
			return p, planError(ErrSysClkUnreachable, sys)
		}
	}

	ahb := s.ahb
	if ahb == 0 {
		ahb = sys
	}
	if ahb > AHBClkMax {
		return p, planError(ErrTooFast, ahb)
	}
	shift, ok := findShift(sys, ahb, ahbShifts)
	if !ok {
		return p, planError(ErrAHBUnreachable, ahb)
	}
	p.AHBShift = shift

	apb2 := s.apb2
	if apb2 == 0 {
		apb2 = ahb
	}
	if apb2 > APB2ClkMax {
		return p, planError(ErrTooFast, apb2)
	}
	if p.APB2Shift, ok = findShift(ahb, apb2, apbShifts); !ok {
		return p, planError(ErrAPBUnreachable, apb2)
	}

	if s.apb1 == 0 {
		for ahb>>p.APB1Shift > APB1ClkMax {
			p.APB1Shift++
		}
	} else {
		if s.apb1 > APB1ClkMax {
			return p, planError(ErrTooFast, s.apb1)
		}
		if p.APB1Shift, ok = findShift(ahb, s.apb1, apbShifts); !ok {
			return p, planError(ErrAPBUnreachable, s.apb1)
		}
	}

	if s.adc == 0 {
		for _, d := range adcDividers {
			if apb2/Hertz(d) <= ADCClkMax {
				p.ADCDiv = d
				break
			}
		}
	} else {
		if s.adc > ADCClkMax {
			return p, planError(ErrTooFast, s.adc)
		}
		for _, d := range adcDividers {
			if apb2%Hertz(d) == 0 && apb2/Hertz(d) == s.adc {
				p.ADCDiv = d
				break
			}
		}
		if p.ADCDiv == 0 {
			return p, planError(ErrADCUnreachable, s.adc)
		}
	}

	// USB needs 48MHz from a crystal-referenced PLL.
	if p.Source == SourcePLL && p.PLLFromHXTAL {
		switch sys {
		case 48 * MHz:
			p.USBValid, p.USBPSC = true, 0b01
		case 72 * MHz:
			p.USBValid, p.USBPSC = true, 0b00
		case 96 * MHz:
			p.USBValid, p.USBPSC = true, 0b11
		}
	}

	p.Clocks = Clocks{
		sys:       sys,
		ahbShift:  p.AHBShift,
		apb1Shift: p.APB1Shift,
		apb2Shift: p.APB2Shift,
		adcDiv:    p.ADCDiv,
		usb:       p.USBValid,
	}
	return p, nil
}

var apbShifts = []uint8{0, 1, 2, 3, 4}

// planPLL looks for the first divider/multiplier pair that hits sys
// exactly, smallest divider first.
func (s *Strict) planPLL(p *ClockPlan, sys Hertz) bool {
	type input struct {
		freq Hertz
		div  uint8
	}
	var inputs []input
	if s.hxtal != 0 {
		for d := uint8(1); d <= 16; d++ {
			if s.hxtal%Hertz(d) == 0 {
				inputs = append(inputs, input{s.hxtal / Hertz(d), d})
			}
		}
	} else {
		inputs = append(inputs, input{IRC8M / 2, 0})
	}
	for _, in := range inputs {
		for _, m := range pllMultipliers {
			f := uint64(in.freq) * uint64(m.num)
			if f%uint64(m.den) != 0 || f/uint64(m.den) != uint64(sys) {
				continue
			}
			p.PLLFromHXTAL = s.hxtal != 0
			p.PREDV0 = in.div
			p.PLLMF = m.code
			return true
		}
	}
	return false
}

// findShift returns the exponent that divides from down to exactly to.
func findShift(from, to Hertz, shifts []uint8) (uint8, bool) {
	for _, sh := range shifts {
		if from%(1<<sh) == 0 && from>>sh == to {
			return sh, true
		}
	}
	return 0, false
}

// Freeze plans the clock tree, commits it through cfg and returns the
// resulting snapshot. An unreachable target is a boot-time configuration
// bug and panics.
func (s *Strict) Freeze(cfg *CFG) Clocks {
	p, err := s.Plan()
	if err != nil {
		panic(err.Error())
	}
	cfg.commit(&p)
	debug.Println("[RCU] " + p.Source.String() + " sys " + debug.MHz(uint32(p.Clocks.SysClk())) +
		" ahb " + debug.MHz(uint32(p.Clocks.AHBClk())) +
		" apb1 " + debug.MHz(uint32(p.Clocks.APB1Clk())) +
		" apb2 " + debug.MHz(uint32(p.Clocks.APB2Clk())))
	return p.Clocks
}
