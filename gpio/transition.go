package gpio

import "gd32hal/volatile"

func into[M2 Mode, M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, M2] {
	p.live()
	ctl.check(p.port, p.index)
	q := consume[Unlocked, M2](p)
	var m M2
	writeNibble(ctl, q.index, m.nibble())
	return q
}

// IntoAnalog disconnects the digital input path of p.
func IntoAnalog[M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Analog] {
	return into[Analog](p, ctl)
}

// IntoFloatingInput makes p a high-impedance input.
func IntoFloatingInput[M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Input[Floating]] {
	return into[Input[Floating]](p, ctl)
}

// IntoPullUpInput makes p an input with the internal pull-up. The pull
// direction lives in OCTL and is written before the mode, so the pin never
// pulls the wrong way.
func IntoPullUpInput[M Mode](p Pin[Unlocked, M], ctl *CTL, octl *OCTL) Pin[Unlocked, Input[PullUp]] {
	p.live()
	ctl.check(p.port, p.index)
	octl.check(p.port)
	volatile.SetBit(&p.port.raw.OCTL, true, p.index)
	return into[Input[PullUp]](p, ctl)
}

// IntoPullDownInput makes p an input with the internal pull-down.
func IntoPullDownInput[M Mode](p Pin[Unlocked, M], ctl *CTL, octl *OCTL) Pin[Unlocked, Input[PullDown]] {
	p.live()
	ctl.check(p.port, p.index)
	octl.check(p.port)
	volatile.SetBit(&p.port.raw.OCTL, false, p.index)
	return into[Input[PullDown]](p, ctl)
}

// IntoPushPullOutput makes p a push-pull output at 50MHz.
func IntoPushPullOutput[M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Output[PushPull, Speed50MHz]] {
	return into[Output[PushPull, Speed50MHz]](p, ctl)
}

// IntoOpenDrainOutput makes p an open-drain output at 50MHz.
func IntoOpenDrainOutput[M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Output[OpenDrain, Speed50MHz]] {
	return into[Output[OpenDrain, Speed50MHz]](p, ctl)
}

// IntoPushPullAlternate hands p to a peripheral as a push-pull output.
func IntoPushPullAlternate[M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Alternate[PushPull, Speed50MHz]] {
	return into[Alternate[PushPull, Speed50MHz]](p, ctl)
}

// IntoOpenDrainAlternate hands p to a peripheral as an open-drain output.
func IntoOpenDrainAlternate[M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Alternate[OpenDrain, Speed50MHz]] {
	return into[Alternate[OpenDrain, Speed50MHz]](p, ctl)
}

// The Speed forms take the slew rate as an explicit type argument:
//
//	led := gpio.IntoPushPullOutputSpeed[gpio.Speed2MHz](pin, parts.CTL1)

func intoSpeed[M2 any, M Mode](p Pin[Unlocked, M], ctl *CTL, nibble uint32) Pin[Unlocked, M2] {
	p.live()
	ctl.check(p.port, p.index)
	q := consume[Unlocked, M2](p)
	writeNibble(ctl, q.index, nibble)
	return q
}

func IntoPushPullOutputSpeed[S Speed, M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Output[PushPull, S]] {
	return intoSpeed[Output[PushPull, S]](p, ctl, 0b00<<2|speedBits[S]())
}

func IntoOpenDrainOutputSpeed[S Speed, M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Output[OpenDrain, S]] {
	return intoSpeed[Output[OpenDrain, S]](p, ctl, 0b01<<2|speedBits[S]())
}

func IntoPushPullAlternateSpeed[S Speed, M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Alternate[PushPull, S]] {
	return intoSpeed[Alternate[PushPull, S]](p, ctl, 0b10<<2|speedBits[S]())
}

func IntoOpenDrainAlternateSpeed[S Speed, M Mode](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, Alternate[OpenDrain, S]] {
	return intoSpeed[Alternate[OpenDrain, S]](p, ctl, 0b11<<2|speedBits[S]())
}

// Push-pull and open-drain differ in CTL bit 0 only, so switching between
// them within one category is a single atomic bit flip.

func flipDrive[M2, M any](p Pin[Unlocked, M], ctl *CTL) Pin[Unlocked, M2] {
	p.live()
	ctl.check(p.port, p.index)
	q := consume[Unlocked, M2](p)
	volatile.ToggleBit(ctl.reg, offset(q.index)+2)
	return q
}

func SwitchToOpenDrain[S Speed](p Pin[Unlocked, Output[PushPull, S]], ctl *CTL) Pin[Unlocked, Output[OpenDrain, S]] {
	return flipDrive[Output[OpenDrain, S]](p, ctl)
}

func SwitchToPushPull[S Speed](p Pin[Unlocked, Output[OpenDrain, S]], ctl *CTL) Pin[Unlocked, Output[PushPull, S]] {
	return flipDrive[Output[PushPull, S]](p, ctl)
}

func SwitchAlternateToOpenDrain[S Speed](p Pin[Unlocked, Alternate[PushPull, S]], ctl *CTL) Pin[Unlocked, Alternate[OpenDrain, S]] {
	return flipDrive[Alternate[OpenDrain, S]](p, ctl)
}

func SwitchAlternateToPushPull[S Speed](p Pin[Unlocked, Alternate[OpenDrain, S]], ctl *CTL) Pin[Unlocked, Alternate[PushPull, S]] {
	return flipDrive[Alternate[PushPull, S]](p, ctl)
}

// changeSpeed rewrites MD one bit at a time, setting before clearing, so
// every intermediate value is still an output of the same kind.
func changeSpeed[M2, M any](p Pin[Unlocked, M], ctl *CTL, from, to uint32) Pin[Unlocked, M2] {
	p.live()
	ctl.check(p.port, p.index)
	q := consume[Unlocked, M2](p)
	off := offset(q.index)
	for bit := uint8(0); bit < 2; bit++ {
		if to&^from&(1<<bit) != 0 {
			volatile.SetBit(ctl.reg, true, off+bit)
		}
	}
	for bit := uint8(0); bit < 2; bit++ {
		if from&^to&(1<<bit) != 0 {
			volatile.SetBit(ctl.reg, false, off+bit)
		}
	}
	return q
}

// SetOutputSpeed changes the slew rate of an output, S2 being the new one.
func SetOutputSpeed[S2 Speed, D Drive, S Speed](p Pin[Unlocked, Output[D, S]], ctl *CTL) Pin[Unlocked, Output[D, S2]] {
	return changeSpeed[Output[D, S2]](p, ctl, speedBits[S](), speedBits[S2]())
}

// SetAlternateSpeed changes the slew rate of an alternate function output.
func SetAlternateSpeed[S2 Speed, D Drive, S Speed](p Pin[Unlocked, Alternate[D, S]], ctl *CTL) Pin[Unlocked, Alternate[D, S2]] {
	return changeSpeed[Alternate[D, S2]](p, ctl, speedBits[S](), speedBits[S2]())
}
