package gpio

// Lock states. A Locked pin has its bit set in the port's lock shadow and
// can no longer change mode.
type (
	Unlocked struct{}
	Locked   struct{}
)

type LockState interface {
	Unlocked | Locked
}

// Input pull configurations.
type (
	Floating struct{}
	PullUp   struct{}
	PullDown struct{}
)

type Pull interface {
	Floating | PullUp | PullDown
}

// Output drivers.
type (
	PushPull  struct{}
	OpenDrain struct{}
)

type Drive interface {
	PushPull | OpenDrain
}

// Maximum output slew rates.
type (
	Speed2MHz  struct{}
	Speed10MHz struct{}
	Speed50MHz struct{}
)

type Speed interface {
	Speed2MHz | Speed10MHz | Speed50MHz
}

// Pin modes.
type (
	Analog                      struct{}
	Input[P Pull]               struct{}
	Output[D Drive, S Speed]    struct{}
	Alternate[D Drive, S Speed] struct{}
)

// Mode is every electrical configuration a pin can be put in.
type Mode interface {
	Analog |
		Input[Floating] | Input[PullUp] | Input[PullDown] |
		Output[PushPull, Speed2MHz] | Output[PushPull, Speed10MHz] | Output[PushPull, Speed50MHz] |
		Output[OpenDrain, Speed2MHz] | Output[OpenDrain, Speed10MHz] | Output[OpenDrain, Speed50MHz] |
		Alternate[PushPull, Speed2MHz] | Alternate[PushPull, Speed10MHz] | Alternate[PushPull, Speed50MHz] |
		Alternate[OpenDrain, Speed2MHz] | Alternate[OpenDrain, Speed10MHz] | Alternate[OpenDrain, Speed50MHz]
	nibble() uint32
	name() string
}

// Driven modes have an output latch to write, read back and toggle.
type Driven interface {
	Output[PushPull, Speed2MHz] | Output[PushPull, Speed10MHz] | Output[PushPull, Speed50MHz] |
		Output[OpenDrain, Speed2MHz] | Output[OpenDrain, Speed10MHz] | Output[OpenDrain, Speed50MHz] |
		Alternate[PushPull, Speed2MHz] | Alternate[PushPull, Speed10MHz] | Alternate[PushPull, Speed50MHz] |
		Alternate[OpenDrain, Speed2MHz] | Alternate[OpenDrain, Speed10MHz] | Alternate[OpenDrain, Speed50MHz]
}

// Sensed modes have a meaningful pad level: inputs, and open-drain outputs
// whose pad another device may pull low.
type Sensed interface {
	Input[Floating] | Input[PullUp] | Input[PullDown] |
		Output[OpenDrain, Speed2MHz] | Output[OpenDrain, Speed10MHz] | Output[OpenDrain, Speed50MHz]
}

// The control nibble of a pin is CTL[1:0] << 2 | MD[1:0]. MD 00 is input,
// anything else is an output at the given speed.

func (Analog) nibble() uint32 { return 0b0000 }

func (Input[P]) nibble() uint32 {
	var p P
	if _, ok := any(p).(Floating); ok {
		return 0b0100
	}
	return 0b1000
}

func (Output[D, S]) nibble() uint32 {
	return driveBit[D]()<<2 | speedBits[S]()
}

func (Alternate[D, S]) nibble() uint32 {
	return (0b10|driveBit[D]())<<2 | speedBits[S]()
}

func (Analog) name() string { return "Analog" }

func (Input[P]) name() string {
	var p P
	switch any(p).(type) {
	case PullUp:
		return "Input[PullUp]"
	case PullDown:
		return "Input[PullDown]"
	}
	return "Input[Floating]"
}

func (Output[D, S]) name() string {
	return "Output[" + driveName[D]() + "," + speedName[S]() + "]"
}

func (Alternate[D, S]) name() string {
	return "Alternate[" + driveName[D]() + "," + speedName[S]() + "]"
}

func speedBits[S Speed]() uint32 {
	var s S
	switch any(s).(type) {
	case Speed2MHz:
		return 0b10
	case Speed10MHz:
		return 0b01
	}
	return 0b11
}

func speedName[S Speed]() string {
	var s S
	switch any(s).(type) {
	case Speed2MHz:
		return "2MHz"
	case Speed10MHz:
		return "10MHz"
	}
	return "50MHz"
}

func driveBit[D Drive]() uint32 {
	var d D
	if _, ok := any(d).(OpenDrain); ok {
		return 1
	}
	return 0
}

func driveName[D Drive]() string {
	if driveBit[D]() == 1 {
		return "OpenDrain"
	}
	return "PushPull"
}

// modeName names M for diagnostics; M is not constrained so any pin can be
// described.
func modeName[M any]() string {
	var m M
	if n, ok := any(m).(interface{ name() string }); ok {
		return n.name()
	}
	return "?"
}
