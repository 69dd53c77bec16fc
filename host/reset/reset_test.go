package reset

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

type event struct {
	line  string
	level gpio.Level
}

type fakeLine struct {
	name string
	log  *[]event
	err  error
}

func (f *fakeLine) Out(l gpio.Level) error {
	if f.err != nil {
		return f.err
	}
	*f.log = append(*f.log, event{f.name, l})
	return nil
}

func TestPulse(t *testing.T) {
	tests := []struct {
		name       string
		bootloader bool
		expected   []event
	}{
		{"firmware", false, []event{{"NRST", gpio.Low}, {"BOOT0", gpio.Low}, {"NRST", gpio.High}}},
		{"bootloader", true, []event{{"NRST", gpio.Low}, {"BOOT0", gpio.High}, {"NRST", gpio.High}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var log []event
			l := &Lines{NRST: &fakeLine{name: "NRST", log: &log}, BOOT0: &fakeLine{name: "BOOT0", log: &log}}
			if err := l.Pulse(test.bootloader, time.Millisecond); err != nil {
				t.Fatalf("Pulse: %v", err)
			}
			if len(log) != len(test.expected) {
				t.Fatalf("events = %v, expected %v", log, test.expected)
			}
			for i := range log {
				if log[i] != test.expected[i] {
					t.Errorf("event %d = %v, expected %v", i, log[i], test.expected[i])
				}
			}
		})
	}
}

func TestPulseErrors(t *testing.T) {
	var log []event
	noBoot := &Lines{NRST: &fakeLine{name: "NRST", log: &log}}
	if err := noBoot.Pulse(false, 0); err != nil {
		t.Errorf("reset without BOOT0: %v", err)
	}
	log = nil
	if err := noBoot.Pulse(true, 0); err == nil {
		t.Error("bootloader entry without BOOT0 succeeded")
	}
	if len(log) != 0 {
		t.Errorf("refused bootloader entry still drove %v", log)
	}

	broken := errors.New("line stuck")
	l := &Lines{NRST: &fakeLine{name: "NRST", log: &log, err: broken}}
	if err := l.Pulse(false, 0); !errors.Is(err, broken) {
		t.Errorf("Pulse = %v, expected wrapped %v", err, broken)
	}
}
