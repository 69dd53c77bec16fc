package debug

import (
	"math"
	"strconv"
	"testing"
)

func TestPrintlnHonoursEnabled(t *testing.T) {
	var got []string
	SetWriter(func(s string) { got = append(got, s) })
	defer SetWriter(nil)

	SetEnabled(false)
	Println("hidden")
	SetEnabled(true)
	Println("shown")
	SetEnabled(false)

	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFormatting(t *testing.T) {
	testCases := []struct {
		name     string
		got      string
		expected string
	}{
		{"utoa zero", Utoa(0), "0"},
		{"utoa max", Utoa(4294967295), "4294967295"},
		{"itoa negative", Itoa(-42), "-42"},
		{"itoa beyond 32 bits", Itoa(1 << 40), "1099511627776"},
		{"itoa most negative", Itoa(math.MinInt), strconv.Itoa(math.MinInt)},
		{"itoa most positive", Itoa(math.MaxInt), strconv.Itoa(math.MaxInt)},
		{"hex", Hex(0xF7018A40), "0xF7018A40"},
		{"hex small", Hex(0x1F), "0x0000001F"},
		{"mhz whole", MHz(108_000_000), "108MHz"},
		{"mhz fraction", MHz(6_500_000), "6.500MHz"},
		{"mhz khz", MHz(32_768), "0.032MHz"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %q, expected %q", tc.got, tc.expected)
			}
		})
	}
}
