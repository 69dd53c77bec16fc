package main

import (
	"strings"
	"testing"

	"github.com/google/shlex"
)

func TestQuoteArgsRoundTrip(t *testing.T) {
	tests := [][]string{
		{"echo", "plain"},
		{"echo", "two words"},
		{"echo", "it's"},
		{"echo", `say "hi"`},
	}
	for _, args := range tests {
		line := strings.Join(quoteArgs(args), " ")
		got, err := shlex.Split(line)
		if err != nil {
			t.Errorf("%q: %v", line, err)
			continue
		}
		if strings.Join(got, "\x00") != strings.Join(args, "\x00") {
			t.Errorf("%q split to %q, expected %q", line, got, args)
		}
	}
}

func TestColorize(t *testing.T) {
	tests := []struct {
		line   string
		prefix string
	}{
		{"[RCU] sysclk 108 MHz", "\x1b[36m"},
		{"err unknown command", "\x1b[31m"},
		{"plain text", "plain"},
	}
	for _, test := range tests {
		if got := colorize(test.line); !strings.HasPrefix(got, test.prefix) {
			t.Errorf("colorize(%q) = %q", test.line, got)
		}
	}
}
