package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func feed(c *Console, s string) {
	for i := 0; i < len(s); i++ {
		c.Feed(s[i])
	}
}

func newEcho(out *bytes.Buffer) *Console {
	c := New(out)
	c.Handle("echo", "print arguments", func(w io.Writer, args []string) error {
		io.WriteString(w, strings.Join(args, "|")+"\r\n")
		return nil
	})
	c.Handle("fail", "always fails", func(w io.Writer, args []string) error {
		return errors.New("boom")
	})
	return c
}

func TestExec(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"echo a b\n", "a|b\r\nok\r\n"},
		{"echo 'a b' c\r\n", "a b|c\r\nok\r\n"},
		{"echo x\r", "x\r\nok\r\n"},
		{"fail\n", "err boom\r\n"},
		{"nope\n", "err unknown command\r\n"},
		{"\n\r\n", ""},
	}
	for _, test := range tests {
		var out bytes.Buffer
		feed(newEcho(&out), test.input)
		if out.String() != test.expected {
			t.Errorf("input %q: got %q, expected %q", test.input, out.String(), test.expected)
		}
	}
}

func TestUnbalancedQuote(t *testing.T) {
	var out bytes.Buffer
	feed(newEcho(&out), "echo \"open\n")
	if !strings.HasPrefix(out.String(), "err ") {
		t.Errorf("got %q, expected an error status", out.String())
	}
}

func TestLineTooLong(t *testing.T) {
	var out bytes.Buffer
	c := newEcho(&out)
	feed(c, "echo "+strings.Repeat("x", MaxLine)+"\n")
	if out.String() != "err line too long\r\n" {
		t.Errorf("got %q", out.String())
	}
	out.Reset()
	feed(c, "echo ok\n")
	if out.String() != "ok\r\nok\r\n" {
		t.Errorf("console did not recover: %q", out.String())
	}
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	feed(newEcho(&out), "help\n")
	expected := "echo - print arguments\r\nfail - always fails\r\nhelp - list commands\r\nok\r\n"
	if out.String() != expected {
		t.Errorf("got %q, expected %q", out.String(), expected)
	}
}
