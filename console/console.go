// Package console runs a line-oriented command interpreter over any byte
// stream. The firmware feeds it bytes from the debug USART; every command
// answers with zero or more lines followed by "ok" or "err <reason>".
package console

import (
	"errors"
	"io"
	"sort"

	"github.com/google/shlex"
)

// MaxLine is the longest command line accepted.
const MaxLine = 128

var (
	ErrUnknown  = errors.New("unknown command")
	ErrTooLong  = errors.New("line too long")
	ErrArgCount = errors.New("wrong number of arguments")
)

// Handler runs one command. Output lines go to w; a returned error becomes
// the "err" status line.
type Handler func(w io.Writer, args []string) error

type command struct {
	help string
	run  Handler
}

// Console dispatches complete lines to registered handlers.
type Console struct {
	out      io.Writer
	line     []byte
	overflow bool
	cmds     map[string]command
}

func New(out io.Writer) *Console {
	c := &Console{
		out:  out,
		line: make([]byte, 0, MaxLine),
		cmds: make(map[string]command),
	}
	c.Handle("help", "list commands", c.help)
	return c
}

// Handle registers h under name, replacing any earlier registration.
func (c *Console) Handle(name, help string, h Handler) {
	c.cmds[name] = command{help: help, run: h}
}

// Feed consumes one received byte and runs the command when it completes
// a line. CR, LF and CRLF all end a line.
func (c *Console) Feed(b byte) {
	switch b {
	case '\r', '\n':
		if c.overflow {
			c.status(ErrTooLong)
		} else if len(c.line) > 0 {
			c.Exec(string(c.line))
		}
		c.line = c.line[:0]
		c.overflow = false
	default:
		if len(c.line) == MaxLine {
			c.overflow = true
			return
		}
		c.line = append(c.line, b)
	}
}

// Exec runs a complete command line.
func (c *Console) Exec(line string) {
	args, err := shlex.Split(line)
	if err != nil {
		c.status(err)
		return
	}
	if len(args) == 0 {
		return
	}
	cmd, ok := c.cmds[args[0]]
	if !ok {
		c.status(ErrUnknown)
		return
	}
	c.status(cmd.run(c.out, args[1:]))
}

func (c *Console) status(err error) {
	if err != nil {
		io.WriteString(c.out, "err "+err.Error()+"\r\n")
		return
	}
	io.WriteString(c.out, "ok\r\n")
}

func (c *Console) help(w io.Writer, args []string) error {
	names := make([]string, 0, len(c.cmds))
	for name := range c.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		io.WriteString(w, name+" - "+c.cmds[name].help+"\r\n")
	}
	return nil
}
