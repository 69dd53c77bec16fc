package board

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gd32hal/host/serial"
)

var (
	ErrNotConnected = errors.New("not connected to board")
	ErrTimeout      = errors.New("timed out waiting for board")
)

// CommandError is an "err" status line returned by the firmware console
type CommandError struct {
	Command string
	Reason  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("board: %s: %s", e.Command, e.Reason)
}

// Board represents a connection to the firmware console on USART0
type Board struct {
	// Serial port
	port serial.Port

	// Bytes received but not yet split into lines
	pending []byte

	// Log receives lines that arrive outside a command reply
	Log func(line string)

	// Timeout bounds each Query
	Timeout time.Duration

	// Connection state
	connected bool
}

// Identity is the reply to the "id" command
type Identity struct {
	DebugID  uint32
	UniqueID [3]uint32
	FlashKB  uint16
	SRAMKB   uint16
	SysClk   uint32
	Fields   map[string]string
}

// NewBoard creates a new Board instance (not yet connected)
func NewBoard() *Board {
	return &Board{
		Timeout: 2 * time.Second,
	}
}

// Connect connects to a board via serial port
func (b *Board) Connect(device string, baud int) error {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud
	return b.ConnectWithConfig(cfg)
}

// ConnectWithConfig connects to a board with a custom serial config
func (b *Board) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	b.Attach(port)
	return nil
}

// Attach uses an already open port
func (b *Board) Attach(port serial.Port) {
	b.port = port
	b.pending = b.pending[:0]
	b.connected = true
}

// Close closes the connection to the board
func (b *Board) Close() error {
	if !b.connected {
		return nil
	}
	b.connected = false
	return b.port.Close()
}

// IsConnected returns whether the board is connected
func (b *Board) IsConnected() bool {
	return b.connected
}

// readLine returns the next line without its terminator. A port read that
// returns no data (read timeout) is retried until deadline.
func (b *Board) readLine(deadline time.Time) (string, error) {
	buf := make([]byte, 64)
	for {
		if i := bytes.IndexAny(b.pending, "\r\n"); i >= 0 {
			line := string(b.pending[:i])
			rest := b.pending[i+1:]
			if b.pending[i] == '\r' && len(rest) > 0 && rest[0] == '\n' {
				rest = rest[1:]
			}
			b.pending = append(b.pending[:0], rest...)
			if line == "" {
				continue
			}
			return line, nil
		}
		if time.Now().After(deadline) {
			return "", ErrTimeout
		}
		n, err := b.port.Read(buf)
		b.pending = append(b.pending, buf[:n]...)
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read from board: %w", err)
		}
		if n == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// Query sends one command line and returns the reply lines before the
// status line. Debug lines (those starting with '[') are passed to Log.
func (b *Board) Query(cmd string) ([]string, error) {
	if !b.connected {
		return nil, ErrNotConnected
	}
	if _, err := io.WriteString(b.port, cmd+"\n"); err != nil {
		return nil, fmt.Errorf("failed to send %q: %w", cmd, err)
	}

	deadline := time.Now().Add(b.Timeout)
	var reply []string
	for {
		line, err := b.readLine(deadline)
		if err != nil {
			return reply, fmt.Errorf("%s: %w", cmd, err)
		}
		switch {
		case line == "ok":
			return reply, nil
		case strings.HasPrefix(line, "err "):
			return reply, &CommandError{Command: cmd, Reason: line[4:]}
		case strings.HasPrefix(line, "["):
			if b.Log != nil {
				b.Log(line)
			}
		default:
			reply = append(reply, line)
		}
	}
}

// ReadLine waits for the next line from the board, for monitoring
func (b *Board) ReadLine(timeout time.Duration) (string, error) {
	if !b.connected {
		return "", ErrNotConnected
	}
	return b.readLine(time.Now().Add(timeout))
}

// Identify runs the "id" command and parses its key=value reply
func (b *Board) Identify() (*Identity, error) {
	lines, err := b.Query("id")
	if err != nil {
		return nil, err
	}
	return ParseIdentity(lines)
}

// ParseIdentity decodes the key=value pairs of an "id" reply
func ParseIdentity(lines []string) (*Identity, error) {
	id := &Identity{Fields: make(map[string]string)}
	for _, line := range lines {
		for _, field := range strings.Fields(line) {
			k, v, ok := strings.Cut(field, "=")
			if !ok {
				return nil, fmt.Errorf("malformed identity field %q", field)
			}
			id.Fields[k] = v
		}
	}

	num := func(key string, bits int) (uint64, error) {
		v, ok := id.Fields[key]
		if !ok {
			return 0, fmt.Errorf("identity is missing %q", key)
		}
		n, err := strconv.ParseUint(v, 0, bits)
		if err != nil {
			return 0, fmt.Errorf("identity field %q: %w", key, err)
		}
		return n, nil
	}

	v, err := num("dbg", 32)
	if err != nil {
		return nil, err
	}
	id.DebugID = uint32(v)
	if v, err = num("flash", 16); err != nil {
		return nil, err
	}
	id.FlashKB = uint16(v)
	if v, err = num("sram", 16); err != nil {
		return nil, err
	}
	id.SRAMKB = uint16(v)
	if v, err = num("sysclk", 32); err != nil {
		return nil, err
	}
	id.SysClk = uint32(v)

	uid, ok := id.Fields["uid"]
	if !ok {
		return nil, fmt.Errorf("identity is missing %q", "uid")
	}
	words := strings.Split(uid, "-")
	if len(words) != 3 {
		return nil, fmt.Errorf("identity field %q: want three words", "uid")
	}
	for i, w := range words {
		n, err := strconv.ParseUint(w, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("identity field %q: %w", "uid", err)
		}
		id.UniqueID[i] = uint32(n)
	}
	return id, nil
}

// CRC resets the board's CRC unit and checksums words with it
func (b *Board) CRC(words []uint32) (uint32, error) {
	return b.crc("crc", words)
}

// CRCContinue feeds more words into the running checksum
func (b *Board) CRCContinue(words []uint32) (uint32, error) {
	return b.crc("crc -c", words)
}

func (b *Board) crc(cmd string, words []uint32) (uint32, error) {
	var sb strings.Builder
	sb.WriteString(cmd)
	for _, w := range words {
		fmt.Fprintf(&sb, " %08x", w)
	}
	lines, err := b.Query(sb.String())
	if err != nil {
		return 0, err
	}
	if len(lines) != 1 {
		return 0, fmt.Errorf("crc: unexpected reply %q", lines)
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(lines[0], "crc="), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("crc: %w", err)
	}
	return uint32(n), nil
}

// Discard drops buffered input, such as boot messages printed before the
// host attached
func (b *Board) Discard() error {
	if !b.connected {
		return ErrNotConnected
	}
	b.pending = b.pending[:0]
	return b.port.Flush()
}

// Print prints a summary of the board identity
func (id *Identity) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Board ===")
	fmt.Fprintf(w, "Debug ID:  0x%08X\n", id.DebugID)
	fmt.Fprintf(w, "Unique ID: %08X-%08X-%08X\n", id.UniqueID[0], id.UniqueID[1], id.UniqueID[2])
	fmt.Fprintf(w, "Flash:     %d KiB\n", id.FlashKB)
	fmt.Fprintf(w, "SRAM:      %d KiB\n", id.SRAMKB)
	fmt.Fprintf(w, "SysClk:    %.1f MHz\n", float64(id.SysClk)/1e6)
}
