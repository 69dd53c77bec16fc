package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/mattn/go-colorable"

	"gd32hal/config"
	"gd32hal/host/board"
	"gd32hal/host/image"
	"gd32hal/host/reset"
	"gd32hal/host/serial"
)

var (
	configPath = flag.String("config", "", "Board configuration JSON (default: Longan Nano)")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gd32-host [flags] <command> [args]\n\nCommands:\n")
	fmt.Fprintln(os.Stderr, "  ports              - List serial ports")
	fmt.Fprintln(os.Stderr, "  info               - Query the board identity")
	fmt.Fprintln(os.Stderr, "  monitor            - Print console output until interrupted")
	fmt.Fprintln(os.Stderr, "  reset [-boot]      - Pulse NRST (and BOOT0) from host GPIOs")
	fmt.Fprintln(os.Stderr, "  crc [-verify] FILE - CRC of an Intel HEX image")
	fmt.Fprintln(os.Stderr, "  shell              - Interactive console")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "ports":
		err = runPorts(os.Stdout)
	case "info":
		err = runInfo(cfg)
	case "monitor":
		err = runMonitor(cfg)
	case "reset":
		err = runReset(cfg, args)
	case "crc":
		err = runCRC(cfg, args)
	case "shell":
		err = runShell(cfg, os.Stdin, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.BoardConfig, error) {
	cfg := config.DefaultLongan()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if cfg, err = config.LoadConfig(data); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", *configPath, err)
		}
	}
	if *device != "" {
		cfg.Host.Device = *device
	}
	if *baud != 0 {
		cfg.Host.Baud = *baud
	}
	slog.Debug("config loaded", "board", cfg.Name, "device", cfg.Host.Device, "baud", cfg.Host.Baud)
	return cfg, nil
}

func connect(cfg *config.BoardConfig) (*board.Board, error) {
	b := board.NewBoard()
	pc, err := serial.FromBoard(cfg)
	if err != nil {
		return nil, err
	}
	if err := b.ConnectWithConfig(pc); err != nil {
		return nil, err
	}
	b.Log = func(line string) { slog.Debug("board", "line", line) }
	if err := b.Discard(); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func runPorts(w io.Writer) error {
	ports, err := serial.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(w, p)
	}
	return nil
}

func runInfo(cfg *config.BoardConfig) error {
	b, err := connect(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	id, err := b.Identify()
	if err != nil {
		return err
	}
	id.Print(os.Stdout)
	return nil
}

// Console tags are colored by subsystem
var tagColors = map[string]string{
	"[RCU]":    "\x1b[36m",
	"[GPIO]":   "\x1b[32m",
	"[SERIAL]": "\x1b[35m",
	"[SPI]":    "\x1b[35m",
	"[WDOG]":   "\x1b[33m",
	"[TIMER]":  "\x1b[34m",
	"[BOARD]":  "\x1b[1m",
}

func colorize(line string) string {
	if strings.HasPrefix(line, "err ") {
		return "\x1b[31m" + line + "\x1b[0m"
	}
	tag, _, _ := strings.Cut(line, " ")
	if c, ok := tagColors[tag]; ok {
		return c + line + "\x1b[0m"
	}
	return line
}

func runMonitor(cfg *config.BoardConfig) error {
	pc, err := serial.FromBoard(cfg)
	if err != nil {
		return err
	}
	port, err := serial.Open(pc)
	if err != nil {
		return err
	}
	defer port.Close()

	b := board.NewBoard()
	b.Attach(port)
	out := colorable.NewColorableStdout()
	slog.Info("monitoring", "device", cfg.Host.Device, "baud", cfg.Host.Baud)
	for {
		line, err := b.ReadLine(time.Hour)
		if err == board.ErrTimeout {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, colorize(line))
	}
}

func runReset(cfg *config.BoardConfig, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	boot := fs.Bool("boot", false, "Hold BOOT0 high to enter the ROM bootloader")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lines, err := reset.Open(cfg.Host.ResetPin, cfg.Host.Boot0Pin)
	if err != nil {
		return err
	}
	hold := time.Duration(cfg.Host.ResetHold) * time.Millisecond
	if err := lines.Pulse(*boot, hold); err != nil {
		return err
	}
	slog.Info("board reset", "bootloader", *boot)
	return nil
}

func runCRC(cfg *config.BoardConfig, args []string) error {
	fs := flag.NewFlagSet("crc", flag.ContinueOnError)
	verify := fs.Bool("verify", false, "Also compute the CRC on the board and compare")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("crc: expected one hex file")
	}
	img, err := image.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	for _, s := range img.Segments {
		fmt.Printf("0x%08X  %6d bytes  crc=0x%08X\n", s.Address, len(s.Data), s.CRC)
	}
	want := img.CRC()
	fmt.Printf("image       %6d bytes  crc=0x%08X\n", img.Size(), want)

	if !*verify {
		return nil
	}
	b, err := connect(cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	got, err := verifyCRC(b, img.Words())
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("crc mismatch: board 0x%08X, host 0x%08X", got, want)
	}
	fmt.Println("board CRC unit agrees")
	return nil
}

// verifyCRC feeds words to the board in chunks that fit a console line
func verifyCRC(b *board.Board, words []uint32) (uint32, error) {
	const chunk = 8
	n := min(chunk, len(words))
	sum, err := b.CRC(words[:n])
	for words = words[n:]; err == nil && len(words) > 0; words = words[n:] {
		n = min(chunk, len(words))
		sum, err = b.CRCContinue(words[:n])
	}
	return sum, err
}

func runShell(cfg *config.BoardConfig, in io.Reader, out io.Writer) error {
	b, err := connect(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	fmt.Fprintln(out, "Enter commands ('help' lists board commands, 'quit' to exit):")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit", "q":
			return nil
		case "info":
			id, err := b.Identify()
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			id.Print(out)
		default:
			lines, err := b.Query(strings.Join(quoteArgs(args), " "))
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}
	}
	return scanner.Err()
}

// quoteArgs re-quotes arguments with spaces so the board splits them the
// same way.
func quoteArgs(args []string) []string {
	q := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t'\"") {
			a = "'" + strings.ReplaceAll(a, "'", `'"'"'`) + "'"
		}
		q[i] = a
	}
	return q
}
