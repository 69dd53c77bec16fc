package firmware

import (
	"errors"
	"io"
	"strconv"

	"gd32hal/backup"
	"gd32hal/console"
	"gd32hal/esig"
	"gd32hal/internal/debug"
)

var (
	ErrBadNumber = errors.New("bad number")
	ErrNoLED     = errors.New("no such led")
	ErrLEDState  = errors.New("want on, off or toggle")
)

func line(w io.Writer, s string) {
	io.WriteString(w, s+"\r\n")
}

func (b *Board) registerCommands() {
	b.Console.Handle("id", "device identity", b.cmdID)
	b.Console.Handle("clocks", "frozen clock tree", b.cmdClocks)
	b.Console.Handle("crc", "[-c] WORD... checksum hex words on the CRC unit", b.cmdCRC)
	b.Console.Handle("led", "N on|off|toggle", b.cmdLED)
	b.Console.Handle("bkp", "IDX [VALUE] read or write a backup register", b.cmdBackup)
	b.Console.Handle("lock", "frozen GPIO lock bits", b.cmdLock)
	b.Console.Handle("wdog", "watchdog interval", b.cmdWatchdog)
}

func (b *Board) cmdID(w io.Writer, args []string) error {
	if len(args) != 0 {
		return console.ErrArgCount
	}
	uid := esig.UniqueID(b.p.ESIG)
	line(w, "dbg="+debug.Hex(b.dbg.ID())+
		" uid="+debug.Hex(uid[0])[2:]+"-"+debug.Hex(uid[1])[2:]+"-"+debug.Hex(uid[2])[2:]+
		" flash="+debug.Utoa(uint32(esig.FlashDensity(b.p.ESIG)))+
		" sram="+debug.Utoa(uint32(esig.SRAMDensity(b.p.ESIG)))+
		" sysclk="+debug.Utoa(uint32(b.Clocks.SysClk())))
	return nil
}

func (b *Board) cmdClocks(w io.Writer, args []string) error {
	c := b.Clocks
	line(w, "sys="+debug.MHz(uint32(c.SysClk()))+
		" ahb="+debug.MHz(uint32(c.AHBClk()))+
		" apb1="+debug.MHz(uint32(c.APB1Clk()))+
		" apb2="+debug.MHz(uint32(c.APB2Clk()))+
		" adc="+debug.MHz(uint32(c.ADCClk())))
	if usb, ok := c.USBClk(); ok {
		line(w, "usb="+debug.MHz(uint32(usb)))
	}
	return nil
}

func (b *Board) cmdCRC(w io.Writer, args []string) error {
	if len(args) > 0 && args[0] == "-c" {
		args = args[1:]
	} else {
		b.digest.Reset()
	}
	words := make([]uint32, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 16, 32)
		if err != nil {
			return ErrBadNumber
		}
		words[i] = uint32(v)
	}
	for _, v := range words {
		b.digest.WriteUint32(v)
	}
	line(w, "crc="+debug.Hex(b.digest.Sum32()))
	return nil
}

func (b *Board) cmdLED(w io.Writer, args []string) error {
	if len(args) != 2 {
		return console.ErrArgCount
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return ErrBadNumber
	}
	if n < 0 || n >= len(b.LEDs) {
		return ErrNoLED
	}
	led := b.LEDs[n]
	switch args[1] {
	case "on":
		led.Set(true)
	case "off":
		led.Set(false)
	case "toggle":
		led.Toggle()
	default:
		return ErrLEDState
	}
	return nil
}

func (b *Board) cmdBackup(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return console.ErrArgCount
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= backup.Slots {
		return ErrBadNumber
	}
	if len(args) == 2 {
		v, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			return ErrBadNumber
		}
		b.backup.Data.Write(idx, uint16(v))
	}
	line(w, "bkp"+debug.Itoa(idx)+"="+debug.Utoa(uint32(b.backup.Data.Read(idx))))
	return nil
}

func (b *Board) cmdLock(w io.Writer, args []string) error {
	for _, f := range b.Frozen {
		line(w, f.Port.String()+"="+debug.Hex(uint32(f.Pins)))
	}
	return nil
}

func (b *Board) cmdWatchdog(w io.Writer, args []string) error {
	if b.Watchdog == nil {
		line(w, "wdog=off")
		return nil
	}
	line(w, "wdog="+b.Watchdog.Interval().String())
	return nil
}
