//go:build tinygo && gd32vf103

package main

import (
	"gd32hal/config"
	"gd32hal/device/gd32vf103"
	"gd32hal/firmware"
	"gd32hal/internal/debug"
)

func main() {
	p := gd32vf103.Take()
	if p == nil {
		return
	}

	board, err := firmware.Setup(p, config.DefaultLongan())
	if err != nil {
		// nothing is configured yet, so there is no console to report to
		for {
		}
	}

	debug.Println("[BOARD] console ready, type 'help'")

	// Main loop
	for {
		board.Poll()
		board.Delay.DelayMs(1)
	}
}
