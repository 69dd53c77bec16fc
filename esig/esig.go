// Package esig reads the device electronic signature.
package esig

import dev "gd32hal/device/gd32vf103"

// UniqueID returns the 96-bit factory serial number, low word first.
func UniqueID(raw *dev.ESIG_Type) [3]uint32 {
	var id [3]uint32
	for i := range id {
		id[i] = raw.UNIQUE_ID[i].Get()
	}
	return id
}

// FlashDensity returns the flash size in KiB.
func FlashDensity(raw *dev.ESIG_Type) uint16 {
	return uint16(raw.MEMORY_DENSITY.Get())
}

// SRAMDensity returns the SRAM size in KiB.
func SRAMDensity(raw *dev.ESIG_Type) uint16 {
	return uint16(raw.MEMORY_DENSITY.Get() >> 16)
}
