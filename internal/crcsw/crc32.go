// Package crcsw computes, in software, the checksum the GD32VF103 CRC unit
// produces: polynomial 0x04C11DB7, initial value 0xFFFFFFFF, 32-bit words
// fed most significant bit first, no reflection and no final XOR.
package crcsw

import "encoding/binary"

const (
	Poly    = 0x04C11DB7
	Initial = 0xFFFFFFFF
)

// Update feeds one 32-bit word into crc
func Update(crc uint32, word uint32) uint32 {
	crc ^= word
	for i := 0; i < 32; i++ {
		if crc&0x80000000 != 0 {
			crc = crc<<1 ^ Poly
		} else {
			crc <<= 1
		}
	}
	return crc
}

// Checksum returns the CRC of words starting from a freshly reset unit
func Checksum(words []uint32) uint32 {
	crc := uint32(Initial)
	for _, w := range words {
		crc = Update(crc, w)
	}
	return crc
}

// Words packs little-endian bytes into 32-bit words the way the CPU loads
// them from flash. A trailing partial word is padded with 0xFF, the erased
// flash value.
func Words(data []byte) []uint32 {
	words := make([]uint32, 0, (len(data)+3)/4)
	for len(data) >= 4 {
		words = append(words, binary.LittleEndian.Uint32(data))
		data = data[4:]
	}
	if len(data) > 0 {
		last := [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
		copy(last[:], data)
		words = append(words, binary.LittleEndian.Uint32(last[:]))
	}
	return words
}
