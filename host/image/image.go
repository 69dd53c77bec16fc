// Package image loads Intel HEX firmware images and computes the CRC the
// GD32VF103 CRC unit reports for them.
package image

import (
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"

	"gd32hal/internal/crcsw"
)

// FlashBase is where the GD32VF103 maps its main flash.
const FlashBase = 0x08000000

// Segment is one contiguous run of image bytes.
type Segment struct {
	Address uint32
	Data    []byte
	CRC     uint32
}

// Image is a parsed firmware file.
type Image struct {
	Segments []Segment
}

// Parse reads Intel HEX from r.
func Parse(r io.Reader) (*Image, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("failed to parse hex: %w", err)
	}
	img := &Image{}
	for _, seg := range mem.GetDataSegments() {
		img.Segments = append(img.Segments, Segment{
			Address: seg.Address,
			Data:    seg.Data,
			CRC:     crcsw.Checksum(crcsw.Words(seg.Data)),
		})
	}
	return img, nil
}

// Load parses the Intel HEX file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Size returns the total number of data bytes.
func (img *Image) Size() int {
	n := 0
	for _, s := range img.Segments {
		n += len(s.Data)
	}
	return n
}

// Flat returns the image as one buffer from the lowest address, gaps
// filled with 0xFF as erased flash reads.
func (img *Image) Flat() (uint32, []byte) {
	if len(img.Segments) == 0 {
		return 0, nil
	}
	lo, hi := img.Segments[0].Address, uint32(0)
	for _, s := range img.Segments {
		lo = min(lo, s.Address)
		hi = max(hi, s.Address+uint32(len(s.Data)))
	}
	buf := make([]byte, hi-lo)
	for i := range buf {
		buf[i] = 0xFF
	}
	for _, s := range img.Segments {
		copy(buf[s.Address-lo:], s.Data)
	}
	return lo, buf
}

// CRC returns the checksum over the flattened image.
func (img *Image) CRC() uint32 {
	_, buf := img.Flat()
	return crcsw.Checksum(crcsw.Words(buf))
}

// Words returns the flattened image as CRC input words.
func (img *Image) Words() []uint32 {
	_, buf := img.Flat()
	return crcsw.Words(buf)
}
