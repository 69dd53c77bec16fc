package image

import (
	"strings"
	"testing"

	"gd32hal/internal/crcsw"
)

const twoWords = `:020000040800F2
:080000003412CDAB7856341226
:00000001FF
`

const withGap = `:020000040800F2
:080000003412CDAB7856341226
:040010003412CDAB2E
:00000001FF
`

func TestParse(t *testing.T) {
	img, err := Parse(strings.NewReader(twoWords))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(img.Segments) != 1 || img.Segments[0].Address != FlashBase {
		t.Fatalf("segments = %+v", img.Segments)
	}
	if img.Size() != 8 {
		t.Errorf("Size = %d", img.Size())
	}
	if got := img.Segments[0].CRC; got != 0xF36CB614 {
		t.Errorf("segment CRC = 0x%08X, expected 0xF36CB614", got)
	}
	if got := img.CRC(); got != 0xF36CB614 {
		t.Errorf("image CRC = 0x%08X, expected 0xF36CB614", got)
	}
}

func TestFlatFillsGaps(t *testing.T) {
	img, err := Parse(strings.NewReader(withGap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(img.Segments) != 2 {
		t.Fatalf("segments = %d, expected 2", len(img.Segments))
	}
	base, buf := img.Flat()
	if base != FlashBase || len(buf) != 0x14 {
		t.Fatalf("Flat = 0x%08X, %d bytes", base, len(buf))
	}
	expected := []uint32{0xABCD1234, 0x12345678, 0xFFFFFFFF, 0xFFFFFFFF, 0xABCD1234}
	words := img.Words()
	for i := range expected {
		if words[i] != expected[i] {
			t.Errorf("word %d = 0x%08X, expected 0x%08X", i, words[i], expected[i])
		}
	}
	if img.CRC() != crcsw.Checksum(expected) {
		t.Errorf("CRC = 0x%08X", img.CRC())
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse(strings.NewReader(":zz\n")); err == nil {
		t.Error("garbage parsed")
	}
	if _, err := Load("does/not/exist.hex"); err == nil {
		t.Error("missing file loaded")
	}
	var empty Image
	if base, buf := empty.Flat(); base != 0 || buf != nil {
		t.Error("empty image flattened to data")
	}
}
