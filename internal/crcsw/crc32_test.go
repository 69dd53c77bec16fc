package crcsw

import "testing"

func TestChecksum(t *testing.T) {
	testCases := []struct {
		name     string
		words    []uint32
		expected uint32
	}{
		{"empty", nil, 0xFFFFFFFF},
		{"single word", []uint32{0xABCD1234}, 0xF7018A40},
		{"two words", []uint32{0xABCD1234, 0x12345678}, 0xF36CB614},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.words); got != tc.expected {
				t.Errorf("Checksum(%08X) = 0x%08X, expected 0x%08X", tc.words, got, tc.expected)
			}
		})
	}
}

func TestUpdateIsIncremental(t *testing.T) {
	crc := Update(Initial, 0xABCD1234)
	crc = Update(crc, 0x12345678)
	if crc != Checksum([]uint32{0xABCD1234, 0x12345678}) {
		t.Errorf("incremental CRC 0x%08X differs from Checksum", crc)
	}
}

func TestWords(t *testing.T) {
	words := Words([]byte{0x34, 0x12, 0xCD, 0xAB, 0x01})
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0] != 0xABCD1234 {
		t.Errorf("word 0 = 0x%08X", words[0])
	}
	if words[1] != 0xFFFFFF01 {
		t.Errorf("padded word = 0x%08X", words[1])
	}
}
