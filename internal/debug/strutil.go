package debug

// Utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Build string from right to left
	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// Itoa converts a signed integer to a string, across the whole int range
func Itoa(n int) string {
	if n < 0 {
		// -(n+1) cannot overflow, even for the most negative int
		return "-" + utoa64(uint64(-(n+1))+1)
	}
	return utoa64(uint64(n))
}

func utoa64(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

const hexDigits = "0123456789ABCDEF"

// Hex formats n as eight upper-case hex digits with a 0x prefix
func Hex(n uint32) string {
	var buf [10]byte
	buf[0] = '0'
	buf[1] = 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = hexDigits[n&0xF]
		n >>= 4
	}
	return string(buf[:])
}

// MHz formats a frequency in Hz as whole megahertz plus the remainder in
// kilohertz when it is not a whole number, e.g. "108MHz" or "6.500MHz".
func MHz(hz uint32) string {
	whole := Utoa(hz / 1_000_000)
	rem := (hz % 1_000_000) / 1000
	if rem == 0 {
		return whole + "MHz"
	}
	frac := Utoa(rem)
	for len(frac) < 3 {
		frac = "0" + frac
	}
	return whole + "." + frac + "MHz"
}
