package unitenc

// copyBits copies the leading nBits bits of src over dst, leaving the
// remaining bits of dst untouched. Bit strings are MSB-first: bit 0 of
// the string is the highest bit of byte 0.
func copyBits(dst, src []byte, nBits int) {
	full := nBits / 8
	copy(dst[:full], src[:full])
	if rem := nBits % 8; rem != 0 {
		mask := byte(0xff << (8 - rem))
		dst[full] = src[full]&mask | dst[full]&^mask
	}
}
