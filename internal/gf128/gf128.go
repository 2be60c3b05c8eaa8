// Package gf128 implements multiplication in GF(2^128) modulo the
// irreducible polynomial x^128 + x^7 + x^2 + x + 1, as used by the XTS
// tweak update (IEEE 1619).
//
// Elements live in the little-endian convention of the standard: bit j of
// byte k is the coefficient of x^(8k+j). Block I/O uses the opposite,
// most-significant-byte-first convention; ReverseBytes converts between
// the two.
package gf128

import (
	"encoding/binary"
)

// Element is a field element. Lo holds the coefficients of x^0..x^63,
// Hi those of x^64..x^127.
type Element struct {
	Lo, Hi uint64
}

// Alpha is the element corresponding to the polynomial "x". Multiplying
// by Alpha advances an XTS tweak by one block position.
var Alpha = Element{Lo: 2}

// FromBytes parses a 16-byte value in the little-endian field convention.
func FromBytes(b []byte) Element {
	if len(b) != 16 {
		panic("gf128: element must be 16 bytes")
	}
	return Element{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Bytes serializes the element in the little-endian field convention.
func (e Element) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], e.Lo)
	binary.LittleEndian.PutUint64(b[8:16], e.Hi)
	return b
}

// ReverseBytes converts a 16-byte block between the ordinary
// most-significant-byte-first convention and the little-endian field
// convention. It is its own inverse.
func ReverseBytes(b [16]byte) [16]byte {
	var r [16]byte
	for i := range b {
		r[15-i] = b[i]
	}
	return r
}

// clmul64 is a carry-less 64x64-bit multiply returning the 128-bit
// product. Not constant-time.
func clmul64(a, b uint64) (lo, hi uint64) {
	for i := uint(0); i < 64; i++ {
		if b&(1<<i) != 0 {
			lo ^= a << i
			if i != 0 {
				hi ^= a >> (64 - i)
			}
		}
	}
	return lo, hi
}

// Mul multiplies two field elements: carry-less 128x128-bit multiply of
// the polynomials, then reduction modulo x^128 + x^7 + x^2 + x + 1.
func Mul(a, b Element) Element {
	p00lo, p00hi := clmul64(a.Lo, b.Lo)
	p01lo, p01hi := clmul64(a.Lo, b.Hi)
	p10lo, p10hi := clmul64(a.Hi, b.Lo)
	p11lo, p11hi := clmul64(a.Hi, b.Hi)

	// 256-bit product: lo = bits 0..127, hi = bits 128..255.
	lo := Element{Lo: p00lo, Hi: p00hi ^ p01lo ^ p10lo}
	hi := Element{Lo: p01hi ^ p10hi ^ p11lo, Hi: p11hi}

	// Fold the high half down: x^128 == x^7 + x^2 + x + 1. The first
	// fold can itself overflow by up to 7 bits, so fold twice.
	for i := 0; i < 2; i++ {
		lo.Lo ^= hi.Lo<<7 ^ hi.Lo<<2 ^ hi.Lo<<1 ^ hi.Lo
		lo.Hi ^= hi.Hi<<7 ^ hi.Hi<<2 ^ hi.Hi<<1 ^ hi.Hi ^
			hi.Lo>>57 ^ hi.Lo>>62 ^ hi.Lo>>63
		hi = Element{Lo: hi.Hi>>57 ^ hi.Hi>>62 ^ hi.Hi>>63}
	}
	return lo
}

// MulX multiplies by Alpha: a left shift with conditional reduction.
// This is the fast path for advancing a tweak by one position.
func MulX(e Element) Element {
	carry := e.Hi >> 63
	e.Hi = e.Hi<<1 | e.Lo>>63
	e.Lo <<= 1
	if carry != 0 {
		e.Lo ^= 0x87
	}
	return e
}

// Exp computes e^k by square-and-multiply. Used to jump to tweak
// position k without iterating.
func Exp(e Element, k uint64) Element {
	r := Element{Lo: 1}
	for ; k > 0; k >>= 1 {
		if k&1 != 0 {
			r = Mul(r, e)
		}
		e = Mul(e, e)
	}
	return r
}
