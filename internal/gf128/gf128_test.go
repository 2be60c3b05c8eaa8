package gf128

import (
	"crypto/rand"
	"testing"
)

func randElement(t *testing.T) Element {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}
	return FromBytes(b)
}

// ReverseBytes must be its own inverse.
func TestReverseBytesInvolution(t *testing.T) {
	table := [][16]byte{
		{},
		{0: 0x01},
		{15: 0x80},
		{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f},
	}
	for i := 0; i < 10; i++ {
		table = append(table, randElement(t).Bytes())
	}
	for _, v := range table {
		if ReverseBytes(ReverseBytes(v)) != v {
			t.Errorf("involution broken for %x", v)
		}
	}
}

func TestReverseBytesOrder(t *testing.T) {
	in := [16]byte{0x12, 0x34, 0x56, 0x78, 0x9a}
	want := [16]byte{11: 0x9a, 12: 0x78, 13: 0x56, 14: 0x34, 15: 0x12}
	if ReverseBytes(in) != want {
		t.Errorf("have %x, want %x", ReverseBytes(in), want)
	}
}

func TestMulIdentity(t *testing.T) {
	one := Element{Lo: 1}
	for i := 0; i < 20; i++ {
		a := randElement(t)
		if Mul(a, one) != a {
			t.Errorf("a*1 != a for %+v", a)
		}
		if Mul(one, a) != a {
			t.Errorf("1*a != a for %+v", a)
		}
	}
}

// x^127 * x = x^128 = x^7 + x^2 + x + 1.
func TestMulReduction(t *testing.T) {
	x127 := Element{Hi: 1 << 63}
	want := Element{Lo: 0x87}
	if have := Mul(x127, Alpha); have != want {
		t.Errorf("have %+v, want %+v", have, want)
	}
	if have := MulX(x127); have != want {
		t.Errorf("MulX: have %+v, want %+v", have, want)
	}
}

func TestMulCommutes(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := randElement(t)
		b := randElement(t)
		if Mul(a, b) != Mul(b, a) {
			t.Errorf("a*b != b*a for %+v, %+v", a, b)
		}
	}
}

// MulX must agree with the generic multiply.
func TestMulXAgainstMul(t *testing.T) {
	e := Element{Lo: 1}
	for i := 0; i < 300; i++ {
		if MulX(e) != Mul(e, Alpha) {
			t.Fatalf("mismatch at step %d: %+v", i, e)
		}
		e = MulX(e)
	}
	for i := 0; i < 20; i++ {
		a := randElement(t)
		if MulX(a) != Mul(a, Alpha) {
			t.Errorf("mismatch for %+v", a)
		}
	}
}

// Exp(Alpha, k) must equal k iterated MulX steps.
func TestExp(t *testing.T) {
	iter := Element{Lo: 1}
	for k := uint64(0); k < 200; k++ {
		if have := Exp(Alpha, k); have != iter {
			t.Fatalf("alpha^%d: have %+v, want %+v", k, have, iter)
		}
		iter = MulX(iter)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for i := 0; i < 10; i++ {
		a := randElement(t)
		b := a.Bytes()
		if FromBytes(b[:]) != a {
			t.Errorf("round trip failed for %+v", a)
		}
	}
}

func BenchmarkMul(b *testing.B) {
	x := Element{Lo: 0x0123456789abcdef, Hi: 0xfedcba9876543210}
	y := Element{Lo: 0xaaaaaaaa55555555, Hi: 0x1234123412341234}
	for i := 0; i < b.N; i++ {
		x = Mul(x, y)
	}
}

func BenchmarkMulX(b *testing.B) {
	x := Element{Lo: 1}
	for i := 0; i < b.N; i++ {
		x = MulX(x)
	}
}
