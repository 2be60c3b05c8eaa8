package unitenc

import (
	"bytes"
	"testing"
)

func TestCopyBits(t *testing.T) {
	testTable := []struct {
		dst, src []byte
		nBits    int
		want     []byte
	}{
		{[]byte{0x00, 0x00}, []byte{0xff, 0xff}, 16, []byte{0xff, 0xff}},
		{[]byte{0x00, 0x00}, []byte{0xff, 0xff}, 8, []byte{0xff, 0x00}},
		{[]byte{0x00}, []byte{0xff}, 1, []byte{0x80}},
		{[]byte{0x00}, []byte{0xff}, 7, []byte{0xfe}},
		{[]byte{0xff}, []byte{0x00}, 3, []byte{0x1f}},
		{[]byte{0xff, 0xff}, []byte{0x00, 0x00}, 9, []byte{0x00, 0x7f}},
		{[]byte{0xaa, 0xaa}, []byte{0x55, 0x55}, 12, []byte{0x55, 0x5a}},
	}
	for _, v := range testTable {
		dst := append([]byte(nil), v.dst...)
		copyBits(dst, v.src, v.nBits)
		if !bytes.Equal(dst, v.want) {
			t.Errorf("dst=%x src=%x nBits=%d: have %x, want %x",
				v.dst, v.src, v.nBits, dst, v.want)
		}
	}
}
