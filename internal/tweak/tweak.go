// Package tweak derives the per-block tweak stream of XTS mode. Tweak
// zero is the encrypted sequence number of the data unit; every later
// position is the previous value multiplied by alpha in GF(2^128).
package tweak

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"

	"github.com/sectorfs/goxts/internal/gf128"
)

// ErrSeqNoRange means the sequence number does not fit into 128 bits.
var ErrSeqNoRange = errors.New("tweak: sequence number longer than 16 bytes")

// Value is one 128-bit tweak. The byte layout is the little-endian field
// convention, which is also the layout the tweak is XORed into blocks
// with.
type Value [16]byte

// IV builds the pre-encryption initial value for a sequence number given
// as a big-endian integer of at most 16 bytes: zero-pad, then
// byte-reverse into the little-endian convention.
func IV(seqNo []byte) (Value, error) {
	if len(seqNo) > 16 {
		return Value{}, ErrSeqNoRange
	}
	var b [16]byte
	copy(b[16-len(seqNo):], seqNo)
	return Value(gf128.ReverseBytes(b)), nil
}

// Initial derives tweak(0) for a data unit: the little-endian encoded
// sequence number, encrypted under the tweak key.
func Initial(tweakCipher cipher.Block, seqNo uint64) Value {
	var v Value
	binary.LittleEndian.PutUint64(v[:8], seqNo)
	tweakCipher.Encrypt(v[:], v[:])
	return v
}

// InitialWide is Initial for sequence numbers of up to 128 bits, passed
// as a big-endian integer.
func InitialWide(tweakCipher cipher.Block, seqNo []byte) (Value, error) {
	v, err := IV(seqNo)
	if err != nil {
		return Value{}, err
	}
	tweakCipher.Encrypt(v[:], v[:])
	return v, nil
}

// Next returns the tweak for the following block position.
func (v Value) Next() Value {
	e := gf128.MulX(gf128.FromBytes(v[:]))
	return Value(e.Bytes())
}

// At returns the tweak i positions after v, i.e. v * alpha^i. The result
// is identical to calling Next i times; computing alpha^i takes
// logarithmic time instead.
func (v Value) At(i uint64) Value {
	e := gf128.Mul(gf128.FromBytes(v[:]), gf128.Exp(gf128.Alpha, i))
	return Value(e.Bytes())
}
