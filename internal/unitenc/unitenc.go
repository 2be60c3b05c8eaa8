// Package unitenc encrypts and decrypts whole data units (disk
// sectors) in XTS mode, including ciphertext stealing for units whose
// bit length is not a multiple of the 128-bit block size.
package unitenc

import (
	"errors"
	"fmt"

	"github.com/sectorfs/goxts/internal/cryptocore"
	"github.com/sectorfs/goxts/internal/tweak"
)

const (
	// BlockSize is the XTS block size in bytes.
	BlockSize = cryptocore.BlockSize
	// MinUnitBits is the smallest data unit XTS is defined for: one
	// full block.
	MinUnitBits = bitsPerBlock
	// MaxUnitBlocks caps a data unit at 2^20 blocks (16 MiB), per
	// IEEE 1619.
	MaxUnitBlocks = 1 << 20

	bitsPerBlock = 8 * BlockSize
)

// ErrUnitLen means the data unit is shorter than one block, longer than
// MaxUnitBlocks blocks, or the buffer does not match the bit length.
var ErrUnitLen = errors.New("invalid data unit length")

// UnitEnc applies XTS to whole data units. It is stateless apart from
// the expanded keys and safe for concurrent use; every call is a pure
// function of (key, sequence number, input).
type UnitEnc struct {
	core *cryptocore.CryptoCore
}

// New wraps an existing cipher binding.
func New(core *cryptocore.CryptoCore) *UnitEnc {
	return &UnitEnc{core: core}
}

// NewAES creates an XTS-AES unit encryptor from a 32, 48 or 64 byte
// double key.
func NewAES(doubleKey []byte) (*UnitEnc, error) {
	core, err := cryptocore.NewAES(doubleKey)
	if err != nil {
		return nil, err
	}
	return New(core), nil
}

// Core exposes the underlying cipher binding.
func (ue *UnitEnc) Core() *cryptocore.CryptoCore {
	return ue.core
}

// checkUnitLen validates a data unit length before any cipher call. No
// partial output is ever produced on failure.
func checkUnitLen(bufLen, nBits int) error {
	if nBits < MinUnitBits {
		return fmt.Errorf("unitenc: %w: %d bits is shorter than one block", ErrUnitLen, nBits)
	}
	blocks := (nBits + bitsPerBlock - 1) / bitsPerBlock
	if blocks > MaxUnitBlocks {
		return fmt.Errorf("unitenc: %w: %d blocks exceed the %d block maximum",
			ErrUnitLen, blocks, MaxUnitBlocks)
	}
	if want := (nBits + 7) / 8; bufLen != want {
		return fmt.Errorf("unitenc: %w: buffer is %d bytes, %d bits need %d",
			ErrUnitLen, bufLen, nBits, want)
	}
	return nil
}

// EncryptUnit encrypts one whole-byte data unit. The result has the
// same length as the input.
func (ue *UnitEnc) EncryptUnit(plaintext []byte, seqNo uint64) ([]byte, error) {
	return ue.EncryptUnitBits(plaintext, 8*len(plaintext), seqNo)
}

// DecryptUnit decrypts one whole-byte data unit.
func (ue *UnitEnc) DecryptUnit(ciphertext []byte, seqNo uint64) ([]byte, error) {
	return ue.DecryptUnitBits(ciphertext, 8*len(ciphertext), seqNo)
}

// EncryptUnitWide is EncryptUnit for sequence numbers of up to 128
// bits, passed as a big-endian integer.
func (ue *UnitEnc) EncryptUnitWide(plaintext []byte, seqNo []byte) ([]byte, error) {
	if err := checkUnitLen(len(plaintext), 8*len(plaintext)); err != nil {
		return nil, err
	}
	t0, err := ue.core.TweakWide(seqNo)
	if err != nil {
		return nil, err
	}
	return ue.encryptUnit(plaintext, 8*len(plaintext), t0), nil
}

// DecryptUnitWide is DecryptUnit for sequence numbers of up to 128
// bits.
func (ue *UnitEnc) DecryptUnitWide(ciphertext []byte, seqNo []byte) ([]byte, error) {
	if err := checkUnitLen(len(ciphertext), 8*len(ciphertext)); err != nil {
		return nil, err
	}
	t0, err := ue.core.TweakWide(seqNo)
	if err != nil {
		return nil, err
	}
	return ue.decryptUnit(ciphertext, 8*len(ciphertext), t0), nil
}

// EncryptUnitBits encrypts a data unit of nBits bits. plaintext must
// hold exactly ceil(nBits/8) bytes; unused low bits of the final byte
// are ignored on input and zero on output. The ciphertext occupies
// exactly nBits bits.
func (ue *UnitEnc) EncryptUnitBits(plaintext []byte, nBits int, seqNo uint64) ([]byte, error) {
	if err := checkUnitLen(len(plaintext), nBits); err != nil {
		return nil, err
	}
	return ue.encryptUnit(plaintext, nBits, ue.core.Tweak(seqNo)), nil
}

// DecryptUnitBits decrypts a data unit of nBits bits.
func (ue *UnitEnc) DecryptUnitBits(ciphertext []byte, nBits int, seqNo uint64) ([]byte, error) {
	if err := checkUnitLen(len(ciphertext), nBits); err != nil {
		return nil, err
	}
	return ue.decryptUnit(ciphertext, nBits, ue.core.Tweak(seqNo)), nil
}

func (ue *UnitEnc) encryptUnit(src []byte, nBits int, t0 tweak.Value) []byte {
	m := nBits / bitsPerBlock
	rem := nBits - m*bitsPerBlock
	dst := make([]byte, len(src))
	tw := t0

	if rem == 0 {
		// Aligned case: every block is independent, paired with its
		// own tweak position.
		for i := 0; i < m; i++ {
			o := i * BlockSize
			ue.core.EncryptBlock(dst[o:o+BlockSize], src[o:o+BlockSize], tw)
			tw = tw.Next()
		}
		return dst
	}

	// Ciphertext stealing. The length check guarantees m >= 1.
	for i := 0; i < m-1; i++ {
		o := i * BlockSize
		ue.core.EncryptBlock(dst[o:o+BlockSize], src[o:o+BlockSize], tw)
		tw = tw.Next()
	}

	// Encrypt the last full block with tweak(m-1).
	var stolen [BlockSize]byte
	ue.core.EncryptBlock(stolen[:], src[(m-1)*BlockSize:m*BlockSize], tw)
	tw = tw.Next()

	// Combined block: the trailing 128-rem bits of the stolen
	// ciphertext, with the rem plaintext tail bits overlaid in front.
	// Encrypted with tweak(m), it takes the last full block's place.
	combined := stolen
	copyBits(combined[:], src[m*BlockSize:], rem)
	ue.core.EncryptBlock(dst[(m-1)*BlockSize:m*BlockSize], combined[:], tw)

	// The ciphertext tail is the leading rem bits of the stolen block.
	copyBits(dst[m*BlockSize:], stolen[:], rem)
	return dst
}

func (ue *UnitEnc) decryptUnit(src []byte, nBits int, t0 tweak.Value) []byte {
	m := nBits / bitsPerBlock
	rem := nBits - m*bitsPerBlock
	dst := make([]byte, len(src))
	tw := t0

	if rem == 0 {
		for i := 0; i < m; i++ {
			o := i * BlockSize
			ue.core.DecryptBlock(dst[o:o+BlockSize], src[o:o+BlockSize], tw)
			tw = tw.Next()
		}
		return dst
	}

	for i := 0; i < m-1; i++ {
		o := i * BlockSize
		ue.core.DecryptBlock(dst[o:o+BlockSize], src[o:o+BlockSize], tw)
		tw = tw.Next()
	}
	twLast := tw.Next()

	// The combined block decrypts under tweak(m) into the plaintext
	// tail followed by the stolen ciphertext bits.
	var combined [BlockSize]byte
	ue.core.DecryptBlock(combined[:], src[(m-1)*BlockSize:m*BlockSize], twLast)

	// Reassemble the stolen block: ciphertext tail in front, stolen
	// bits behind. It decrypts under tweak(m-1) into the last full
	// plaintext block.
	reassembled := combined
	copyBits(reassembled[:], src[m*BlockSize:], rem)
	ue.core.DecryptBlock(dst[(m-1)*BlockSize:m*BlockSize], reassembled[:], tw)

	// The plaintext tail is the leading rem bits of the combined
	// block.
	copyBits(dst[m*BlockSize:], combined[:], rem)
	return dst
}
