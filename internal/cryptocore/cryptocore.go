// Package cryptocore binds the block cipher pair behind an XTS key and
// applies the per-block XOR-encrypt-XOR envelope.
package cryptocore

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/sectorfs/goxts/internal/tweak"
)

// BlockSize is the native block size XTS is defined for. Binding a
// cipher with any other block size panics at construction time.
const BlockSize = 16

// ErrKeyMaterial means the double key does not decompose into two
// halves the cipher constructor accepts.
var ErrKeyMaterial = errors.New("invalid key material")

// CipherFunc constructs the underlying block cipher from one sub-key,
// e.g. aes.NewCipher.
type CipherFunc func(key []byte) (cipher.Block, error)

// CryptoCore holds the expanded data and tweak ciphers of one XTS
// double key. It carries no per-call state and is safe for concurrent
// use.
type CryptoCore struct {
	// DataCipher is keyed with K1, the first half of the double key,
	// and encrypts block content.
	DataCipher cipher.Block
	// TweakCipher is keyed with K2, the second half, and only ever
	// encrypts the sequence number into tweak(0).
	TweakCipher cipher.Block
}

// New splits doubleKey into two equal halves and binds a cipher to
// each. Key problems are returned as errors wrapping ErrKeyMaterial; a
// cipher that does not have 16-byte blocks is a programming error and
// panics.
func New(cipherFunc CipherFunc, doubleKey []byte) (*CryptoCore, error) {
	if len(doubleKey) == 0 || len(doubleKey)%2 != 0 {
		return nil, fmt.Errorf("cryptocore: %w: %d bytes cannot be split into two sub-keys",
			ErrKeyMaterial, len(doubleKey))
	}
	half := len(doubleKey) / 2
	dataCipher, err := cipherFunc(doubleKey[:half])
	if err != nil {
		return nil, fmt.Errorf("cryptocore: %w: data key: %v", ErrKeyMaterial, err)
	}
	tweakCipher, err := cipherFunc(doubleKey[half:])
	if err != nil {
		return nil, fmt.Errorf("cryptocore: %w: tweak key: %v", ErrKeyMaterial, err)
	}
	if dataCipher.BlockSize() != BlockSize || tweakCipher.BlockSize() != BlockSize {
		panic(fmt.Sprintf("cryptocore: cipher block size %d is unsupported, XTS needs 16",
			dataCipher.BlockSize()))
	}
	return &CryptoCore{
		DataCipher:  dataCipher,
		TweakCipher: tweakCipher,
	}, nil
}

// NewAES binds XTS-AES. Valid double key lengths are 32, 48 and 64
// bytes (AES-128, AES-192, AES-256).
func NewAES(doubleKey []byte) (*CryptoCore, error) {
	switch len(doubleKey) {
	case 32, 48, 64:
	default:
		return nil, fmt.Errorf("cryptocore: %w: XTS-AES key must be 32, 48 or 64 bytes, have %d",
			ErrKeyMaterial, len(doubleKey))
	}
	return New(aes.NewCipher, doubleKey)
}

// Tweak derives tweak(0) for the data unit at seqNo.
func (cc *CryptoCore) Tweak(seqNo uint64) tweak.Value {
	return tweak.Initial(cc.TweakCipher, seqNo)
}

// TweakWide is Tweak for sequence numbers of up to 128 bits
// (big-endian).
func (cc *CryptoCore) TweakWide(seqNo []byte) (tweak.Value, error) {
	return tweak.InitialWide(cc.TweakCipher, seqNo)
}

// EncryptBlock encrypts one 16-byte block under tweak t. dst and src
// must be 16 bytes and may be the same slice.
func (cc *CryptoCore) EncryptBlock(dst, src []byte, t tweak.Value) {
	for i := 0; i < BlockSize; i++ {
		dst[i] = src[i] ^ t[i]
	}
	cc.DataCipher.Encrypt(dst, dst)
	for i := 0; i < BlockSize; i++ {
		dst[i] ^= t[i]
	}
}

// DecryptBlock inverts EncryptBlock.
func (cc *CryptoCore) DecryptBlock(dst, src []byte, t tweak.Value) {
	for i := 0; i < BlockSize; i++ {
		dst[i] = src[i] ^ t[i]
	}
	cc.DataCipher.Decrypt(dst, dst)
	for i := 0; i < BlockSize; i++ {
		dst[i] ^= t[i]
	}
}
