// Package speed implements the "-speed" command-line option, similar
// to "openssl speed". It benchmarks XTS-AES against other ciphers
// typically used for storage encryption.
package speed

import (
	"crypto/rand"
	"fmt"
	"log"
	"runtime"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/jacobsa/crypto/siv"

	"github.com/sectorfs/goxts/internal/unitenc"
)

// Storage encryption operates on fixed-size sectors.
const unitSize = 4096

// Run - run the speed test and print the results.
func Run() {
	if name := cpuModelName(); name != "" {
		fmt.Printf("cpu: %s\n", name)
	}
	fmt.Printf("goos: %s\ngoarch: %s\n\n", runtime.GOOS, runtime.GOARCH)

	bTable := []struct {
		name string
		f    func(*testing.B)
		note string
	}{
		{name: "XTS-AES-128", f: bXtsAes128},
		{name: "XTS-AES-256", f: bXtsAes256},
		{name: "XTS-AES-256-steal", f: bXtsAes256Steal, note: "unaligned unit, ciphertext stealing"},
		{name: "AES-SIV-512", f: bAESSIV, note: "comparison only"},
		{name: "XChaCha20-Poly1305", f: bXchacha20poly1305, note: "comparison only"},
	}
	for _, b := range bTable {
		fmt.Printf("%-20s\t", b.name)
		mbs := mbPerSec(testing.Benchmark(b.f))
		if mbs > 0 {
			fmt.Printf("%7.2f MB/s", mbs)
		} else {
			fmt.Printf("    N/A")
		}
		if b.note != "" {
			fmt.Printf("\t(%s)", b.note)
		}
		fmt.Printf("\n")
	}
}

func mbPerSec(r testing.BenchmarkResult) float64 {
	if r.Bytes <= 0 || r.T <= 0 || r.N <= 0 {
		return 0
	}
	return (float64(r.Bytes) * float64(r.N) / 1e6) / r.T.Seconds()
}

// Get "n" random bytes from /dev/urandom or panic
func randBytes(n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		log.Panic("Failed to read random bytes: " + err.Error())
	}
	return b
}

func bXts(b *testing.B, keyLen, size int) {
	ue, err := unitenc.NewAES(randBytes(keyLen))
	if err != nil {
		b.Fatal(err)
	}
	in := randBytes(size)
	b.SetBytes(int64(size))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ue.EncryptUnit(in, uint64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func bXtsAes128(b *testing.B) {
	bXts(b, 32, unitSize)
}

func bXtsAes256(b *testing.B) {
	bXts(b, 64, unitSize)
}

func bXtsAes256Steal(b *testing.B) {
	bXts(b, 64, unitSize+9)
}

// bAESSIV benchmarks AES-SIV from github.com/jacobsa/crypto/siv
func bAESSIV(b *testing.B) {
	key := randBytes(64)
	in := randBytes(unitSize)
	b.SetBytes(int64(len(in)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := siv.Encrypt(nil, key, in, nil); err != nil {
			b.Fatal(err)
		}
	}
}

// bXchacha20poly1305 benchmarks XChaCha20 from
// golang.org/x/crypto/chacha20poly1305
func bXchacha20poly1305(b *testing.B) {
	key := randBytes(32)
	nonce := randBytes(chacha20poly1305.NonceSizeX)
	in := randBytes(unitSize)
	b.SetBytes(int64(len(in)))
	c, err := chacha20poly1305.NewX(key)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Seal(nil, nonce, in, nil)
	}
}
