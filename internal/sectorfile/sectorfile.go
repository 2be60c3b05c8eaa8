// Package sectorfile maps a byte stream onto consecutive XTS data
// units: unit i gets sequence number firstSeqNo+i. A trailing unit
// shorter than the unit size is handled by ciphertext stealing, so the
// output always has the input's exact length.
package sectorfile

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sectorfs/goxts/internal/unitenc"
)

// Codec en/decrypts whole files unit by unit. Data units are mutually
// independent, so they are processed concurrently.
type Codec struct {
	ue       *unitenc.UnitEnc
	unitSize int
	jobs     int
}

// New creates a Codec. unitSize is the data unit (sector) size in
// bytes; jobs caps the number of units in flight, 0 meaning GOMAXPROCS.
func New(ue *unitenc.UnitEnc, unitSize, jobs int) (*Codec, error) {
	if unitSize < unitenc.BlockSize {
		return nil, fmt.Errorf("sectorfile: unit size %d is smaller than one block", unitSize)
	}
	if unitSize > unitenc.MaxUnitBlocks*unitenc.BlockSize {
		return nil, fmt.Errorf("sectorfile: unit size %d exceeds %d blocks per unit",
			unitSize, unitenc.MaxUnitBlocks)
	}
	if jobs < 0 {
		return nil, fmt.Errorf("sectorfile: negative job count %d", jobs)
	}
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Codec{ue: ue, unitSize: unitSize, jobs: jobs}, nil
}

// UnitSize returns the configured data unit size.
func (c *Codec) UnitSize() int {
	return c.unitSize
}

// Encrypt encrypts data as consecutive units starting at firstSeqNo.
func (c *Codec) Encrypt(data []byte, firstSeqNo uint64) ([]byte, error) {
	return c.run(data, firstSeqNo, c.ue.EncryptUnit)
}

// Decrypt decrypts data as consecutive units starting at firstSeqNo.
func (c *Codec) Decrypt(data []byte, firstSeqNo uint64) ([]byte, error) {
	return c.run(data, firstSeqNo, c.ue.DecryptUnit)
}

func (c *Codec) run(data []byte, firstSeqNo uint64, op func([]byte, uint64) ([]byte, error)) ([]byte, error) {
	if len(data) < unitenc.BlockSize {
		return nil, fmt.Errorf("sectorfile: %w: %d bytes is shorter than one block",
			unitenc.ErrUnitLen, len(data))
	}
	if tail := len(data) % c.unitSize; tail != 0 && tail < unitenc.BlockSize {
		return nil, fmt.Errorf("sectorfile: %w: trailing %d bytes cannot form a data unit",
			unitenc.ErrUnitLen, tail)
	}
	nUnits := (len(data) + c.unitSize - 1) / c.unitSize
	if uint64(nUnits-1) > ^uint64(0)-firstSeqNo {
		return nil, fmt.Errorf("sectorfile: sequence numbers overflow starting at %d", firstSeqNo)
	}

	out := make([]byte, len(data))
	var g errgroup.Group
	g.SetLimit(c.jobs)
	for i := 0; i < nUnits; i++ {
		i := i
		g.Go(func() error {
			lo := i * c.unitSize
			hi := lo + c.unitSize
			if hi > len(data) {
				hi = len(data)
			}
			res, err := op(data[lo:hi], firstSeqNo+uint64(i))
			if err != nil {
				return fmt.Errorf("unit %d: %w", i, err)
			}
			copy(out[lo:hi], res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
