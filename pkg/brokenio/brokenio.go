// 17 Oct 2026

// Package brokenio wraps an io.ReadCloser so that reads go wrong
// now and then. It is for checking that the structure readers give
// up cleanly on truncated downloads, damaged gzip streams and
// empty files.
//
// Typical use:
//
//	rdr = brokenio.NewReader(rdr, brokenio.ProbFail(0.1))
//
// Everything works as before, but with artificial errors.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is what the damaged reads wrap.
var ErrBroken = errors.New("broken read")

// Reader is the wrapped reader. The probabilities are fractions, so
// 0.05 means failure in 5% of the calls.
type Reader struct {
	rdr          io.ReadCloser
	rnd          *rand.Rand
	probZeroFile float32 // return EOF on the very first read
	probFail     float32 // damage a read
	fracFail     float32 // how much of a damaged read is zeroed
	nCalled      int
	nByte        int
}

// Option sets one of the failure rates.
type Option func(*Reader)

// ProbZeroFile is the chance of the first read returning io.EOF and
// nothing else, which is what an empty file looks like.
func ProbZeroFile(p float32) Option { return func(r *Reader) { r.probZeroFile = p } }

// ProbFail is the chance of a read being damaged.
func ProbFail(p float32) Option { return func(r *Reader) { r.probFail = p } }

// FracFail is how much of a damaged read is wiped out. 0.3 zeroes
// the last 30 % of the buffer.
func FracFail(f float32) Option { return func(r *Reader) { r.fracFail = f } }

// Seed makes the failures repeatable.
func Seed(s int64) Option { return func(r *Reader) { r.rnd = rand.New(rand.NewSource(s)) } }

// NewReader wraps rIn. With no options, nothing goes wrong.
func NewReader(rIn io.ReadCloser, opts ...Option) *Reader {
	r := &Reader{rdr: rIn, fracFail: 0.5}
	for _, o := range opts {
		o(r)
	}
	if r.rnd == nil {
		r.rnd = rand.New(rand.NewSource(1))
	}
	return r
}

// trash zeroes the end of p and says how much is left.
func trash(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	clear(p[nkeep:])
	return nkeep, fmt.Errorf("%w: wiped out last %d of %d bytes", ErrBroken, len(p)-nkeep, len(p))
}

// Read passes through to the wrapped reader, sometimes damaging what
// comes back.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	n, err := r.rdr.Read(p)
	r.nCalled++
	r.nByte += n
	if n > 0 && r.fracFail > 0 && r.rnd.Float32() < r.probFail {
		return trash(p[:n], r.fracFail)
	}
	return n, err
}

// Close closes the wrapped reader.
func (r *Reader) Close() error { return r.rdr.Close() }

// Stats says how often Read was called and how many bytes went through.
func (r *Reader) Stats() (nCalled, nByte int) { return r.nCalled, r.nByte }
