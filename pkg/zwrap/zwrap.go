// Package zwrap opens structure files which may or may not be gzipped.
// Whatever comes back is a ReadCloser. Closing it closes the
// decompressor (if there is one) and then the underlying file.
// Uncompressed files are memory mapped rather than read through a
// buffer, since the mmcif reader pulls the whole thing through anyway.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

var gzMagic = []byte{0x1f, 0x8b}

// FpGzip is what we return for compressed streams.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
// It should work if the source is a file or an http stream.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Wrap takes a source like a file pointer or http stream and wraps it
// in a decompressor. It fails if the source is not gzipped.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, zrdr: zrdr}, nil
}

// mapped is an uncompressed file, mapped into memory.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

// Close unmaps, then closes the file.
func (m *mapped) Close() error {
	return errors.Join(m.mm.Unmap(), m.fp.Close())
}

// isGzip peeks at the first two bytes and rewinds.
func isGzip(fp io.ReadSeeker) (bool, error) {
	var b [2]byte
	n, err := io.ReadFull(fp, b[:])
	if _, e2 := fp.Seek(0, io.SeekStart); e2 != nil {
		return false, e2
	}
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return n == 2 && bytes.Equal(b[:], gzMagic), nil
}

// Open opens a file and returns a reader that does the right thing
// whether or not the contents are gzipped.
func Open(fname string) (io.ReadCloser, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		fp.Close()
		return nil, fmt.Errorf("%s: not a regular file", fname)
	}
	gz, err := isGzip(fp)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if gz {
		r, err := Wrap(fp)
		if err != nil {
			fp.Close()
			return nil, fmt.Errorf("reading %s: %w", fname, err)
		}
		return r, nil
	}
	if fi.Size() == 0 { // cannot map zero bytes
		return fp, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	return &mapped{Reader: bytes.NewReader(mm), mm: mm, fp: fp}, nil
}
