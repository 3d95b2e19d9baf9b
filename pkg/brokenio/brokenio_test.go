package brokenio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/chainfilter/pkg/brokenio"
)

const longstring = "0123456789012345678901234567890123456789"

func nopRdr(s string) io.ReadCloser { return io.NopCloser(strings.NewReader(s)) }

func TestFrac(t *testing.T) {
	var tstData = []struct {
		frac  float32
		nkeep int
	}{
		{0, 40},
		{0.25, 30},
		{0.5, 20},
		{1, 0},
	}
	for _, tt := range tstData {
		rdr := brokenio.NewReader(nopRdr(longstring),
			brokenio.ProbFail(1), brokenio.FracFail(tt.frac))
		p := make([]byte, len(longstring))
		n, err := rdr.Read(p)
		if n != tt.nkeep {
			t.Error("frac", tt.frac, "want", tt.nkeep, "got", n)
		}
		if nNull := bytes.Count(p, []byte{0}); nNull != len(p)-tt.nkeep {
			t.Error("frac", tt.frac, "got", nNull, "nulls")
		}
		if !bytes.Equal(p[:n], []byte(longstring[:n])) {
			t.Error("frac", tt.frac, "damaged the front of the buffer", string(p[:n]))
		}
		if tt.frac == 0 && err != nil {
			t.Error("frac 0 should not give an error", err)
		}
		if tt.frac > 0 && !errors.Is(err, brokenio.ErrBroken) {
			t.Error("frac", tt.frac, "want ErrBroken, got", err)
		}
	}
}

func TestZeroFile(t *testing.T) {
	rdr := brokenio.NewReader(nopRdr(longstring), brokenio.ProbZeroFile(1))
	b, err := io.ReadAll(rdr)
	if err != nil || len(b) != 0 {
		t.Error("want an empty read, got", len(b), "bytes and", err)
	}
}

func TestPassThrough(t *testing.T) {
	rdr := brokenio.NewReader(nopRdr(longstring), brokenio.Seed(99))
	b, err := io.ReadAll(rdr)
	if err != nil || string(b) != longstring {
		t.Error("unbroken reader changed the input", string(b), err)
	}
	if _, nByte := rdr.Stats(); nByte != len(longstring) {
		t.Error("want", len(longstring), "bytes, got", nByte)
	}
	if err := rdr.Close(); err != nil {
		t.Error(err)
	}
}

// Repeatable with the same seed.
func TestSeed(t *testing.T) {
	read := func() string {
		rdr := brokenio.NewReader(nopRdr(strings.Repeat(longstring, 10)),
			brokenio.ProbFail(0.5), brokenio.Seed(7))
		var sb strings.Builder
		p := make([]byte, 16)
		for {
			n, err := rdr.Read(p)
			sb.Write(p[:n])
			if err == io.EOF {
				break
			}
		}
		return sb.String()
	}
	if a, b := read(), read(); a != b {
		t.Error("same seed, different damage")
	}
}
