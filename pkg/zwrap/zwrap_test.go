// Test Zwrap
package zwrap_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/chainfilter/pkg/zwrap"
)

// both of these are "andrewsays", but the first is compressed. Write them to a file
// and check that the file opener does the right thing.
type gztest struct {
	data    []byte
	gzipped bool
}

var gztests = []gztest{
	{[]byte{
		0x1f, 0x8b, 0x08, 0x00, 0xb6, 0xf1, 0xa0, 0x5b, 0x00, 0x03,
		0x4b, 0xcc, 0x4b, 0x29, 0x4a, 0x2d, 0x2f, 0x4e, 0xac, 0x2c,
		0xce, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x44, 0xa8, 0x66,
		0x89, 0x0f, 0x00, 0x00, 0x00},
		true,
	},
	{[]byte{
		0x61, 0x6e, 0x64, 0x72, 0x65, 0x77, 0x73, 0x61,
		0x79, 0x73, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x0a},
		false,
	},
}

// writeToTmp writes a byte slice to a temporary file and returns the name.
func writeToTmp(t *testing.T, data []byte) string {
	tmpf, err := os.CreateTemp("", "del_me_testing")
	if err != nil {
		t.Fatal("Fail getting TempFile")
	}
	defer tmpf.Close()
	if _, err := tmpf.Write(data); err != nil {
		t.Fatal("fail writing to tempfile")
	}
	t.Cleanup(func() { os.Remove(tmpf.Name()) })
	return tmpf.Name()
}

func TestWrap(t *testing.T) {
	b := make([]byte, 256)
	for _, x := range gztests {
		fp, err := os.Open(writeToTmp(t, x.data))
		if err != nil {
			t.Fatal(err)
		}
		tmpr, err := zwrap.Wrap(fp)
		if err != nil {
			fp.Close()
			if x.gzipped {
				t.Error("Fail on correctly gzipped file")
			}
			continue // It is not gzipped, so move on to next
		}
		if !x.gzipped {
			t.Error("Fail on not compressed file")
		}
		if n, err := tmpr.Read(b); n < 5 {
			t.Errorf("Short read of %d bytes, %s", n, err)
		}
		if string(b[:10]) != "andrewsays" {
			t.Errorf("wrong string: %s", b[:10])
		}
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// Calling Open should not fail since it looks to see if the file
// is compressed or not.
func TestOpen(t *testing.T) {
	for _, x := range gztests {
		rdr, err := zwrap.Open(writeToTmp(t, x.data))
		if err != nil {
			t.Fatalf("Fail on file where compressed was %v: %v", x.gzipped, err)
		}
		b, err := io.ReadAll(rdr)
		if err != nil {
			t.Error(err)
		}
		if !strings.HasPrefix(string(b), "andrewsayshello") {
			t.Errorf("wrong string: %q", b)
		}
		if err := rdr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

func TestOpenEmptyAndBroken(t *testing.T) {
	rdr, err := zwrap.Open(writeToTmp(t, nil))
	if err != nil {
		t.Fatal("empty file", err)
	}
	if b, _ := io.ReadAll(rdr); len(b) != 0 {
		t.Error("expected nothing from empty file")
	}
	rdr.Close()

	for _, s := range []string{"/does/not/exist", os.TempDir()} {
		if _, err := zwrap.Open(s); err == nil {
			t.Error("Did not get expected error on", s)
		}
	}
}
