package common_test

import (
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/chainfilter/pkg/common"
)

func TestWrtTemp(t *testing.T) {
	const s = "data_1abc\n"
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != s {
		t.Fatal("got", string(b), "want", s)
	}
}

func TestLogWhere(t *testing.T) {
	lg, closer, err := common.LogWhere("")
	if err != nil || lg == nil || closer() != nil {
		t.Fatal("discard logger", err)
	}
	fname, err := common.WrtTemp("")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	lg, closer, err = common.LogWhere(fname)
	if err != nil {
		t.Fatal(err)
	}
	lg.Println("broken entry 9xyz")
	if err := closer(); err != nil {
		t.Fatal("closing log file", err)
	}
	if err := closer(); err == nil {
		t.Error("second close should complain, file was not closed")
	}
	b, _ := os.ReadFile(fname)
	if !strings.Contains(string(b), "9xyz") {
		t.Fatal("log file missing message, got", string(b))
	}
	if _, _, err := common.LogWhere("/does/not/exist/log"); err == nil {
		t.Fatal("expected error for impossible log file")
	}
}
