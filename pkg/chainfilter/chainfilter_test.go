package chainfilter_test

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/andrew-torda/chainfilter/pkg/chainfilter"
	"github.com/andrew-torda/chainfilter/pkg/common"
	"github.com/andrew-torda/chainfilter/pkg/scan"
)

var pattern = filepath.Join("..", "mmcif", "testdata", "*.cif")

func readOut(fname string, t *testing.T) []string {
	t.Helper()
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

func TestMymain(t *testing.T) {
	dir := t.TempDir()
	flags := CmdFlag{
		Types:    "rna,dna",
		OutFile:  filepath.Join(dir, "out.csv"),
		PlotFile: filepath.Join(dir, "census.png"),
		HTMLFile: filepath.Join(dir, "view.html"),
		LogFile:  filepath.Join(dir, "log"),
	}
	if err := Mymain(&flags, []string{pattern}); err != nil {
		t.Fatal(err)
	}
	lines := readOut(flags.OutFile, t)
	if len(lines) != 2 {
		t.Fatal("wanted header and one entry, got", lines)
	}
	if lines[0] != "pdb id,source,RNA_LINKING,DNA_LINKING" {
		t.Error("header", lines[0])
	}
	if !strings.HasPrefix(lines[1], "9RNP,") || !strings.HasSuffix(lines[1], ",true,false") {
		t.Error("row", lines[1])
	}

	fp, err := os.Open(flags.PlotFile)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if _, err := png.Decode(fp); err != nil {
		t.Error("census plot is not a png", err)
	}
	html, err := os.ReadFile(flags.HTMLFile)
	if err != nil || !strings.Contains(string(html), `"id":"9RNP"`) {
		t.Error("viewer page should show 9RNP", err)
	}
	if log := readOut(flags.LogFile, t); !strings.Contains(log[len(log)-1], "3 entries, 1 passed, 0 errors") {
		t.Error("log", log)
	}
}

// With XYZ declared as DNA, 9DNA becomes a DNA structure.
func TestTableFile(t *testing.T) {
	tblFile, err := common.WrtTemp("monomers:\n  XYZ: DNA_LINKING\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tblFile)
	out := filepath.Join(t.TempDir(), "out.csv")
	flags := CmdFlag{Types: "dna", Exclusive: true, TableFile: tblFile, OutFile: out}
	if err := Mymain(&flags, []string{pattern}); err != nil {
		t.Fatal(err)
	}
	lines := readOut(out, t)
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "9DNA,") {
		t.Error("wanted 9DNA, got", lines)
	}
}

func TestAll(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	flags := CmdFlag{Types: "rna, lprotein", All: true, OutFile: out}
	if err := Mymain(&flags, []string{pattern}); err != nil {
		t.Fatal(err)
	}
	lines := readOut(out, t)
	if len(lines) != 2 || !strings.HasSuffix(lines[1], ",true,true") {
		t.Error("9RNP has both, got", lines)
	}
	flags.Types = "rna,dna"
	if err := Mymain(&flags, []string{pattern}); err != nil {
		t.Fatal(err)
	}
	if lines := readOut(out, t); len(lines) != 1 {
		t.Error("nothing has RNA and DNA, got", lines)
	}
}

func TestMymainBroken(t *testing.T) {
	var tstData = []struct {
		name  string
		flags CmdFlag
		args  []string
	}{
		{"bad type", CmdFlag{Types: "protein-ish"}, []string{pattern}},
		{"no type", CmdFlag{Types: " , "}, []string{pattern}},
		{"no args", CmdFlag{Types: "rna"}, nil},
		{"no table", CmdFlag{Types: "rna", TableFile: "/no/such/table.yaml"}, []string{pattern}},
		{"no match", CmdFlag{Types: "rna"}, []string{filepath.Join("..", "mmcif", "testdata", "*.pdb")}},
	}
	for _, tt := range tstData {
		tt.flags.OutFile = filepath.Join(t.TempDir(), "out.csv")
		if err := Mymain(&tt.flags, tt.args); err == nil {
			t.Error(tt.name, "should fail")
		}
	}

	flags := CmdFlag{Types: "dna", Strict: true, MaxErr: 1, NReader: 1,
		OutFile: filepath.Join(t.TempDir(), "out.csv")}
	if err := Mymain(&flags, []string{pattern}); !errors.Is(err, scan.ErrTooManyErrors) {
		t.Error("strict with XYZ should give too many errors, got", err)
	}
}
