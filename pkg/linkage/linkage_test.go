package linkage_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/chainfilter/pkg/common"
	. "github.com/andrew-torda/chainfilter/pkg/linkage"
)

func TestParse(t *testing.T) {
	var tstData = []struct {
		in  string
		out Category
	}{
		{"RNA_LINKING", RNALinking},
		{"rna", RNALinking},
		{"RNA linking", RNALinking},
		{"RNA OH 3 prime terminus", RNALinking},
		{"DNA OH 5 prime terminus", DNALinking},
		{"dna_linking", DNALinking},
		{"L-peptide linking", LPeptideLinking},
		{"L-peptide COOH carboxy terminus", LPeptideLinking},
		{"L-peptide NH3 amino terminus", LPeptideLinking},
		{"lprotein", LPeptideLinking},
		{"D-PEPTIDE LINKING", DPeptideLinking},
		{"peptide linking", PeptideLinking},
		{"D-saccharide, beta linking", Saccharide},
		{"L-saccharide", Saccharide},
		{"saccharide", Saccharide},
		{"non-polymer", NonPolymer},
		{"NON_POLYMER", NonPolymer},
		{"L-RNA linking", Other},
		{"peptide-like", Other},
		{"  other ", Other},
	}
	for _, tt := range tstData {
		got, err := Parse(tt.in)
		if err != nil {
			t.Error(tt.in, err)
			continue
		}
		if got != tt.out {
			t.Errorf("%q: wanted %v got %v", tt.in, tt.out, got)
		}
	}
	for _, s := range []string{"", "UNKNOWN", "protein-ish", "RNA LINKER"} {
		c, err := Parse(s)
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("%q: wanted ErrUnknownCategory, got %v", s, err)
		}
		if c != Unknown || c.Valid() {
			t.Errorf("%q: should give Unknown", s)
		}
	}
}

func TestString(t *testing.T) {
	for c := Category(1); int(c) < NCategory; c++ {
		back, err := Parse(c.String())
		if err != nil || back != c {
			t.Error("String/Parse do not agree on", c)
		}
		if !c.Valid() {
			t.Error(c, "should be valid")
		}
	}
	if s := Category(200).String(); s != "Category(200)" {
		t.Error("out of range category printed as", s)
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d != Default() {
		t.Error("Default should always be the same table")
	}
	var tstData = []struct {
		code string
		cat  Category
		ok   bool
	}{
		{"U", RNALinking, true},
		{"DT", DNALinking, true},
		{"MSE", LPeptideLinking, true},
		{"GLY", PeptideLinking, true},
		{"DAL", DPeptideLinking, true},
		{"HOH", NonPolymer, true},
		{"XYZ", Unknown, false},
		{"ala", Unknown, false},
	}
	for _, tt := range tstData {
		c, ok := d.Lookup(tt.code)
		if c != tt.cat || ok != tt.ok {
			t.Error(tt.code, "wanted", tt.cat, tt.ok, "got", c, ok)
		}
	}
	var nilTable *Table
	if _, ok := nilTable.Lookup("A"); ok || nilTable.Len() != 0 {
		t.Error("nil table should know nothing")
	}
}

func TestMerge(t *testing.T) {
	mine := NewTable(map[string]Category{"PSU": RNALinking, "A": Other})
	m := Default().Merge(mine)
	if m.Len() != Default().Len()+1 {
		t.Error("merged length wrong", m.Len())
	}
	if c, _ := m.Lookup("A"); c != Other {
		t.Error("second table should win, got", c)
	}
	if c, _ := Default().Lookup("A"); c != RNALinking {
		t.Error("Merge changed the default table")
	}
	if c, ok := m.Lookup("PSU"); !ok || c != RNALinking {
		t.Error("PSU lost in merge")
	}
	var nilTable *Table
	if nilTable.Merge(mine).Len() != 2 || mine.Merge(nil).Len() != 2 {
		t.Error("merge with nil table")
	}
}

func TestNewTableBadCategory(t *testing.T) {
	tbl := NewTable(map[string]Category{"ZZZ": Category(42), "YYY": Unknown, "PSU": RNALinking})
	if tbl.Len() != 1 {
		t.Error("wanted only PSU kept, got", tbl.Codes())
	}
	if _, ok := tbl.Lookup("ZZZ"); ok {
		t.Error("out of range category should be dropped")
	}
}

func TestFromChemComp(t *testing.T) {
	ids := []string{"A", "HOH", "DA", "ZZZ", "QQQ"}
	types := []string{"RNA linking", "non-polymer", "DNA OH 5 prime terminus", "strange new type", "?"}
	tbl, err := FromChemComp(ids, types)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]Category{"A": RNALinking, "HOH": NonPolymer, "DA": DNALinking, "ZZZ": Other}
	if tbl.Len() != len(want) {
		t.Error("wanted", len(want), "entries, got", tbl.Len())
	}
	for k, v := range want {
		if c, _ := tbl.Lookup(k); c != v {
			t.Error(k, "wanted", v, "got", c)
		}
	}
	if _, err := FromChemComp(ids, types[:2]); err == nil {
		t.Error("mismatched columns should fail")
	}
}

const goodYaml = `# modified residues
monomers:
  PSU: RNA_LINKING
  5CM: dna
  SEP: L-peptide linking
`

func TestYAML(t *testing.T) {
	fname, err := common.WrtTemp(goodYaml)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	tbl, err := ReadYAMLFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(tbl.Codes(), " "); got != "5CM PSU SEP" {
		t.Error("codes, got", got)
	}
	if c, _ := tbl.Lookup("5CM"); c != DNALinking {
		t.Error("5CM, got", c)
	}

	var b strings.Builder
	if err := tbl.WriteYAML(&b); err != nil {
		t.Fatal(err)
	}
	back, err := LoadYAML(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err, b.String())
	}
	if c, _ := back.Lookup("SEP"); c != LPeptideLinking || back.Len() != 3 {
		t.Error("table did not survive writing\n", b.String())
	}
}

func TestYAMLBroken(t *testing.T) {
	var tstData = []struct {
		name, in, msg string
	}{
		{"empty", "", "empty"},
		{"bad category", "monomers:\n  PSU: RNA_LINKIN\n", "PSU"},
		{"unknown", "monomers:\n  XXX: unknown\n", "XXX"},
		{"not yaml", "monomers: [a, b\n", "decoding"},
	}
	for _, tt := range tstData {
		_, err := LoadYAML(strings.NewReader(tt.in))
		if err == nil {
			t.Error(tt.name, "should fail")
			continue
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Error(tt.name, "error should mention", tt.msg, "got", err)
		}
	}
	if _, err := ReadYAMLFile("/no/such/file/here.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}
