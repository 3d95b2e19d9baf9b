package chaintype_test

import (
	"testing"

	. "github.com/andrew-torda/chainfilter/pkg/chaintype"
	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/record"
)

func TestClassify(t *testing.T) {
	dflt := linkage.Default()
	var tstData = []struct {
		c    record.Chain
		want linkage.Category
	}{
		{rnaChain, linkage.RNALinking},
		{dnaChain, linkage.DNALinking},
		{protChain, linkage.LPeptideLinking},
		{dprot, linkage.DPeptideLinking},
		{chain("G", "GLY", "GLY"), linkage.PeptideLinking},
		{chain("G", "GLY", "ALA", "DAL"), linkage.Other},
		{chain("H", "A", "DA"), linkage.Other},
		{oddDNA, linkage.Unknown},
		{emptyCh, linkage.Unknown},
	}
	for _, tt := range tstData {
		if got := Classify(tt.c, dflt, nil); got != tt.want {
			t.Error(tt.c.Monomers, "wanted", tt.want, "got", got)
		}
	}
	own := linkage.NewTable(map[string]linkage.Category{"XYZ": linkage.DNALinking})
	if got := Classify(oddDNA, dflt, own); got != linkage.DNALinking {
		t.Error("record table should fill the gap, got", got)
	}
}

// A record from a file brings its own chem_comp table.
func TestRecordTable(t *testing.T) {
	psu := record.NewRecord("1PSU", record.Model{chain("A", "G", "PSU", "C")})
	if ok, _ := NewRNA(true).Match(psu); ok {
		t.Error("PSU unknown without a table")
	}
	own := linkage.NewTable(map[string]linkage.Category{"PSU": linkage.RNALinking, "G": linkage.Other})
	if ok, _ := NewRNA(true).Match(psu.WithLinkage(own)); !ok {
		t.Error("PSU known from record table, should pass")
	}
	m, _ := New(linkage.RNALinking, Exclusive(true), Strict(true))
	if _, err := m.Match(psu.WithLinkage(own)); err != nil {
		t.Error("strict mode should use the record table too", err)
	}
}
