package scan_test

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/chainfilter/pkg/chaintype"
	"github.com/andrew-torda/chainfilter/pkg/linkage"
	. "github.com/andrew-torda/chainfilter/pkg/scan"
)

var testdata = filepath.Join("..", "mmcif", "testdata")

// gzipTo copies a test file into dir, compressed.
func gzipTo(dir, fname string, t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(testdata, fname))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, fname+".gz")
	fp, err := os.Create(out)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	zw := gzip.NewWriter(fp)
	if _, err := zw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestFileSource(t *testing.T) {
	fs, err := NewFileSource([]string{filepath.Join(testdata, "*.cif")}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs.Names()) != 3 {
		t.Fatal("wanted 3 files, got", fs.Names())
	}
	filters := []chaintype.Filter{chaintype.NewRNA(false), chaintype.NewDNA(false), chaintype.NewLProtein(false)}
	res, err := Run(context.Background(), fs, filters, Options{NReader: 2})
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(res.IDs) != "[ALA 9DNA 9RNP]" {
		t.Error("ids, got", res.IDs)
	}
	for i, want := range []string{"[2]", "[]", "[2]"} {
		if got := fmt.Sprint(res.Passing(i).ToArray()); got != want {
			t.Error("filter", res.Filters[i], "wanted", want, "got", got)
		}
	}
	if n := res.CensusCount(linkage.Unknown, CensusChains); n != 1 {
		t.Error("the chain with XYZ should be unknown, got", n)
	}
}

func TestFileSourceGlob(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "r9", "9r")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	gzipTo(sub, "rnp_two_model.cif", t)
	gzipTo(dir, "dna_items.cif", t)

	pattern := filepath.Join(dir, "**", "*.cif.gz")
	fs, err := NewFileSource([]string{pattern, pattern}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs.Names()) != 2 {
		t.Fatal("duplicates should go, got", fs.Names())
	}
	res, err := Run(context.Background(), fs, []chaintype.Filter{chaintype.NewRNA(true)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.NErr != 0 {
		t.Error("errors reading gzipped files", res.NErr)
	}
	if res.Passing(0).GetCardinality() != 0 {
		t.Error("nothing here is only RNA")
	}
	if n := res.CensusCount(linkage.RNALinking, CensusRecords); n != 1 {
		t.Error("wanted one record with RNA, got", n)
	}
}

func TestFileSourceBroken(t *testing.T) {
	if _, err := NewFileSource([]string{filepath.Join(testdata, "*.nothing")}, -1); err == nil {
		t.Error("pattern matching nothing should fail")
	}
	if _, err := NewFileSource([]string{"[unclosed"}, -1); err == nil {
		t.Error("bad pattern should fail")
	}
	missing := filepath.Join(t.TempDir(), "1abc.cif")
	junk := filepath.Join(t.TempDir(), "junk.cif")
	if err := os.WriteFile(junk, []byte("this is not\nan mmcif file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fs, err := NewFileSource([]string{missing, junk}, -1)
	if err != nil {
		t.Fatal("plain names are taken as they are", err)
	}
	res, err := Run(context.Background(), fs, []chaintype.Filter{chaintype.NewRNA(false)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.NErr != 2 {
		t.Error("wanted two failed files, got", res.NErr)
	}
}
