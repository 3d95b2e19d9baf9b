// 17 Oct 2026

package linkage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Table maps monomer codes (ALA, DA, U, ...) to their Category.
// Once built, it is never changed, so it can be shared between
// goroutines.
type Table struct {
	m map[string]Category
}

// NewTable copies the map into a new Table. Entries whose Category is
// not valid are dropped, so those codes stay unknown.
func NewTable(m map[string]Category) *Table {
	t := &Table{m: make(map[string]Category, len(m))}
	for k, v := range m {
		if v.Valid() {
			t.m[k] = v
		}
	}
	return t
}

// Lookup says how a monomer is linked. ok is false if we have never
// heard of the code. A nil table knows nothing.
func (t *Table) Lookup(code string) (c Category, ok bool) {
	if t == nil {
		return Unknown, false
	}
	c, ok = t.m[code]
	return c, ok
}

// Len is the number of monomer codes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}

// Codes returns the monomer codes, sorted.
func (t *Table) Codes() []string {
	if t == nil {
		return nil
	}
	ret := make([]string, 0, len(t.m))
	for k := range t.m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Merge returns a new table with the entries of both. Where a code is
// in both, other wins. Neither input is touched.
func (t *Table) Merge(other *Table) *Table {
	ret := &Table{m: make(map[string]Category, t.Len()+other.Len())}
	if t != nil {
		for k, v := range t.m {
			ret.m[k] = v
		}
	}
	if other != nil {
		for k, v := range other.m {
			ret.m[k] = v
		}
	}
	return ret
}

var (
	dfltOnce  sync.Once
	dfltTable *Table
)

// Default returns the built in table of standard residues. Everybody
// gets the same one, so do not try to change it.
func Default() *Table {
	dfltOnce.Do(func() {
		m := make(map[string]Category)
		set := func(c Category, codes ...string) {
			for _, s := range codes {
				m[s] = c
			}
		}
		set(RNALinking, "A", "C", "G", "U", "I", "N")
		set(DNALinking, "DA", "DC", "DG", "DT", "DU", "DI", "DN")
		set(LPeptideLinking, "ALA", "ARG", "ASN", "ASP", "CYS", "GLN", "GLU",
			"HIS", "ILE", "LEU", "LYS", "MET", "PHE", "PRO", "SER", "THR",
			"TRP", "TYR", "VAL", "MSE", "SEC", "PYL", "UNK")
		set(PeptideLinking, "GLY")
		set(DPeptideLinking, "DAL", "DAR", "DSG", "DAS", "DCY", "DGN", "DGL",
			"DHI", "DIL", "DLE", "DLY", "MED", "DPN", "DPR", "DSN", "DTH",
			"DTR", "DTY", "DVA")
		set(NonPolymer, "HOH", "DOD")
		dfltTable = &Table{m: m}
	})
	return dfltTable
}

// FromChemComp builds a table from the id and type columns of a
// _chem_comp table. A type we cannot place becomes Other, since the
// component does exist. Missing types (? or .) are skipped.
func FromChemComp(ids, types []string) (*Table, error) {
	if len(ids) != len(types) {
		return nil, fmt.Errorf("chem_comp has %d ids but %d types", len(ids), len(types))
	}
	t := &Table{m: make(map[string]Category, len(ids))}
	for i, id := range ids {
		s := types[i]
		if s == "?" || s == "." || s == "" {
			continue
		}
		c, err := Parse(s)
		if err != nil {
			c = Other
		}
		t.m[id] = c
	}
	return t, nil
}

// yamlTable is the layout of a table file, like
//
//	monomers:
//	  PSU: RNA_LINKING
//	  5CM: dna
type yamlTable struct {
	Monomers map[string]string `yaml:"monomers"`
}

// LoadYAML reads a table from yaml. Any category Parse understands
// can be used.
func LoadYAML(r io.Reader) (*Table, error) {
	var yt yamlTable
	if err := yaml.NewDecoder(r).Decode(&yt); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty linkage table")
		}
		return nil, fmt.Errorf("decoding linkage table: %w", err)
	}
	t := &Table{m: make(map[string]Category, len(yt.Monomers))}
	for code, s := range yt.Monomers {
		c, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("monomer %s: %w", code, err)
		}
		if !c.Valid() {
			return nil, fmt.Errorf("monomer %s: %w %s", code, ErrUnknownCategory, s)
		}
		t.m[code] = c
	}
	return t, nil
}

// ReadYAMLFile opens a file and calls LoadYAML.
func ReadYAMLFile(fname string) (*Table, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	t, err := LoadYAML(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

// WriteYAML writes the table in the form LoadYAML reads.
func (t *Table) WriteYAML(w io.Writer) error {
	yt := yamlTable{Monomers: make(map[string]string, t.Len())}
	for _, k := range t.Codes() {
		c, _ := t.Lookup(k)
		yt.Monomers[k] = c.String()
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yt); err != nil {
		return err
	}
	return enc.Close()
}
