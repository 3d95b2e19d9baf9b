// 17 Oct 2026

// Package linkage says how a monomer (chemical component) is linked
// into a polymer. The categories follow the _chem_comp.type values of
// the PDB chemical component dictionary, but the terminus variants are
// folded into their parent, so "RNA OH 3 prime terminus" is just RNA.
package linkage

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the linkage type of a monomer. The zero value, Unknown,
// is what you get for a code nobody told us about.
type Category uint8

const (
	Unknown Category = iota
	RNALinking
	DNALinking
	LPeptideLinking
	DPeptideLinking
	PeptideLinking
	Saccharide
	NonPolymer
	Other
	nCategory
)

// NCategory is the number of categories, including Unknown. Handy for
// sizing arrays indexed by Category.
const NCategory = int(nCategory)

var catNames = [nCategory]string{
	"UNKNOWN",
	"RNA_LINKING",
	"DNA_LINKING",
	"L_PEPTIDE_LINKING",
	"D_PEPTIDE_LINKING",
	"PEPTIDE_LINKING",
	"SACCHARIDE",
	"NON_POLYMER",
	"OTHER",
}

// String gives the canonical name like RNA_LINKING.
func (c Category) String() string {
	if c >= nCategory {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return catNames[c]
}

// Valid is true for every category a monomer can really have.
func (c Category) Valid() bool {
	return c > Unknown && c < nCategory
}

// ErrUnknownCategory comes back from Parse.
var ErrUnknownCategory = errors.New("unknown linkage category")

// shortNames are what a person types on a command line or in a
// table file.
var shortNames = map[string]Category{
	"RNA":        RNALinking,
	"DNA":        DNALinking,
	"LPEPTIDE":   LPeptideLinking,
	"LPROTEIN":   LPeptideLinking,
	"DPEPTIDE":   DPeptideLinking,
	"DPROTEIN":   DPeptideLinking,
	"PEPTIDE":    PeptideLinking,
	"SACCHARIDE": Saccharide,
	"NONPOLYMER": NonPolymer,
	"OTHER":      Other,
}

// cifTypes maps upper cased _chem_comp.type strings. Saccharides are
// handled by prefix since there are so many variants.
var cifTypes = map[string]Category{
	"RNA LINKING":                      RNALinking,
	"RNA OH 3 PRIME TERMINUS":          RNALinking,
	"RNA OH 5 PRIME TERMINUS":          RNALinking,
	"DNA LINKING":                      DNALinking,
	"DNA OH 3 PRIME TERMINUS":          DNALinking,
	"DNA OH 5 PRIME TERMINUS":          DNALinking,
	"L-PEPTIDE LINKING":                LPeptideLinking,
	"L-PEPTIDE COOH CARBOXY TERMINUS":  LPeptideLinking,
	"L-PEPTIDE NH3 AMINO TERMINUS":     LPeptideLinking,
	"D-PEPTIDE LINKING":                DPeptideLinking,
	"D-PEPTIDE COOH CARBOXY TERMINUS":  DPeptideLinking,
	"D-PEPTIDE NH3 AMINO TERMINUS":     DPeptideLinking,
	"PEPTIDE LINKING":                  PeptideLinking,
	"NON-POLYMER":                      NonPolymer,
	"PEPTIDE-LIKE":                     Other,
	"L-RNA LINKING":                    Other,
	"L-DNA LINKING":                    Other,
	"D-GAMMA-PEPTIDE, C-DELTA LINKING": Other,
	"D-BETA-PEPTIDE, C-GAMMA LINKING":  Other,
	"L-GAMMA-PEPTIDE, C-DELTA LINKING": Other,
	"L-BETA-PEPTIDE, C-GAMMA LINKING":  Other,
	"OTHER":                            Other,
}

// Parse accepts the canonical names (RNA_LINKING), the short names
// (rna, dprotein, ...) and the strings found in _chem_comp.type.
// Case does not matter.
func Parse(s string) (Category, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	if u == "" {
		return Unknown, fmt.Errorf("%w: empty string", ErrUnknownCategory)
	}
	for c := RNALinking; c < nCategory; c++ {
		if u == catNames[c] {
			return c, nil
		}
	}
	if c, ok := shortNames[u]; ok {
		return c, nil
	}
	if c, ok := cifTypes[u]; ok {
		return c, nil
	}
	if c, ok := cifTypes[strings.ReplaceAll(u, "_", " ")]; ok {
		return c, nil
	}
	switch {
	case strings.HasPrefix(u, "D-SACCHARIDE"), strings.HasPrefix(u, "L-SACCHARIDE"),
		strings.HasPrefix(u, "SACCHARIDE"):
		return Saccharide, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
