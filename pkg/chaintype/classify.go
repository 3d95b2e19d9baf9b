// 17 Oct 2026

package chaintype

import (
	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/record"
)

// Classify says what kind of chain this is, looking monomers up in
// mine and then rec (either may be nil).
//   - an empty chain or one with an unknown monomer is Unknown
//   - glycine (PEPTIDE_LINKING) goes along with L or D peptides, so a
//     chain of L amino acids and glycine is L_PEPTIDE_LINKING
//   - a chain of several other kinds is Other
func Classify(c record.Chain, mine, rec *linkage.Table) linkage.Category {
	if len(c.Monomers) == 0 {
		return linkage.Unknown
	}
	ret := linkage.Unknown
	for _, mon := range c.Monomers {
		cat, ok := lookup(mine, rec, mon)
		if !ok {
			return linkage.Unknown
		}
		switch {
		case ret == linkage.Unknown, ret == cat:
			ret = cat
		case ret == linkage.PeptideLinking && isChiralPeptide(cat):
			ret = cat
		case cat == linkage.PeptideLinking && isChiralPeptide(ret):
		default:
			return linkage.Other
		}
	}
	return ret
}

func isChiralPeptide(c linkage.Category) bool {
	return c == linkage.LPeptideLinking || c == linkage.DPeptideLinking
}
