// 17 Oct 2026

// Package chaintype has filters which look at the polymer chains of a
// structure and decide if it is, for example, an RNA structure.
//
// A chain is of a type if it has at least one monomer and every
// monomer in it has that linkage type. Only the first model is ever
// looked at, so NMR ensembles cost no more than crystal structures.
// A Matcher passes a structure if any chain is of its type, or in
// exclusive mode, if every chain is. A structure with no polymer
// chains never passes, in either mode.
//
// A Matcher does not change after New, so one can be used by lots of
// goroutines at once.
package chaintype

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/record"
)

// Matcher is a filter for one kind of chain.
type Matcher struct {
	accept    [linkage.NCategory]bool // categories that count as the target
	target    linkage.Category
	also      []linkage.Category
	exclusive bool
	strict    bool
	table     *linkage.Table
}

// Option changes how New builds a Matcher.
type Option func(*Matcher)

// Exclusive asks for every polymer chain to be of the target type,
// rather than just one.
func Exclusive(b bool) Option { return func(m *Matcher) { m.exclusive = b } }

// Strict makes a monomer that is not in the table an error. Otherwise
// such a monomer just means its chain is not of the target type.
func Strict(b bool) Option { return func(m *Matcher) { m.strict = b } }

// WithTable sets the monomer table. nil means linkage.Default().
func WithTable(t *linkage.Table) Option {
	return func(m *Matcher) {
		if t != nil {
			m.table = t
		}
	}
}

// Also lets more categories count as the target. A protein chain
// usually has glycine in it, which is PEPTIDE_LINKING, not L or D.
func Also(cats ...linkage.Category) Option {
	return func(m *Matcher) { m.also = append(m.also, cats...) }
}

// New returns a Matcher looking for chains of the target category.
func New(target linkage.Category, opts ...Option) (*Matcher, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: target category %v", ErrInvalidConfiguration, target)
	}
	m := &Matcher{target: target, table: linkage.Default()}
	for _, o := range opts {
		o(m)
	}
	m.accept[target] = true
	for _, c := range m.also {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: extra category %v", ErrInvalidConfiguration, c)
		}
		m.accept[c] = true
	}
	return m, nil
}

// mustNew is for the named filters whose arguments are known to be good.
func mustNew(target linkage.Category, opts ...Option) *Matcher {
	m, err := New(target, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// NewRNA passes structures with RNA chains.
func NewRNA(exclusive bool) *Matcher {
	return mustNew(linkage.RNALinking, Exclusive(exclusive))
}

// NewDNA passes structures with DNA chains.
func NewDNA(exclusive bool) *Matcher {
	return mustNew(linkage.DNALinking, Exclusive(exclusive))
}

// NewLProtein passes structures with L-protein chains. Glycine counts.
func NewLProtein(exclusive bool) *Matcher {
	return mustNew(linkage.LPeptideLinking, Also(linkage.PeptideLinking), Exclusive(exclusive))
}

// NewDProtein passes structures with D-protein chains. Glycine counts.
func NewDProtein(exclusive bool) *Matcher {
	return mustNew(linkage.DPeptideLinking, Also(linkage.PeptideLinking), Exclusive(exclusive))
}

// String is for logs and column headings, like RNA_LINKING or
// L_PEPTIDE_LINKING+PEPTIDE_LINKING(exclusive).
func (m *Matcher) String() string {
	var b strings.Builder
	b.WriteString(m.target.String())
	for _, c := range m.also {
		b.WriteString("+" + c.String())
	}
	if m.exclusive {
		b.WriteString("(exclusive)")
	}
	return b.String()
}

// Target returns the category we are looking for.
func (m *Matcher) Target() linkage.Category { return m.target }

// Exclusive reports whether every chain has to match.
func (m *Matcher) Exclusive() bool { return m.exclusive }

// lookup tries our table and then the record's own.
func lookup(mine, rec *linkage.Table, mon string) (linkage.Category, bool) {
	if cat, ok := mine.Lookup(mon); ok {
		return cat, true
	}
	return rec.Lookup(mon)
}

// isType says whether every monomer in the chain is of the target
// type. An empty chain is never of any type.
// In strict mode we look at every monomer, so an unknown one is
// always reported, whatever else is in the chain.
func (m *Matcher) isType(id string, c *record.Chain, recTable *linkage.Table) (bool, error) {
	if len(c.Monomers) == 0 {
		return false, nil
	}
	match := true
	for _, mon := range c.Monomers {
		cat, ok := lookup(m.table, recTable, mon)
		if !ok {
			if m.strict {
				return false, &UnclassifiableMonomerError{Record: id, Chain: c.ID, Monomer: mon}
			}
			return false, nil
		}
		if !m.accept[cat] {
			if !m.strict {
				return false, nil
			}
			match = false
		}
	}
	return match, nil
}

// Match looks at the polymer chains of the first model. Monomers
// are looked up in the Matcher's table and then, if the record is
// record.Linked, in the record's own.
func (m *Matcher) Match(rec record.Structure) (bool, error) {
	if rec == nil || rec.NumModels() == 0 {
		return false, nil
	}
	chains := rec.PolymerChains(0)
	if len(chains) == 0 {
		return false, nil
	}
	var recTable *linkage.Table
	if l, ok := rec.(record.Linked); ok {
		recTable = l.Linkage()
	}
	result := m.exclusive
	for i := range chains {
		ok, err := m.isType(rec.ID(), &chains[i], recTable)
		if err != nil {
			return false, err
		}
		switch {
		case ok && !m.exclusive:
			result = true
		case !ok && m.exclusive:
			result = false
		default:
			continue
		}
		if !m.strict { // strict mode has to see every chain
			return result, nil
		}
	}
	return result, nil
}
