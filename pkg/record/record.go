// 17 Oct 2026

// Package record holds the little we need to know about a structure
// in order to classify it: models, the polymer chains in each model
// and the monomers in each chain.
package record

import "github.com/andrew-torda/chainfilter/pkg/linkage"

// Chain is one polymer chain. Monomers are the chemical component
// codes in sequence order.
type Chain struct {
	ID       string // label_asym_id
	EntityID string
	Monomers []string
}

// Model is the list of polymer chains in one model.
type Model []Chain

// Structure is what a filter looks at. Implementations must not change
// underneath a caller, since filters run in parallel.
type Structure interface {
	ID() string
	NumModels() int
	PolymerChains(model int) []Chain
}

// Linked is a Structure that brings its own monomer table, usually
// from the _chem_comp category of its file.
type Linked interface {
	Structure
	Linkage() *linkage.Table
}

// Record is an in memory Structure.
type Record struct {
	id     string
	models []Model
	table  *linkage.Table
}

// NewRecord makes a record from its models. The models are not copied.
func NewRecord(id string, models ...Model) *Record {
	return &Record{id: id, models: models}
}

func (r *Record) ID() string     { return r.id }
func (r *Record) NumModels() int { return len(r.models) }

// PolymerChains returns the chains of a model, or nil if there is no
// such model.
func (r *Record) PolymerChains(model int) []Chain {
	if model < 0 || model >= len(r.models) {
		return nil
	}
	return r.models[model]
}

// Linkage is the record's own monomer table, nil if it has none.
func (r *Record) Linkage() *linkage.Table { return r.table }

// WithLinkage returns a copy of the record carrying the table.
func (r *Record) WithLinkage(t *linkage.Table) *Record {
	return &Record{id: r.id, models: r.models, table: t}
}

// AddModel returns a new record with one more model on the end.
// The receiver is not touched.
func (r *Record) AddModel(m Model) *Record {
	models := make([]Model, len(r.models), len(r.models)+1)
	copy(models, r.models)
	return &Record{id: r.id, models: append(models, m), table: r.table}
}
