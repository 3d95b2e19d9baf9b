// 17 Oct 2026

package scan

import (
	"context"
	"io"

	"github.com/andrew-torda/chainfilter/pkg/record"
)

// Entry is one structure, not yet read. Load may be slow (a file or a
// download), so Run calls it from the worker goroutines.
type Entry interface {
	Name() string
	Load(ctx context.Context) (record.Structure, error)
}

// Source hands out entries, one at a time, and then io.EOF.
// Run calls Next from one goroutine only.
type Source interface {
	Next(ctx context.Context) (Entry, error)
}

// recEntry is an entry that is already in memory.
type recEntry struct{ rec record.Structure }

func (e recEntry) Name() string                                   { return e.rec.ID() }
func (e recEntry) Load(context.Context) (record.Structure, error) { return e.rec, nil }

// SliceSource serves records we already have.
type SliceSource struct {
	recs []record.Structure
	i    int
}

// NewSliceSource makes a Source from records.
func NewSliceSource(recs ...record.Structure) *SliceSource {
	return &SliceSource{recs: recs}
}

// Next returns the next record, or io.EOF.
func (s *SliceSource) Next(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.i >= len(s.recs) {
		return nil, io.EOF
	}
	s.i++
	return recEntry{s.recs[s.i-1]}, nil
}
