// 17 Oct 2026

// Package scan runs filters over lots of structures. Structures come
// from a Source. A few goroutines read them and apply every filter,
// and the results are collected as one bitmap of passing entries per
// filter.
// As a side effect, we count the chain types we see (the census).
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/andrew-torda/matrix"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/chainfilter/pkg/chaintype"
	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/record"
)

// ErrTooManyErrors stops a scan once Options.MaxErr entries have failed.
var ErrTooManyErrors = errors.New("too many errors")

// Census columns
const (
	CensusChains  = iota // chains of the category in the first model
	CensusRecords        // records with at least one such chain
	nCensusCol
)

// Options for Run. The zero value is usable.
type Options struct {
	NReader int            // worker goroutines, 0 means one per cpu
	MaxErr  int            // stop after this many failed entries, 0 for no limit
	Table   *linkage.Table // for the census, nil means linkage.Default()
	Log     *log.Logger    // per entry problems go here, nil to discard
}

// Result of a scan. Entry i is the i'th thing the Source gave us.
type Result struct {
	Names   []string          // from Entry.Name
	IDs     []string          // from the record, empty if it could not be read
	Filters []string          // names of the filters
	Pass    []*roaring.Bitmap // one per filter, the entries that passed
	Failed  *roaring.Bitmap   // entries that could not be read or checked
	Census  *matrix.FMatrix2d // row per linkage.Category, see Census columns
	NErr    int
	mu      sync.Mutex
}

func newResult(filters []chaintype.Filter) *Result {
	r := &Result{
		Filters: make([]string, len(filters)),
		Pass:    make([]*roaring.Bitmap, len(filters)),
		Failed:  roaring.New(),
		Census:  matrix.NewFMatrix2d(linkage.NCategory, nCensusCol),
	}
	for i, f := range filters {
		r.Filters[i] = chaintype.Name(f)
		r.Pass[i] = roaring.New()
	}
	return r
}

// NEntry is how many entries the Source gave us.
func (r *Result) NEntry() int { return len(r.Names) }

// Passing returns the entries that passed filter i.
func (r *Result) Passing(i int) *roaring.Bitmap { return r.Pass[i] }

// All returns the entries that passed every filter. With no filters,
// nothing passes.
func (r *Result) All() *roaring.Bitmap {
	if len(r.Pass) == 0 {
		return roaring.New()
	}
	return roaring.FastAnd(r.Pass...)
}

// Any returns the entries that passed at least one filter.
func (r *Result) Any() *roaring.Bitmap {
	if len(r.Pass) == 0 {
		return roaring.New()
	}
	return roaring.FastOr(r.Pass...)
}

// CensusCount is how many chains (col CensusChains) or records
// (col CensusRecords) of a category were seen.
func (r *Result) CensusCount(c linkage.Category, col int) int {
	return int(r.Census.Mat[c][col])
}

// addName is called by the one goroutine reading the Source.
func (r *Result) addName(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Names = append(r.Names, name)
	r.IDs = append(r.IDs, "")
	return len(r.Names) - 1
}

// dropName takes back the last name, when its job was never sent.
func (r *Result) dropName(ndx int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Names = r.Names[:ndx]
	r.IDs = r.IDs[:ndx]
}

// addErr counts an error and says whether we have had too many.
func (r *Result) addErr(ndx, maxErr int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.NErr++
	r.Failed.Add(uint32(ndx))
	return maxErr > 0 && r.NErr >= maxErr
}

// addRecord stores what one worker found out about one entry.
func (r *Result) addRecord(ndx int, id string, pass []bool, cats []linkage.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IDs[ndx] = id
	for i, ok := range pass {
		if ok {
			r.Pass[i].Add(uint32(ndx))
		}
	}
	var seen [linkage.NCategory]bool
	for _, c := range cats {
		r.Census.Mat[c][CensusChains]++
		if !seen[c] {
			seen[c] = true
			r.Census.Mat[c][CensusRecords]++
		}
	}
}

type job struct {
	ndx int
	e   Entry
}

// Run applies every filter to every entry from src. An entry that
// cannot be loaded, or that a filter returns an error for, is logged
// and counted, and passes no filter. The scan only stops early if the
// context is cancelled, the Source fails or there are too many errors.
// Whatever was collected is returned along with the error.
func Run(ctx context.Context, src Source, filters []chaintype.Filter, opts Options) (*Result, error) {
	nrdr := opts.NReader
	if nrdr < 1 {
		nrdr = runtime.NumCPU()
	}
	logger := opts.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tbl := opts.Table
	if tbl == nil {
		tbl = linkage.Default()
	}
	res := newResult(filters)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job, nrdr)
	g.Go(func() error {
		defer close(jobs)
		for {
			e, err := src.Next(ctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}
			ndx := res.addName(e.Name())
			select {
			case jobs <- job{ndx, e}:
			case <-ctx.Done():
				res.dropName(ndx)
				return ctx.Err()
			}
		}
	})
	for w := 0; w < nrdr; w++ {
		g.Go(func() error {
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := doOne(ctx, j, filters, tbl, res); err != nil {
					logger.Printf("%s: %v", j.e.Name(), err)
					if res.addErr(j.ndx, opts.MaxErr) {
						return fmt.Errorf("%w (%d), last was %s: %v", ErrTooManyErrors, opts.MaxErr, j.e.Name(), err)
					}
				}
			}
			return nil
		})
	}
	err := g.Wait()
	return res, err
}

// doOne loads an entry and runs the filters on it.
func doOne(ctx context.Context, j job, filters []chaintype.Filter, tbl *linkage.Table, res *Result) error {
	rec, err := j.e.Load(ctx)
	if err != nil {
		return err
	}
	pass := make([]bool, len(filters))
	for i, f := range filters {
		if pass[i], err = f.Match(rec); err != nil {
			return fmt.Errorf("filter %s: %w", res.Filters[i], err)
		}
	}
	var cats []linkage.Category
	var own *linkage.Table
	if l, ok := rec.(record.Linked); ok {
		own = l.Linkage()
	}
	if rec.NumModels() > 0 {
		for _, c := range rec.PolymerChains(0) {
			cats = append(cats, chaintype.Classify(c, tbl, own))
		}
	}
	res.addRecord(j.ndx, rec.ID(), pass, cats)
	return nil
}
