// 17 Oct 2026

package scan

import (
	"context"
	"fmt"
	"io"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/andrew-torda/chainfilter/pkg/record"
	"github.com/andrew-torda/chainfilter/pkg/zwrap"
)

// FileSource reads mmcif files, compressed or not.
type FileSource struct {
	names    []string
	i        int
	modelMax int16
}

// NewFileSource expands the patterns, which may use ** as in
// "pdb/**/*.cif.gz". A pattern without wildcards is taken as a file
// name, even if it does not exist, so the problem turns up when it is
// read. A pattern with wildcards that matches nothing is an error.
// A file named twice is only read once.
// modelMax limits how many models are read from each file (-1 for all).
func NewFileSource(patterns []string, modelMax int16) (*FileSource, error) {
	fs := &FileSource{modelMax: modelMax}
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			fs.names = append(fs.names, s)
		}
	}
	for _, p := range patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("bad file pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p, err)
		}
		if len(matches) == 0 {
			if hasMeta(p) {
				return nil, fmt.Errorf("no files match %s", p)
			}
			add(p)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return fs, nil
}

// hasMeta is true if a pattern has any glob special characters.
func hasMeta(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '*', '?', '[', '{', '\\':
			return true
		}
	}
	return false
}

// Names returns the file names we will read.
func (fs *FileSource) Names() []string { return fs.names }

// Next returns the next file.
func (fs *FileSource) Next(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fs.i >= len(fs.names) {
		return nil, io.EOF
	}
	fs.i++
	return fileEntry{fs.names[fs.i-1], fs.modelMax}, nil
}

type fileEntry struct {
	fname    string
	modelMax int16
}

func (e fileEntry) Name() string { return e.fname }

// Load opens the file through zwrap and reads it.
func (e fileEntry) Load(ctx context.Context) (record.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fp, err := zwrap.Open(e.fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	rec, _, err := record.ReadMmcif(fp, e.modelMax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.fname, err)
	}
	return rec, nil
}
