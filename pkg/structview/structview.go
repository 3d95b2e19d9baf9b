// 17 Oct 2026

// Package structview is behind the structview command, which writes
// a viewer page for a list of PDB codes.
package structview

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/andrew-torda/chainfilter/pkg/viewer"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Style    string
	Color    string
	Atom     string  // highlight atoms with this name
	Groups   string  // comma separated residue numbers, one per code
	Chains   string  // comma separated chains to go with Groups
	Distance float64 // neighbor cutoff for Groups
}

// splitList breaks "a, b,c" into pieces, nil for an empty string.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	ret := strings.Split(s, ",")
	for i := range ret {
		ret[i] = strings.TrimSpace(ret[i])
	}
	return ret
}

// mkPage picks the kind of page from the flags.
func mkPage(flags *CmdFlag, ids []string) (*viewer.Page, error) {
	if flags.Groups == "" {
		if flags.Atom != "" {
			return viewer.Interaction(ids, flags.Atom, flags.Style, flags.Color)
		}
		return viewer.Simple(ids, flags.Style, flags.Color)
	}
	var groups []int
	for _, s := range splitList(flags.Groups) {
		g, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("group %q is not a residue number", s)
		}
		groups = append(groups, g)
	}
	return viewer.GroupNeighbor(ids, groups, splitList(flags.Chains), flags.Distance)
}

// Mymain writes the page to outfile.
func Mymain(flags *CmdFlag, outfile string, ids []string) error {
	page, err := mkPage(flags, ids)
	if err != nil {
		return err
	}
	fp, err := os.Create(outfile)
	if err != nil {
		return err
	}
	if err := page.Write(fp); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", outfile, err)
	}
	return fp.Close()
}
