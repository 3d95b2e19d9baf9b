// 17 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/chainfilter/pkg/chainfilter"
	. "github.com/andrew-torda/chainfilter/pkg/common"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] file_or_pattern...")
	fmt.Fprintln(os.Stderr, "       ", path.Base(os.Args[0]), "[opts] -i pdbcode...")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags chainfilter.CmdFlag
	flag.StringVar(&flags.Types, "t", "rna", "chain types, comma separated: rna,dna,lprotein,dprotein")
	flag.BoolVar(&flags.Exclusive, "x", false, "exclusive, every polymer chain must be of the type")
	flag.BoolVar(&flags.Strict, "s", false, "strict, unknown monomers are errors")
	flag.BoolVar(&flags.All, "a", false, "entries must pass all filters, not just one")
	flag.BoolVar(&flags.Fetch, "i", false, "arguments are PDB codes (1abc or pdb_00001abc), fetch them")
	flag.IntVar(&flags.NReader, "r", 0, "reader goroutines, 0 for one per cpu")
	flag.IntVar(&flags.MaxErr, "e", 0, "stop after this many bad entries, 0 for never")
	flag.StringVar(&flags.TableFile, "m", "", "yaml file with extra monomer linkage types")
	flag.StringVar(&flags.LogFile, "l", "", "log to stdout or a file, default nowhere")
	flag.StringVar(&flags.PlotFile, "p", "", "png file for census plot")
	flag.StringVar(&flags.HTMLFile, "w", "", "html viewer page for passing entries")
	flag.StringVar(&flags.OutFile, "o", "", "output csv file name, default stdout")

	flag.Parse()
	if flag.NArg() == 0 {
		os.Exit(usage())
	}
	if err := chainfilter.Mymain(&flags, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
