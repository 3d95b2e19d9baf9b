// 17 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/chainfilter/pkg/common"
	"github.com/andrew-torda/chainfilter/pkg/structview"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] out.html pdbcode...")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags structview.CmdFlag
	flag.StringVar(&flags.Style, "s", "cartoon", "style: stick line cross sphere cartoon vdw ms")
	flag.StringVar(&flags.Color, "c", "spectrum", "color")
	flag.StringVar(&flags.Atom, "a", "", "highlight atoms with this name, like ZN")
	flag.StringVar(&flags.Groups, "g", "", "residue numbers to zoom in on, one per code, comma separated")
	flag.StringVar(&flags.Chains, "k", "", "chains to go with -g, default A for all")
	flag.Float64Var(&flags.Distance, "d", 3.0, "neighbor distance for -g")

	flag.Parse()
	if flag.NArg() < 2 {
		os.Exit(usage())
	}
	if err := structview.Mymain(&flags, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
