// 17 Oct 2026

// Package chainfilter is the work behind the chainfilter command.
package chainfilter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/andrew-torda/chainfilter/pkg/chaintype"
	"github.com/andrew-torda/chainfilter/pkg/common"
	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/plot"
	"github.com/andrew-torda/chainfilter/pkg/scan"
	"github.com/andrew-torda/chainfilter/pkg/viewer"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Types     string // comma separated, like rna,dna or L-peptide linking
	Exclusive bool   // every chain must be of the type
	Strict    bool   // unknown monomers are errors
	All       bool   // an entry must pass every filter, not just one
	Fetch     bool   // arguments are PDB codes to download
	NReader   int    // goroutines reading files
	MaxErr    int    // give up after this many bad entries, 0 for never
	TableFile string // yaml file with extra monomers
	LogFile   string // "" to discard, "stdout" or a file name
	PlotFile  string // png census plot
	HTMLFile  string // viewer page for the entries that pass
	OutFile   string // csv, "" or "-" for stdout
}

// We only look at the first model, so there is no point reading more.
const modelMax = 1

// mkFilters turns the type list into filters. L and D peptide filters
// let glycine through.
func mkFilters(flags *CmdFlag, tbl *linkage.Table) ([]chaintype.Filter, error) {
	var filters []chaintype.Filter
	for _, s := range strings.Split(flags.Types, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		cat, err := linkage.Parse(s)
		if err != nil {
			return nil, err
		}
		opts := []chaintype.Option{
			chaintype.Exclusive(flags.Exclusive),
			chaintype.Strict(flags.Strict),
			chaintype.WithTable(tbl),
		}
		if cat == linkage.LPeptideLinking || cat == linkage.DPeptideLinking {
			opts = append(opts, chaintype.Also(linkage.PeptideLinking))
		}
		m, err := chaintype.New(cat, opts...)
		if err != nil {
			return nil, err
		}
		filters = append(filters, m)
	}
	if len(filters) == 0 {
		return nil, errors.New("no chain types given")
	}
	return filters, nil
}

// mkSource decides if we read files or go to the PDB.
func mkSource(flags *CmdFlag, args []string) (scan.Source, error) {
	if len(args) == 0 {
		return nil, errors.New("no input files or codes")
	}
	if flags.Fetch {
		return scan.NewFetchSource(args, nil, nil, modelMax), nil
	}
	return scan.NewFileSource(args, modelMax)
}

// writeCSV writes one row per selected entry: id, where it came
// from and a column per filter.
func writeCSV(w io.Writer, res *scan.Result, sel *roaring.Bitmap) error {
	cw := csv.NewWriter(w)
	hdr := append([]string{"pdb id", "source"}, res.Filters...)
	if err := cw.Write(hdr); err != nil {
		return err
	}
	row := make([]string, len(hdr))
	for it := sel.Iterator(); it.HasNext(); {
		i := it.Next()
		row[0], row[1] = res.IDs[i], res.Names[i]
		for j := range res.Filters {
			row[j+2] = strconv.FormatBool(res.Passing(j).Contains(i))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// wrtFile opens a file, hands it to fn and closes it. "" and "-"
// mean stdout.
func wrtFile(fname string, fn func(io.Writer) error) error {
	if fname == "" || fname == "-" {
		return fn(os.Stdout)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := fn(fp); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return fp.Close()
}

// Mymain does the work after the command line has been parsed.
func Mymain(flags *CmdFlag, args []string) (err error) {
	logger, closeLog, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeLog()) }()
	tbl := linkage.Default()
	if flags.TableFile != "" {
		extra, err := linkage.ReadYAMLFile(flags.TableFile)
		if err != nil {
			return err
		}
		tbl = tbl.Merge(extra)
		logger.Printf("%d monomers from %s", extra.Len(), flags.TableFile)
	}
	filters, err := mkFilters(flags, tbl)
	if err != nil {
		return err
	}
	src, err := mkSource(flags, args)
	if err != nil {
		return err
	}

	opts := scan.Options{NReader: flags.NReader, MaxErr: flags.MaxErr, Table: tbl, Log: logger}
	res, err := scan.Run(context.Background(), src, filters, opts)
	if err != nil {
		return err
	}
	sel := res.Any()
	if flags.All {
		sel = res.All()
	}
	logger.Printf("%d entries, %d passed, %d errors", res.NEntry(), sel.GetCardinality(), res.NErr)

	if err := wrtFile(flags.OutFile, func(w io.Writer) error { return writeCSV(w, res, sel) }); err != nil {
		return err
	}
	if flags.PlotFile != "" {
		if err := wrtFile(flags.PlotFile, func(w io.Writer) error { return plot.Census(w, res) }); err != nil {
			return err
		}
	}
	if flags.HTMLFile != "" && !sel.IsEmpty() {
		var ids []string
		for it := sel.Iterator(); it.HasNext(); {
			ids = append(ids, res.IDs[it.Next()])
		}
		page, err := viewer.Simple(ids, "cartoon", "spectrum")
		if err != nil {
			return err
		}
		if err := wrtFile(flags.HTMLFile, page.Write); err != nil {
			return err
		}
	}
	return nil
}
