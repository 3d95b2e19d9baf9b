// 17 Oct 2026

package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andrew-torda/chainfilter/pkg/record"
	"github.com/andrew-torda/chainfilter/pkg/zwrap"
)

// Mirror is a site that serves mmcif files by PDB code. The url is
// Base + code + Suffix.
type Mirror struct {
	Base    string
	Suffix  string
	Gzipped bool
}

// Mirrors are the three wwPDB sites.
var Mirrors = []Mirror{
	{"https://files.rcsb.org/download/", ".cif.gz", true},
	{"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif", false},
	{"https://ftp.pdbj.org/mmcif/", ".cif.gz", true},
}

// FetchSource downloads entries by their PDB code. Entry i
// starts with mirror i modulo the number of mirrors, so the load is
// spread out. If a mirror fails, the next one is tried.
type FetchSource struct {
	ids      []string
	i        int
	mirrors  []Mirror
	client   *http.Client
	modelMax int16
}

// NewFetchSource takes the codes to fetch. nil mirrors means Mirrors,
// nil client means http.DefaultClient.
func NewFetchSource(ids []string, mirrors []Mirror, client *http.Client, modelMax int16) *FetchSource {
	if mirrors == nil {
		mirrors = Mirrors
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &FetchSource{ids: ids, mirrors: mirrors, client: client, modelMax: modelMax}
}

// Next returns the next code to fetch.
func (fs *FetchSource) Next(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fs.i >= len(fs.ids) {
		return nil, io.EOF
	}
	fs.i++
	return &fetchEntry{fs, fs.ids[fs.i-1], fs.i - 1}, nil
}

type fetchEntry struct {
	fs    *FetchSource
	acq   string
	start int // first mirror to try
}

func (e *fetchEntry) Name() string { return e.acq }

// Load tries each mirror in turn. The errors from all of them are
// returned if none works.
func (e *fetchEntry) Load(ctx context.Context) (record.Structure, error) {
	var errs []error
	n := len(e.fs.mirrors)
	for i := 0; i < n; i++ {
		m := e.fs.mirrors[(e.start+i)%n]
		rdr, err := getHTTP(ctx, e.fs.client, e.acq, m)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		rec, _, err := record.ReadMmcif(rdr, e.fs.modelMax)
		rdr.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s from %s: %w", e.acq, m.Base, err))
			continue
		}
		return rec, nil
	}
	return nil, errors.Join(errs...)
}

// validCode accepts classic four character codes like 1abc and the
// extended form pdb_00001abc.
func validCode(acqCode string) bool {
	const extPrefix = "pdb_"
	code := strings.ToLower(acqCode)
	switch {
	case len(code) == 4:
	case len(code) == len(extPrefix)+8 && strings.HasPrefix(code, extPrefix):
		code = code[len(extPrefix):]
	default:
		return false
	}
	for _, c := range code {
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// getHTTP is given a pdb code, four characters or the extended
// pdb_00001abc form. It goes to the mirror and returns a reader. If the
// site sends gzipped data, the reader decompresses it.
func getHTTP(ctx context.Context, client *http.Client, acqCode string, m Mirror) (io.ReadCloser, error) {
	if !validCode(acqCode) {
		return nil, errors.New("acq code should be like 1abc or pdb_00001abc, not " + acqCode)
	}
	url := m.Base + strings.ToLower(acqCode) + m.Suffix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New("Wanted " + acqCode + " using " + url + ", got " + resp.Status)
	}
	if !m.Gzipped {
		return resp.Body, nil
	}
	z, err := zwrap.Wrap(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return z, nil
}
