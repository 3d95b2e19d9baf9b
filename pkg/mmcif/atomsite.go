// This file is for parsing atom_site lines. We do not keep coordinates,
// just which chains are in which model and the residues in them.
package mmcif

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// siteCols says where to find the columns we want. -1 means the
// column is not there.
type siteCols struct {
	compID, asymID, entityID, seqID, authSeqID, insCode, modelNum int

	ncol int // need at least this many on a line
}

// findCols looks in the headers for the columns we are interested in.
// Without the component and chain names we can do nothing.
func findCols(headers []bSlice) (siteCols, error) {
	sc := siteCols{-1, -1, -1, -1, -1, -1, -1, 0}
	const prefix = len("_atom_site.")
	for i, h := range headers {
		if len(h) <= prefix {
			continue
		}
		var p *int
		switch string(h[prefix:]) {
		case "label_comp_id":
			p = &sc.compID
		case "label_asym_id":
			p = &sc.asymID
		case "label_entity_id":
			p = &sc.entityID
		case "label_seq_id":
			p = &sc.seqID
		case "auth_seq_id":
			p = &sc.authSeqID
		case "pdbx_PDB_ins_code":
			p = &sc.insCode
		case "pdbx_PDB_model_num":
			p = &sc.modelNum
		default:
			continue
		}
		*p = i
		if i+1 > sc.ncol {
			sc.ncol = i + 1
		}
	}
	if sc.compID == -1 {
		return sc, errors.New("Could not find atomsite column: label_comp_id")
	}
	if sc.asymID == -1 {
		return sc, errors.New("Could not find atomsite column: label_asym_id")
	}
	return sc, nil
}

// isDotOrQ returns true if the string is a dot or question mark
func isDotOrQ(s bSlice) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

// chanWrap wraps a channel and stores the slice we get from it.
type chanWrap struct {
	c       chan []bSlice
	cs      []bSlice   // The slice of byte slices with our lines
	bufPool *sync.Pool // Pool created in the caller and shared here
	scrtch  [40]bSlice // Scratch space
	ndx     int
}

// linechan returns the next line from the channel which has slices of lines.
func (cw *chanWrap) linechan() bSlice {
	if cw.ndx == len(cw.cs) { // refill
		if len(cw.cs) > 0 {
			cw.bufPool.Put(cw.cs[:cap(cw.cs)])
		}
		cw.cs = <-cw.c
		cw.ndx = 0
		if len(cw.cs) == 0 {
			return nil
		}
	}
	cw.ndx++
	return cw.cs[cw.ndx-1]
}

// cmpntChan calls linechan to get the next line of input and
// returns it, broken into components.
func (cw *chanWrap) cmpntChan() (cmpnt []bSlice) {
	s := cw.linechan()
	if s == nil {
		return nil
	}
	cmpnt = fields(s, cw.scrtch[:])
	for i, s := range cmpnt { // A string like "C5'" comes with quotes around it
		if len(s) > 1 {
			first, last := s[0], s[len(s)-1]
			if first == dquote && last == dquote || first == squote && last == squote {
				cmpnt[i] = s[1 : len(s)-1]
			}
		}
	}
	return cmpnt
}

// drain discards anything in the channel
func drain(c chan []bSlice) {
	for range c {
	}
}

// modelNum gets the model number from a line. Without the column,
// everything is model 1.
func modelNum(cmpnt []bSlice, sc *siteCols) (int16, error) {
	if sc.modelNum == -1 {
		return 1, nil
	}
	s := cmpnt[sc.modelNum]
	r, err := strconv.ParseInt(string(s), 10, 16)
	if err != nil {
		return -1, fmt.Errorf("%w. Looked for model num", err)
	}
	return int16(r), nil
}

// optCol returns a column if we have it, otherwise a dot
func optCol(cmpnt []bSlice, n int) string {
	if n == -1 || isDotOrQ(cmpnt[n]) {
		return "."
	}
	return string(cmpnt[n])
}

// siteBuilder accumulates models as atom_site lines come in.
type siteBuilder struct {
	fltr     *fltr
	models   []Model
	mdlNdx   map[int16]int       // model number to index in models
	chainNdx []map[string]int    // per model, asym id to index in Chains
	lastRes  []map[string]resKey // per model, asym id to last residue seen
}

// resKey is what tells us that a line belongs to a new residue.
type resKey struct {
	seq, authSeq, ins, comp string
}

func newSiteBuilder(fltr *fltr) *siteBuilder {
	return &siteBuilder{fltr: fltr, mdlNdx: make(map[int16]int)}
}

// add takes one atom_site line, already split into components.
func (sb *siteBuilder) add(cmpnt []bSlice, sc *siteCols) error {
	if len(cmpnt) < sc.ncol {
		return fmt.Errorf("Too few components (%d) on line %s", len(cmpnt), cmpnt)
	}
	mNum, err := modelNum(cmpnt, sc)
	if err != nil {
		return err
	}
	im, ok := sb.mdlNdx[mNum]
	if !ok {
		im = len(sb.models)
		sb.mdlNdx[mNum] = im
		sb.models = append(sb.models, Model{Num: mNum})
		sb.chainNdx = append(sb.chainNdx, make(map[string]int))
		sb.lastRes = append(sb.lastRes, make(map[string]resKey))
	}
	if sb.fltr.modelMax >= 0 && im >= int(sb.fltr.modelMax) {
		return nil // counted, but not wanted
	}
	asym := string(cmpnt[sc.asymID])
	mdl := &sb.models[im]
	ic, ok := sb.chainNdx[im][asym]
	if !ok {
		ic = len(mdl.Chains)
		sb.chainNdx[im][asym] = ic
		mdl.Chains = append(mdl.Chains, SiteChain{
			AsymID: asym, EntityID: optCol(cmpnt, sc.entityID)})
	}
	key := resKey{
		seq:     optCol(cmpnt, sc.seqID),
		authSeq: optCol(cmpnt, sc.authSeqID),
		ins:     optCol(cmpnt, sc.insCode),
		comp:    string(cmpnt[sc.compID]),
	}
	if old, seen := sb.lastRes[im][asym]; seen && old == key {
		return nil // another atom in the same residue
	}
	sb.lastRes[im][asym] = key
	mdl.Chains[ic].Residues = append(mdl.Chains[ic].Residues, key.comp)
	return nil
}

// atomSite reads lines of input from the channel, but it gets a
// few of them at once - a slice is fed into the channel.
// Any error goes back on errc, which always gets exactly one value.
func atomSite(headers []bSlice, fltr *fltr, md *MmcifData,
	c chan []bSlice, errc chan<- error, bufPool *sync.Pool) {
	sc, err := findCols(headers)
	if err != nil {
		drain(c)
		errc <- err
		return
	}
	cw := &chanWrap{c: c, bufPool: bufPool}
	sb := newSiteBuilder(fltr)
	for cmpnt := cw.cmpntChan(); cmpnt != nil; cmpnt = cw.cmpntChan() {
		if err := sb.add(cmpnt, &sc); err != nil {
			drain(c)
			errc <- err
			return
		}
	}
	drain(c)
	md.Models = append(md.Models, sb.models...)
	errc <- nil
}
