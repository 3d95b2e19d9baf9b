// 17 Oct 2026

package record

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/mmcif"
)

// CifTables are the categories FromMmcif looks at. Give them to the
// mmcif reader with AddTable.
var CifTables = []string{"_entity_poly", "_entity_poly_seq", "_chem_comp", "_struct_asym"}

// CifItems are the data items FromMmcif looks at.
var CifItems = []string{"_entry.id"}

// ReadMmcif reads an mmcif file and turns it into a Record and the
// table of chemical components the file carries. modelMax is passed
// to the reader, -1 for all models.
func ReadMmcif(r io.Reader, modelMax int16) (*Record, *linkage.Table, error) {
	mr := mmcif.NewMmcifReader(r)
	if mr == nil {
		return nil, nil, errors.New("nil reader")
	}
	mr.AddItems(CifItems)
	mr.AddTable(CifTables)
	mr.SetModelMax(modelMax)
	md, err := mr.DoFile()
	if err != nil {
		return nil, nil, err
	}
	return FromMmcif(md)
}

// needCols gets columns from a table and complains if one is missing.
func needCols(md *mmcif.MmcifData, cat string, names ...string) ([][]string, bool, error) {
	tbl, ok := md.Tables[cat]
	if !ok {
		return nil, false, nil
	}
	ret := make([][]string, len(names))
	for i, n := range names {
		if ret[i] = tbl.Col(n); ret[i] == nil {
			return nil, true, fmt.Errorf("%s has no column %s", cat, n)
		}
	}
	return ret, true, nil
}

// seqPiece is one row of _entity_poly_seq.
type seqPiece struct {
	num int
	mon string
}

// entitySeqs gets the monomer sequence of each entity, ordered by num.
// Where there is microheterogeneity (the same num twice), the first
// monomer is kept.
func entitySeqs(md *mmcif.MmcifData) (map[string][]string, error) {
	cols, ok, err := needCols(md, "_entity_poly_seq", "entity_id", "num", "mon_id")
	if !ok || err != nil {
		return nil, err
	}
	pieces := make(map[string][]seqPiece)
	for i, ent := range cols[0] {
		num, err := strconv.Atoi(cols[1][i])
		if err != nil {
			return nil, fmt.Errorf("_entity_poly_seq entity %s: bad num %q", ent, cols[1][i])
		}
		pieces[ent] = append(pieces[ent], seqPiece{num, cols[2][i]})
	}
	seqs := make(map[string][]string, len(pieces))
	for ent, p := range pieces {
		sort.SliceStable(p, func(i, j int) bool { return p[i].num < p[j].num })
		s := make([]string, 0, len(p))
		for i, sp := range p {
			if i > 0 && sp.num == p[i-1].num {
				continue
			}
			s = append(s, sp.mon)
		}
		seqs[ent] = s
	}
	return seqs, nil
}

// asymEntities maps chain (asym) ids to entity ids in the order of
// _struct_asym. If that is missing, we try the strand ids from
// _entity_poly.
func asymEntities(md *mmcif.MmcifData) (ids []string, ent map[string]string, err error) {
	ent = make(map[string]string)
	cols, ok, err := needCols(md, "_struct_asym", "id", "entity_id")
	if err != nil {
		return nil, nil, err
	}
	if ok {
		for i, id := range cols[0] {
			ids = append(ids, id)
			ent[id] = cols[1][i]
		}
		return ids, ent, nil
	}
	cols, ok, err = needCols(md, "_entity_poly", "entity_id", "pdbx_strand_id")
	if !ok || err != nil { // no strand ids, so no chains to fall back on
		return nil, ent, nil
	}
	for i, strands := range cols[1] {
		for _, id := range strings.Split(strands, ",") {
			if id = strings.TrimSpace(id); id != "" && id != "?" {
				ids = append(ids, id)
				ent[id] = cols[0][i]
			}
		}
	}
	return ids, ent, nil
}

// FromMmcif builds a Record from what the mmcif reader found, given
// the tables in CifTables. Chains come from the atom_site models. If
// there was no atom_site table, there is one model with every polymer
// chain in _struct_asym.
// The second return value is the table made from the file's own
// _chem_comp category, nil if there is none. The record carries it
// as well.
func FromMmcif(md *mmcif.MmcifData) (*Record, *linkage.Table, error) {
	if md == nil {
		return nil, nil, errors.New("no mmcif data")
	}
	id := md.Data["_entry.id"]
	if id == "" && len(md.Blocks) > 0 {
		id = md.Blocks[0].Name
	}

	polymer := make(map[string]bool)
	if cols, _, err := needCols(md, "_entity_poly", "entity_id"); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", id, err)
	} else if cols != nil {
		for _, e := range cols[0] {
			polymer[e] = true
		}
	}
	seqs, err := entitySeqs(md)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", id, err)
	}
	asymIDs, asymEnt, err := asymEntities(md)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", id, err)
	}

	var models []Model
	if md.Models != nil {
		models = make([]Model, len(md.Models))
		for i, m := range md.Models {
			for _, sc := range m.Chains {
				ent := sc.EntityID
				if ent == "." {
					ent = asymEnt[sc.AsymID]
				}
				if !polymer[ent] {
					continue
				}
				mons, ok := seqs[ent]
				if !ok {
					mons = sc.Residues
				}
				models[i] = append(models[i], Chain{ID: sc.AsymID, EntityID: ent, Monomers: mons})
			}
		}
	} else {
		var m Model
		for _, asym := range asymIDs {
			ent := asymEnt[asym]
			if polymer[ent] {
				m = append(m, Chain{ID: asym, EntityID: ent, Monomers: seqs[ent]})
			}
		}
		models = []Model{m}
	}

	var tbl *linkage.Table
	if cols, _, err := needCols(md, "_chem_comp", "id", "type"); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", id, err)
	} else if cols != nil {
		if tbl, err = linkage.FromChemComp(cols[0], cols[1]); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", id, err)
		}
	}
	return NewRecord(id, models...).WithLinkage(tbl), tbl, nil
}
