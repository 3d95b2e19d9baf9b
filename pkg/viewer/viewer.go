// 17 Oct 2026

// Package viewer writes html pages for looking at a list of
// structures with 3Dmol.js. A page has one viewer, a caption and a
// slider to step through the structures. Structures are fetched by
// the browser from the PDB, so the page itself is small.
package viewer

import (
	"errors"
	"fmt"
	"strings"
)

// Styles 3Dmol knows about. vdw is drawn as spheres, ms as a
// molecular surface.
var styles = map[string]bool{
	"stick": true, "line": true, "cross": true, "sphere": true,
	"cartoon": true, "vdw": true, "ms": true,
}

const (
	dfltWidth  = 640
	dfltHeight = 480
	maxNeighb  = 6
)

// ErrBadStyle is returned for a style not in the list.
var ErrBadStyle = errors.New("unknown style, use one of stick line cross sphere cartoon vdw ms")

// sel is a 3Dmol atom selection, spec is a style.
type sel map[string]any
type spec map[string]any

// Step is one call on the viewer, after the structure is loaded.
type Step struct {
	Op    string    `json:"op"` // setStyle, zoomTo, zoom or surface
	Sel   sel       `json:"sel"`
	Style spec      `json:"style,omitempty"`
	Args  []float64 `json:"args,omitempty"`
}

// View is one structure on the page.
type View struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	Steps   []Step `json:"steps"`
}

// Page is a set of views. Call Write to get the html.
type Page struct {
	Title  string
	Width  int
	Height int
	Views  []View
}

func newPage(title string, n int) *Page {
	return &Page{Title: title, Width: dfltWidth, Height: dfltHeight, Views: make([]View, 0, n)}
}

// checkIDs wants at least one id and no empty ones.
func checkIDs(ids []string) error {
	if len(ids) == 0 {
		return errors.New("no structure ids given")
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("structure id %d is empty", i)
		}
	}
	return nil
}

// styleSteps sets the whole structure to a style and color.
func styleSteps(style, color string) ([]Step, error) {
	style = strings.ToLower(style)
	if !styles[style] {
		return nil, fmt.Errorf("%w: %q", ErrBadStyle, style)
	}
	switch style {
	case "vdw":
		return []Step{{Op: "setStyle", Sel: sel{}, Style: spec{"sphere": spec{"color": color}}}}, nil
	case "ms":
		return []Step{
			{Op: "setStyle", Sel: sel{}, Style: spec{"line": spec{"hidden": true}}},
			{Op: "surface", Sel: sel{}, Style: spec{"color": color, "opacity": 0.9}},
		}, nil
	}
	return []Step{{Op: "setStyle", Sel: sel{}, Style: spec{style: spec{"color": color}}}}, nil
}

// Simple shows each structure in one style and color, such as
// cartoon and spectrum.
func Simple(ids []string, style, color string) (*Page, error) {
	if err := checkIDs(ids); err != nil {
		return nil, err
	}
	steps, err := styleSteps(style, color)
	if err != nil {
		return nil, err
	}
	p := newPage("structures", len(ids))
	for _, id := range ids {
		p.Views = append(p.Views, View{
			ID:      id,
			Caption: fmt.Sprintf("PdbID: %s, Style: %s", id, style),
			Steps:   steps,
		})
	}
	return p, nil
}

// Interaction is like Simple, but atoms named atom (like ZN) are drawn
// as gray spheres. An atom of "" or "None" highlights nothing.
func Interaction(ids []string, atom, style, color string) (*Page, error) {
	if err := checkIDs(ids); err != nil {
		return nil, err
	}
	steps, err := styleSteps(style, color)
	if err != nil {
		return nil, err
	}
	if atom != "" && atom != "None" {
		steps = append(steps[:len(steps):len(steps)], Step{
			Op: "setStyle", Sel: sel{"atom": atom}, Style: spec{"sphere": spec{"color": "gray"}}})
	} else {
		atom = "None"
	}
	p := newPage("interactions", len(ids))
	for _, id := range ids {
		p.Views = append(p.Views, View{
			ID:      id,
			Caption: fmt.Sprintf("PdbID: %s, Interactions: %s, Style: %s", id, atom, style),
			Steps:   steps,
		})
	}
	return p, nil
}

// GroupNeighbor zooms in on group (residue number) groups[i] of
// structure ids[i] and draws everything within distance of it as
// sticks. If chains is nil, chain A is used for every structure.
func GroupNeighbor(ids []string, groups []int, chains []string, distance float64) (*Page, error) {
	if ids == nil || groups == nil {
		return nil, errors.New("structure ids and groups need to be specified")
	}
	if len(ids) != len(groups) {
		return nil, fmt.Errorf("%d structures but %d groups", len(ids), len(groups))
	}
	if err := checkIDs(ids); err != nil {
		return nil, err
	}
	if chains == nil {
		chains = make([]string, len(ids))
		for i := range chains {
			chains[i] = "A"
		}
	}
	if len(chains) != len(ids) {
		return nil, fmt.Errorf("%d structures but %d chains", len(ids), len(chains))
	}
	if distance <= 0 {
		return nil, fmt.Errorf("distance must be positive, not %g", distance)
	}
	p := newPage("group neighbors", len(ids))
	for i, id := range ids {
		center := sel{"resi": groups[i], "chain": chains[i]}
		neighb := sel{"resi": groups[i], "chain": chains[i], "byres": true, "expand": distance}
		p.Views = append(p.Views, View{
			ID: id,
			Caption: fmt.Sprintf("PDB: %s, group: %d, chain: %s, cutoffDistance: %g",
				id, groups[i], chains[i], distance),
			Steps: []Step{
				{Op: "zoomTo", Sel: center},
				{Op: "setStyle", Sel: neighb, Style: spec{"stick": spec{}}},
				{Op: "setStyle", Sel: center, Style: spec{"sphere": spec{"color": "red"}}},
				{Op: "zoom", Args: []float64{0.2, 1000}},
			},
		})
	}
	return p, nil
}

// Neighbor is one group that interacts with the central atom.
type Neighbor struct {
	Chain   string
	Group   int
	Element string
}

// InteractionRow is one interaction, such as a metal ion and the
// groups around it.
type InteractionRow struct {
	PdbID     string
	Group     int
	Chain     string
	Element   string
	Neighbors []Neighbor // at most six
}

// GroupInteraction shows the central atom of each row as a gray
// sphere and its neighbors as sticks.
func GroupInteraction(rows []InteractionRow) (*Page, error) {
	if len(rows) == 0 {
		return nil, errors.New("no interactions given")
	}
	p := newPage("group interactions", len(rows))
	p.Width, p.Height = 700, 700
	for i, r := range rows {
		if strings.TrimSpace(r.PdbID) == "" {
			return nil, fmt.Errorf("row %d has no structure id", i)
		}
		if len(r.Neighbors) > maxNeighb {
			return nil, fmt.Errorf("row %d (%s) has %d neighbors, at most %d allowed",
				i, r.PdbID, len(r.Neighbors), maxNeighb)
		}
		var resi []int
		var chn []string
		for _, n := range r.Neighbors {
			resi = append(resi, n.Group)
			chn = append(chn, n.Chain)
		}
		neighb := sel{"resi": resi, "chain": chn}
		metal := sel{"resi": r.Group, "atom": strings.ToUpper(r.Element), "chain": r.Chain}
		p.Views = append(p.Views, View{
			ID:      r.PdbID,
			Caption: "PDBId: " + r.PdbID + " chain: " + r.Chain + " element: " + r.Element,
			Steps: []Step{
				{Op: "setStyle", Sel: neighb, Style: spec{"stick": spec{"colorscheme": "orangeCarbon"}}},
				{Op: "setStyle", Sel: metal, Style: spec{"sphere": spec{"radius": 0.5, "color": "gray"}}},
				{Op: "zoomTo", Sel: neighb},
			},
		})
	}
	return p, nil
}
