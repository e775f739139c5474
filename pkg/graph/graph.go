// Package graph indexes the edges of one galaxy for cascade and connection queries.
package graph

import (
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

// EdgeIndex is a directed adjacency index over a galaxy's edges.
// Parallel edges between the same ordered pair are kept distinct by edge id.
type EdgeIndex struct {
	// Adjacency lists: SourceID -> TargetID -> edge ids
	Outbound map[string]map[string][]string
	Inbound  map[string]map[string][]string

	edges map[string]mindmap.Edge
	order []string
}

// NewIndex builds an index over edges, preserving their order.
func NewIndex(edges []mindmap.Edge) *EdgeIndex {
	idx := &EdgeIndex{
		Outbound: make(map[string]map[string][]string),
		Inbound:  make(map[string]map[string][]string),
		edges:    make(map[string]mindmap.Edge, len(edges)),
		order:    make([]string, 0, len(edges)),
	}
	for _, e := range edges {
		idx.Add(e)
	}
	return idx
}

// Add indexes e. An edge whose id is already present is ignored.
func (g *EdgeIndex) Add(e mindmap.Edge) {
	if _, exists := g.edges[e.ID]; exists {
		return
	}
	g.edges[e.ID] = e
	g.order = append(g.order, e.ID)

	if g.Outbound[e.Source] == nil {
		g.Outbound[e.Source] = make(map[string][]string)
	}
	g.Outbound[e.Source][e.Target] = append(g.Outbound[e.Source][e.Target], e.ID)

	// Maintain reverse index
	if g.Inbound[e.Target] == nil {
		g.Inbound[e.Target] = make(map[string][]string)
	}
	g.Inbound[e.Target][e.Source] = append(g.Inbound[e.Target][e.Source], e.ID)
}

// Has reports whether at least one edge runs from source to target.
func (g *EdgeIndex) Has(source, target string) bool {
	return len(g.Outbound[source][target]) > 0
}

// Incident returns the ids of every edge touching any of the given notes,
// as source or as target, in edge order.
func (g *EdgeIndex) Incident(noteIDs ...string) []string {
	hit := make(map[string]bool)
	for _, id := range noteIDs {
		for _, ids := range g.Outbound[id] {
			for _, eid := range ids {
				hit[eid] = true
			}
		}
		for _, ids := range g.Inbound[id] {
			for _, eid := range ids {
				hit[eid] = true
			}
		}
	}
	if len(hit) == 0 {
		return nil
	}

	result := make([]string, 0, len(hit))
	for _, eid := range g.order {
		if hit[eid] {
			result = append(result, eid)
		}
	}
	return result
}

// Outgoing returns the edges originating from a note, in edge order.
func (g *EdgeIndex) Outgoing(id string) []mindmap.Edge {
	return g.filter(func(e mindmap.Edge) bool { return e.Source == id })
}

// Incoming returns the edges pointing to a note, in edge order.
func (g *EdgeIndex) Incoming(id string) []mindmap.Edge {
	return g.filter(func(e mindmap.Edge) bool { return e.Target == id })
}

// Orphans returns the given notes that have no connections, in input order.
func (g *EdgeIndex) Orphans(notes []mindmap.Note) []string {
	var orphans []string
	for _, n := range notes {
		if len(g.Outbound[n.ID]) == 0 && len(g.Inbound[n.ID]) == 0 {
			orphans = append(orphans, n.ID)
		}
	}
	return orphans
}

func (g *EdgeIndex) filter(keep func(mindmap.Edge) bool) []mindmap.Edge {
	var result []mindmap.Edge
	for _, eid := range g.order {
		if e := g.edges[eid]; keep(e) {
			result = append(result, e)
		}
	}
	return result
}
