package state

import (
	"slices"

	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

// NodeType distinguishes the two kinds of rendered node.
type NodeType string

const (
	NodeGalaxy NodeType = "galaxy"
	NodeNote   NodeType = "note"
)

// Node is one renderable node. Data holds a mindmap.Galaxy or a mindmap.Note.
type Node struct {
	ID       string           `json:"id"`
	Type     NodeType         `json:"type"`
	Position mindmap.Position `json:"position"`
	Selected bool             `json:"selected,omitempty"`
	Data     any              `json:"data"`
}

// EdgeView is one renderable edge.
type EdgeView struct {
	mindmap.Edge
	Selected bool `json:"selected,omitempty"`
}

// View is the active node and edge set handed to the renderer.
type View struct {
	Mode          mindmap.ViewMode `json:"mode"`
	CurrentGalaxy string           `json:"currentGalaxy,omitempty"`
	Nodes         []Node           `json:"nodes"`
	Edges         []EdgeView       `json:"edges"`
}

// View returns the active set: galaxies and no edges, or the open galaxy's notes and edges.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Mode: s.snap.ViewMode, Nodes: []Node{}, Edges: []EdgeView{}}
	if s.snap.ViewMode == mindmap.ViewGalaxies {
		for _, g := range mindmap.CloneGalaxies(s.snap.Galaxies) {
			g.NoteCount = len(s.snap.GalaxyNotes[g.ID])
			v.Nodes = append(v.Nodes, Node{
				ID:       g.ID,
				Type:     NodeGalaxy,
				Position: g.Position,
				Selected: s.selected[g.ID],
				Data:     g,
			})
		}
		return v
	}

	gid := s.snap.CurrentGalaxyID()
	v.CurrentGalaxy = gid
	for _, n := range mindmap.CloneNotes(s.snap.GalaxyNotes[gid]) {
		v.Nodes = append(v.Nodes, Node{
			ID:       n.ID,
			Type:     NodeNote,
			Position: n.Position,
			Selected: s.selected[n.ID],
			Data:     n,
		})
	}
	for _, e := range mindmap.CloneEdges(s.snap.GalaxyEdges[gid]) {
		v.Edges = append(v.Edges, EdgeView{Edge: e, Selected: s.selectedEdges[e.ID]})
	}
	return v
}

// ChangeType is the kind of a renderer delta.
type ChangeType string

const (
	ChangePosition ChangeType = "position"
	ChangeSelect   ChangeType = "select"
	ChangeRemove   ChangeType = "remove"
)

// NodeChange is a position, selection or removal delta for one active node.
type NodeChange struct {
	Type     ChangeType        `json:"type"`
	ID       string            `json:"id"`
	Position *mindmap.Position `json:"position,omitempty"`
	Selected bool              `json:"selected,omitempty"`
}

// EdgeChange is a selection or removal delta for one active edge.
type EdgeChange struct {
	Type     ChangeType `json:"type"`
	ID       string     `json:"id"`
	Selected bool       `json:"selected,omitempty"`
}

// ApplyNodeChanges folds renderer deltas into the active set. Unknown ids are ignored.
// Removals cascade exactly like DeleteSelected.
func (s *Store) ApplyNodeChanges(changes []NodeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := false
	removals := make(map[string]bool)
	for _, c := range changes {
		if !s.hasActiveNode(c.ID) {
			continue
		}
		switch c.Type {
		case ChangePosition:
			if c.Position != nil && s.moveLocked(c.ID, *c.Position) {
				dirty = true
			}
		case ChangeSelect:
			if c.Selected {
				s.selected[c.ID] = true
			} else {
				delete(s.selected, c.ID)
			}
		case ChangeRemove:
			removals[c.ID] = true
		}
	}

	if len(removals) > 0 {
		if s.snap.ViewMode == mindmap.ViewGalaxies {
			s.removeGalaxiesLocked(removals)
		} else {
			s.removeNotesLocked(removals, nil)
		}
		for id := range removals {
			delete(s.selected, id)
		}
		s.snap.RecountNotes()
		dirty = true
	}
	if dirty {
		s.persist()
	}
}

// ApplyEdgeChanges folds renderer edge deltas into the open galaxy.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ViewMode != mindmap.ViewNotes {
		return
	}
	gid := s.snap.CurrentGalaxyID()

	removals := make(map[string]bool)
	for _, c := range changes {
		switch c.Type {
		case ChangeSelect:
			if c.Selected {
				s.selectedEdges[c.ID] = true
			} else {
				delete(s.selectedEdges, c.ID)
			}
		case ChangeRemove:
			removals[c.ID] = true
		}
	}
	if len(removals) == 0 {
		return
	}

	before := len(s.snap.GalaxyEdges[gid])
	if edges, ok := s.snap.GalaxyEdges[gid]; ok {
		s.snap.GalaxyEdges[gid] = slices.DeleteFunc(edges, func(e mindmap.Edge) bool { return removals[e.ID] })
	}
	for id := range removals {
		delete(s.selectedEdges, id)
	}
	if len(s.snap.GalaxyEdges[gid]) != before {
		s.persist()
	}
}

// Select replaces the node selection of the active view. Unknown ids are ignored.
func (s *Store) Select(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.selected)
	for _, id := range ids {
		if s.hasActiveNode(id) {
			s.selected[id] = true
		}
	}
}

// SelectEdges replaces the edge selection of the open galaxy.
func (s *Store) SelectEdges(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.selectedEdges)
	if s.snap.ViewMode != mindmap.ViewNotes {
		return
	}
	for _, e := range s.snap.GalaxyEdges[s.snap.CurrentGalaxyID()] {
		if slices.Contains(ids, e.ID) {
			s.selectedEdges[e.ID] = true
		}
	}
}

// Selected returns the selected node ids in active-set order.
func (s *Store) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	if s.snap.ViewMode == mindmap.ViewGalaxies {
		for _, g := range s.snap.Galaxies {
			if s.selected[g.ID] {
				out = append(out, g.ID)
			}
		}
		return out
	}
	for _, n := range s.snap.GalaxyNotes[s.snap.CurrentGalaxyID()] {
		if s.selected[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

func (s *Store) hasActiveNode(id string) bool {
	if s.snap.ViewMode == mindmap.ViewGalaxies {
		return slices.ContainsFunc(s.snap.Galaxies, func(g mindmap.Galaxy) bool { return g.ID == id })
	}
	_, err := s.activeNoteIndex(id)
	return err == nil
}

func (s *Store) moveLocked(id string, p mindmap.Position) bool {
	if s.snap.ViewMode == mindmap.ViewGalaxies {
		for i := range s.snap.Galaxies {
			if s.snap.Galaxies[i].ID == id {
				if s.snap.Galaxies[i].Position == p {
					return false
				}
				s.snap.Galaxies[i].Position = p
				return true
			}
		}
		return false
	}
	notes := s.snap.GalaxyNotes[s.snap.CurrentGalaxyID()]
	for i := range notes {
		if notes[i].ID == id {
			if notes[i].Position == p {
				return false
			}
			notes[i].Position = p
			return true
		}
	}
	return false
}
