package state

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/pkg/graph"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

// EnterGalaxy opens a galaxy's notes. Entering from another open galaxy is allowed.
func (s *Store) EnterGalaxy(id string) (mindmap.Galaxy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.galaxyLocked(id)
	if !ok {
		return mindmap.Galaxy{}, fmt.Errorf("%w: %s", ErrUnknownGalaxy, id)
	}

	s.snap.CurrentGalaxy = mindmap.StringPtr(id)
	s.snap.ViewMode = mindmap.ViewNotes
	s.clearSelection()
	s.persist()

	s.log.Debug("Entered galaxy", zap.String("galaxy", id), zap.Int("notes", g.NoteCount))
	return g, nil
}

// ExitToGalaxies closes the open galaxy and returns to the galaxies view.
func (s *Store) ExitToGalaxies() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ViewMode != mindmap.ViewNotes {
		return ErrWrongView
	}

	// Notes and edges are edited in place in their buckets, so the write-back
	// is only the edge pruning that keeps the galaxy consistent.
	gid := s.snap.CurrentGalaxyID()
	if edges, ok := s.snap.GalaxyEdges[gid]; ok {
		s.snap.GalaxyEdges[gid] = mindmap.PruneEdges(edges, s.snap.GalaxyNotes[gid])
	}

	s.snap.CurrentGalaxy = nil
	s.snap.ViewMode = mindmap.ViewGalaxies
	s.snap.RecountNotes()
	s.clearSelection()
	s.persist()
	return nil
}

// AddNote creates a placeholder note with a random theme at a random canvas position.
func (s *Store) AddNote() (mindmap.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ViewMode != mindmap.ViewNotes {
		return mindmap.Note{}, ErrNotInGalaxy
	}

	gid := s.snap.CurrentGalaxyID()
	note := mindmap.Note{
		ID: s.newID(),
		Position: mindmap.Position{
			X: s.canvas.MinX + s.rng.Float64()*s.canvas.Width,
			Y: s.canvas.MinY + s.rng.Float64()*s.canvas.Height,
		},
		Title:    NewNoteTitle,
		Content:  NewNoteContent,
		Theme:    mindmap.Themes[s.rng.IntN(len(mindmap.Themes))],
		GalaxyID: gid,
	}
	s.snap.GalaxyNotes[gid] = append(s.snap.GalaxyNotes[gid], note)
	s.snap.RecountNotes()
	s.persist()

	s.log.Debug("Note created", zap.String("note", note.ID), zap.String("galaxy", gid))
	return note, nil
}

// Deleted lists what DeleteSelected removed.
type Deleted struct {
	Galaxies []string `json:"galaxies,omitempty"`
	Notes    []string `json:"notes,omitempty"`
	Edges    []string `json:"edges,omitempty"`
}

// Empty reports whether nothing was removed.
func (d Deleted) Empty() bool {
	return len(d.Galaxies) == 0 && len(d.Notes) == 0 && len(d.Edges) == 0
}

// DeleteSelected removes every selected node of the active view.
// In the notes view, edges touching a removed note go with it, and selected edges are removed too.
// In the galaxies view, a removed galaxy takes its notes and edges with it.
func (s *Store) DeleteSelected() (Deleted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d Deleted
	if s.snap.ViewMode == mindmap.ViewGalaxies {
		d.Galaxies = s.removeGalaxiesLocked(s.selected)
	} else {
		d.Notes, d.Edges = s.removeNotesLocked(s.selected, s.selectedEdges)
	}
	s.clearSelection()

	if d.Empty() {
		return d, nil
	}
	s.snap.RecountNotes()
	s.persist()

	s.log.Debug("Deleted selection",
		zap.Strings("galaxies", d.Galaxies),
		zap.Strings("notes", d.Notes),
		zap.Strings("edges", d.Edges),
	)
	return d, nil
}

func (s *Store) removeGalaxiesLocked(ids map[string]bool) []string {
	var removed []string
	s.snap.Galaxies = slices.DeleteFunc(s.snap.Galaxies, func(g mindmap.Galaxy) bool {
		if !ids[g.ID] {
			return false
		}
		removed = append(removed, g.ID)
		delete(s.snap.GalaxyNotes, g.ID)
		delete(s.snap.GalaxyEdges, g.ID)
		return true
	})
	return removed
}

// removeNotesLocked deletes notes from the open galaxy. The edge cascade is
// computed against the notes as they were before any removal.
func (s *Store) removeNotesLocked(noteIDs, edgeIDs map[string]bool) (notes, edges []string) {
	gid := s.snap.CurrentGalaxyID()

	for _, n := range s.snap.GalaxyNotes[gid] {
		if noteIDs[n.ID] {
			notes = append(notes, n.ID)
		}
	}

	doomed := make(map[string]bool)
	for _, eid := range graph.NewIndex(s.snap.GalaxyEdges[gid]).Incident(notes...) {
		doomed[eid] = true
	}
	for eid := range edgeIDs {
		doomed[eid] = true
	}

	if len(notes) > 0 {
		s.snap.GalaxyNotes[gid] = slices.DeleteFunc(s.snap.GalaxyNotes[gid], func(n mindmap.Note) bool {
			return noteIDs[n.ID]
		})
	}
	if existing, ok := s.snap.GalaxyEdges[gid]; ok {
		s.snap.GalaxyEdges[gid] = slices.DeleteFunc(existing, func(e mindmap.Edge) bool {
			if doomed[e.ID] {
				edges = append(edges, e.ID)
				return true
			}
			return false
		})
	}
	return notes, edges
}

// Connect links two notes of the open galaxy with a directed edge.
// Each ordered pair is connected at most once.
func (s *Store) Connect(source, target string) (mindmap.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ViewMode != mindmap.ViewNotes {
		return mindmap.Edge{}, ErrNotInGalaxy
	}
	if source == target {
		return mindmap.Edge{}, ErrSelfLoop
	}
	for _, id := range []string{source, target} {
		if _, err := s.activeNoteIndex(id); err != nil {
			return mindmap.Edge{}, fmt.Errorf("%w: %s", err, id)
		}
	}

	gid := s.snap.CurrentGalaxyID()
	if graph.NewIndex(s.snap.GalaxyEdges[gid]).Has(source, target) {
		return mindmap.Edge{}, ErrEdgeExists
	}

	edge := mindmap.NewEdge(source, target)
	s.snap.GalaxyEdges[gid] = append(s.snap.GalaxyEdges[gid], edge)
	s.persist()

	s.log.Debug("Notes connected", zap.String("edge", edge.ID))
	return edge, nil
}

// DeleteEdge removes one edge of the open galaxy.
func (s *Store) DeleteEdge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ViewMode != mindmap.ViewNotes {
		return ErrNotInGalaxy
	}
	gid := s.snap.CurrentGalaxyID()
	edges := s.snap.GalaxyEdges[gid]
	i := slices.IndexFunc(edges, func(e mindmap.Edge) bool { return e.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	s.snap.GalaxyEdges[gid] = slices.Delete(edges, i, i+1)
	delete(s.selectedEdges, id)
	s.persist()
	return nil
}

// SaveNoteEdit replaces a note's title and content.
func (s *Store) SaveNoteEdit(id, title, content string) error {
	return s.updateNote(id, func(n *mindmap.Note) error {
		n.Title = title
		n.Content = content
		return nil
	})
}

// SetNoteTags replaces a note's tag set. Duplicate ids collapse, order is kept.
func (s *Store) SetNoteTags(id string, tags []string) error {
	return s.updateNote(id, func(n *mindmap.Note) error {
		var out []string
		seen := make(map[string]bool, len(tags))
		for _, t := range tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
		n.Tags = out
		return nil
	})
}

// SetNoteType changes a note's classification.
func (s *Store) SetNoteType(id string, t mindmap.NoteType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: note type %q", ErrInvalidAttribute, t)
	}
	return s.updateNote(id, func(n *mindmap.Note) error {
		n.NoteType = t
		return nil
	})
}

// SetNotePriority sets or, with "", clears a note's priority.
func (s *Store) SetNotePriority(id string, p mindmap.Priority) error {
	if p != "" && !p.Valid() {
		return fmt.Errorf("%w: priority %q", ErrInvalidAttribute, p)
	}
	return s.updateNote(id, func(n *mindmap.Note) error {
		n.Priority = p
		return nil
	})
}

func (s *Store) updateNote(id string, fn func(*mindmap.Note) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.activeNoteIndex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	notes := s.snap.GalaxyNotes[s.snap.CurrentGalaxyID()]
	n := notes[i]
	if err := fn(&n); err != nil {
		return err
	}
	notes[i] = n
	s.persist()
	return nil
}

// Connections describes the edges touching one note.
type Connections struct {
	Outgoing []mindmap.Note `json:"outgoing"`
	Incoming []mindmap.Note `json:"incoming"`
}

// Connections returns the notes a note links to and is linked from, in any galaxy.
func (s *Store) Connections(noteID string) (Connections, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, _, ok := s.locateLocked(noteID)
	if !ok {
		return Connections{}, fmt.Errorf("%w: %s", ErrUnknownNote, noteID)
	}

	notes := s.snap.GalaxyNotes[gid]
	byID := make(map[string]mindmap.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}

	var c Connections
	idx := graph.NewIndex(s.snap.GalaxyEdges[gid])
	for _, e := range idx.Outgoing(noteID) {
		c.Outgoing = append(c.Outgoing, byID[e.Target])
	}
	for _, e := range idx.Incoming(noteID) {
		c.Incoming = append(c.Incoming, byID[e.Source])
	}
	return c, nil
}

// Orphans returns the notes of the current galaxy that have no connections.
func (s *Store) Orphans() ([]mindmap.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ViewMode != mindmap.ViewNotes {
		return nil, ErrNotInGalaxy
	}
	gid := s.snap.CurrentGalaxyID()
	notes := s.snap.GalaxyNotes[gid]
	ids := graph.NewIndex(s.snap.GalaxyEdges[gid]).Orphans(notes)

	out := make([]mindmap.Note, 0, len(ids))
	for _, n := range notes {
		if slices.Contains(ids, n.ID) {
			out = append(out, mindmap.CloneNotes([]mindmap.Note{n})[0])
		}
	}
	return out, nil
}
