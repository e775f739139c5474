package mindmap

import (
	"errors"
	"fmt"
)

var (
	ErrOrphanBucket    = errors.New("note or edge bucket for unknown galaxy")
	ErrDanglingEdge    = errors.New("edge references a note outside its galaxy")
	ErrInvalidView     = errors.New("notes view without a valid current galaxy")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrUnknownViewMode = errors.New("unknown view mode")
)

// Clone returns a deep copy that shares no slices or maps with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Galaxies:    CloneGalaxies(s.Galaxies),
		GalaxyNotes: make(map[string][]Note, len(s.GalaxyNotes)),
		GalaxyEdges: make(map[string][]Edge, len(s.GalaxyEdges)),
		ViewMode:    s.ViewMode,
		LastSaved:   s.LastSaved,
		NextID:      s.NextID,
	}
	if s.CurrentGalaxy != nil {
		out.CurrentGalaxy = StringPtr(*s.CurrentGalaxy)
	}
	for id, notes := range s.GalaxyNotes {
		out.GalaxyNotes[id] = CloneNotes(notes)
	}
	for id, edges := range s.GalaxyEdges {
		out.GalaxyEdges[id] = CloneEdges(edges)
	}
	if s.CustomTags != nil {
		out.CustomTags = append([]Tag(nil), s.CustomTags...)
	}
	return out
}

// RecountNotes sets every galaxy's NoteCount from its note bucket.
func (s *Snapshot) RecountNotes() {
	for i := range s.Galaxies {
		s.Galaxies[i].NoteCount = len(s.GalaxyNotes[s.Galaxies[i].ID])
	}
}

// Normalize repairs s in place so that Check passes.
// Buckets for unknown galaxies and edges with a missing endpoint are dropped,
// an invalid notes view falls back to the galaxies view, and note counts are recomputed.
func (s *Snapshot) Normalize() {
	if s.GalaxyNotes == nil {
		s.GalaxyNotes = make(map[string][]Note)
	}
	if s.GalaxyEdges == nil {
		s.GalaxyEdges = make(map[string][]Edge)
	}

	known := make(map[string]bool, len(s.Galaxies))
	for _, g := range s.Galaxies {
		known[g.ID] = true
	}
	for id := range s.GalaxyNotes {
		if !known[id] {
			delete(s.GalaxyNotes, id)
		}
	}
	for id, edges := range s.GalaxyEdges {
		if !known[id] {
			delete(s.GalaxyEdges, id)
			continue
		}
		s.GalaxyEdges[id] = PruneEdges(edges, s.GalaxyNotes[id])
	}

	if !s.ViewMode.Valid() {
		s.ViewMode = ViewGalaxies
	}
	if s.ViewMode == ViewNotes && (s.CurrentGalaxy == nil || !known[*s.CurrentGalaxy]) {
		s.ViewMode = ViewGalaxies
	}
	if s.ViewMode == ViewGalaxies {
		s.CurrentGalaxy = nil
	}

	s.RecountNotes()
}

// Check reports the first violated snapshot invariant.
func (s *Snapshot) Check() error {
	if !s.ViewMode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownViewMode, s.ViewMode)
	}

	known := make(map[string]bool, len(s.Galaxies))
	for _, g := range s.Galaxies {
		if known[g.ID] {
			return fmt.Errorf("%w: galaxy %s", ErrDuplicateID, g.ID)
		}
		known[g.ID] = true
	}
	for id := range s.GalaxyNotes {
		if !known[id] {
			return fmt.Errorf("%w: notes of %s", ErrOrphanBucket, id)
		}
	}
	for id, edges := range s.GalaxyEdges {
		if !known[id] {
			return fmt.Errorf("%w: edges of %s", ErrOrphanBucket, id)
		}
		ids := noteIDs(s.GalaxyNotes[id])
		for _, e := range edges {
			if !ids[e.Source] || !ids[e.Target] {
				return fmt.Errorf("%w: %s in %s", ErrDanglingEdge, e.ID, id)
			}
		}
	}
	if s.ViewMode == ViewNotes && (s.CurrentGalaxy == nil || !known[*s.CurrentGalaxy]) {
		return ErrInvalidView
	}
	return nil
}

// PruneEdges returns the edges whose endpoints are both in notes.
func PruneEdges(edges []Edge, notes []Note) []Edge {
	ids := noteIDs(notes)
	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if ids[e.Source] && ids[e.Target] {
			kept = append(kept, e)
		}
	}
	return kept
}

func noteIDs(notes []Note) map[string]bool {
	ids := make(map[string]bool, len(notes))
	for _, n := range notes {
		ids[n.ID] = true
	}
	return ids
}

// CloneGalaxies deep-copies a galaxy slice.
func CloneGalaxies(in []Galaxy) []Galaxy {
	if in == nil {
		return nil
	}
	out := make([]Galaxy, len(in))
	for i, g := range in {
		out[i] = g
		if g.Tags != nil {
			out[i].Tags = append([]string(nil), g.Tags...)
		}
	}
	return out
}

// CloneNotes deep-copies a note slice.
func CloneNotes(in []Note) []Note {
	if in == nil {
		return nil
	}
	out := make([]Note, len(in))
	for i, n := range in {
		out[i] = n
		if n.Tags != nil {
			out[i].Tags = append([]string(nil), n.Tags...)
		}
	}
	return out
}

// CloneEdges deep-copies an edge slice.
func CloneEdges(in []Edge) []Edge {
	if in == nil {
		return nil
	}
	out := make([]Edge, len(in))
	for i, e := range in {
		out[i] = e
		if e.Style != nil {
			style := *e.Style
			out[i].Style = &style
		}
	}
	return out
}
