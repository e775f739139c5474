package state

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

// Tags returns the built-in catalog followed by the custom tags.
func (s *Store) Tags() []mindmap.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(catalog.DefaultTags(), s.snap.CustomTags...)
}

// TagsByCategory returns the tags of one category, custom tags after the built-in ones.
func (s *Store) TagsByCategory(c mindmap.TagCategory) []mindmap.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := catalog.TagsByCategory(c)
	for _, t := range s.snap.CustomTags {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// AddCustomTag creates a custom tag. An empty color picks the first preset.
func (s *Store) AddCustomTag(name, color string) (mindmap.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return mindmap.Tag{}, fmt.Errorf("%w: empty tag name", ErrInvalidAttribute)
	}
	if color == "" {
		color = catalog.ColorPresets[0]
	}
	tag := catalog.NewCustomTag(name, color)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := catalog.TagByID(tag.ID); ok || s.customTagIndex(tag.ID) >= 0 {
		return mindmap.Tag{}, fmt.Errorf("%w: %s", ErrTagExists, tag.ID)
	}
	s.snap.CustomTags = append(s.snap.CustomTags, tag)
	s.persist()
	return tag, nil
}

// RemoveCustomTag deletes a custom tag and strips it from every note.
func (s *Store) RemoveCustomTag(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.customTagIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTag, id)
	}
	s.snap.CustomTags = slices.Delete(s.snap.CustomTags, i, i+1)

	for gid, notes := range s.snap.GalaxyNotes {
		for j := range notes {
			notes[j].Tags = slices.DeleteFunc(notes[j].Tags, func(t string) bool { return t == id })
			if len(notes[j].Tags) == 0 {
				notes[j].Tags = nil
			}
		}
		s.snap.GalaxyNotes[gid] = notes
	}
	s.persist()
	return nil
}

func (s *Store) customTagIndex(id string) int {
	return slices.IndexFunc(s.snap.CustomTags, func(t mindmap.Tag) bool { return t.ID == id })
}

// ApplyTemplate adds a template's galaxies and notes under fresh ids and
// returns to the galaxies view. It returns the new galaxies.
func (s *Store) ApplyTemplate(id string) ([]mindmap.Galaxy, error) {
	tpl, ok := catalog.TemplateByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]mindmap.Galaxy, 0, len(tpl.Galaxies))
	for _, g := range tpl.Galaxies {
		gid := s.newID()
		notes := mindmap.CloneNotes(tpl.GalaxyNotes[g.ID])
		for i := range notes {
			notes[i].ID = s.newID()
			notes[i].GalaxyID = gid
		}

		g.ID = gid
		g.Tags = slices.Clone(g.Tags)
		g.NoteCount = len(notes)
		added = append(added, g)

		s.snap.Galaxies = append(s.snap.Galaxies, g)
		s.snap.GalaxyNotes[gid] = notes
	}

	s.snap.CurrentGalaxy = nil
	s.snap.ViewMode = mindmap.ViewGalaxies
	s.snap.RecountNotes()
	s.clearSelection()
	s.persist()

	s.log.Info("Template applied", zap.String("template", tpl.ID), zap.Int("galaxies", len(added)))
	return added, nil
}

// Reset clears persisted data and reseeds the default catalog.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saver.Clear(); err != nil {
		return err
	}
	s.install(catalog.DefaultSnapshot())
	s.log.Info("Mind map reset to defaults")
	return nil
}
