package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()
	require.NoError(t, s.Check())

	require.Len(t, s.Galaxies, 3)
	assert.Len(t, s.GalaxyNotes["galaxy-js"], 3)
	assert.Len(t, s.GalaxyNotes["galaxy-design"], 2)
	assert.Len(t, s.GalaxyNotes["galaxy-projects"], 4)
	assert.Empty(t, s.GalaxyEdges)
	assert.Equal(t, mindmap.ViewGalaxies, s.ViewMode)
	assert.Nil(t, s.CurrentGalaxy)

	for _, g := range s.Galaxies {
		assert.Equal(t, len(s.GalaxyNotes[g.ID]), g.NoteCount, g.ID)
		for _, n := range s.GalaxyNotes[g.ID] {
			assert.Equal(t, g.ID, n.GalaxyID)
			assert.Equal(t, g.Theme, n.Theme)
		}
	}
}

func TestDefaultsAreFreshCopies(t *testing.T) {
	a := DefaultGalaxyNotes()
	a["galaxy-js"][0].Title = "mutated"
	assert.Equal(t, "React Hooks", DefaultGalaxyNotes()["galaxy-js"][0].Title)
}

func TestTagLookups(t *testing.T) {
	tag, ok := TagByID("inprogress")
	require.True(t, ok)
	assert.Equal(t, "In Progress", tag.Name)
	assert.Equal(t, mindmap.TagStatus, tag.Category)

	_, ok = TagByID("nope")
	assert.False(t, ok)

	assert.Len(t, TagsByCategory(mindmap.TagPriority), 3)
	assert.Len(t, TagsByCategory(mindmap.TagType), 4)
	assert.Len(t, TagsByCategory(mindmap.TagStatus), 4)
	assert.Len(t, TagsByCategory(mindmap.TagCustom), 4)
	assert.Len(t, DefaultTags(), 15)
}

func TestNewCustomTag(t *testing.T) {
	tag := NewCustomTag("Reading  List\tQ3", ColorPresets[3])
	assert.Equal(t, "reading-list-q3", tag.ID)
	assert.Equal(t, "Reading  List\tQ3", tag.Name)
	assert.Equal(t, mindmap.TagCustom, tag.Category)
}

func TestNoteTypeByID(t *testing.T) {
	info, ok := NoteTypeByID("")
	require.True(t, ok)
	assert.Equal(t, mindmap.NoteTypeNote, info.ID)

	info, ok = NoteTypeByID(mindmap.NoteTypeDeadline)
	require.True(t, ok)
	assert.Equal(t, "Important dates and milestones", info.Description)
	assert.Len(t, NoteTypes(), 5)
}

func TestTemplates(t *testing.T) {
	require.Len(t, Templates(), 3)

	tpl, ok := TemplateByID("learning-path")
	require.True(t, ok)
	assert.Equal(t, CategoryLearning, tpl.Category)

	for _, tpl := range Templates() {
		for _, g := range tpl.Galaxies {
			assert.Len(t, tpl.GalaxyNotes[g.ID], g.NoteCount, "%s/%s", tpl.ID, g.ID)
		}
	}

	assert.Len(t, TemplatesByCategory(CategoryBrainstorming), 1)
	assert.Empty(t, TemplatesByCategory(CategoryResearch))

	_, ok = TemplateByID("missing")
	assert.False(t, ok)
}
