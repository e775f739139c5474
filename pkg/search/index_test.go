package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

type staticSource struct{ snap *mindmap.Snapshot }

func (s staticSource) Snapshot() *mindmap.Snapshot { return s.snap.Clone() }

func TestSearchReact(t *testing.T) {
	idx := New(staticSource{catalog.DefaultSnapshot()})

	results := idx.Search("react")
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "js-1", r.NoteID)
	assert.Equal(t, "React Hooks", r.Title)
	assert.Equal(t, "galaxy-js", r.GalaxyID)
	assert.Equal(t, "JavaScript", r.GalaxyName)
	assert.Equal(t, mindmap.ThemeRoyal, r.Theme)

	require.Len(t, r.Spans, 2)
	assert.Equal(t, Span{Field: FieldTitle, Start: 0, End: 5}, r.Spans[0])
	start := strings.Index(r.Content, "React")
	assert.Equal(t, Span{Field: FieldContent, Start: start, End: start + 5}, r.Spans[1])
}

func TestSearchBlankQuery(t *testing.T) {
	snap := catalog.DefaultSnapshot()
	for _, q := range []string{"", "   ", "\t\n"} {
		assert.Nil(t, Search(snap, q), "%q", q)
	}
}

func TestSearchOrderAndSpans(t *testing.T) {
	results := Search(catalog.DefaultSnapshot(), "APP")
	require.Len(t, results, 2)
	assert.Equal(t, "design-2", results[0].NoteID, "galaxy order first")
	assert.Equal(t, "proj-1", results[1].NoteID)

	r := results[1]
	require.Len(t, r.Spans, 3)
	for _, sp := range r.Spans {
		text := r.Title
		if sp.Field == FieldContent {
			text = r.Content
		}
		assert.Equal(t, "app", strings.ToLower(text[sp.Start:sp.End]))
	}
}

func TestSearchIncludesEveryGalaxy(t *testing.T) {
	snap := catalog.DefaultSnapshot()
	snap.ViewMode = mindmap.ViewNotes
	snap.CurrentGalaxy = mindmap.StringPtr("galaxy-design")

	results := Search(snap, "learning")
	require.Len(t, results, 1)
	assert.Equal(t, "proj-3", results[0].NoteID)
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search(catalog.DefaultSnapshot(), "kubernetes"))
	assert.Nil(t, Search(nil, "react"))
}

func TestSearchUnicodeFallsBackToNoSpans(t *testing.T) {
	snap := catalog.DefaultSnapshot()
	snap.GalaxyNotes["galaxy-js"][0].Title = "İstanbul notes"

	results := Search(snap, "notes")
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Spans)
}

func TestFindNoteLocation(t *testing.T) {
	idx := New(staticSource{catalog.DefaultSnapshot()})

	gid, ok := idx.FindNoteLocation("proj-4")
	require.True(t, ok)
	assert.Equal(t, "galaxy-projects", gid)

	_, ok = idx.FindNoteLocation("ghost")
	assert.False(t, ok)
}
