// Package search finds notes by case-insensitive substring across every galaxy.
package search

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

// Source provides the current state to search. *state.Store implements it.
type Source interface {
	Snapshot() *mindmap.Snapshot
}

// Field names the note field a span falls in.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
)

// Span is a byte range of a match, for highlighting.
type Span struct {
	Field Field `json:"field"`
	Start int   `json:"start"`
	End   int   `json:"end"`
}

// Result is one matching note.
type Result struct {
	NoteID     string        `json:"noteId"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	GalaxyID   string        `json:"galaxyId"`
	GalaxyName string        `json:"galaxyName"`
	Theme      mindmap.Theme `json:"theme"`
	Spans      []Span        `json:"spans,omitempty"`
}

// Index answers search and location queries against a Source.
type Index struct {
	src Source
}

func New(src Source) *Index {
	return &Index{src: src}
}

// Search returns the notes whose title or content contains query, ignoring case,
// in galaxy order then note order. A blank query returns nil.
func (x *Index) Search(query string) []Result {
	return Search(x.src.Snapshot(), query)
}

// FindNoteLocation returns the galaxy that owns a note.
func (x *Index) FindNoteLocation(noteID string) (string, bool) {
	return FindNoteLocation(x.src.Snapshot(), noteID)
}

// Matcher is a compiled query.
type Matcher struct {
	ac ahocorasick.AhoCorasick
}

// Compile builds a matcher for query. It reports false for a blank query.
func Compile(query string) (*Matcher, bool) {
	if strings.TrimSpace(query) == "" {
		return nil, false
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return &Matcher{ac: builder.Build([]string{strings.ToLower(query)})}, true
}

// Find returns the byte ranges of every non-overlapping match in text.
// Ranges are only reported when lowercasing preserves byte offsets; a match
// is still signalled by a non-nil, possibly empty, slice.
func (m *Matcher) Find(text string) ([][2]int, bool) {
	lowered := strings.ToLower(text)
	matches := m.ac.FindAll(lowered)
	if len(matches) == 0 {
		return nil, false
	}
	if len(lowered) != len(text) {
		return [][2]int{}, true
	}

	ranges := make([][2]int, 0, len(matches))
	for _, hit := range matches {
		ranges = append(ranges, [2]int{hit.Start(), hit.End()})
	}
	return ranges, true
}

// Search scans snap for query.
func Search(snap *mindmap.Snapshot, query string) []Result {
	m, ok := Compile(query)
	if !ok || snap == nil {
		return nil
	}

	var results []Result
	for _, g := range snap.Galaxies {
		for _, n := range snap.GalaxyNotes[g.ID] {
			titleHits, inTitle := m.Find(n.Title)
			contentHits, inContent := m.Find(n.Content)
			if !inTitle && !inContent {
				continue
			}

			r := Result{
				NoteID:     n.ID,
				Title:      n.Title,
				Content:    n.Content,
				GalaxyID:   g.ID,
				GalaxyName: g.Name,
				Theme:      n.Theme,
			}
			for _, h := range titleHits {
				r.Spans = append(r.Spans, Span{Field: FieldTitle, Start: h[0], End: h[1]})
			}
			for _, h := range contentHits {
				r.Spans = append(r.Spans, Span{Field: FieldContent, Start: h[0], End: h[1]})
			}
			results = append(results, r)
		}
	}
	return results
}

// FindNoteLocation returns the id of the galaxy whose notes include noteID.
func FindNoteLocation(snap *mindmap.Snapshot, noteID string) (string, bool) {
	if snap == nil {
		return "", false
	}
	for _, g := range snap.Galaxies {
		for _, n := range snap.GalaxyNotes[g.ID] {
			if n.ID == noteID {
				return g.ID, true
			}
		}
	}
	return "", false
}
