package catalog

import "github.com/kittclouds/galaxymap/pkg/mindmap"

// NoteTypeInfo describes a note type for the type picker.
type NoteTypeInfo struct {
	ID          mindmap.NoteType `json:"id"`
	Name        string           `json:"name"`
	Color       string           `json:"color"`
	Description string           `json:"description"`
}

var noteTypes = []NoteTypeInfo{
	{ID: mindmap.NoteTypeTask, Name: "Task", Color: "hsl(217, 91%, 60%)", Description: "Action items and to-dos"},
	{ID: mindmap.NoteTypeIdea, Name: "Idea", Color: "hsl(45, 93%, 58%)", Description: "Creative thoughts and concepts"},
	{ID: mindmap.NoteTypeResource, Name: "Resource", Color: "hsl(142, 69%, 58%)", Description: "References, links, and materials"},
	{ID: mindmap.NoteTypeDeadline, Name: "Deadline", Color: "hsl(0, 84%, 60%)", Description: "Important dates and milestones"},
	{ID: mindmap.NoteTypeNote, Name: "Note", Color: "hsl(210, 40%, 60%)", Description: "General notes and observations"},
}

func NoteTypes() []NoteTypeInfo {
	return append([]NoteTypeInfo(nil), noteTypes...)
}

// NoteTypeByID returns the catalog entry for t. An empty type resolves to a plain note.
func NoteTypeByID(t mindmap.NoteType) (NoteTypeInfo, bool) {
	if t == "" {
		t = mindmap.NoteTypeNote
	}
	for _, info := range noteTypes {
		if info.ID == t {
			return info, true
		}
	}
	return NoteTypeInfo{}, false
}
