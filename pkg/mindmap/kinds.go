package mindmap

import "strings"

// Theme is the color scheme of a galaxy or note card.
type Theme string

const (
	ThemeRoyal   Theme = "royal"
	ThemeCosmic  Theme = "cosmic"
	ThemeStellar Theme = "stellar"
	ThemeNebula  Theme = "nebula"
)

// Themes lists every theme in declaration order.
var Themes = []Theme{ThemeRoyal, ThemeCosmic, ThemeStellar, ThemeNebula}

func (t Theme) Valid() bool {
	switch t {
	case ThemeRoyal, ThemeCosmic, ThemeStellar, ThemeNebula:
		return true
	}
	return false
}

// ParseTheme parses a theme name, falling back to royal.
func ParseTheme(s string) Theme {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	return ThemeRoyal
}

// NoteType classifies a note. The zero value renders as a plain note.
type NoteType string

const (
	NoteTypeTask     NoteType = "task"
	NoteTypeIdea     NoteType = "idea"
	NoteTypeResource NoteType = "resource"
	NoteTypeDeadline NoteType = "deadline"
	NoteTypeNote     NoteType = "note"
)

func (n NoteType) Valid() bool {
	switch n {
	case NoteTypeTask, NoteTypeIdea, NoteTypeResource, NoteTypeDeadline, NoteTypeNote:
		return true
	}
	return false
}

// Priority is an optional urgency marker on a note.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ViewMode selects which graph is rendered and editable.
type ViewMode string

const (
	ViewGalaxies ViewMode = "galaxies"
	ViewNotes    ViewMode = "notes"
)

func (v ViewMode) Valid() bool {
	return v == ViewGalaxies || v == ViewNotes
}

// TagCategory groups tags in the tag picker.
type TagCategory string

const (
	TagPriority TagCategory = "priority"
	TagType     TagCategory = "type"
	TagStatus   TagCategory = "status"
	TagCustom   TagCategory = "custom"
)

func (c TagCategory) Valid() bool {
	switch c {
	case TagPriority, TagType, TagStatus, TagCustom:
		return true
	}
	return false
}
