package catalog

import (
	"regexp"
	"strings"

	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

var defaultTags = []mindmap.Tag{
	{ID: "high", Name: "High Priority", Color: "hsl(0, 84%, 60%)", Category: mindmap.TagPriority},
	{ID: "medium", Name: "Medium Priority", Color: "hsl(45, 93%, 58%)", Category: mindmap.TagPriority},
	{ID: "low", Name: "Low Priority", Color: "hsl(120, 60%, 50%)", Category: mindmap.TagPriority},

	{ID: "task", Name: "Task", Color: "hsl(217, 91%, 60%)", Category: mindmap.TagType},
	{ID: "idea", Name: "Idea", Color: "hsl(262, 83%, 58%)", Category: mindmap.TagType},
	{ID: "resource", Name: "Resource", Color: "hsl(142, 69%, 58%)", Category: mindmap.TagType},
	{ID: "deadline", Name: "Deadline", Color: "hsl(346, 87%, 43%)", Category: mindmap.TagType},

	{ID: "todo", Name: "To Do", Color: "hsl(210, 40%, 60%)", Category: mindmap.TagStatus},
	{ID: "inprogress", Name: "In Progress", Color: "hsl(45, 93%, 58%)", Category: mindmap.TagStatus},
	{ID: "completed", Name: "Completed", Color: "hsl(120, 60%, 50%)", Category: mindmap.TagStatus},
	{ID: "blocked", Name: "Blocked", Color: "hsl(0, 84%, 60%)", Category: mindmap.TagStatus},

	{ID: "project", Name: "Project", Color: "hsl(262, 52%, 47%)", Category: mindmap.TagCustom},
	{ID: "learning", Name: "Learning", Color: "hsl(200, 94%, 55%)", Category: mindmap.TagCustom},
	{ID: "brainstorming", Name: "Brainstorming", Color: "hsl(295, 76%, 65%)", Category: mindmap.TagCustom},
	{ID: "research", Name: "Research", Color: "hsl(173, 58%, 39%)", Category: mindmap.TagCustom},
}

// ColorPresets are the swatches offered when creating a custom tag.
var ColorPresets = []string{
	"hsl(0, 84%, 60%)",
	"hsl(45, 93%, 58%)",
	"hsl(120, 60%, 50%)",
	"hsl(217, 91%, 60%)",
	"hsl(262, 83%, 58%)",
	"hsl(346, 87%, 43%)",
	"hsl(173, 58%, 39%)",
	"hsl(200, 94%, 55%)",
}

// DefaultTags returns the built-in tag catalog.
func DefaultTags() []mindmap.Tag {
	return append([]mindmap.Tag(nil), defaultTags...)
}

// TagByID looks a tag up in the built-in catalog.
func TagByID(id string) (mindmap.Tag, bool) {
	for _, t := range defaultTags {
		if t.ID == id {
			return t, true
		}
	}
	return mindmap.Tag{}, false
}

// TagsByCategory returns the built-in tags of one category.
func TagsByCategory(c mindmap.TagCategory) []mindmap.Tag {
	var out []mindmap.Tag
	for _, t := range defaultTags {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

var whitespace = regexp.MustCompile(`\s+`)

// NewCustomTag builds a custom tag whose id is the slugged name.
func NewCustomTag(name, color string) mindmap.Tag {
	return mindmap.Tag{
		ID:       whitespace.ReplaceAllString(strings.ToLower(name), "-"),
		Name:     name,
		Color:    color,
		Category: mindmap.TagCustom,
	}
}
