// Package catalog holds the static lookup tables of the mind map:
// default seed data, the tag and note-type catalogs, and the template gallery.
// Every accessor returns fresh copies so callers may mutate the result.
package catalog

import "github.com/kittclouds/galaxymap/pkg/mindmap"

// DefaultGalaxies returns the three seed galaxies.
func DefaultGalaxies() []mindmap.Galaxy {
	return []mindmap.Galaxy{
		{ID: "galaxy-js", Position: mindmap.Position{X: 200, Y: 200}, Name: "JavaScript", NoteCount: 3, Theme: mindmap.ThemeRoyal},
		{ID: "galaxy-design", Position: mindmap.Position{X: 500, Y: 100}, Name: "Design", NoteCount: 2, Theme: mindmap.ThemeCosmic},
		{ID: "galaxy-projects", Position: mindmap.Position{X: 300, Y: 400}, Name: "Projects", NoteCount: 4, Theme: mindmap.ThemeStellar},
	}
}

// DefaultGalaxyNotes returns the seed notes keyed by galaxy id.
func DefaultGalaxyNotes() map[string][]mindmap.Note {
	js := func(id string, x, y float64, title, content string) mindmap.Note {
		return seedNote(id, "galaxy-js", mindmap.ThemeRoyal, x, y, title, content)
	}
	design := func(id string, x, y float64, title, content string) mindmap.Note {
		return seedNote(id, "galaxy-design", mindmap.ThemeCosmic, x, y, title, content)
	}
	proj := func(id string, x, y float64, title, content string) mindmap.Note {
		return seedNote(id, "galaxy-projects", mindmap.ThemeStellar, x, y, title, content)
	}

	return map[string][]mindmap.Note{
		"galaxy-js": {
			js("js-1", 250, 150, "React Hooks", "useState, useEffect, useCallback - the essential hooks for modern React development."),
			js("js-2", 550, 200, "Async/Await", "Modern way to handle asynchronous operations in JavaScript."),
			js("js-3", 100, 350, "ES6 Features", "Arrow functions, destructuring, template literals, and more."),
		},
		"galaxy-design": {
			design("design-1", 200, 200, "Color Theory", "Understanding color harmony and psychology in design."),
			design("design-2", 450, 300, "Typography", "The art of arranging type to make written language legible and appealing."),
		},
		"galaxy-projects": {
			proj("proj-1", 300, 150, "Mind Map App", "Building a galaxy-themed mind mapping application."),
			proj("proj-2", 150, 300, "Portfolio Website", "Creating a personal portfolio to showcase work."),
			proj("proj-3", 500, 250, "Learning Goals", "Track progress on learning new technologies."),
			proj("proj-4", 350, 400, "Team Collaboration", "Best practices for working with development teams."),
		},
	}
}

// DefaultSnapshot returns the state of a first launch: seed data, galaxies view, no edges.
func DefaultSnapshot() *mindmap.Snapshot {
	s := &mindmap.Snapshot{
		Galaxies:    DefaultGalaxies(),
		GalaxyNotes: DefaultGalaxyNotes(),
		GalaxyEdges: make(map[string][]mindmap.Edge),
		ViewMode:    mindmap.ViewGalaxies,
	}
	s.RecountNotes()
	return s
}

func seedNote(id, galaxyID string, theme mindmap.Theme, x, y float64, title, content string) mindmap.Note {
	return mindmap.Note{
		ID:       id,
		Position: mindmap.Position{X: x, Y: y},
		Title:    title,
		Content:  content,
		Theme:    theme,
		GalaxyID: galaxyID,
	}
}
