// Package mindmap defines the two-level galaxy/note graph and its persisted snapshot.
// Galaxies group notes; notes inside one galaxy are linked by edges scoped to it.
package mindmap

// Position is a canvas coordinate as reported by the renderer.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Galaxy is a top-level cluster of notes.
// NoteCount is derived from the galaxy's note collection and is never authoritative.
type Galaxy struct {
	ID        string   `json:"id"`
	Position  Position `json:"position"`
	Name      string   `json:"name"`
	Theme     Theme    `json:"theme"`
	NoteCount int      `json:"noteCount"`
	Tags      []string `json:"tags,omitempty"`
}

// Note is a single content card owned by exactly one galaxy.
// GalaxyID is an informational back-reference; ownership is the galaxyNotes bucket.
type Note struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Theme    Theme    `json:"theme"`
	NoteType NoteType `json:"noteType,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	GalaxyID string   `json:"galaxyId,omitempty"`
}

// EdgeStyle is the stroke metadata handed to the renderer.
type EdgeStyle struct {
	Stroke      string `json:"stroke"`
	StrokeWidth int    `json:"strokeWidth"`
}

// Edge is a directed connection between two notes of the same galaxy.
type Edge struct {
	ID       string     `json:"id"`
	Source   string     `json:"source"`
	Target   string     `json:"target"`
	Type     string     `json:"type,omitempty"`
	Animated bool       `json:"animated,omitempty"`
	Style    *EdgeStyle `json:"style,omitempty"`
}

// Tag labels notes. Catalog tags are static; custom tags live in the snapshot.
type Tag struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Color    string      `json:"color"`
	Category TagCategory `json:"category"`
}

// Snapshot is the complete persisted state of the mind map.
// CurrentGalaxy is nil while the galaxies view is active.
type Snapshot struct {
	Galaxies      []Galaxy          `json:"galaxies"`
	GalaxyNotes   map[string][]Note `json:"galaxyNotes"`
	GalaxyEdges   map[string][]Edge `json:"galaxyEdges"`
	CurrentGalaxy *string           `json:"currentGalaxy"`
	ViewMode      ViewMode          `json:"viewMode"`
	LastSaved     int64             `json:"lastSaved,omitempty"`

	// NextID is the id counter at save time; absent in older snapshots.
	NextID     int   `json:"nextId,omitempty"`
	CustomTags []Tag `json:"customTags,omitempty"`
}

const (
	EdgeTypeSmoothStep = "smoothstep"
	ConnectionStroke   = "hsl(var(--galaxy-connection))"
)

// EdgeID synthesizes the id of the edge from source to target.
func EdgeID(source, target string) string {
	return "edge-" + source + "-" + target
}

// NewEdge builds an edge with the default connection styling.
func NewEdge(source, target string) Edge {
	return Edge{
		ID:       EdgeID(source, target),
		Source:   source,
		Target:   target,
		Type:     EdgeTypeSmoothStep,
		Animated: true,
		Style:    &EdgeStyle{Stroke: ConnectionStroke, StrokeWidth: 2},
	}
}

// CurrentGalaxyID returns the active galaxy id or "".
func (s *Snapshot) CurrentGalaxyID() string {
	if s.CurrentGalaxy == nil {
		return ""
	}
	return *s.CurrentGalaxy
}

// GalaxyByID returns the galaxy with the given id.
func (s *Snapshot) GalaxyByID(id string) (Galaxy, bool) {
	for _, g := range s.Galaxies {
		if g.ID == id {
			return g, true
		}
	}
	return Galaxy{}, false
}

// StringPtr returns a pointer to a copy of v.
func StringPtr(v string) *string {
	return &v
}
