// Package state owns the live mind map: the view mode, the galaxy collection and
// the per-galaxy note and edge collections. Every successful mutation schedules a
// debounced persistence write of the full snapshot.
package state

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
	"github.com/kittclouds/galaxymap/pkg/persist"
)

var (
	ErrNotInGalaxy      = errors.New("no galaxy is open")
	ErrWrongView        = errors.New("operation not available in this view")
	ErrUnknownGalaxy    = errors.New("unknown galaxy")
	ErrUnknownNote      = errors.New("unknown note")
	ErrUnknownEdge      = errors.New("unknown edge")
	ErrUnknownTag       = errors.New("unknown custom tag")
	ErrTagExists        = errors.New("tag already exists")
	ErrSelfLoop         = errors.New("a note cannot connect to itself")
	ErrEdgeExists       = errors.New("notes are already connected")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrInvalidAttribute = errors.New("invalid attribute")
)

// FirstID is the lowest id the counter hands out.
const FirstID = 100

const (
	NewNoteTitle   = "New Note"
	NewNoteContent = "Start writing your thoughts..."
)

// Saver is the persistence side of the store. *persist.Gateway implements it.
type Saver interface {
	Load() *mindmap.Snapshot
	DebouncedSave(snap *mindmap.Snapshot) persist.CancelFunc
	Flush() error
	Clear() error
	Close()
}

// Canvas bounds the region new notes are placed in.
type Canvas struct {
	MinX, MinY    float64
	Width, Height float64
}

// DefaultCanvas places notes in x∈[200,700), y∈[100,500).
var DefaultCanvas = Canvas{MinX: 200, MinY: 100, Width: 500, Height: 400}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the source for random themes and positions.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithCanvas sets the placement region for new notes.
func WithCanvas(c Canvas) Option {
	return func(s *Store) { s.canvas = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the single source of truth for the mind map.
// It is safe for use from multiple goroutines, though one session drives it.
type Store struct {
	mu     sync.Mutex
	saver  Saver
	log    *zap.Logger
	rng    *rand.Rand
	canvas Canvas

	snap   *mindmap.Snapshot
	nextID int

	// Selection is view state only and is never persisted.
	selected      map[string]bool
	selectedEdges map[string]bool
}

// New hydrates a store from saver, falling back to the default catalog.
func New(saver Saver, opts ...Option) *Store {
	s := &Store{
		saver:         saver,
		log:           zap.NewNop(),
		canvas:        DefaultCanvas,
		selected:      make(map[string]bool),
		selectedEdges: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	snap := saver.Load()
	if snap == nil {
		s.log.Info("No saved mind map, starting from defaults")
		snap = catalog.DefaultSnapshot()
	}
	s.install(snap)
	return s
}

// install replaces the live snapshot and derives the id counter from it.
func (s *Store) install(snap *mindmap.Snapshot) {
	snap.Normalize()
	s.snap = snap
	s.nextID = counterFor(snap)
	s.clearSelection()
}

// counterFor returns max(persisted counter, highest numeric id + 1, FirstID).
func counterFor(snap *mindmap.Snapshot) int {
	next := max(snap.NextID, FirstID)
	bump := func(id string) {
		if n, err := strconv.Atoi(id); err == nil && n >= next {
			next = n + 1
		}
	}
	for _, g := range snap.Galaxies {
		bump(g.ID)
	}
	for _, notes := range snap.GalaxyNotes {
		for _, n := range notes {
			bump(n.ID)
		}
	}
	return next
}

func (s *Store) newID() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

func (s *Store) clearSelection() {
	clear(s.selected)
	clear(s.selectedEdges)
}

// persist schedules a debounced write of the current snapshot. Callers hold mu.
func (s *Store) persist() {
	s.saver.DebouncedSave(s.snapshotLocked())
}

func (s *Store) snapshotLocked() *mindmap.Snapshot {
	out := s.snap.Clone()
	out.NextID = s.nextID
	out.RecountNotes()
	return out
}

// Snapshot returns a deep copy of the current state, counts recomputed.
func (s *Store) Snapshot() *mindmap.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Mode returns the current view mode.
func (s *Store) Mode() mindmap.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.ViewMode
}

// CurrentGalaxy returns the open galaxy, if any.
func (s *Store) CurrentGalaxy() (mindmap.Galaxy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.ViewMode != mindmap.ViewNotes {
		return mindmap.Galaxy{}, false
	}
	g, ok := s.galaxyLocked(s.snap.CurrentGalaxyID())
	return g, ok
}

// Galaxy returns a galaxy by id with its note count recomputed.
func (s *Store) Galaxy(id string) (mindmap.Galaxy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.galaxyLocked(id)
}

func (s *Store) galaxyLocked(id string) (mindmap.Galaxy, bool) {
	g, ok := s.snap.GalaxyByID(id)
	if !ok {
		return mindmap.Galaxy{}, false
	}
	out := mindmap.CloneGalaxies([]mindmap.Galaxy{g})[0]
	out.NoteCount = len(s.snap.GalaxyNotes[id])
	return out, true
}

// Note returns a note from any galaxy.
func (s *Store) Note(id string) (mindmap.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gid, i, ok := s.locateLocked(id)
	if !ok {
		return mindmap.Note{}, false
	}
	return mindmap.CloneNotes(s.snap.GalaxyNotes[gid][i : i+1])[0], true
}

// locateLocked finds a note across all galaxies, in galaxy order.
func (s *Store) locateLocked(noteID string) (galaxyID string, index int, ok bool) {
	for _, g := range s.snap.Galaxies {
		for i, n := range s.snap.GalaxyNotes[g.ID] {
			if n.ID == noteID {
				return g.ID, i, true
			}
		}
	}
	return "", -1, false
}

// activeNoteIndex finds a note in the open galaxy.
func (s *Store) activeNoteIndex(noteID string) (int, error) {
	if s.snap.ViewMode != mindmap.ViewNotes {
		return -1, ErrNotInGalaxy
	}
	for i, n := range s.snap.GalaxyNotes[s.snap.CurrentGalaxyID()] {
		if n.ID == noteID {
			return i, nil
		}
	}
	return -1, ErrUnknownNote
}

// Flush writes any pending snapshot now.
func (s *Store) Flush() error {
	return s.saver.Flush()
}

// Close cancels the pending write. The store must not be used afterwards.
func (s *Store) Close() {
	s.saver.Close()
}
