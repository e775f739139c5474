// Package navigation turns renderer gestures into store operations and
// produces the status notices shown to the user. Rejected operations become
// notices; nothing here returns an error to the renderer.
package navigation

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
	"github.com/kittclouds/galaxymap/pkg/search"
	"github.com/kittclouds/galaxymap/pkg/state"
)

// GestureKind is the generic event the renderer emits for a node.
type GestureKind string

const (
	GestureClick      GestureKind = "click"
	GestureLink       GestureKind = "link"
	GestureCancelLink GestureKind = "cancel-link"
	GestureEdit       GestureKind = "edit"
	GestureRead       GestureKind = "read"
)

// Gesture is one (gesture, node) event.
type Gesture struct {
	Kind   GestureKind `json:"kind"`
	NodeID string      `json:"nodeId,omitempty"`
}

// Panel is a side panel the renderer should open.
type Panel string

const (
	PanelEdit Panel = "edit"
	PanelRead Panel = "read"
)

// LinkState is the linking sub-state: idle, or linking from a note.
type LinkState struct {
	Active bool   `json:"active"`
	From   string `json:"from,omitempty"`
}

// Outcome tells the renderer what a gesture produced besides state changes.
type Outcome struct {
	Notice      *Notice            `json:"notice,omitempty"`
	Panel       Panel              `json:"panel,omitempty"`
	Note        *mindmap.Note      `json:"note,omitempty"`
	Edge        *mindmap.Edge      `json:"edge,omitempty"`
	Focus       string             `json:"focus,omitempty"`
	Link        LinkState          `json:"link"`
	Connections *state.Connections `json:"connections,omitempty"`
}

// Controller dispatches gestures against a store.
type Controller struct {
	store  *state.Store
	index  *search.Index
	notify Notifier
	log    *zap.Logger

	mu      sync.Mutex
	linking LinkState
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where notices are delivered.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a controller for store.
func New(store *state.Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		index: search.New(store),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Linking returns the current linking sub-state.
func (c *Controller) Linking() LinkState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linking
}

// Dispatch handles one gesture.
func (c *Controller) Dispatch(g Gesture) Outcome {
	switch g.Kind {
	case GestureClick:
		return c.click(g.NodeID)
	case GestureLink:
		return c.link(g.NodeID)
	case GestureCancelLink:
		c.setLinking(LinkState{})
		return c.outcome(nil)
	case GestureEdit, GestureRead:
		return c.open(g.Kind, g.NodeID)
	default:
		c.log.Warn("Unknown gesture", zap.String("kind", string(g.Kind)), zap.String("node", g.NodeID))
		return c.outcome(nil)
	}
}

// click enters a galaxy from the galaxies view. Clicks in the notes view only select.
func (c *Controller) click(id string) Outcome {
	if c.store.Mode() != mindmap.ViewGalaxies {
		return c.outcome(nil)
	}
	if _, ok := c.store.Galaxy(id); !ok {
		return c.outcome(nil)
	}
	return c.enter(id)
}

func (c *Controller) enter(id string) Outcome {
	g, err := c.store.EnterGalaxy(id)
	if err != nil {
		return c.reject("enter galaxy", err)
	}
	c.setLinking(LinkState{})
	n := enteredNotice(g.Name, g.NoteCount)
	return c.outcome(&n)
}

// link advances the linking sub-state machine:
// idle -> linking(A) on A; linking(A) -> idle with edge A->B on B; linking(A) -> idle on A.
func (c *Controller) link(id string) Outcome {
	if !c.inActiveGalaxy(id) {
		return c.outcome(nil)
	}

	c.mu.Lock()
	from := c.linking
	c.mu.Unlock()

	switch {
	case !from.Active:
		c.setLinking(LinkState{Active: true, From: id})
		n := noticeLinkActive
		return c.outcome(&n)
	case from.From == id:
		c.setLinking(LinkState{})
		n := noticeLinkOff
		return c.outcome(&n)
	default:
		c.setLinking(LinkState{})
		return c.Connect(from.From, id)
	}
}

func (c *Controller) open(kind GestureKind, id string) Outcome {
	if !c.inActiveGalaxy(id) {
		return c.outcome(nil)
	}
	note, ok := c.store.Note(id)
	if !ok {
		return c.outcome(nil)
	}

	out := c.outcome(nil)
	out.Note = &note
	if kind == GestureEdit {
		out.Panel = PanelEdit
		return out
	}
	out.Panel = PanelRead
	if conns, err := c.store.Connections(id); err == nil {
		out.Connections = &conns
	}
	return out
}

// Connect links two notes, as from a drag between handles.
func (c *Controller) Connect(source, target string) Outcome {
	edge, err := c.store.Connect(source, target)
	if err != nil {
		return c.reject("connect", err)
	}
	n := noticeConnected
	out := c.outcome(&n)
	out.Edge = &edge
	return out
}

// AddNote creates a note in the open galaxy.
func (c *Controller) AddNote() Outcome {
	note, err := c.store.AddNote()
	if err != nil {
		return c.reject("add note", err)
	}
	n := noticeNoteCreated
	out := c.outcome(&n)
	out.Note = &note
	return out
}

// DeleteSelected removes the selection of the active view.
func (c *Controller) DeleteSelected() Outcome {
	d, err := c.store.DeleteSelected()
	if err != nil {
		return c.reject("delete", err)
	}

	c.mu.Lock()
	for _, id := range d.Notes {
		if c.linking.From == id {
			c.linking = LinkState{}
		}
	}
	c.mu.Unlock()

	n := noticeDeleted
	return c.outcome(&n)
}

// Exit returns to the galaxies view.
func (c *Controller) Exit() Outcome {
	if err := c.store.ExitToGalaxies(); err != nil {
		c.log.Debug("Exit ignored", zap.Error(err))
		return c.outcome(nil)
	}
	c.setLinking(LinkState{})
	n := noticeZoomedOut
	return c.outcome(&n)
}

// SaveNote stores an edit made in the edit panel.
func (c *Controller) SaveNote(id, title, content string) Outcome {
	if err := c.store.SaveNoteEdit(id, title, content); err != nil {
		return c.reject("save note", err)
	}
	n := noticeNoteSaved
	return c.outcome(&n)
}

// Search runs a query. The second result reports whether a results panel should be shown.
func (c *Controller) Search(query string) ([]search.Result, bool) {
	if strings.TrimSpace(query) == "" {
		return nil, false
	}
	return c.index.Search(query), true
}

// NavigateToNote opens the galaxy owning a note and asks the renderer to focus it.
// An unknown id is a no-op.
func (c *Controller) NavigateToNote(id string) Outcome {
	gid, ok := c.index.FindNoteLocation(id)
	if !ok {
		return c.outcome(nil)
	}
	g, err := c.store.EnterGalaxy(gid)
	if err != nil {
		return c.reject("navigate", err)
	}
	c.setLinking(LinkState{})

	note, _ := c.store.Note(id)
	n := foundNotice(note.Title, g.Name)
	out := c.outcome(&n)
	out.Focus = id
	return out
}

// ApplyTemplate adds a template's galaxies.
func (c *Controller) ApplyTemplate(id string) Outcome {
	added, err := c.store.ApplyTemplate(id)
	if err != nil {
		return c.reject("apply template", err)
	}
	c.setLinking(LinkState{})

	name := id
	if tpl, ok := catalog.TemplateByID(id); ok {
		name = tpl.Name
	}
	n := templateNotice(name, len(added))
	return c.outcome(&n)
}

// Reset discards all data and reseeds the defaults.
func (c *Controller) Reset() Outcome {
	if err := c.store.Reset(); err != nil {
		return c.reject("reset", err)
	}
	c.setLinking(LinkState{})
	n := noticeReset
	return c.outcome(&n)
}

// NodesChange folds renderer node deltas into the store.
func (c *Controller) NodesChange(changes []state.NodeChange) {
	c.store.ApplyNodeChanges(changes)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range changes {
		if ch.Type == state.ChangeRemove && ch.ID == c.linking.From {
			c.linking = LinkState{}
		}
	}
}

// EdgesChange folds renderer edge deltas into the store.
func (c *Controller) EdgesChange(changes []state.EdgeChange) {
	c.store.ApplyEdgeChanges(changes)
}

func (c *Controller) inActiveGalaxy(noteID string) bool {
	cur, ok := c.store.CurrentGalaxy()
	if !ok {
		return false
	}
	gid, ok := c.index.FindNoteLocation(noteID)
	return ok && gid == cur.ID
}

func (c *Controller) setLinking(l LinkState) {
	c.mu.Lock()
	c.linking = l
	c.mu.Unlock()
}

func (c *Controller) reject(op string, err error) Outcome {
	c.log.Debug("Operation rejected", zap.String("op", op), zap.Error(err))
	n := rejectedNotice(err)
	return c.outcome(&n)
}

// outcome delivers n, if any, and snapshots the linking state.
func (c *Controller) outcome(n *Notice) Outcome {
	if n != nil && c.notify != nil {
		c.notify.Notify(*n)
	}
	return Outcome{Notice: n, Link: c.Linking()}
}
