// Package persist serializes the mind map snapshot to a key-value store.
// Durability is best-effort: write failures are logged and never interrupt the session.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/internal/store"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

const (
	DefaultKey   = "galaxy-mindmap-data"
	DefaultDelay = 2 * time.Second
)

// CancelFunc cancels a scheduled write. Calling it after the write ran, or twice, is harmless.
type CancelFunc func()

// Gateway reads and writes the snapshot under a single key.
type Gateway struct {
	kv    store.Storer
	key   string
	delay time.Duration
	log   *zap.Logger
	now   func() time.Time

	// writeMu orders storage writes and deletes; it is taken before mu.
	writeMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending *mindmap.Snapshot
	gen     uint64
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(g *Gateway) { g.key = key }
}

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(g *Gateway) { g.delay = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock replaces time.Now for lastSaved stamping.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// New creates a gateway over kv.
func New(kv store.Storer, opts ...Option) *Gateway {
	g := &Gateway{
		kv:    kv,
		key:   DefaultKey,
		delay: DefaultDelay,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load returns the stored snapshot, normalized, or nil when nothing usable is stored.
func (g *Gateway) Load() *mindmap.Snapshot {
	raw, err := g.kv.Get(g.key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		g.log.Error("Failed to load mind map data", zap.String("key", g.key), zap.Error(err))
		return nil
	}

	snap, err := Decode(raw)
	if err != nil {
		g.log.Error("Failed to load mind map data", zap.String("key", g.key), zap.Error(err))
		return nil
	}

	g.log.Info("Mind map data loaded successfully",
		zap.Int("galaxies", len(snap.Galaxies)),
		zap.String("viewMode", string(snap.ViewMode)),
	)
	return snap
}

// Save stamps lastSaved and writes snap immediately.
// The error is logged here; callers on the interactive path may ignore it.
func (g *Gateway) Save(snap *mindmap.Snapshot) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	return g.write(snap)
}

func (g *Gateway) write(snap *mindmap.Snapshot) error {
	out := snap.Clone()
	out.RecountNotes()
	out.LastSaved = g.now().UnixMilli()

	raw, err := json.Marshal(out)
	if err != nil {
		g.log.Error("Failed to save mind map data", zap.Error(err))
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := g.kv.Put(g.key, raw); err != nil {
		g.log.Error("Failed to save mind map data", zap.Error(err))
		return fmt.Errorf("write snapshot: %w", err)
	}

	g.log.Info("Mind map auto-saved successfully", zap.Int64("lastSaved", out.LastSaved))
	return nil
}

// DebouncedSave schedules a write of snap after the quiet period.
// A newer call replaces the pending snapshot and restarts the timer.
func (g *Gateway) DebouncedSave(snap *mindmap.Snapshot) CancelFunc {
	copied := snap.Clone()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}
	g.gen++
	gen := g.gen
	g.pending = copied
	g.timer = time.AfterFunc(g.delay, func() { g.fire(gen) })

	g.log.Debug("Scheduled mind map save", zap.Duration("delay", g.delay))

	return func() { g.cancel(gen) }
}

// fire runs on the timer goroutine; stale generations were superseded or cancelled.
// The generation is checked after writeMu is held, so a Clear or Flush that won
// the race leaves nothing for fire to write.
func (g *Gateway) fire(gen uint64) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	if gen != g.gen || g.pending == nil {
		g.mu.Unlock()
		return
	}
	snap := g.pending
	g.pending = nil
	g.timer = nil
	g.mu.Unlock()

	_ = g.write(snap)
}

func (g *Gateway) cancel(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.gen {
		return
	}
	g.stopLocked()
}

func (g *Gateway) stopLocked() {
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = nil
	g.pending = nil
	g.gen++
}

// Pending reports whether a debounced write is scheduled.
func (g *Gateway) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Flush writes the pending snapshot now, if any.
func (g *Gateway) Flush() error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	snap := g.pending
	g.stopLocked()
	g.mu.Unlock()

	if snap == nil {
		return nil
	}
	return g.write(snap)
}

// Close cancels any pending write without performing it.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
}

// Clear removes the stored snapshot and drops any pending write.
func (g *Gateway) Clear() error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.Close()
	if err := g.kv.Delete(g.key); err != nil {
		g.log.Error("Failed to clear mind map data", zap.Error(err))
		return fmt.Errorf("clear snapshot: %w", err)
	}
	g.log.Info("Mind map data cleared")
	return nil
}

// LastSaved returns the persisted lastSaved stamp, if one is stored.
func (g *Gateway) LastSaved() (time.Time, bool) {
	raw, err := g.kv.Get(g.key)
	if err != nil {
		return time.Time{}, false
	}
	var head struct {
		LastSaved int64 `json:"lastSaved"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.LastSaved == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(head.LastSaved), true
}

// Decode parses a stored blob and normalizes it into an invariant-satisfying snapshot.
// Missing galaxyEdges and lastSaved keys are tolerated.
func Decode(raw []byte) (*mindmap.Snapshot, error) {
	var snap mindmap.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Galaxies == nil {
		return nil, errors.New("decode snapshot: missing galaxies")
	}
	snap.Normalize()
	return &snap, nil
}
