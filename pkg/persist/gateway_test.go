package persist

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/galaxymap/internal/store"
	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

// countingStore records every Put so debounce coalescing can be observed.
type countingStore struct {
	*store.MemStore

	mu   sync.Mutex
	puts [][]byte
}

func newCountingStore() *countingStore {
	return &countingStore{MemStore: store.NewMemStore()}
}

func (c *countingStore) Put(key string, value []byte) error {
	c.mu.Lock()
	c.puts = append(c.puts, append([]byte(nil), value...))
	c.mu.Unlock()
	return c.MemStore.Put(key, value)
}

func (c *countingStore) putCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.puts)
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := New(store.NewMemStore(), WithClock(fixedClock(1_700_000_000_000)))

	snap := catalog.DefaultSnapshot()
	snap.GalaxyEdges["galaxy-js"] = []mindmap.Edge{mindmap.NewEdge("js-1", "js-2")}
	require.NoError(t, g.Save(snap))

	loaded := g.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, int64(1_700_000_000_000), loaded.LastSaved)

	loaded.LastSaved = 0
	assert.Equal(t, snap, loaded)
	assert.Zero(t, snap.LastSaved, "caller's snapshot is not stamped")
}

func TestSaveRestoresNotesView(t *testing.T) {
	g := New(store.NewMemStore())

	snap := catalog.DefaultSnapshot()
	snap.ViewMode = mindmap.ViewNotes
	snap.CurrentGalaxy = mindmap.StringPtr("galaxy-design")
	require.NoError(t, g.Save(snap))

	loaded := g.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, mindmap.ViewNotes, loaded.ViewMode)
	assert.Equal(t, "galaxy-design", loaded.CurrentGalaxyID())
}

func TestLoadAbsent(t *testing.T) {
	g := New(store.NewMemStore())
	assert.Nil(t, g.Load())

	_, ok := g.LastSaved()
	assert.False(t, ok)
}

func TestLoadMalformed(t *testing.T) {
	kv := store.NewMemStore()
	require.NoError(t, kv.Put(DefaultKey, []byte("{not json")))

	g := New(kv)
	assert.Nil(t, g.Load())
}

func TestLoadMissingOptionalKeys(t *testing.T) {
	kv := store.NewMemStore()
	raw := `{
		"galaxies": [{"id": "g1", "position": {"x": 1, "y": 2}, "name": "One", "theme": "nebula", "noteCount": 99}],
		"galaxyNotes": {"g1": [{"id": "n1", "position": {"x": 0, "y": 0}, "title": "T", "content": "C", "theme": "nebula"}]},
		"currentGalaxy": "g1",
		"viewMode": "notes"
	}`
	require.NoError(t, kv.Put(DefaultKey, []byte(raw)))

	snap := New(kv).Load()
	require.NotNil(t, snap)
	require.NoError(t, snap.Check())
	assert.NotNil(t, snap.GalaxyEdges)
	assert.Zero(t, snap.LastSaved)
	assert.Equal(t, 1, snap.Galaxies[0].NoteCount, "counts are recomputed")
	assert.Equal(t, mindmap.ViewNotes, snap.ViewMode)
}

func TestLoadRepairsInvariants(t *testing.T) {
	kv := store.NewMemStore()
	raw := `{
		"galaxies": [{"id": "g1", "position": {"x": 0, "y": 0}, "name": "One", "theme": "royal", "noteCount": 0}],
		"galaxyNotes": {"g1": [{"id": "n1", "position": {"x": 0, "y": 0}, "title": "T", "content": "", "theme": "royal"}], "ghost": []},
		"galaxyEdges": {"g1": [{"id": "edge-n1-n9", "source": "n1", "target": "n9"}]},
		"currentGalaxy": "ghost",
		"viewMode": "notes"
	}`
	require.NoError(t, kv.Put(DefaultKey, []byte(raw)))

	snap := New(kv).Load()
	require.NotNil(t, snap)
	require.NoError(t, snap.Check())
	assert.NotContains(t, snap.GalaxyNotes, "ghost")
	assert.Empty(t, snap.GalaxyEdges["g1"])
	assert.Equal(t, mindmap.ViewGalaxies, snap.ViewMode)
	assert.Nil(t, snap.CurrentGalaxy)
}

func TestLoadMissingGalaxies(t *testing.T) {
	kv := store.NewMemStore()
	require.NoError(t, kv.Put(DefaultKey, []byte(`{"viewMode":"galaxies"}`)))
	assert.Nil(t, New(kv).Load())
}

func TestDebouncedSaveCoalesces(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithDelay(30*time.Millisecond))

	for i, name := range []string{"first", "second", "third"} {
		snap := catalog.DefaultSnapshot()
		snap.Galaxies[0].Name = name
		g.DebouncedSave(snap)
		if i < 2 {
			time.Sleep(5 * time.Millisecond)
		}
	}
	assert.True(t, g.Pending())
	assert.Zero(t, kv.putCount())

	require.Eventually(t, func() bool { return kv.putCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, kv.putCount())
	assert.False(t, g.Pending())

	loaded := g.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "third", loaded.Galaxies[0].Name)
}

func TestDebouncedSaveSnapshotIsCopied(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithDelay(10*time.Millisecond))

	snap := catalog.DefaultSnapshot()
	g.DebouncedSave(snap)
	snap.Galaxies[0].Name = "mutated after scheduling"

	require.Eventually(t, func() bool { return kv.putCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "JavaScript", g.Load().Galaxies[0].Name)
}

func TestDebouncedSaveCancel(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithDelay(20*time.Millisecond))

	cancel := g.DebouncedSave(catalog.DefaultSnapshot())
	cancel()
	cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, kv.putCount())
	assert.False(t, g.Pending())
}

func TestStaleCancelKeepsNewerSave(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithDelay(20*time.Millisecond))

	stale := g.DebouncedSave(catalog.DefaultSnapshot())
	g.DebouncedSave(catalog.DefaultSnapshot())
	stale()

	require.Eventually(t, func() bool { return kv.putCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestFlushWritesPending(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithDelay(time.Hour))

	g.DebouncedSave(catalog.DefaultSnapshot())
	require.NoError(t, g.Flush())
	assert.Equal(t, 1, kv.putCount())

	require.NoError(t, g.Flush())
	assert.Equal(t, 1, kv.putCount(), "nothing pending")
}

func TestCloseDropsPending(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithDelay(10*time.Millisecond))

	g.DebouncedSave(catalog.DefaultSnapshot())
	g.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, kv.putCount())
}

func TestSaveFailureIsReported(t *testing.T) {
	kv := store.NewMemStore()
	kv.FailPut = errors.New("quota exceeded")
	g := New(kv)

	err := g.Save(catalog.DefaultSnapshot())
	require.Error(t, err)
	assert.ErrorIs(t, err, kv.FailPut)
}

func TestDebouncedSaveFailureIsSwallowed(t *testing.T) {
	kv := store.NewMemStore()
	kv.FailPut = errors.New("quota exceeded")
	g := New(kv, WithDelay(5*time.Millisecond))

	g.DebouncedSave(catalog.DefaultSnapshot())
	require.Eventually(t, func() bool { return !g.Pending() }, time.Second, 5*time.Millisecond)
	assert.Nil(t, g.Load())
}

func TestClear(t *testing.T) {
	kv := newCountingStore()
	g := New(kv, WithKey("custom-key"), WithClock(fixedClock(42)), WithDelay(time.Hour))

	require.NoError(t, g.Save(catalog.DefaultSnapshot()))
	at, ok := g.LastSaved()
	require.True(t, ok)
	assert.Equal(t, int64(42), at.UnixMilli())

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"custom-key"}, keys)

	g.DebouncedSave(catalog.DefaultSnapshot())
	require.NoError(t, g.Clear())
	assert.False(t, g.Pending())
	assert.Nil(t, g.Load())

	require.NoError(t, g.Clear(), "clearing twice is fine")
}

// stallingStore holds its first Put until release is closed.
type stallingStore struct {
	*store.MemStore

	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newStallingStore() *stallingStore {
	return &stallingStore{
		MemStore: store.NewMemStore(),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (s *stallingStore) Put(key string, value []byte) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.MemStore.Put(key, value)
}

func TestClearWaitsForInFlightWrite(t *testing.T) {
	kv := newStallingStore()
	g := New(kv, WithDelay(time.Millisecond))

	g.DebouncedSave(catalog.DefaultSnapshot())
	<-kv.entered

	cleared := make(chan error, 1)
	go func() { cleared <- g.Clear() }()

	select {
	case <-cleared:
		t.Fatal("Clear returned while a write was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(kv.release)
	require.NoError(t, <-cleared)
	assert.Nil(t, g.Load(), "the older write must not survive Clear")
}

func TestFlushIsNotOverwrittenByInFlightWrite(t *testing.T) {
	kv := newStallingStore()
	g := New(kv, WithDelay(time.Millisecond))

	older := catalog.DefaultSnapshot()
	g.DebouncedSave(older)
	<-kv.entered

	newer := catalog.DefaultSnapshot()
	newer.Galaxies[0].Name = "Renamed"
	g.DebouncedSave(newer)

	flushed := make(chan error, 1)
	go func() { flushed <- g.Flush() }()

	close(kv.release)
	require.NoError(t, <-flushed)

	loaded := g.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "Renamed", loaded.Galaxies[0].Name)
}
