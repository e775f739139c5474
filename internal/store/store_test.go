package store

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Store Factory for Testing All Implementations
// =============================================================================

// storeFactory creates a store for testing.
// MemStore, FSStore and SQLiteStore run the same suite.
type storeFactory func() (Storer, error)

func memStoreFactory() (Storer, error) {
	return NewMemStore(), nil
}

func fsStoreFactory() (Storer, error) {
	fs, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	return NewFSStore(fs, "galaxymap")
}

func sqliteStoreFactory() (Storer, error) {
	return NewSQLiteStore()
}

// runTestsForAllStores runs a test function against every store implementation.
func runTestsForAllStores(t *testing.T, testName string, testFn func(t *testing.T, store Storer)) {
	factories := map[string]storeFactory{
		"MemStore":    memStoreFactory,
		"FSStore":     fsStoreFactory,
		"SQLiteStore": sqliteStoreFactory,
	}

	for name, factory := range factories {
		t.Run(name+"/"+testName, func(t *testing.T) {
			store, err := factory()
			require.NoError(t, err, "Failed to create store")
			defer store.Close()
			testFn(t, store)
		})
	}
}

func TestPutAndGet(t *testing.T) {
	runTestsForAllStores(t, "PutAndGet", func(t *testing.T, store Storer) {
		err := store.Put("galaxy-mindmap-data", []byte(`{"viewMode":"galaxies"}`))
		require.NoError(t, err)

		got, err := store.Get("galaxy-mindmap-data")
		require.NoError(t, err)
		assert.Equal(t, `{"viewMode":"galaxies"}`, string(got))

		// Overwrite
		require.NoError(t, store.Put("galaxy-mindmap-data", []byte(`{}`)))
		got, err = store.Get("galaxy-mindmap-data")
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(got))
	})
}

func TestGetNotFound(t *testing.T) {
	runTestsForAllStores(t, "GetNotFound", func(t *testing.T, store Storer) {
		got, err := store.Get("nonexistent")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestDelete(t *testing.T) {
	runTestsForAllStores(t, "Delete", func(t *testing.T, store Storer) {
		require.NoError(t, store.Put("doomed", []byte("x")))
		require.NoError(t, store.Delete("doomed"))

		_, err := store.Get("doomed")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting again is harmless
		assert.NoError(t, store.Delete("doomed"))
	})
}

func TestKeys(t *testing.T) {
	runTestsForAllStores(t, "Keys", func(t *testing.T, store Storer) {
		keys, err := store.Keys()
		require.NoError(t, err)
		assert.Empty(t, keys)

		require.NoError(t, store.Put("b", []byte("2")))
		require.NoError(t, store.Put("a", []byte("1")))

		keys, err = store.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keys)
	})
}

func TestValueIsCopied(t *testing.T) {
	runTestsForAllStores(t, "ValueIsCopied", func(t *testing.T, store Storer) {
		buf := []byte("stable")
		require.NoError(t, store.Put("k", buf))
		buf[0] = 'X'

		got, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "stable", string(got))
	})
}

func TestMemStoreFailPut(t *testing.T) {
	s := NewMemStore()
	s.FailPut = assert.AnError

	assert.ErrorIs(t, s.Put("k", []byte("v")), assert.AnError)
	_, err := s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}
