package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDurable struct {
	FileLayer
	writes int
}

func (c *countingDurable) Write(name string, data []byte) error {
	c.writes++
	return c.FileLayer.Write(name, data)
}

type failingDurable struct {
	FileLayer
}

func (f *failingDurable) Write(name string, data []byte) error {
	return errors.New("disk full")
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	fl, err := NewFileLayer(dir)
	require.NoError(t, err)
	return NewStore(fl), dir
}

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	items, err := Load[[]string](store, "things")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMutatePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLayer(dir)
	require.NoError(t, err)
	store := NewStore(fl)

	err = Mutate(store, "things", func(items []string) ([]string, error) {
		return append(items, "a", "b"), nil
	})
	require.NoError(t, err)

	// A fresh store over the same directory sees the same state.
	reopened := NewStore(fl)
	items, err := Load[[]string](reopened, "things")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestConcurrentMutateNoLostUpdate(t *testing.T) {
	store, _ := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := Mutate(store, "things", func(items []string) ([]string, error) {
				return append(items, "x"), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := Load[[]string](store, "things")
	require.NoError(t, err)
	assert.Len(t, items, n)
}

func TestDifferentCollectionsDoNotBlock(t *testing.T) {
	store, _ := newTestStore(t)

	release := make(chan struct{})
	holding := make(chan struct{})
	go func() {
		Mutate(store, "slow", func(items []string) ([]string, error) {
			close(holding)
			<-release
			return items, nil
		})
	}()

	<-holding
	// While "slow" is held, a mutation on another collection completes.
	err := Mutate(store, "fast", func(items []string) ([]string, error) {
		return append(items, "y"), nil
	})
	require.NoError(t, err)
	close(release)
}

func TestMutateFnErrorDoesNotPersist(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, Save(store, "things", []string{"keep"}))

	sentinel := errors.New("boom")
	err := Mutate(store, "things", func(items []string) ([]string, error) {
		return append(items, "drop"), sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	items, err := Load[[]string](store, "things")
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, items)
}

func TestMutateNoChangeSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	cd := &countingDurable{FileLayer: FileLayer{Dir: dir}}
	store := NewStore(cd)

	require.NoError(t, Save(store, "things", []string{"a"}))
	require.Equal(t, 1, cd.writes)

	err := Mutate(store, "things", func(items []string) ([]string, error) {
		return nil, ErrNoChange
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cd.writes)
}

func TestWriteFailurePropagates(t *testing.T) {
	store := NewStore(&failingDurable{FileLayer: FileLayer{Dir: t.TempDir()}})

	err := Mutate(store, "things", func(items []string) ([]string, error) {
		return append(items, "a"), nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileLayerWritesWholeDocument(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLayer(dir)
	require.NoError(t, err)

	require.NoError(t, fl.Write("things", []byte(`["a"]`)))

	// No temp file is left behind after a successful write.
	_, statErr := os.Stat(filepath.Join(dir, "things.json.tmp"))
	assert.True(t, os.IsNotExist(statErr))

	data, ok, err := fl.Read("things")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["a"]`, string(data))
}
