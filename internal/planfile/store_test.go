package planfile

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStoreLoadParsesDocument(t *testing.T) {
	t.Parallel()

	path := writePlan(t, `{"storage": {"bucket": {"encryption": {"enabled": true}}}}`)
	store := NewStore(path)

	snap, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, path, snap.Source())

	v, err := snap.Lookup("storage.bucket.encryption.enabled")
	require.NoError(t, err)
	require.True(t, v.BoolVal())
}

func TestStoreLoadCachesSnapshot(t *testing.T) {
	t.Parallel()

	path := writePlan(t, `{"v": 1}`)
	store := NewStore(path)

	first, err := store.Load()
	require.NoError(t, err)

	// Mutating the source after the first load must not be observable.
	require.NoError(t, os.WriteFile(path, []byte(`{"v": 2}`), 0o644))

	second, err := store.Load()
	require.NoError(t, err)
	require.Same(t, first, second)

	v, err := second.Lookup("v")
	require.NoError(t, err)
	require.Equal(t, float64(1), v.Num())
}

func TestStoreLoadConcurrentCallersShareSnapshot(t *testing.T) {
	t.Parallel()

	path := writePlan(t, `{"resources": []}`)
	store := NewStore(path)

	const callers = 16
	snapshots := make([]*Snapshot, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := store.Load()
			require.NoError(t, err)
			snapshots[i] = snap
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		require.Same(t, snapshots[0], snapshots[i])
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load()
	var loadErr *plancheckerrors.PlanLoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestStoreLoadInvalidJSON(t *testing.T) {
	t.Parallel()

	path := writePlan(t, `{"storage": `)
	store := NewStore(path)

	_, err := store.Load()
	var loadErr *plancheckerrors.PlanLoadError
	require.True(t, errors.As(err, &loadErr))
	require.Contains(t, loadErr.Path, "plan.json")

	// The load error is cached the same way a snapshot would be.
	_, again := store.Load()
	require.Equal(t, err, again)
}
