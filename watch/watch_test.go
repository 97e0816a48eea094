package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasma.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := Watch(path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after write")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasma.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := Watch(path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.glsl"), []byte("x"), 0o644))

	select {
	case <-fired:
		t.Fatal("notified for an unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchSurvivesAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasma.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := Watch(path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	// Editor-style save: write a temp file, rename it over the target.
	tmp := filepath.Join(dir, ".plasma.glsl.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after atomic rename")
	}
}
