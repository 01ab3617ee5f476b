package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticLoader(t *testing.T) {
	l := Static{"animal": "dog\ncat\n"}
	src, err := l.Load("animal")
	require.NoError(t, err)
	assert.Equal(t, "dog\ncat\n", src)

	_, err = l.Load("missing")
	assert.Error(t, err)
}

func TestFSLoaderFindsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "animal.perchance"), []byte("dog\ncat\n"), 0644))

	l := &FSLoader{Dirs: []string{dir}}
	src, err := l.Load("animal")
	require.NoError(t, err)
	assert.Equal(t, "dog\ncat\n", src)
}

func TestFSLoaderSearchesInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "animal.perchance"), []byte("fox\n"), 0644))

	l := &FSLoader{Dirs: []string{dirA, dirB}}
	src, err := l.Load("animal")
	require.NoError(t, err)
	assert.Equal(t, "fox\n", src)
}

func TestFSLoaderMissing(t *testing.T) {
	l := &FSLoader{Dirs: []string{t.TempDir()}}
	_, err := l.Load("nope")
	assert.Error(t, err)
}

func TestNewFSLoaderSplitsQuotedPaths(t *testing.T) {
	l, err := NewFSLoader(`"/a dir" /b`)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a dir", "/b"}, l.Dirs)
}
