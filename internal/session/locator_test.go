package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func newTestLocator(t *testing.T) (*Locator, string) {
	t.Helper()
	root := t.TempDir()
	loc, err := NewLocator(root)
	require.NoError(t, err)
	return loc, root
}

func TestProjectID(t *testing.T) {
	assert.Equal(t, "home-u-code-app", ProjectID("/home/u/code/app"))
	assert.Equal(t, "relative-dir", ProjectID("relative/dir"))
	assert.Equal(t, "-tmp", ProjectID("//tmp"))
}

func TestLocate_Explicit(t *testing.T) {
	loc, _ := newTestLocator(t)
	path, err := loc.Locate("does/not/exist.jsonl", "/work/app")
	require.NoError(t, err)
	assert.Equal(t, "does/not/exist.jsonl", path)
}

func TestLocate_NewestInExactDirectory(t *testing.T) {
	loc, root := newTestLocator(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := filepath.Join(root, "-work-app")

	writeLog(t, filepath.Join(dir, "old.jsonl"), base)
	writeLog(t, filepath.Join(dir, "new.jsonl"), base.Add(time.Hour))
	writeLog(t, filepath.Join(dir, "notes.txt"), base.Add(2*time.Hour))
	// A decoy whose name also contains the identifier.
	writeLog(t, filepath.Join(root, "-work-app-extra", "newer.jsonl"), base.Add(3*time.Hour))

	path, err := loc.Locate("", "/work/app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.jsonl"), path)
}

func TestLocate_TieBrokenByPath(t *testing.T) {
	loc, root := newTestLocator(t)
	mtime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := filepath.Join(root, "-work-app")
	writeLog(t, filepath.Join(dir, "b.jsonl"), mtime)
	writeLog(t, filepath.Join(dir, "a.jsonl"), mtime)

	path, err := loc.Locate("", "/work/app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.jsonl"), path)
}

func TestProjectDir_SubstringFallbackIsLexicographic(t *testing.T) {
	loc, root := newTestLocator(t)
	now := time.Now()
	writeLog(t, filepath.Join(root, "zz-work-app", "s.jsonl"), now)
	writeLog(t, filepath.Join(root, "aa-work-app", "s.jsonl"), now)
	writeLog(t, filepath.Join(root, "unrelated", "s.jsonl"), now)

	dir, err := loc.ProjectDir("/work/app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "aa-work-app"), dir)
}

func TestLocate_NotFound(t *testing.T) {
	loc, root := newTestLocator(t)

	_, err := loc.Locate("", "/work/app")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "-work-app"), 0o755))
	_, err = loc.Locate("", "/work/app")
	assert.ErrorIs(t, err, ErrNotFound)

	missing, err := NewLocator(filepath.Join(root, "absent"))
	require.NoError(t, err)
	_, err = missing.Locate("", "/work/app")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	loc, root := newTestLocator(t)
	log := filepath.Join(root, "-other-proj", "abc-123.jsonl")
	writeLog(t, log, time.Now())

	path, err := loc.Resolve(log, "/work/app")
	require.NoError(t, err)
	assert.Equal(t, log, path)

	_, err = loc.Resolve(filepath.Join(root, "missing.jsonl"), "/work/app")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = loc.Resolve("", "/work/app")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_ExplicitPathIsNotASessionID(t *testing.T) {
	loc, root := newTestLocator(t)
	writeLog(t, filepath.Join(root, "-some-other-project", "notes.jsonl"), time.Now())
	writeLog(t, filepath.Join(root, "-other-proj", "abc-123.jsonl"), time.Now())

	for _, arg := range []string{"notes", "abc-123"} {
		_, err := loc.Resolve(arg, "/work/app")
		assert.ErrorIs(t, err, ErrNotFound, arg)
	}
}

func TestResolve_PathThroughRegularFile(t *testing.T) {
	loc, root := newTestLocator(t)
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := loc.Resolve(filepath.Join(file, "session.jsonl"), "/work/app")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveSessionID(t *testing.T) {
	loc, root := newTestLocator(t)
	log := filepath.Join(root, "-other-proj", "abc-123.jsonl")
	writeLog(t, log, time.Now())

	path, err := loc.ResolveSessionID("abc-123")
	require.NoError(t, err)
	assert.Equal(t, log, path)

	_, err = loc.ResolveSessionID("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = loc.ResolveSessionID("a/b")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	loc, root := newTestLocator(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dir := filepath.Join(root, "-work-app")
	writeLog(t, filepath.Join(dir, "first.jsonl"), base)
	writeLog(t, filepath.Join(dir, "second.jsonl"), base.Add(time.Minute))

	logs, err := loc.List("/work/app")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].SessionID)
	assert.Equal(t, int64(3), logs[0].Size)
}
