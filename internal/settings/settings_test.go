package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths("/home/u", "/work/app")
	assert.Equal(t, []string{
		"/home/u/.claude/settings.json",
		"/work/app/.claude/settings.json",
		"/work/app/.claude/settings.local.json",
	}, paths)

	assert.Len(t, DefaultPaths("", "/work/app"), 2)
}

func TestLoad_MergesAndDedupes(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.json")
	project := filepath.Join(dir, "project.json")
	require.NoError(t, os.WriteFile(user, []byte(`{"permissions":{"allow":["Bash(git *)","WebSearch"],"deny":["Bash(rm -rf*)"]}}`), 0o644))
	require.NoError(t, os.WriteFile(project, []byte(`{"permissions":{"allow":["Bash(git *)","Bash(make *)"]},"env":{"X":"1"}}`), 0o644))

	rules, err := Load(user, filepath.Join(dir, "missing.json"), project)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bash(git *)", "WebSearch", "Bash(make *)"}, rules.Allow)
	assert.Equal(t, []string{"Bash(rm -rf*)"}, rules.Deny)
	assert.Equal(t, []string{user, project}, rules.Sources)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"permissions":`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NoFiles(t *testing.T) {
	rules, err := Load()
	require.NoError(t, err)
	assert.Empty(t, rules.Allow)
}
