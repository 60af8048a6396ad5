package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralize(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"git commit -m x", "Bash(git commit*)"},
		{"git", "Bash(git *)"},
		{"git status", "Bash(git status*)"},
		{"npm install foo", "Bash(npm install*)"},
		{"docker compose up -d", "Bash(docker compose*)"},
		{"gh pr view 12", "Bash(gh pr*)"},
		{"tmux", "Bash(tmux *)"},
		{"python3 -m pytest tests/", "Bash(python3 *)"},
		{"python", "Bash(python *)"},
		{"cargo test --all", "Bash(cargo *)"},
		{"source .venv/bin/activate", "Bash(source *)"},
		{"curl -s https://example.com", "Bash(curl *)"},
		{"/home/u/.claude/plugins/myplug/scripts/run.sh", "Bash(~/.claude/plugins/myplug/scripts/*)"},
		{"~/.claude/plugins/other/scripts/x.sh --flag", "Bash(~/.claude/plugins/other/scripts/*)"},
		{"/home/u/.claude/plugins/myplug/bin/run.sh -v", "Bash(/home/u/.claude/plugins/myplug/bin/run.sh)"},
		{"~/.claude/plugins/myplug/run.sh", "Bash(~/.claude/plugins/myplug/run.sh)"},
		{"./scripts/build.sh release", "Bash(./scripts/build.sh)"},
		{"/usr/local/bin/tool", "Bash(/usr/local/bin/tool)"},
		{"~/bin/deploy", "Bash(~/bin/deploy)"},
		{"/opt/A=B/run", "Bash(/opt/A=B/run)"},
		{"unknowncli arg1 arg2", "Bash(unknowncli *)"},
		{"unknowncli", "Bash(unknowncli*)"},
		{"  go   test ./...  ", "Bash(go *)"},
		{"git\tlog\n--oneline", "Bash(git log*)"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got, ok := Generalize(tt.command)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGeneralize_NoSuggestion(t *testing.T) {
	for base := range noSuggestionCommands {
		for _, args := range []string{"", " -la", " a b c"} {
			_, ok := Generalize(base + args)
			assert.False(t, ok, "%q should not produce a rule", base+args)
		}
	}
}

func TestGeneralize_NoSuggestionWinsOverTable(t *testing.T) {
	for _, cmd := range []string{"grep -r foo .", "find . -name x"} {
		_, ok := Generalize(cmd)
		assert.False(t, ok, cmd)
	}
}

func TestGeneralize_None(t *testing.T) {
	for _, cmd := range []string{"", "   ", "FOO=1 somecmd", "PATH=/x:$PATH make"} {
		_, ok := Generalize(cmd)
		assert.False(t, ok, "%q", cmd)
	}
}
