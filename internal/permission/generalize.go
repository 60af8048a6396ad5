package permission

import (
	"fmt"
	"regexp"
	"strings"
)

// noSuggestionCommands are low-risk commands that never get a rule. This set
// is consulted before knownPrograms, so grep and find never reach the table.
var noSuggestionCommands = map[string]struct{}{
	"ls": {}, "pwd": {}, "cd": {}, "echo": {}, "cat": {}, "head": {}, "tail": {},
	"which": {}, "whoami": {}, "date": {}, "grep": {}, "find": {}, "rg": {},
	"ag": {}, "chmod": {}, "mkdir": {}, "touch": {}, "mv": {}, "cp": {}, "rm": {},
}

// programRule describes how a well-known program is generalized.
type programRule struct {
	// bySubcommand keeps the second token in the pattern.
	bySubcommand bool
}

var knownPrograms = map[string]programRule{
	"git":       {bySubcommand: true},
	"npm":       {bySubcommand: true},
	"pnpm":      {bySubcommand: true},
	"yarn":      {bySubcommand: true},
	"bun":       {bySubcommand: true},
	"docker":    {bySubcommand: true},
	"kitty":     {bySubcommand: true},
	"tmux":      {bySubcommand: true},
	"gh":        {bySubcommand: true},
	"python":    {},
	"python3":   {},
	"node":      {},
	"cargo":     {},
	"make":      {},
	"kubectl":   {},
	"terraform": {},
	"source":    {},
	"osascript": {},
	"grep":      {},
	"find":      {},
	"curl":      {},
	"wget":      {},
}

var pluginScriptRe = regexp.MustCompile(`/\.claude/plugins/([^/]+)/scripts/`)

// Generalize converts a concrete shell command into a Bash permission
// pattern. ok is false when the command needs no rule.
func Generalize(command string) (rule string, ok bool) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return "", false
	}
	base := parts[0]

	if _, skip := noSuggestionCommands[base]; skip {
		return "", false
	}

	// A leading VAR=value assignment is not the program being run.
	if strings.Contains(base, "=") && !strings.HasPrefix(base, "/") {
		return "", false
	}

	if strings.HasPrefix(base, "/") || strings.HasPrefix(base, "~") || strings.HasPrefix(base, ".") {
		if m := pluginScriptRe.FindStringSubmatch(base); m != nil {
			return fmt.Sprintf("Bash(~/.claude/plugins/%s/scripts/*)", m[1]), true
		}
		return fmt.Sprintf("Bash(%s)", base), true
	}

	if prog, known := knownPrograms[base]; known {
		if prog.bySubcommand && len(parts) > 1 {
			return fmt.Sprintf("Bash(%s %s*)", base, parts[1]), true
		}
		return fmt.Sprintf("Bash(%s *)", base), true
	}

	if len(parts) > 1 {
		return fmt.Sprintf("Bash(%s *)", base), true
	}
	return fmt.Sprintf("Bash(%s*)", base), true
}
