package permission

import (
	"fmt"
	"strings"

	"github.com/grovetools/agentperms/internal/transcript"
)

// Class is the extraction outcome for a single tool invocation.
type Class int

const (
	// ClassIgnored tool uses never produce a suggestion.
	ClassIgnored Class = iota
	// ClassBash is a shell command, keyed by the exact command string.
	ClassBash
	// ClassOther is any other tool, keyed by its rule name.
	ClassOther
)

// fileTools are pre-approved by the host.
var fileTools = map[string]struct{}{
	"Read": {}, "Write": {}, "Edit": {}, "Glob": {}, "Grep": {},
}

// metaTools only manage the session itself.
var metaTools = map[string]struct{}{
	"Task": {}, "AskUserQuestion": {}, "TodoWrite": {}, "TaskCreate": {},
	"TaskUpdate": {}, "TaskList": {}, "TaskGet": {},
}

const mcpPrefix = "mcp__"

// Classify decides how a tool use is counted and under which key.
func Classify(use transcript.ToolUse) (Class, string) {
	name := use.Name
	if name == "Bash" {
		if cmd := use.StringInput("command"); cmd != "" {
			return ClassBash, cmd
		}
		return ClassIgnored, ""
	}
	if _, ok := fileTools[name]; ok {
		return ClassIgnored, ""
	}
	if strings.HasPrefix(name, mcpPrefix) {
		return ClassOther, name
	}
	if name == "WebFetch" {
		if url := use.StringInput("url"); url != "" {
			return ClassOther, fmt.Sprintf("WebFetch(%s)", url)
		}
		return ClassIgnored, ""
	}
	if _, ok := metaTools[name]; ok {
		return ClassIgnored, ""
	}
	return ClassOther, name
}

// ToolUses is the tally of a transcript's tool invocations.
type ToolUses struct {
	Bash  *Counts
	Other *Counts
}

// Extractor accumulates tool invocations from transcript records.
type Extractor struct {
	bash  *Counts
	other *Counts
}

// NewExtractor creates an empty extractor.
func NewExtractor() *Extractor {
	return &Extractor{bash: NewCounts(), other: NewCounts()}
}

// Visit consumes one record. It matches the transcript.Parser callback.
func (e *Extractor) Visit(rec transcript.Record) {
	if !rec.Eligible() {
		return
	}
	for _, use := range rec.ToolUses() {
		switch class, key := Classify(use); class {
		case ClassBash:
			e.bash.Add(key, 1)
		case ClassOther:
			e.other.Add(key, 1)
		}
	}
}

// Result returns the tallies collected so far.
func (e *Extractor) Result() ToolUses {
	return ToolUses{Bash: e.bash, Other: e.other}
}

// ExtractFile streams the transcript at path and tallies its tool uses.
func ExtractFile(path string) (ToolUses, error) {
	ex := NewExtractor()
	if err := transcript.NewParser().WalkFile(path, ex.Visit); err != nil {
		return ToolUses{}, err
	}
	return ex.Result(), nil
}
