package permission

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func bashCounts(pairs ...any) *Counts {
	c := NewCounts()
	for i := 0; i < len(pairs); i += 2 {
		c.Add(pairs[i].(string), pairs[i+1].(int))
	}
	return c
}

func TestAggregate_Scenario(t *testing.T) {
	uses := extract(t, gitStatusLine, gitStatusLine, npmLine)
	s := Aggregate(uses, Options{})

	assert.Equal(t, []string{"Bash(git status*)", "Bash(npm install*)"}, s.Rules())

	git, ok := s.Get("Bash(git status*)")
	require.True(t, ok)
	assert.Equal(t, 2, git.Count)
	assert.Equal(t, []string{"git status"}, git.Examples)

	npm, _ := s.Get("Bash(npm install*)")
	assert.Equal(t, 1, npm.Count)
	assert.Equal(t, []string{"npm install foo"}, npm.Examples)
}

func TestAggregate_ExamplesCappedAndTruncated(t *testing.T) {
	long := "git log " + strings.Repeat("é", 150)
	uses := ToolUses{
		Bash: bashCounts(
			"git log -1", 1,
			"git log --oneline", 2,
			long, 1,
			"git log --stat", 4,
		),
	}
	s := Aggregate(uses, Options{})

	sg, ok := s.Get("Bash(git log*)")
	require.True(t, ok)
	assert.Equal(t, 8, sg.Count)
	require.Len(t, sg.Examples, MaxExamples)
	assert.Equal(t, "git log -1", sg.Examples[0])
	assert.Equal(t, "git log --oneline", sg.Examples[1])
	assert.Equal(t, MaxExampleLength, len([]rune(sg.Examples[2])))
	assert.True(t, strings.HasPrefix(long, sg.Examples[2]))
}

func TestAggregate_SortStableDescending(t *testing.T) {
	uses := ToolUses{
		Bash:  bashCounts("alpha x", 1, "beta", 3, "gamma y", 1),
		Other: bashCounts("mcp__a__b", 3, "WebSearch", 1),
	}
	s := Aggregate(uses, Options{})

	assert.Equal(t, []string{
		"Bash(beta*)",
		"mcp__a__b",
		"Bash(alpha *)",
		"Bash(gamma *)",
		"WebSearch",
	}, s.Rules())

	tool, _ := s.Get("mcp__a__b")
	assert.Empty(t, tool.Examples)
	assert.NotNil(t, tool.Examples)
}

func TestAggregate_CountsIndependentOfOrder(t *testing.T) {
	forward := Aggregate(ToolUses{Bash: bashCounts("git add a", 1, "ls", 5, "git add b", 2, "make", 1)}, Options{})
	reverse := Aggregate(ToolUses{Bash: bashCounts("make", 1, "git add b", 2, "ls", 5, "git add a", 1)}, Options{})

	require.Equal(t, forward.Len(), reverse.Len())
	forward.Each(func(rule string, sg *Suggestion) {
		other, ok := reverse.Get(rule)
		require.True(t, ok, rule)
		assert.Equal(t, sg.Count, other.Count, rule)
	})
}

func TestAggregate_SkipsExcludedCommands(t *testing.T) {
	s := Aggregate(ToolUses{Bash: bashCounts("ls -la", 3, "FOO=1 make", 1, "cd /tmp", 2)}, Options{})
	assert.Equal(t, 0, s.Len())
}

func TestAggregate_SplitCompound(t *testing.T) {
	uses := ToolUses{Bash: bashCounts("cd web && npm run build && git add -A", 2)}

	whole := Aggregate(uses, Options{})
	assert.Equal(t, 0, whole.Len())

	split := Aggregate(uses, Options{SplitCompound: true})
	assert.Equal(t, []string{"Bash(npm run*)", "Bash(git add*)"}, split.Rules())
	npm, _ := split.Get("Bash(npm run*)")
	assert.Equal(t, 2, npm.Count)
	assert.Equal(t, []string{"npm run build"}, npm.Examples)
}

func TestSuggestions_Without(t *testing.T) {
	s := Aggregate(ToolUses{
		Bash:  bashCounts("git status", 2, "npm test", 1),
		Other: bashCounts("mcp__x__y", 1),
	}, Options{})

	filtered := s.Without([]string{"Bash(git *)", "mcp__x__y"})
	assert.Equal(t, []string{"Bash(npm test*)"}, filtered.Rules())
	assert.Equal(t, 3, s.Len())
}

func TestSuggestions_MarshalJSON(t *testing.T) {
	s := Aggregate(ToolUses{
		Bash:  bashCounts("make build", 1, "git diff a<b", 2),
		Other: bashCounts("WebFetch(https://x.example/?a=1&b=2)", 1),
	}, Options{})

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(s))
	assert.Equal(t,
		`{"Bash(git diff*)":{"count":2,"examples":["git diff a<b"]},"Bash(make *)":{"count":1,"examples":["make build"]},"WebFetch(https://x.example/?a=1&b=2)":{"count":1,"examples":[]}}`+"\n",
		buf.String())
}

func TestSuggestions_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(NewSuggestions())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestSuggestions_MarshalYAMLKeepsOrder(t *testing.T) {
	s := Aggregate(ToolUses{Bash: bashCounts("zeta a", 1, "alpha b", 2)}, Options{})

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	out := string(data)
	assert.Less(t, strings.Index(out, "Bash(alpha *)"), strings.Index(out, "Bash(zeta *)"))
	assert.Contains(t, out, "count: 2")
}
