package permission

import (
	"bytes"
	"encoding/json"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

const (
	// MaxExamples caps the example invocations kept per rule.
	MaxExamples = 3
	// MaxExampleLength truncates each example, counted in characters.
	MaxExampleLength = 100
)

// Suggestion is the aggregate behind one permission rule.
type Suggestion struct {
	Count    int      `json:"count" yaml:"count"`
	Examples []string `json:"examples" yaml:"examples"`
}

// Suggestions maps rules to their aggregates, preserving insertion order.
type Suggestions struct {
	m *orderedmap.OrderedMap[string, *Suggestion]
	// seen tracks which source commands already contributed an example.
	seen map[string]map[string]struct{}
}

// NewSuggestions creates an empty rule set.
func NewSuggestions() *Suggestions {
	return &Suggestions{
		m:    orderedmap.New[string, *Suggestion](),
		seen: make(map[string]map[string]struct{}),
	}
}

func (s *Suggestions) entry(rule string) *Suggestion {
	sg, ok := s.m.Get(rule)
	if !ok {
		sg = &Suggestion{Examples: []string{}}
		s.m.Set(rule, sg)
	}
	return sg
}

// AddCommand credits rule with count occurrences of the source command and
// records the command as an example the first time it is seen for the rule.
func (s *Suggestions) AddCommand(rule, source string, count int) {
	sg := s.entry(rule)
	sg.Count += count

	sources := s.seen[rule]
	if sources == nil {
		sources = make(map[string]struct{})
		s.seen[rule] = sources
	}
	if _, dup := sources[source]; dup {
		return
	}
	sources[source] = struct{}{}
	if len(sg.Examples) < MaxExamples {
		sg.Examples = append(sg.Examples, truncate(source, MaxExampleLength))
	}
}

// AddTool credits a non-shell tool rule. Tool rules carry no examples.
func (s *Suggestions) AddTool(rule string, count int) {
	s.entry(rule).Count += count
}

// Get returns the aggregate for rule.
func (s *Suggestions) Get(rule string) (*Suggestion, bool) {
	return s.m.Get(rule)
}

// Len returns the number of distinct rules.
func (s *Suggestions) Len() int {
	return s.m.Len()
}

// Rules returns the rules in their current order.
func (s *Suggestions) Rules() []string {
	rules := make([]string, 0, s.m.Len())
	s.Each(func(rule string, _ *Suggestion) {
		rules = append(rules, rule)
	})
	return rules
}

// Each visits rules in order.
func (s *Suggestions) Each(fn func(rule string, sg *Suggestion)) {
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Sorted returns a copy ordered by descending count. Equal counts keep
// their insertion order.
func (s *Suggestions) Sorted() *Suggestions {
	type item struct {
		rule string
		sg   *Suggestion
	}
	items := make([]item, 0, s.m.Len())
	s.Each(func(rule string, sg *Suggestion) {
		items = append(items, item{rule, sg})
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].sg.Count > items[j].sg.Count
	})

	out := NewSuggestions()
	for _, it := range items {
		out.m.Set(it.rule, it.sg)
		out.seen[it.rule] = s.seen[it.rule]
	}
	return out
}

// Without returns a copy lacking every rule already covered by allow.
func (s *Suggestions) Without(allow []string) *Suggestions {
	out := NewSuggestions()
	s.Each(func(rule string, sg *Suggestion) {
		if Covered(rule, allow) {
			return
		}
		out.m.Set(rule, sg)
		out.seen[rule] = s.seen[rule]
	})
	return out
}

// MarshalJSON writes the rules as an object in their current order without
// HTML escaping.
func (s *Suggestions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := marshalNoEscape(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalYAML emits an ordered mapping node.
func (s *Suggestions) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			value,
		)
	}
	return node, nil
}

// Options tunes aggregation.
type Options struct {
	// SplitCompound generalizes each simple command of a compound line
	// separately instead of keying on the line's first word.
	SplitCompound bool
}

// Aggregate turns tool-use tallies into rules sorted by descending count.
func Aggregate(uses ToolUses, opts Options) *Suggestions {
	s := NewSuggestions()

	if uses.Bash != nil {
		uses.Bash.Each(func(cmd string, count int) {
			sources := []string{cmd}
			if opts.SplitCompound {
				sources = SplitCompound(cmd)
			}
			for _, src := range sources {
				if rule, ok := Generalize(src); ok {
					s.AddCommand(rule, src, count)
				}
			}
		})
	}

	if uses.Other != nil {
		uses.Other.Each(func(tool string, count int) {
			s.AddTool(tool, count)
		})
	}

	return s.Sorted()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
