package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DefaultMaxLineSize bounds a single transcript line. Tool results embedding
// whole files regularly exceed the bufio default.
const DefaultMaxLineSize = 64 * 1024 * 1024 // 64MB

// RecordKind tags which transcript shape a line was recognised as.
type RecordKind int

const (
	// KindOther is any record that cannot carry assistant tool invocations.
	KindOther RecordKind = iota
	// KindAssistant is a record whose top-level type is "assistant".
	KindAssistant
	// KindMessage is a record of any other type wrapping a nested message object.
	KindMessage
)

// Record represents a single parsed line of a Claude JSONL transcript.
type Record struct {
	Kind RecordKind
	Type string
	// Content holds the items of the message content array. It is nil when
	// the content is absent or is not an array (plain string user prompts).
	Content []json.RawMessage
}

// Eligible reports whether the record may contain tool invocations.
func (r Record) Eligible() bool {
	return r.Kind != KindOther
}

// ToolUse is a tool invocation found in an assistant content array.
type ToolUse struct {
	Name  string
	Input map[string]any
}

// StringInput returns the named input as a string, or "" when it is missing
// or not a string.
func (t ToolUse) StringInput(key string) string {
	s, _ := t.Input[key].(string)
	return s
}

// ToolUses returns the tool_use items of the record in content order.
func (r Record) ToolUses() []ToolUse {
	var uses []ToolUse
	for _, raw := range r.Content {
		var item map[string]json.RawMessage
		if err := json.Unmarshal(raw, &item); err != nil || item == nil {
			continue
		}
		if stringField(item, "type") != "tool_use" {
			continue
		}

		input := map[string]any{}
		if rawInput, ok := item["input"]; ok {
			var decoded map[string]any
			if err := json.Unmarshal(rawInput, &decoded); err == nil && decoded != nil {
				input = decoded
			}
		}
		uses = append(uses, ToolUse{
			Name:  stringField(item, "name"),
			Input: input,
		})
	}
	return uses
}

// Parser handles JSONL transcript parsing.
type Parser struct {
	// MaxLineSize is the longest line decoded. Longer lines are skipped.
	MaxLineSize int
}

// NewParser creates a new transcript parser.
func NewParser() *Parser {
	return &Parser{MaxLineSize: DefaultMaxLineSize}
}

// WalkFile opens path and streams its records to visit. The file is closed
// before WalkFile returns.
func (p *Parser) WalkFile(path string, visit func(Record)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Walk(file, visit)
}

// Walk reads r line by line and calls visit once per line that parses as a
// JSON object. Lines that fail to parse or exceed MaxLineSize are dropped
// silently; interrupted writes routinely leave a truncated last line.
func (p *Parser) Walk(r io.Reader, visit func(Record)) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	limit := p.MaxLineSize
	if limit <= 0 {
		limit = DefaultMaxLineSize
	}

	var line []byte
	oversized := false
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		if !oversized {
			if len(line)+len(chunk) > limit {
				oversized = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if isPrefix {
			continue
		}

		if !oversized && len(line) > 0 {
			if rec, ok := ParseRecord(line); ok {
				visit(rec)
			}
		}
		line = line[:0]
		oversized = false
	}
	return nil
}

// ParseRecord decodes one transcript line. ok is false when the line is not a
// JSON object.
func ParseRecord(line []byte) (Record, bool) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(line, &entry); err != nil || entry == nil {
		return Record{}, false
	}

	rec := Record{Type: stringField(entry, "type")}
	rawMessage, hasMessage := entry["message"]

	switch {
	case rec.Type == "assistant":
		rec.Kind = KindAssistant
	case hasMessage:
		rec.Kind = KindMessage
	default:
		return rec, true
	}

	// Older assistant records inline content without a message wrapper.
	message := entry
	if hasMessage {
		message = nil
		if err := json.Unmarshal(rawMessage, &message); err != nil || message == nil {
			rec.Kind = KindOther
			return rec, true
		}
	}

	if rawContent, ok := message["content"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(rawContent, &items); err == nil {
			rec.Content = items
		}
	}
	return rec, true
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
