package permission

import (
	"bytes"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// SplitCompound breaks a shell line into its simple commands, in source
// order, each printed back as text. Pipelines, && / || chains, ; lists and
// command substitutions all contribute their calls. Input the bash parser
// rejects is returned whole.
func SplitCompound(command string) []string {
	parser := syntax.NewParser(
		syntax.Variant(syntax.LangBash),
		syntax.KeepComments(false),
	)
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return []string{command}
	}

	printer := syntax.NewPrinter(syntax.SingleLine(true))
	var parts []string
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		var buf bytes.Buffer
		if err := printer.Print(&buf, call); err != nil {
			return true
		}
		if s := strings.TrimSpace(buf.String()); s != "" {
			parts = append(parts, s)
		}
		return true
	})

	if len(parts) == 0 {
		return []string{command}
	}
	return parts
}
