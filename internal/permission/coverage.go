package permission

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// splitRule splits "Tool(inner)" into its tool name and inner pattern.
// hasInner is false for bare tool names.
func splitRule(rule string) (tool, inner string, hasInner bool) {
	open := strings.IndexByte(rule, '(')
	if open <= 0 || !strings.HasSuffix(rule, ")") {
		return rule, "", false
	}
	return rule[:open], rule[open+1 : len(rule)-1], true
}

// Covered reports whether any allow rule already grants the suggested rule.
func Covered(rule string, allow []string) bool {
	tool, inner, hasInner := splitRule(rule)
	for _, a := range allow {
		a = strings.TrimSpace(a)
		if a == rule {
			return true
		}
		aTool, aInner, aHasInner := splitRule(a)
		if aTool != tool {
			continue
		}
		if !aHasInner {
			return true
		}
		if hasInner && matchInner(aInner, inner) {
			return true
		}
	}
	return false
}

// matchInner matches a suggested inner pattern against an allowed one. The
// suggestion's own trailing wildcard is compared literally.
func matchInner(allowed, suggested string) bool {
	// Legacy "npm run test:*" prefix syntax.
	if strings.HasSuffix(allowed, ":*") {
		allowed = strings.TrimSuffix(allowed, ":*") + "*"
	}

	if allowed == "*" || allowed == suggested {
		return true
	}

	if strings.Contains(allowed, "**") {
		matched, _ := doublestar.Match(allowed, suggested)
		return matched
	}

	if strings.HasSuffix(allowed, "*") && strings.Count(allowed, "*") == 1 {
		return strings.HasPrefix(suggested, strings.TrimSuffix(allowed, "*"))
	}

	if strings.Contains(allowed, "*") {
		matched, _ := doublestar.Match(allowed, suggested)
		return matched
	}
	return false
}
