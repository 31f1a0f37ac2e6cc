package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var byPrefixRe = regexp.MustCompile(`^by[s]?\s+([\w\s]+):\s*(.+)$`)

// RewriteByPrefix rewrites a leading "by <vars>:" (or "bys <vars>:") prefix
// into an explicit by(...) option on the remaining command, inserting the
// option separator when the command had no option clause yet. When the
// remaining command already carries a by(...) option the prefix is dropped
// unchanged. The rewrite is purely textual and never inspects which command
// follows.
func RewriteByPrefix(command string) string {
	m := byPrefixRe.FindStringSubmatch(command)
	if m == nil {
		return command
	}
	byVars := strings.Join(strings.Fields(m[1]), " ")
	inner := strings.TrimSpace(m[2])

	_, optionClause := SplitClauses(inner)
	if opts, err := ParseOptions(optionClause); err == nil && opts.Has("by") {
		return inner
	}

	if optionClause != "" {
		return fmt.Sprintf("%s by(%s)", inner, byVars)
	}
	return fmt.Sprintf("%s, by(%s)", inner, byVars)
}
