// Package parser implements the statshell command interpreter's lexical
// layer: comment stripping, line-continuation joining, group-prefix
// rewriting, clause splitting, and option parsing.
package parser

import "strings"

// Normalize turns a raw, possibly multi-line input block into the sequence
// of logical commands it contains. A physical line ending in a backslash is
// joined to the next line with a single space; comments are stripped per
// StripComments; blank results are dropped.
func Normalize(block string) []string {
	var commands []string
	var parts []string

	flush := func() {
		if len(parts) == 0 {
			return
		}
		joined := StripComments(strings.Join(parts, " "))
		parts = nil
		if joined != "" {
			commands = append(commands, joined)
		}
	}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if strings.HasSuffix(line, "\\") {
			parts = append(parts, strings.TrimSpace(strings.TrimSuffix(line, "\\")))
			continue
		}
		parts = append(parts, line)
		flush()
	}
	flush()

	return commands
}

// StripComments removes comments from one logical command. A command whose
// first non-whitespace characters are "*" or "//" is a full-line comment and
// strips to empty. An inline "//" removes the rest of the line, but only
// when it appears outside double quotes; the scan toggles quote state
// character by character. Quote characters inside the discarded comment
// text need no balancing.
func StripComments(command string) string {
	trimmed := strings.TrimSpace(command)
	if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "//") {
		return ""
	}

	inQuotes := false
	var b strings.Builder
	for i := 0; i < len(command); i++ {
		c := command[i]
		if c == '"' {
			inQuotes = !inQuotes
			b.WriteByte(c)
			continue
		}
		if !inQuotes && c == '/' && i+1 < len(command) && command[i+1] == '/' {
			break
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}
