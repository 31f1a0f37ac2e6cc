package parser

import (
	"fmt"
	"strings"

	"statshell/pkg/stattypes"
)

// ParseOptions parses an option clause into an OptionSet. Whitespace
// separates options at depth 0 only; an identifier immediately followed by a
// parenthesized value becomes a valued option whose value is the raw text
// between the matching outer parentheses, nested parens and quotes included.
// An identifier on its own becomes a flag. Names are lower-cased; a later
// occurrence of a name overwrites an earlier one.
//
// Unbalanced parentheses or an unterminated quote are lexical errors, never
// a partially-populated set.
func ParseOptions(optionClause string) (stattypes.OptionSet, error) {
	options := make(stattypes.OptionSet)
	if strings.TrimSpace(optionClause) == "" {
		return options, nil
	}

	var current strings.Builder
	var currentOption string
	haveOption := false
	depth := 0
	inQuotes := false

	commit := func() {
		text := current.String()
		current.Reset()
		if text == "" {
			return
		}
		if haveOption {
			options[currentOption] = stattypes.TextValue(text)
			haveOption = false
		} else {
			options[strings.ToLower(text)] = stattypes.FlagValue()
		}
	}

	for i := 0; i < len(optionClause); i++ {
		c := optionClause[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
		case c == '(' && !inQuotes:
			if depth == 0 {
				currentOption = strings.ToLower(strings.TrimSpace(current.String()))
				haveOption = true
				current.Reset()
			} else {
				current.WriteByte(c)
			}
			depth++
		case c == ')' && !inQuotes:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' at position %d in options: %s", i, optionClause)
			}
			if depth == 0 {
				options[currentOption] = stattypes.TextValue(current.String())
				haveOption = false
				current.Reset()
			} else {
				current.WriteByte(c)
			}
		case (c == ' ' || c == '\t') && depth == 0 && !inQuotes:
			commit()
		default:
			current.WriteByte(c)
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in options: %s", optionClause)
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '(' in options: %s", optionClause)
	}
	commit()

	return options, nil
}
