package parser

// SplitClauses cuts a logical command into its main clause and option clause
// at the first comma that sits outside quotes and outside parentheses. Both
// clauses are trimmed of surrounding whitespace. Splitting a string free of
// top-level commas returns it unchanged as the main clause.
func SplitClauses(command string) (mainClause, optionClause string) {
	depth := 0
	inQuotes := false
	for i := 0; i < len(command); i++ {
		switch c := command[i]; {
		case c == '"':
			inQuotes = !inQuotes
		case c == '(' && !inQuotes:
			depth++
		case c == ')' && !inQuotes:
			depth--
		case c == ',' && depth == 0 && !inQuotes:
			return trim(command[:i]), trim(command[i+1:])
		}
	}
	return trim(command), ""
}

func trim(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
