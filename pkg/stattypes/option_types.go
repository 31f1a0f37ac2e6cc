package stattypes

import "strings"

// OptionValue is either a bare flag (present with no value) or the literal
// text between an option's parentheses. A valued option never reports as a
// flag, even when its value text is empty.
type OptionValue struct {
	IsFlag bool
	Text   string
}

// FlagValue returns the OptionValue for a bare flag option.
func FlagValue() OptionValue {
	return OptionValue{IsFlag: true}
}

// TextValue returns the OptionValue for a valued option.
func TextValue(text string) OptionValue {
	return OptionValue{Text: text}
}

// OptionSet maps lower-cased option names to their values. Insertion order is
// not significant; a later occurrence of a name overwrites an earlier one.
type OptionSet map[string]OptionValue

// Has reports whether the option is present, as a flag or with a value.
func (o OptionSet) Has(name string) bool {
	_, ok := o[strings.ToLower(name)]
	return ok
}

// Flag reports whether the option is present as a bare flag.
func (o OptionSet) Flag(name string) bool {
	v, ok := o[strings.ToLower(name)]
	return ok && v.IsFlag
}

// Value returns the option's literal value text and whether the option was
// present with a value. Flags report ("", false).
func (o OptionSet) Value(name string) (string, bool) {
	v, ok := o[strings.ToLower(name)]
	if !ok || v.IsFlag {
		return "", false
	}
	return v.Text, true
}

// ValueOr returns the option's value text, or def when absent or a flag.
func (o OptionSet) ValueOr(name, def string) string {
	if v, ok := o.Value(name); ok {
		return v
	}
	return def
}

// Unquoted returns the option's value with one pair of surrounding double
// quotes removed, which is how title-style options carry literal text.
func (o OptionSet) Unquoted(name string) (string, bool) {
	v, ok := o.Value(name)
	if !ok {
		return "", false
	}
	return strings.Trim(v, `"`), true
}
