package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_SingleCommands(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected []string
	}{
		{
			name:     "single command",
			block:    "summarize x",
			expected: []string{"summarize x"},
		},
		{
			name:     "multiple lines",
			block:    "gen y = x\nsummarize y",
			expected: []string{"gen y = x", "summarize y"},
		},
		{
			name:     "blank lines dropped",
			block:    "\n\nsummarize x\n\n",
			expected: []string{"summarize x"},
		},
		{
			name:     "continuation joins with single space",
			block:    "a \\\nb",
			expected: []string{"a b"},
		},
		{
			name:     "chained continuations",
			block:    "regress y \\\n  x1 x2 \\\n  x3, robust",
			expected: []string{"regress y x1 x2 x3, robust"},
		},
		{
			name:     "trailing continuation with no next line",
			block:    "summarize x \\",
			expected: []string{"summarize x"},
		},
		{
			name:     "empty block",
			block:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.block))
		})
	}
}

func TestNormalize_Comments(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected []string
	}{
		{
			name:     "inline comment stripped",
			block:    "summarize x // note",
			expected: []string{"summarize x"},
		},
		{
			name:     "full-line slash comment yields nothing",
			block:    "// just a note",
			expected: nil,
		},
		{
			name:     "full-line star comment yields nothing",
			block:    "* just a note",
			expected: nil,
		},
		{
			name:     "indented full-line comment yields nothing",
			block:    "   * indented note",
			expected: nil,
		},
		{
			name:     "comment line between commands",
			block:    "gen y = x\n* helper variable\nsummarize y",
			expected: []string{"gen y = x", "summarize y"},
		},
		{
			name:     "comment marker inside quotes survives",
			block:    `display "http://example.com"`,
			expected: []string{`display "http://example.com"`},
		},
		{
			name:     "comment after quoted string stripped",
			block:    `gen s = "a b" // trailing`,
			expected: []string{`gen s = "a b"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.block))
		})
	}
}

func TestStripComments_QuoteStateOnlyMattersBeforeMarker(t *testing.T) {
	// A marker inside quotes is literal text; quotes inside the discarded
	// comment need no balancing.
	assert.Equal(t, `gen s = "a // b"`, StripComments(`gen s = "a // b" // unmatched " here`))
}
