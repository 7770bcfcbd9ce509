package rendering

import (
	"strings"
	"testing"

	"github.com/achint227/Resume-Generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLaTeX_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeLaTeX(""))
}

func TestEscapeLaTeX_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	assert.Equal(t, text, EscapeLaTeX(text))
}

func TestEscapeLaTeX_ReservedCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A & B", `A \& B`},
		{"100%", `100\%`},
		{"cost $100", `cost \$100`},
		{"issue #42", `issue \#42`},
		{"snake_case", `snake\_case`},
		{"text{with}braces", `text\{with\}braces`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeLaTeX_LeavesOtherCharactersAlone(t *testing.T) {
	text := `back\slash ^caret ~tilde <angle> "quote" café`
	assert.Equal(t, text, EscapeLaTeX(text))
}

func TestEscapeLaTeX_OnlyReservedCharactersChange(t *testing.T) {
	inputs := []string{
		"R&D at 50% of $budget for #1 team_lead {x}",
		"&&%%$$##__{{}}",
		"plain",
		`already \& escaped`,
		"",
		"a\xff_b",
		"café & crème_brûlée",
	}
	for _, in := range inputs {
		out := EscapeLaTeX(in)

		stripIn := in
		stripOut := out
		for _, c := range reservedChars {
			stripIn = strings.ReplaceAll(stripIn, string(c), "")
			stripOut = strings.ReplaceAll(stripOut, `\`+string(c), "")
		}
		assert.Equal(t, stripIn, stripOut, "input %q", in)
	}
}

func TestEscapeLaTeX_KeepsInvalidUTF8(t *testing.T) {
	assert.Equal(t, "a\xff\\_b", EscapeLaTeX("a\xff_b"))
}

func TestEscapeLaTeX_EveryOccurrenceEscaped(t *testing.T) {
	in := "a&b&c % $ $ # _ _ _ { } }"
	out := EscapeLaTeX(in)

	for _, c := range reservedChars {
		ch := string(c)
		n := strings.Count(in, ch)
		assert.Equal(t, n, strings.Count(out, `\`+ch), "escaped count for %s", ch)
		assert.Equal(t, n, strings.Count(out, ch), "no unescaped %s may remain", ch)
	}
}

func TestEscapeDocument_EscapesLeavesOnce(t *testing.T) {
	doc := &types.Resume{
		Name: "jane_doe",
		BasicInfo: types.BasicInfo{
			Name:    "Jane & Co",
			Email:   "jane_doe@example.com",
			Summary: "Cut costs by 30%",
		},
		Projects: []types.Project{{Title: "C#", Tools: []string{"F#"}, Description: []string{"a_b"}}},
		Keywords: types.Keywords{"C#"},
	}

	escaped := EscapeDocument(doc)

	assert.Equal(t, `Jane \& Co`, escaped.BasicInfo.Name)
	assert.Equal(t, `jane\_doe@example.com`, escaped.BasicInfo.Email)
	assert.Equal(t, `Cut costs by 30\%`, escaped.BasicInfo.Summary)
	assert.Equal(t, `C\#`, escaped.Projects[0].Title)
	assert.Equal(t, []string{`F\#`}, escaped.Projects[0].Tools)
	assert.Equal(t, []string{`a\_b`}, escaped.Projects[0].Description)
	assert.Equal(t, types.Keywords{`C\#`}, escaped.Keywords)
	assert.Equal(t, "jane_doe", escaped.Name, "name feeds filenames and stays raw")

	require.Equal(t, "Jane & Co", doc.BasicInfo.Name, "input must not be mutated")
}
