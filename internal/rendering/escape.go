package rendering

import (
	"strings"

	"github.com/achint227/Resume-Generator/internal/types"
)

// reservedChars are prefixed with a backslash by EscapeLaTeX.
const reservedChars = `&%$#_{}`

// EscapeLaTeX prefixes each reserved LaTeX character (& % $ # _ { }) with a
// backslash. All other bytes pass through unchanged, including invalid
// UTF-8.
func EscapeLaTeX(text string) string {
	if !strings.ContainsAny(text, reservedChars) {
		return text
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '&', '%', '$', '#', '_', '{', '}':
			result.WriteByte('\\')
		}
		result.WriteByte(c)
	}

	return result.String()
}

// EscapeDocument returns an escaped deep copy of doc. The résumé name is left
// untouched because it only feeds output filenames.
func EscapeDocument(doc *types.Resume) *types.Resume {
	return doc.MapStrings(EscapeLaTeX)
}
