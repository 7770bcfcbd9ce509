package rendering

import (
	"regexp"
	"strings"
)

const emphasisOpen = `\textbf{`

// Emphasize wraps whole-word, case-insensitive occurrences of each keyword in
// \textbf{}, keeping the matched text's original case. Keywords are applied
// in list order, each pass scanning the output of the previous one, so a
// later keyword may wrap text already inside an earlier wrap.
func Emphasize(text string, keywords []string) string {
	return emphasize(text, compileKeywords(keywords))
}

func compileKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		expr := regexp.QuoteMeta(kw)
		// \b only makes sense next to a word character; "C\#" must still
		// match before a space.
		if isWordByte(kw[0]) {
			expr = `\b` + expr
		}
		if isWordByte(kw[len(kw)-1]) {
			expr += `\b`
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return patterns
}

func emphasize(text string, patterns []*regexp.Regexp) string {
	if text == "" {
		return text
	}
	for _, re := range patterns {
		text = wrapMatches(text, re)
	}
	return text
}

func wrapMatches(text string, re *regexp.Regexp) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(locs)*(len(emphasisOpen)+1))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		// A match right after a backslash is a command name, e.g. the
		// "textbf" of an earlier wrap.
		if start > 0 && text[start-1] == '\\' && isWordByte(text[start]) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(emphasisOpen)
		b.WriteString(text[start:end])
		b.WriteByte('}')
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
