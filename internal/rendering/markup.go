package rendering

import (
	"regexp"
	"strings"
)

// BuildBulletList formats items as an itemize environment with keyword
// emphasis applied to each item. Empty input yields an empty string so that
// callers never emit an empty list environment.
func BuildBulletList(items []string, keywords []string) string {
	return bulletList(items, `\begin{itemize}`, `\end{itemize}`, `\item`, compileKeywords(keywords))
}

func bulletList(items []string, begin, end, itemCmd string, patterns []*regexp.Regexp) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(begin)
	b.WriteByte('\n')
	for _, item := range items {
		b.WriteString(itemCmd)
		b.WriteByte('{')
		b.WriteString(emphasize(item, patterns))
		b.WriteString("}\n")
	}
	b.WriteString(end)
	return b.String()
}

// BraceSplit splits s on sep and wraps each trimmed part in braces, e.g.
// "Austin, TX" becomes "{Austin}{TX}".
func BraceSplit(s, sep string) string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return "{" + strings.Join(parts, "}{") + "}"
}

// BraceName splits a full name into exactly two braced tokens: the first
// word and the rest. "Jane Mary Doe" becomes "{Jane}{Mary Doe}".
func BraceName(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "{}{}"
	case 1:
		return "{" + fields[0] + "}{}"
	default:
		return "{" + fields[0] + "}{" + strings.Join(fields[1:], " ") + "}"
	}
}

// lastPathSegment returns the final "/" separated element of a URL,
// ignoring a trailing slash.
func lastPathSegment(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
