package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmphasize_NoKeywords(t *testing.T) {
	assert.Equal(t, "Built APIs in Go", Emphasize("Built APIs in Go", nil))
	assert.Equal(t, "Built APIs in Go", Emphasize("Built APIs in Go", []string{}))
}

func TestEmphasize_CaseInsensitivePreservesCase(t *testing.T) {
	got := Emphasize("Wrote python and Python tooling", []string{"PYTHON"})
	assert.Equal(t, `Wrote \textbf{python} and \textbf{Python} tooling`, got)
}

func TestEmphasize_WholeWordOnly(t *testing.T) {
	got := Emphasize("Go, Google and golang", []string{"go"})
	assert.Equal(t, `\textbf{Go}, Google and golang`, got)
}

func TestEmphasize_EveryOccurrence(t *testing.T) {
	got := Emphasize("SQL then SQL then SQL", []string{"sql"})
	assert.Equal(t, `\textbf{SQL} then \textbf{SQL} then \textbf{SQL}`, got)
}

func TestEmphasize_KeywordsAppliedInOrder(t *testing.T) {
	got := Emphasize("Machine Learning at scale", []string{"Machine Learning", "Learning"})
	assert.Equal(t, `\textbf{Machine \textbf{Learning}} at scale`, got)
}

func TestEmphasize_DoesNotTouchCommandNames(t *testing.T) {
	got := Emphasize("Go services", []string{"Go", "textbf"})
	assert.Equal(t, `\textbf{Go} services`, got)
}

func TestEmphasize_EscapedKeyword(t *testing.T) {
	got := Emphasize(`Wrote C\# and Go`, []string{`C\#`})
	assert.Equal(t, `Wrote \textbf{C\#} and Go`, got)
}

func TestEmphasize_MultiWordKeyword(t *testing.T) {
	got := Emphasize("Shipped on google cloud platform", []string{"Google Cloud"})
	assert.Equal(t, `Shipped on \textbf{google cloud} platform`, got)
}

func TestEmphasize_RegexMetacharacters(t *testing.T) {
	got := Emphasize("Used node.js and nodexjs", []string{"node.js"})
	assert.Equal(t, `Used \textbf{node.js} and nodexjs`, got)
}
