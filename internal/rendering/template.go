package rendering

import (
	"fmt"
	"strings"
)

// TemplateID is the canonical identifier of a renderer variant.
type TemplateID string

const (
	TemplateClassic  TemplateID = "classic"
	TemplateModernCV TemplateID = "moderncv"
	TemplateResume   TemplateID = "resume"
	TemplateRussel   TemplateID = "russel"
)

// TemplateInfo describes a template for listings.
type TemplateInfo struct {
	ID          TemplateID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

var templates = []TemplateInfo{
	{ID: TemplateClassic, Name: "Classic", Description: "Classic ATS-friendly resume template"},
	{ID: TemplateModernCV, Name: "Modern CV", Description: "Modern CV template with clean design"},
	{ID: TemplateResume, Name: "Resume", Description: "Professional resume template"},
	{ID: TemplateRussel, Name: "Russell", Description: "Russell style resume template"},
}

var templateAliases = map[string]TemplateID{
	"modernstyle":         TemplateModernCV,
	"compactprofessional": TemplateResume,
	"academicmodern":      TemplateRussel,
}

// Templates lists every registered template.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(templates))
	copy(out, templates)
	return out
}

// TemplateIDs lists the canonical identifiers.
func TemplateIDs() []TemplateID {
	ids := make([]TemplateID, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	return ids
}

// ParseTemplateID resolves a canonical identifier or one of its aliases.
func ParseTemplateID(s string) (TemplateID, error) {
	for _, t := range templates {
		if string(t.ID) == s {
			return t.ID, nil
		}
	}
	if id, ok := templateAliases[strings.ToLower(s)]; ok {
		return id, nil
	}
	return "", &ValidationError{
		Field:   "template",
		Message: fmt.Sprintf("unknown template, expected one of %s", strings.Join(idStrings(), ", ")),
		Value:   s,
	}
}

// WorkDir is the subdirectory of the assets root that holds this variant's
// class files and fonts. Variants never share a working directory.
func (id TemplateID) WorkDir() string {
	return string(id)
}

func idStrings() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = string(t.ID)
	}
	return out
}
