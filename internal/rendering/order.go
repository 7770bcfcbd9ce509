package rendering

// Section identifies one of the three orderable résumé sections.
type Section byte

const (
	SectionProjects   Section = 'p'
	SectionExperience Section = 'w'
	SectionEducation  Section = 'e'
)

// Title returns the heading used for the section.
func (s Section) Title() string {
	switch s {
	case SectionProjects:
		return "Projects"
	case SectionExperience:
		return "Experience"
	case SectionEducation:
		return "Education"
	default:
		return ""
	}
}

// SectionOrder is a validated permutation of "p", "w" and "e".
type SectionOrder string

// DefaultSectionOrder lists projects, then work experience, then education.
const DefaultSectionOrder SectionOrder = "pwe"

// ParseSectionOrder validates s. It must be exactly three characters forming
// a permutation of p (projects), w (work experience) and e (education).
func ParseSectionOrder(s string) (SectionOrder, error) {
	if len(s) != 3 {
		return "", &ValidationError{
			Field:   "order",
			Message: "must be exactly 3 characters",
			Value:   s,
		}
	}
	var seen [3]bool
	for i := 0; i < len(s); i++ {
		idx := -1
		switch Section(s[i]) {
		case SectionProjects:
			idx = 0
		case SectionExperience:
			idx = 1
		case SectionEducation:
			idx = 2
		}
		if idx < 0 || seen[idx] {
			return "", &ValidationError{
				Field:   "order",
				Message: "must contain each of 'p', 'w' and 'e' exactly once",
				Value:   s,
			}
		}
		seen[idx] = true
	}
	return SectionOrder(s), nil
}

// Sections returns the sections in render order.
func (o SectionOrder) Sections() []Section {
	out := make([]Section, len(o))
	for i := 0; i < len(o); i++ {
		out[i] = Section(o[i])
	}
	return out
}

// AllSectionOrders returns the six valid orders.
func AllSectionOrders() []SectionOrder {
	return []SectionOrder{"pwe", "pew", "wpe", "wep", "epw", "ewp"}
}
