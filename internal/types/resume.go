// Package types provides the résumé document model shared by the renderers, the
// generator and the storage backends.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Resume is the aggregate passed to every renderer.
type Resume struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name,omitempty"`
	BasicInfo   BasicInfo    `json:"basic_info"`
	Education   []Education  `json:"education"`
	Experiences []Experience `json:"experiences"`
	Projects    []Project    `json:"projects"`
	Keywords    Keywords     `json:"keywords"`
}

// BasicInfo holds the identity and contact block of a résumé.
type BasicInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    Phone  `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Homepage string `json:"homepage,omitempty"`
}

// Education is a single school entry.
type Education struct {
	University string   `json:"university"`
	Degree     string   `json:"degree"`
	Location   string   `json:"location"`
	Duration   string   `json:"duration"`
	Info       []string `json:"info"`
}

// Experience is a single employment entry with its nested projects.
type Experience struct {
	Company     string              `json:"company"`
	Title       string              `json:"title"`
	Location    string              `json:"location"`
	Duration    string              `json:"duration"`
	Projects    []ExperienceProject `json:"projects"`
	Skills      []string            `json:"skills"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags"`
}

// ExperienceProject is a unit of work described inside an Experience.
type ExperienceProject struct {
	Title   string   `json:"title"`
	Tools   []string `json:"tools"`
	Details []string `json:"details"`
}

// Project is a standalone project entry.
type Project struct {
	Title       string   `json:"title"`
	Description []string `json:"description"`
	Tools       []string `json:"tools"`
	Repo        string   `json:"repo,omitempty"`
}

// validate caches struct metadata, so one instance is shared.
var validate = validator.New()

// Validate checks the fields every stored résumé must carry.
func (r *Resume) Validate() error {
	return validate.Struct(r)
}

// Normalize replaces absent lists with empty ones so renderers never see nil
// where a list is expected. It mutates r and returns it for chaining.
func (r *Resume) Normalize() *Resume {
	r.Education = nonNilEducation(r.Education)
	r.Experiences = nonNilExperiences(r.Experiences)
	r.Projects = nonNilProjects(r.Projects)
	r.Keywords = NormalizeKeywords(r.Keywords)

	for i := range r.Education {
		r.Education[i].Info = nonNil(r.Education[i].Info)
	}
	for i := range r.Experiences {
		exp := &r.Experiences[i]
		exp.Skills = nonNil(exp.Skills)
		exp.Tags = nonNil(exp.Tags)
		if exp.Projects == nil {
			exp.Projects = []ExperienceProject{}
		}
		for j := range exp.Projects {
			exp.Projects[j].Tools = nonNil(exp.Projects[j].Tools)
			exp.Projects[j].Details = nonNil(exp.Projects[j].Details)
		}
	}
	for i := range r.Projects {
		r.Projects[i].Description = nonNil(r.Projects[i].Description)
		r.Projects[i].Tools = nonNil(r.Projects[i].Tools)
	}
	return r
}

// Clone returns a deep copy of r.
func (r *Resume) Clone() *Resume {
	return r.MapStrings(func(s string) string { return s })
}

// MapStrings returns a deep copy of r with fn applied to every free-text
// field. ID and Name are identifiers, not content, and are copied verbatim.
// The receiver is never modified.
func (r *Resume) MapStrings(fn func(string) string) *Resume {
	out := &Resume{
		ID:   r.ID,
		Name: r.Name,
		BasicInfo: BasicInfo{
			Name:     fn(r.BasicInfo.Name),
			Email:    fn(r.BasicInfo.Email),
			Phone:    Phone(fn(string(r.BasicInfo.Phone))),
			Address:  fn(r.BasicInfo.Address),
			Summary:  fn(r.BasicInfo.Summary),
			Github:   fn(r.BasicInfo.Github),
			Linkedin: fn(r.BasicInfo.Linkedin),
			Homepage: fn(r.BasicInfo.Homepage),
		},
		Keywords: Keywords(mapSlice(r.Keywords, fn)),
	}

	if r.Education != nil {
		out.Education = make([]Education, len(r.Education))
		for i, ed := range r.Education {
			out.Education[i] = Education{
				University: fn(ed.University),
				Degree:     fn(ed.Degree),
				Location:   fn(ed.Location),
				Duration:   fn(ed.Duration),
				Info:       mapSlice(ed.Info, fn),
			}
		}
	}

	if r.Experiences != nil {
		out.Experiences = make([]Experience, len(r.Experiences))
		for i, exp := range r.Experiences {
			mapped := Experience{
				Company:     fn(exp.Company),
				Title:       fn(exp.Title),
				Location:    fn(exp.Location),
				Duration:    fn(exp.Duration),
				Skills:      mapSlice(exp.Skills, fn),
				Description: fn(exp.Description),
				Tags:        mapSlice(exp.Tags, fn),
			}
			if exp.Projects != nil {
				mapped.Projects = make([]ExperienceProject, len(exp.Projects))
				for j, p := range exp.Projects {
					mapped.Projects[j] = ExperienceProject{
						Title:   fn(p.Title),
						Tools:   mapSlice(p.Tools, fn),
						Details: mapSlice(p.Details, fn),
					}
				}
			}
			out.Experiences[i] = mapped
		}
	}

	if r.Projects != nil {
		out.Projects = make([]Project, len(r.Projects))
		for i, p := range r.Projects {
			out.Projects[i] = Project{
				Title:       fn(p.Title),
				Description: mapSlice(p.Description, fn),
				Tools:       mapSlice(p.Tools, fn),
				Repo:        fn(p.Repo),
			}
		}
	}

	return out
}

func mapSlice(in []string, fn func(string) string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilEducation(in []Education) []Education {
	if in == nil {
		return []Education{}
	}
	return in
}

func nonNilExperiences(in []Experience) []Experience {
	if in == nil {
		return []Experience{}
	}
	return in
}

func nonNilProjects(in []Project) []Project {
	if in == nil {
		return []Project{}
	}
	return in
}
