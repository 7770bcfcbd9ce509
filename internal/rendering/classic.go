package rendering

import (
	"strings"

	"github.com/achint227/Resume-Generator/internal/types"
)

// classicRenderer is the ATS oriented article-class layout built from
// \resumeSubheading and \resumeProjectHeading tabular rows.
type classicRenderer struct {
	base
}

func (r *classicRenderer) BuildHeader() string {
	data := r.contact()
	data.ContactLine = r.contactLine()
	return r.header(data)
}

// contactLine joins the present contact fields with " $|$ ".
func (r *classicRenderer) contactLine() string {
	info := r.doc.BasicInfo
	var parts []string

	if info.Address != "" {
		loc := strings.Split(info.Address, ",")
		if len(loc) > 1 && strings.TrimSpace(loc[0]) != "" && strings.TrimSpace(loc[1]) != "" {
			parts = append(parts, strings.TrimSpace(loc[0])+", "+strings.TrimSpace(loc[1]))
		} else {
			parts = append(parts, info.Address)
		}
	}
	if info.Email != "" {
		parts = append(parts, `\href{mailto:`+info.Email+`}{\underline{`+info.Email+`}}`)
	}
	if info.Phone != "" {
		parts = append(parts, string(info.Phone))
	}
	if info.Linkedin != "" {
		parts = append(parts, `\href{https://linkedin.com/in/`+info.Linkedin+`}{\underline{linkedin.com/in/`+info.Linkedin+`}}`)
	}
	if info.Github != "" {
		parts = append(parts, `\href{https://github.com/`+info.Github+`}{\underline{github.com/`+info.Github+`}}`)
	}
	return strings.Join(parts, " $|$ ")
}

func (r *classicRenderer) NewSection(name, content string, summary bool) string {
	if isBlank(content) {
		return ""
	}
	if summary {
		return `\section{` + name + "}\n\\resumeSubHeadingListStart\n\\resumeItem{" + r.bold(content) + "}\n\\resumeSubHeadingListEnd\n"
	}
	return `\section{` + name + "}\n\\resumeSubHeadingListStart\n" + content + "\\resumeSubHeadingListEnd\n"
}

func (r *classicRenderer) BuildBulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return bulletList(items, `\resumeItemListStart`, `\resumeItemListEnd`, `\resumeItem`, r.patterns) + "\n"
}

func (r *classicRenderer) CreateEducation(ed types.Education) string {
	return "\\resumeSubheading\n{" + ed.University + "}{" + ed.Location + "}\n{" + ed.Degree + "}{" + ed.Duration + "}\n" +
		r.BuildBulletList(ed.Info)
}

func (r *classicRenderer) CreateProject(p types.Project) string {
	heading := `\textbf{` + p.Title + `}`
	if len(p.Tools) > 0 {
		heading += " -- " + r.bold(strings.Join(p.Tools, ", "))
	}
	link := ""
	if p.Repo != "" {
		link = `\href{` + p.Repo + `}{\underline{` + lastPathSegment(p.Repo) + `}}`
	}
	return "\\resumeProjectHeading\n{" + heading + "}{" + link + "}\n" + r.BuildBulletList(p.Description)
}

// CreateExperience flattens the details of every nested project into a
// single bullet list under the role heading.
func (r *classicRenderer) CreateExperience(exp types.Experience) string {
	var details []string
	for _, p := range exp.Projects {
		details = append(details, p.Details...)
	}
	return "\\resumeSubheading\n{" + exp.Title + "}{" + exp.Duration + "}\n{" + exp.Company + "}{" + exp.Location + "}\n" +
		r.BuildBulletList(details)
}

func (r *classicRenderer) Render(order SectionOrder) string {
	return assemble(r, r.doc, order)
}
