package rendering

import (
	"strings"

	"github.com/achint227/Resume-Generator/internal/types"
)

// russelRenderer targets the russell.cls class: cventries with cvitems
// bullets and a separate first/last name.
type russelRenderer struct {
	base
}

func (r *russelRenderer) BuildHeader() string {
	data := r.contact()
	data.NameTokens = BraceName(data.Name)
	data.AddressTokens = BraceSplit(data.Address, ",")
	return r.header(data)
}

func (r *russelRenderer) NewSection(name, content string, summary bool) string {
	if isBlank(content) {
		return ""
	}
	if summary {
		content = "\n\\begin{cvparagraph}\n" + r.bold(content) + "\n\\end{cvparagraph}"
	} else {
		content = "\n\\begin{cventries}\n\n" + content + "\n\\end{cventries}"
	}
	return `\cvsection{` + name + "}\n" + content
}

func (r *russelRenderer) BuildBulletList(items []string) string {
	return bulletList(items, `\begin{cvitems}`, `\end{cvitems}`, `\item`, r.patterns)
}

// entry emits one \cventry{position}{organization}{location}{date}{items}.
func (r *russelRenderer) entry(position, organization, location, date, items string) string {
	return "\n\\cventry\n{" + position + "}\n{" + organization + "}\n{" + location + "}\n{" + date + "}\n{" + items + "}"
}

func (r *russelRenderer) CreateEducation(ed types.Education) string {
	return r.entry(ed.Degree, ed.University, ed.Location, ed.Duration, r.BuildBulletList(ed.Info))
}

func (r *russelRenderer) CreateProject(p types.Project) string {
	repo := ""
	if p.Repo != "" {
		repo = `\href{` + p.Repo + `}{` + lastPathSegment(p.Repo) + `}`
	}
	tools := r.bold(strings.Join(p.Tools, ", "))
	return r.entry(tools, p.Title, repo, "", r.BuildBulletList(p.Description))
}

func (r *russelRenderer) CreateExperience(exp types.Experience) string {
	out := r.entry(exp.Title, exp.Company, exp.Location, exp.Duration, "")
	if details := r.details(exp.Projects); details != "" {
		out += "\n\\begin{cvparagraph}\n" + details + "\n\\end{cvparagraph}\n"
	}
	return out
}

func (r *russelRenderer) details(projects []types.ExperienceProject) string {
	if len(projects) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\begin{itemize}\n")
	for _, p := range projects {
		b.WriteString(`\item \textbf{` + p.Title + `}`)
		if len(p.Tools) > 0 {
			b.WriteString(` {\hfill {` + r.bold(strings.Join(p.Tools, ", ")) + `}}`)
		}
		b.WriteByte('\n')
		if bullets := r.itemize(p.Details); bullets != "" {
			b.WriteString(bullets)
			b.WriteByte('\n')
		}
	}
	b.WriteString(`\end{itemize}`)
	return b.String()
}

func (r *russelRenderer) Render(order SectionOrder) string {
	return assemble(r, r.doc, order)
}
