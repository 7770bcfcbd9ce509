package rendering

import (
	"strings"

	"github.com/achint227/Resume-Generator/internal/types"
)

// resumeRenderer targets the resume.cls class: dated subsections with role
// lines and plain itemized bullets.
type resumeRenderer struct {
	base
}

func (r *resumeRenderer) BuildHeader() string {
	return r.header(r.contact())
}

func (r *resumeRenderer) NewSection(name, content string, summary bool) string {
	if isBlank(content) {
		return ""
	}
	if summary {
		content = r.bold(content)
	}
	return `\section{` + name + "}\n" + content
}

func (r *resumeRenderer) BuildBulletList(items []string) string {
	return r.itemize(items)
}

func (r *resumeRenderer) CreateEducation(ed types.Education) string {
	var b strings.Builder
	b.WriteString(`\datedsubsection{\textbf{` + ed.University + `}}{` + ed.Location + "}\n")
	b.WriteString(`\role{` + ed.Degree + `} {\hfill ` + ed.Duration + "}\n")
	if items := r.BuildBulletList(ed.Info); items != "" {
		b.WriteString(items)
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *resumeRenderer) CreateExperience(exp types.Experience) string {
	var b strings.Builder
	b.WriteString(`\datedsubsection{\textbf{` + exp.Company + `}}{` + exp.Location + "}\n")
	b.WriteString(`\role{` + exp.Title + `} {\hfill ` + exp.Duration + "}\n")
	if details := r.details(exp.Projects); details != "" {
		b.WriteString(details)
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *resumeRenderer) details(projects []types.ExperienceProject) string {
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
		if bullets := r.BuildBulletList(p.Details); bullets != "" {
			b.WriteString(bullets)
			b.WriteByte('\n')
		}
	}
	b.WriteString(`\end{itemize}`)
	return b.String()
}

func (r *resumeRenderer) CreateProject(p types.Project) string {
	var b strings.Builder
	b.WriteString(`\subsection{\textbf{` + p.Title + "}}\n")
	if bullets := r.BuildBulletList(p.Description); bullets != "" {
		b.WriteString(bullets)
		b.WriteByte('\n')
	}

	var meta []string
	if len(p.Tools) > 0 {
		meta = append(meta, `\item{Tools/Libraries: `+r.bold(strings.Join(p.Tools, ", "))+`}`)
	}
	if p.Repo != "" {
		meta = append(meta, `\item{Repo: }\github[`+lastPathSegment(p.Repo)+`]{`+p.Repo+`}`)
	}
	if len(meta) > 0 {
		b.WriteString("\\begin{itemize}\n")
		b.WriteString(strings.Join(meta, "\n"))
		b.WriteString("\n\\end{itemize}\n")
	}
	return b.String()
}

func (r *resumeRenderer) Render(order SectionOrder) string {
	return assemble(r, r.doc, order)
}
