package rendering

import (
	"strings"

	"github.com/achint227/Resume-Generator/internal/types"
)

// moderncvRenderer targets the moderncv class in banking style. Entries are
// \cventry rows inside itemize; "Label: text" bullets get a bold label.
type moderncvRenderer struct {
	base
}

func (r *moderncvRenderer) BuildHeader() string {
	data := r.contact()
	data.NameTokens = BraceName(data.Name)
	data.AddressTokens = BraceSplit(data.Address, ",")
	return r.header(data)
}

func (r *moderncvRenderer) NewSection(name, content string, summary bool) string {
	if isBlank(content) {
		return ""
	}
	if summary {
		content = r.bold(content)
	} else {
		content = "\n\\begin{itemize}\n" + content + "\n\\end{itemize}"
	}
	return "\n\\section{" + name + "}\n" + content
}

func (r *moderncvRenderer) BuildBulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, len(items))
	for i, item := range items {
		if label, rest, ok := strings.Cut(item, ":"); ok {
			lines[i] = "\n" + `\textbf{` + label + `:}` + r.bold(rest)
		} else {
			lines[i] = "\n" + r.bold(item)
		}
	}
	return strings.Join(lines, "\n")
}

// dotted joins items as "•" lines separated by forced line breaks.
func (r *moderncvRenderer) dotted(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "•" + r.bold(item)
	}
	return strings.Join(lines, `\\`)
}

func (r *moderncvRenderer) CreateEducation(ed types.Education) string {
	out := "\n\\medskip\n\\item\n{\\cventry{" + ed.Duration + "}\n{" + ed.Degree + "}\n{" + ed.University + "}\n{" + ed.Location + "}\n{}{}}\n"
	return out + r.BuildBulletList(ed.Info)
}

func (r *moderncvRenderer) CreateExperience(exp types.Experience) string {
	out := "\n\\medskip\n\\item\n{\\cventry\n{" + exp.Duration + "}\n{" + exp.Title + "}\n{\\textbf{" + exp.Company + "}}\n{" + exp.Location + "}\n{}{}}\n"
	return out + r.details(exp.Projects) + "\n"
}

func (r *moderncvRenderer) details(projects []types.ExperienceProject) string {
	var b strings.Builder
	for _, p := range projects {
		body := r.dotted(p.Details)
		if len(p.Tools) > 0 {
			if body != "" {
				body += `\\`
			}
			body += "Tools/Libraries: " + r.bold(strings.Join(p.Tools, ", "))
		}
		b.WriteString(`\smallskip\cventry{}{\textbf{` + p.Title + `}}{}{}{}` + "\n{" + body + "}")
	}
	return b.String()
}

func (r *moderncvRenderer) CreateProject(p types.Project) string {
	tools := ""
	if len(p.Tools) > 0 {
		tools = "\nTools/Libraries: " + r.bold(strings.Join(p.Tools, ", "))
	}
	description := r.bold(strings.Join(p.Description, " "))
	return "\\medskip\n\\item\n{\\cventry{}{" + p.Repo + "}{" + p.Title + "}{}{}\n{" + description + "}" + tools + "\n}"
}

func (r *moderncvRenderer) Render(order SectionOrder) string {
	return assemble(r, r.doc, order)
}
