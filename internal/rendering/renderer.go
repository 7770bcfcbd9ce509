package rendering

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/achint227/Resume-Generator/internal/types"
)

// Renderer turns one résumé document into a complete LaTeX document. Every
// variant implements the full set so variants are interchangeable behind
// the template identifier.
type Renderer interface {
	Template() TemplateID
	BuildHeader() string
	NewSection(name, content string, summary bool) string
	CreateEducation(ed types.Education) string
	CreateExperience(exp types.Experience) string
	CreateProject(p types.Project) string
	BuildBulletList(items []string) string
	Render(order SectionOrder) string
}

//go:embed headers/*.tex
var headerFS embed.FS

// Headers use << >> delimiters; LaTeX is full of braces.
var headerTemplates = template.Must(
	template.New("headers").Delims("<<", ">>").ParseFS(headerFS, "headers/*.tex"),
)

// New builds the renderer for id. The document is escaped once here and
// never again, and extra keywords are merged with the document's own.
func New(id TemplateID, doc *types.Resume, keywords []string) (Renderer, error) {
	b := newBase(id, doc, keywords)
	switch id {
	case TemplateClassic:
		return &classicRenderer{base: b}, nil
	case TemplateModernCV:
		return &moderncvRenderer{base: b}, nil
	case TemplateResume:
		return &resumeRenderer{base: b}, nil
	case TemplateRussel:
		return &russelRenderer{base: b}, nil
	default:
		return nil, &ValidationError{Field: "template", Message: "unknown template", Value: string(id)}
	}
}

// RenderDocument calls r.Render and converts a renderer panic into a
// RenderError.
func RenderDocument(r Renderer, order SectionOrder) (markup string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cause, ok := rec.(error)
			if !ok {
				cause = fmt.Errorf("%v", rec)
			}
			err = &RenderError{
				Template: r.Template(),
				Message:  "renderer panicked",
				Cause:    cause,
			}
		}
	}()
	return r.Render(order), nil
}

// base carries the per-render state shared by every variant.
type base struct {
	id       TemplateID
	doc      *types.Resume
	keywords types.Keywords
	patterns []*regexp.Regexp
}

func newBase(id TemplateID, doc *types.Resume, extra []string) base {
	escaped := EscapeDocument(doc).Normalize()
	extraEscaped := make([]string, len(extra))
	for i, kw := range extra {
		extraEscaped[i] = EscapeLaTeX(kw)
	}
	keywords := types.MergeKeywords(extraEscaped, escaped.Keywords)
	return base{
		id:       id,
		doc:      escaped,
		keywords: keywords,
		patterns: compileKeywords(keywords),
	}
}

// Template returns the variant identifier.
func (b *base) Template() TemplateID {
	return b.id
}

// Keywords returns the active emphasis set.
func (b *base) Keywords() []string {
	return b.keywords
}

func (b *base) bold(text string) string {
	return emphasize(text, b.patterns)
}

func (b *base) itemize(items []string) string {
	return bulletList(items, `\begin{itemize}`, `\end{itemize}`, `\item`, b.patterns)
}

func (b *base) header(data any) string {
	var out strings.Builder
	if err := headerTemplates.ExecuteTemplate(&out, string(b.id)+".tex", data); err != nil {
		panic(&TemplateError{Template: b.id, Message: "failed to execute header", Cause: err})
	}
	return out.String()
}

// contactData is the view handed to the header templates.
type contactData struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Github   string
	Linkedin string
	Homepage string

	NameTokens    string
	AddressTokens string
	ContactLine   string
}

func (b *base) contact() contactData {
	info := b.doc.BasicInfo
	return contactData{
		Name:     info.Name,
		Email:    info.Email,
		Phone:    string(info.Phone),
		Address:  info.Address,
		Github:   info.Github,
		Linkedin: info.Linkedin,
		Homepage: info.Homepage,
	}
}

// assemble is the shared document skeleton: header, summary, then the three
// sections in the requested order. Blank sections are skipped entirely.
func assemble(r Renderer, doc *types.Resume, order SectionOrder) string {
	var out strings.Builder
	out.WriteString(r.BuildHeader())
	out.WriteByte('\n')

	if s := r.NewSection("Summary", doc.BasicInfo.Summary, true); s != "" {
		out.WriteString(s)
		out.WriteByte('\n')
	}

	for _, section := range order.Sections() {
		var content strings.Builder
		switch section {
		case SectionEducation:
			for _, ed := range doc.Education {
				content.WriteString(r.CreateEducation(ed))
			}
		case SectionProjects:
			for _, p := range doc.Projects {
				content.WriteString(r.CreateProject(p))
			}
		case SectionExperience:
			for _, exp := range doc.Experiences {
				content.WriteString(r.CreateExperience(exp))
			}
		}
		if s := r.NewSection(section.Title(), content.String(), false); s != "" {
			out.WriteString(s)
			out.WriteByte('\n')
		}
	}

	out.WriteString("\\end{document}\n")
	return out.String()
}
