// Package generator turns a stored résumé into a compiled PDF. It renders
// markup, runs the typesetter, moves the artifacts into the output
// directory and keeps the PDF cache in step.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/achint227/Resume-Generator/internal/compiler"
	"github.com/achint227/Resume-Generator/internal/rendering"
	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Config holds filesystem settings.
type Config struct {
	AssetsDir string // parent of the per-template working directories
	OutputDir string
	Verify    bool // parse each produced PDF before it is cached
}

// Request asks for one compiled résumé.
type Request struct {
	ResumeID string
	Template string
	Order    string
	Keywords []string // emphasized in addition to the document's own
	Force    bool     // skip the cache lookup
}

// Artifact is a finished PDF and its source.
type Artifact struct {
	Path    string
	TexPath string
	Hash    string
	Cached  bool
}

// Generator orchestrates rendering and compilation.
type Generator struct {
	resumes  storage.ResumeRepository
	cache    storage.PDFCacheRepository
	compiler compiler.Compiler
	cfg      Config
	logger   *zap.Logger
	verify   func(path string) error

	group singleflight.Group
}

// New creates a generator. A nil logger disables logging.
func New(resumes storage.ResumeRepository, cache storage.PDFCacheRepository, c compiler.Compiler, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		resumes:  resumes,
		cache:    cache,
		compiler: c,
		cfg:      cfg,
		logger:   logger,
	}
	if cfg.Verify {
		g.verify = compiler.VerifyPDF
	}
	return g
}

// job is a validated request.
type job struct {
	resumeID string
	doc      *types.Resume // keywords already merged
	template rendering.TemplateID
	order    rendering.SectionOrder
	hash     string
	force    bool
}

func (j job) key() storage.CacheKey {
	return storage.CacheKey{ResumeID: j.resumeID, Template: string(j.template), Order: string(j.order)}
}

func (j job) flightKey() string {
	return j.resumeID + "|" + string(j.template) + "|" + string(j.order) + "|" + j.hash
}

func (j job) fields() []zap.Field {
	return []zap.Field{
		zap.String("resume_id", j.resumeID),
		zap.String("template", string(j.template)),
		zap.String("order", string(j.order)),
		zap.String("hash", j.hash),
	}
}

// parseRequest validates template and order before anything is loaded.
func parseRequest(template, order string) (rendering.TemplateID, rendering.SectionOrder, error) {
	id, err := rendering.ParseTemplateID(template)
	if err != nil {
		return "", "", err
	}
	o, err := rendering.ParseSectionOrder(order)
	if err != nil {
		return "", "", err
	}
	return id, o, nil
}

// Generate loads the résumé and returns its PDF, compiling only when the
// cache has no live entry for the current content.
func (g *Generator) Generate(ctx context.Context, req Request) (*Artifact, error) {
	template, order, err := parseRequest(req.Template, req.Order)
	if err != nil {
		return nil, err
	}
	doc, err := g.resumes.GetByID(ctx, req.ResumeID)
	if err != nil {
		return nil, err
	}
	return g.run(ctx, newJob(req.ResumeID, doc, template, order, req.Keywords, req.Force))
}

// GenerateDocument compiles doc without loading it. The cache is consulted
// and updated only when req.ResumeID is set.
func (g *Generator) GenerateDocument(ctx context.Context, doc *types.Resume, req Request) (*Artifact, error) {
	template, order, err := parseRequest(req.Template, req.Order)
	if err != nil {
		return nil, err
	}
	return g.run(ctx, newJob(req.ResumeID, doc, template, order, req.Keywords, req.Force))
}

// BuildMarkup loads the résumé and returns the LaTeX source without
// compiling it.
func (g *Generator) BuildMarkup(ctx context.Context, resumeID, template, order string) (string, error) {
	if _, _, err := parseRequest(template, order); err != nil {
		return "", err
	}
	doc, err := g.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return "", err
	}
	return RenderMarkup(doc, template, order, nil)
}

// RenderMarkup renders doc with one template. It touches no storage.
func RenderMarkup(doc *types.Resume, template, order string, keywords []string) (string, error) {
	id, o, err := parseRequest(template, order)
	if err != nil {
		return "", err
	}
	r, err := rendering.New(id, doc, keywords)
	if err != nil {
		return "", err
	}
	return rendering.RenderDocument(r, o)
}

func newJob(resumeID string, doc *types.Resume, template rendering.TemplateID, order rendering.SectionOrder, keywords []string, force bool) job {
	// Request keywords change the output, so they are part of the hashed
	// document.
	effective := doc.Clone().Normalize()
	effective.Keywords = types.MergeKeywords(keywords, effective.Keywords)
	// The id is hashed too: same-content résumés must not share a
	// working file.
	effective.ID = resumeID
	return job{
		resumeID: resumeID,
		doc:      effective,
		template: template,
		order:    order,
		hash:     rendering.ContentHash(effective, template, order),
		force:    force,
	}
}

// run serializes work per cache key so at most one compiler process runs
// for it at a time.
func (g *Generator) run(ctx context.Context, j job) (*Artifact, error) {
	v, err, shared := g.group.Do(j.flightKey(), func() (any, error) {
		return g.produce(ctx, j)
	})
	if err != nil {
		return nil, err
	}
	art := v.(*Artifact)
	// A forced caller that joined a flight answered from the cache still
	// gets a fresh compile.
	if shared && j.force && art.Cached {
		v, err, _ = g.group.Do(j.flightKey(), func() (any, error) {
			return g.produce(ctx, j)
		})
		if err != nil {
			return nil, err
		}
		art = v.(*Artifact)
	}
	out := *art
	return &out, nil
}

func (g *Generator) produce(ctx context.Context, j job) (*Artifact, error) {
	useCache := j.resumeID != ""
	if useCache && !j.force {
		if art, ok := g.lookup(ctx, j); ok {
			return art, nil
		}
	}
	return g.compile(ctx, j, useCache)
}

func (g *Generator) lookup(ctx context.Context, j job) (*Artifact, bool) {
	path, ok, err := g.cache.Get(ctx, j.key(), j.hash)
	if err != nil {
		// An unreachable cache only costs a recompile.
		g.logger.Warn("PDF cache lookup failed", append(j.fields(), zap.Error(err))...)
		return nil, false
	}
	if !ok {
		g.logger.Debug("PDF cache miss", j.fields()...)
		return nil, false
	}
	if !fileExists(path) {
		g.logger.Info("cached PDF missing on disk", append(j.fields(), zap.String("path", path))...)
		return nil, false
	}
	g.logger.Debug("PDF cache hit", append(j.fields(), zap.String("path", path))...)
	tex := path[:len(path)-len(filepath.Ext(path))] + ".tex"
	if !fileExists(tex) {
		tex = ""
	}
	return &Artifact{Path: path, TexPath: tex, Hash: j.hash, Cached: true}, true
}

func (g *Generator) compile(ctx context.Context, j job, updateCache bool) (art *Artifact, err error) {
	start := time.Now()

	r, err := rendering.New(j.template, j.doc, nil)
	if err != nil {
		return nil, err
	}
	markup, err := rendering.RenderDocument(r, j.order)
	if err != nil {
		g.logger.Error("render failed", append(j.fields(), zap.Error(err))...)
		return nil, err
	}

	workDir := filepath.Join(g.cfg.AssetsDir, j.template.WorkDir())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create working directory %s: %w", workDir, err)
	}

	stem := FileStem(j.doc.Name, j.template, j.hash)
	texPath := filepath.Join(workDir, stem+".tex")
	pdfPath := filepath.Join(workDir, stem+".pdf")

	defer func() {
		if cerr := compiler.CleanupArtifacts(workDir, stem); cerr != nil {
			g.logger.Warn("failed to remove auxiliary files", append(j.fields(), zap.Error(cerr))...)
		}
		if err != nil {
			_ = removeIfExists(texPath, pdfPath)
		}
	}()

	if err := os.WriteFile(texPath, []byte(markup), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", texPath, err)
	}

	res := g.compiler.Compile(ctx, compiler.Job{WorkDir: workDir, TexFile: stem + ".tex"})
	if !res.OK() {
		g.logger.Error("LaTeX compilation failed", append(j.fields(),
			zap.String("outcome", res.Outcome.String()),
			zap.Int("exit_code", res.ExitCode),
			zap.Duration("duration", res.Duration),
		)...)
		return nil, res.Err()
	}
	if res.Outcome == compiler.OutcomeSuccessWithWarnings {
		g.logger.Warn("LaTeX exited with warnings", append(j.fields(),
			zap.Int("exit_code", res.ExitCode),
		)...)
	}

	if g.verify != nil {
		if err := g.verify(pdfPath); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", g.cfg.OutputDir, err)
	}
	finalPDF := filepath.Join(g.cfg.OutputDir, stem+".pdf")
	finalTex := filepath.Join(g.cfg.OutputDir, stem+".tex")
	if err := moveFile(pdfPath, finalPDF); err != nil {
		return nil, fmt.Errorf("failed to move PDF to output: %w", err)
	}
	if err := moveFile(texPath, finalTex); err != nil {
		return nil, fmt.Errorf("failed to move source to output: %w", err)
	}

	// The artifact is in place; only now may the cache point at it.
	if updateCache {
		if err := g.cache.Set(ctx, j.key(), j.hash, finalPDF); err != nil {
			return nil, err
		}
	}

	g.logger.Info("PDF generated", append(j.fields(),
		zap.String("path", finalPDF),
		zap.Duration("duration", time.Since(start)),
	)...)
	return &Artifact{Path: finalPDF, TexPath: finalTex, Hash: j.hash}, nil
}

// Templates lists the available templates.
func (g *Generator) Templates() []rendering.TemplateInfo {
	return rendering.Templates()
}

// ClearCache drops cache entries for resumeID, or all entries when empty.
func (g *Generator) ClearCache(ctx context.Context, resumeID string) error {
	return g.cache.Clear(ctx, resumeID)
}
