package server

import (
	"errors"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/achint227/Resume-Generator/internal/generator"
	"github.com/achint227/Resume-Generator/internal/logging"
	"github.com/achint227/Resume-Generator/internal/schemas"
	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/types"
)

type idParams struct {
	ID string `uri:"id" binding:"required,max=64"`
}

type nameParams struct {
	Name string `uri:"name" binding:"required,max=256"`
}

type compileParams struct {
	ID       string `uri:"id" binding:"required,max=64"`
	Template string `uri:"template" binding:"required,max=64"`
	Order    string `uri:"order" binding:"required"`
}

type downloadQuery struct {
	Force    bool   `form:"force"`
	Keywords string `form:"keywords" binding:"max=2000"`
}

type clearCacheQuery struct {
	ResumeID string `form:"resume_id" binding:"omitempty,max=64"`
}

var paramNamesOnce sync.Once

// useParamNames makes validation errors report uri/form names instead of
// Go field names.
func useParamNames() {
	paramNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"uri", "form", "json"} {
				if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindError converts a binding failure into an ErrBadRequest.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrBadRequest{Field: fe.Field(), Message: "failed on the '" + fe.Tag() + "' rule"}
	}
	return &ErrBadRequest{Field: "request", Message: err.Error()}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleRoot(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"message": "Hello from Resume-Generator"})
}

func (s *Server) handleTemplates(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"templates": s.gen.Templates()})
}

func (s *Server) handleListResumes(c *gin.Context) {
	docs, err := s.resumes.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, docs)
}

func (s *Server) handleGetResumeByName(c *gin.Context) {
	var p nameParams
	if err := c.ShouldBindUri(&p); err != nil {
		respondError(c, bindError(err))
		return
	}
	doc, err := s.resumes.GetByResumeName(c.Request.Context(), p.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, doc)
}

func (s *Server) handleGetResumesByUser(c *gin.Context) {
	var p nameParams
	if err := c.ShouldBindUri(&p); err != nil {
		respondError(c, bindError(err))
		return
	}
	docs, err := s.resumes.GetByName(c.Request.Context(), p.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, docs)
}

// decodeBody schema-validates the request body into a document.
func decodeBody(c *gin.Context) (*types.Resume, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, &ErrBadRequest{Field: "body", Message: err.Error()}
	}
	return schemas.DecodeResume(body)
}

func (s *Server) handleCreateResume(c *gin.Context) {
	doc, err := decodeBody(c)
	if err != nil {
		respondError(c, err)
		return
	}
	id, err := s.resumes.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err)
		return
	}
	logging.FromContext(c.Request.Context()).Info("resume created", zap.String("resume_id", id))
	respondOK(c, http.StatusCreated, gin.H{"message": "added", "id": id})
}

func (s *Server) handleUpdateResume(c *gin.Context) {
	var p idParams
	if err := c.ShouldBindUri(&p); err != nil {
		respondError(c, bindError(err))
		return
	}
	doc, err := decodeBody(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ok, err := s.resumes.Update(c.Request.Context(), p.ID, doc)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, storage.ResumeNotFound(p.ID))
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "updated", "id": p.ID})
}

func (s *Server) handleDeleteResume(c *gin.Context) {
	var p idParams
	if err := c.ShouldBindUri(&p); err != nil {
		respondError(c, bindError(err))
		return
	}
	ctx := c.Request.Context()
	ok, err := s.resumes.Delete(ctx, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, storage.ResumeNotFound(p.ID))
		return
	}
	if err := s.gen.ClearCache(ctx, p.ID); err != nil {
		logging.FromContext(ctx).Warn("failed to clear cache for deleted resume",
			zap.String("resume_id", p.ID), zap.Error(err))
	}
	respondOK(c, http.StatusOK, gin.H{"message": "deleted", "id": p.ID})
}

func (s *Server) handleDownload(c *gin.Context) {
	var (
		p compileParams
		q downloadQuery
	)
	if err := c.ShouldBindUri(&p); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindError(err))
		return
	}

	var keywords []string
	if q.Keywords != "" {
		keywords = types.ParseKeywords(q.Keywords)
	}
	art, err := s.gen.Generate(c.Request.Context(), generator.Request{
		ResumeID: p.ID,
		Template: p.Template,
		Order:    p.Order,
		Keywords: keywords,
		Force:    q.Force,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	cache := "MISS"
	if art.Cached {
		cache = "HIT"
	}
	c.Header("X-Cache", cache)
	c.Header("X-Content-Hash", art.Hash)
	c.FileAttachment(art.Path, filepath.Base(art.Path))
}

func (s *Server) handleCopy(c *gin.Context) {
	var p compileParams
	if err := c.ShouldBindUri(&p); err != nil {
		respondError(c, bindError(err))
		return
	}
	markup, err := s.gen.BuildMarkup(c.Request.Context(), p.ID, p.Template, p.Order)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"latex": markup})
}

func (s *Server) handleClearCache(c *gin.Context) {
	var q clearCacheQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := s.gen.ClearCache(c.Request.Context(), q.ResumeID); err != nil {
		respondError(c, err)
		return
	}
	scope := q.ResumeID
	if scope == "" {
		scope = "all"
	}
	respondOK(c, http.StatusOK, gin.H{"message": "cleared", "scope": scope})
}
