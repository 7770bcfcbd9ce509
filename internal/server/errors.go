// Package server provides the HTTP API for storing résumés and downloading
// compiled PDFs.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/achint227/Resume-Generator/internal/compiler"
	"github.com/achint227/Resume-Generator/internal/config"
	"github.com/achint227/Resume-Generator/internal/rendering"
	"github.com/achint227/Resume-Generator/internal/schemas"
	"github.com/achint227/Resume-Generator/internal/storage"
)

// Error codes carried in the response envelope.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeDatabase         = "DATABASE_ERROR"
	CodeLaTeXCompilation = "LATEX_COMPILATION_ERROR"
	CodeLaTeXTimeout     = "LATEX_TIMEOUT"
	CodeTemplate         = "TEMPLATE_ERROR"
	CodeConfiguration    = "CONFIGURATION_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// maxLogDetail bounds how much typesetter output is echoed to clients.
const maxLogDetail = 2000

// ErrBadRequest reports a malformed path or query parameter.
type ErrBadRequest struct {
	Field   string
	Message string
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// ErrorCode returns the envelope code for an error.
func ErrorCode(err error) string {
	_, code := classify(err)
	return code
}

func classify(err error) (int, string) {
	var (
		badReq  *ErrBadRequest
		renderV *rendering.ValidationError
		schemaV *schemas.ValidationError
		storeE  *storage.Error
		compE   *compiler.CompilationError
		tmplE   *rendering.TemplateError
		rendE   *rendering.RenderError
		confE   *config.ConfigurationError
	)
	switch {
	case errors.As(err, &badReq), errors.As(err, &renderV), errors.As(err, &schemaV):
		return http.StatusUnprocessableEntity, CodeValidation
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.As(err, &storeE):
		return http.StatusInternalServerError, CodeDatabase
	case errors.As(err, &compE):
		if compE.Kind == compiler.KindTimeout {
			return http.StatusGatewayTimeout, CodeLaTeXTimeout
		}
		return http.StatusInternalServerError, CodeLaTeXCompilation
	case errors.As(err, &tmplE), errors.As(err, &rendE):
		return http.StatusInternalServerError, CodeTemplate
	case errors.As(err, &confE):
		return http.StatusInternalServerError, CodeConfiguration
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// errorBody builds the "error" object of a failure envelope.
func errorBody(err error) ErrorBody {
	_, code := classify(err)
	body := ErrorBody{Code: code, Message: err.Error()}

	var (
		badReq  *ErrBadRequest
		renderV *rendering.ValidationError
		schemaV *schemas.ValidationError
		compE   *compiler.CompilationError
	)
	switch {
	case errors.As(err, &badReq):
		body.Field = badReq.Field
	case errors.As(err, &renderV):
		body.Field = renderV.Field
	case errors.As(err, &schemaV):
		body.Field = schemaV.FirstField()
		details := make([]map[string]string, len(schemaV.Errors))
		for i, fe := range schemaV.Errors {
			details[i] = map[string]string{"field": fe.Field, "message": fe.Message}
		}
		body.Details = details
	case errors.As(err, &compE):
		if log := compE.LogOutput; log != "" {
			body.Details = map[string]any{"kind": compE.Kind.String(), "log": logTail(log, maxLogDetail)}
		}
	}

	// Internal failures are logged in full; clients get a generic message.
	if code == CodeInternal {
		body.Message = "internal server error"
	}
	return body
}

// logTail returns at most n trailing bytes of log, starting on a rune
// boundary.
func logTail(log string, n int) string {
	if len(log) <= n {
		return log
	}
	start := len(log) - n
	for start < len(log) && !utf8.RuneStart(log[start]) {
		start++
	}
	return log[start:]
}
