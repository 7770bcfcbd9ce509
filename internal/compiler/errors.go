// Package compiler runs the external LaTeX typesetter against a generated
// source file and reports the outcome as an explicit result.
package compiler

import "fmt"

// Kind classifies a compilation failure.
type Kind int

const (
	// KindCompilerMissing means the typesetter binary is not on PATH.
	KindCompilerMissing Kind = iota + 1
	// KindTimeout means the process was killed after the deadline.
	KindTimeout
	// KindNoArtifact means the process exited without producing a PDF.
	KindNoArtifact
	// KindInvalidArtifact means a PDF was produced but failed verification.
	KindInvalidArtifact
)

func (k Kind) String() string {
	switch k {
	case KindCompilerMissing:
		return "compiler_missing"
	case KindTimeout:
		return "timeout"
	case KindNoArtifact:
		return "no_artifact"
	case KindInvalidArtifact:
		return "invalid_artifact"
	default:
		return "unknown"
	}
}

// CompilationError represents a LaTeX compilation failure. LogOutput holds
// the captured compiler output when there is any.
type CompilationError struct {
	Kind      Kind
	Message   string
	LogOutput string
	ExitCode  int
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error (%s): %s", e.Kind, e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether running the same job again may succeed without
// operator intervention.
func (e *CompilationError) Retryable() bool {
	return e.Kind == KindTimeout
}
