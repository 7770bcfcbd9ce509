package compiler

import "time"

// Outcome is the tagged result of one compiler invocation.
type Outcome int

const (
	// OutcomeSuccess means a clean exit with a PDF.
	OutcomeSuccess Outcome = iota
	// OutcomeSuccessWithWarnings means a non-zero exit that still produced
	// a PDF. Typesetters routinely exit non-zero on warnings.
	OutcomeSuccessWithWarnings
	OutcomeTimeout
	OutcomeCompilerMissing
	OutcomeNoArtifact
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSuccessWithWarnings:
		return "success_with_warnings"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeCompilerMissing:
		return "compiler_missing"
	case OutcomeNoArtifact:
		return "no_artifact"
	default:
		return "unknown"
	}
}

// Result describes one compiler invocation.
type Result struct {
	Outcome  Outcome
	PDFPath  string
	Log      string
	ExitCode int
	Duration time.Duration
	Cause    error
}

// OK reports whether a PDF was produced.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeSuccessWithWarnings
}

// Err converts a failed result into a *CompilationError, or returns nil.
func (r Result) Err() error {
	var kind Kind
	var msg string
	switch r.Outcome {
	case OutcomeSuccess, OutcomeSuccessWithWarnings:
		return nil
	case OutcomeCompilerMissing:
		kind, msg = KindCompilerMissing, "LaTeX compiler not found in PATH, install a TeX distribution (e.g. TeX Live)"
	case OutcomeTimeout:
		kind, msg = KindTimeout, "LaTeX compilation timed out"
	default:
		kind, msg = KindNoArtifact, "LaTeX compilation failed: PDF was not generated"
	}
	return &CompilationError{
		Kind:      kind,
		Message:   msg,
		LogOutput: r.Log,
		ExitCode:  r.ExitCode,
		Cause:     r.Cause,
	}
}
