package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultBinary is the typesetter used when none is configured.
	DefaultBinary = "xelatex"
	// DefaultTimeout bounds a single compiler invocation.
	DefaultTimeout = 60 * time.Second
	// waitDelay bounds how long Run waits for output pipes after the
	// process has been killed.
	waitDelay = 2 * time.Second
)

// DefaultArgs are passed before the source file name.
var DefaultArgs = []string{"-synctex=1", "-interaction=nonstopmode"}

// Job names a source file inside a working directory. The compiler runs
// with WorkDir as its current directory so that class files and fonts
// stored next to the source resolve.
type Job struct {
	WorkDir string
	TexFile string
}

// Stem is the file name without the .tex extension.
func (j Job) Stem() string {
	return strings.TrimSuffix(j.TexFile, ".tex")
}

// PDFPath is where the compiler is expected to write its output.
func (j Job) PDFPath() string {
	return filepath.Join(j.WorkDir, j.Stem()+".pdf")
}

// Compiler turns a LaTeX source file into a PDF.
type Compiler interface {
	Compile(ctx context.Context, job Job) Result
}

// Config holds typesetter settings.
type Config struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

// LaTeX runs an external typesetter such as xelatex or pdflatex.
type LaTeX struct {
	binary  string
	args    []string
	timeout time.Duration
}

// NewLaTeX creates a compiler, filling unset fields with defaults.
func NewLaTeX(cfg Config) *LaTeX {
	c := &LaTeX{
		binary:  cfg.Binary,
		args:    cfg.Args,
		timeout: cfg.Timeout,
	}
	if c.binary == "" {
		c.binary = DefaultBinary
	}
	if c.args == nil {
		c.args = DefaultArgs
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// Binary returns the configured typesetter name.
func (c *LaTeX) Binary() string {
	return c.binary
}

// Compile runs the typesetter once. A launched process is never cancelled
// by ctx; it ends on its own or is killed when the timeout elapses.
func (c *LaTeX) Compile(ctx context.Context, job Job) Result {
	start := time.Now()

	binPath, err := exec.LookPath(c.binary)
	if err != nil {
		return Result{Outcome: OutcomeCompilerMissing, Cause: err}
	}

	// A PDF left over from an earlier run must not count as output.
	pdfPath := job.PDFPath()
	if err := os.Remove(pdfPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{Outcome: OutcomeNoArtifact, Cause: err}
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	args := make([]string, 0, len(c.args)+1)
	args = append(args, c.args...)
	args = append(args, job.TexFile)

	cmd := exec.CommandContext(runCtx, binPath, args...)
	cmd.Dir = job.WorkDir
	cmd.WaitDelay = waitDelay

	// Same writer for both streams: exec serializes the writes.
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	runErr := cmd.Run()

	result := Result{
		Log:      output.String(),
		Duration: time.Since(start),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.Outcome = OutcomeTimeout
		result.Cause = runCtx.Err()
		return result
	}

	if _, err := os.Stat(pdfPath); err != nil {
		result.Outcome = OutcomeNoArtifact
		result.Cause = runErr
		return result
	}

	result.PDFPath = pdfPath
	if runErr != nil {
		result.Outcome = OutcomeSuccessWithWarnings
		result.Cause = runErr
		return result
	}

	result.Outcome = OutcomeSuccess
	return result
}
