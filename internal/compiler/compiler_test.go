package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler writes an executable shell script standing in for xelatex.
// The script sees the source file as its last argument.
func fakeCompiler(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script compilers need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fakelatex")
	script := "#!/bin/sh\nfor a; do src=$a; done\nstem=${src%.tex}\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func writeSource(t *testing.T, dir string) Job {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jane_classic_abcd1234.tex"), []byte(`\documentclass{article}`), 0644))
	return Job{WorkDir: dir, TexFile: "jane_classic_abcd1234.tex"}
}

func TestNewLaTeX_Defaults(t *testing.T) {
	c := NewLaTeX(Config{})
	assert.Equal(t, DefaultBinary, c.binary)
	assert.Equal(t, DefaultArgs, c.args)
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestJob_Paths(t *testing.T) {
	job := Job{WorkDir: "/tmp/work", TexFile: "a_resume_12345678.tex"}
	assert.Equal(t, "a_resume_12345678", job.Stem())
	assert.Equal(t, filepath.Join("/tmp/work", "a_resume_12345678.pdf"), job.PDFPath())
}

func TestCompile_CompilerMissing(t *testing.T) {
	c := NewLaTeX(Config{Binary: "definitely-not-a-latex-binary"})
	res := c.Compile(context.Background(), writeSource(t, t.TempDir()))

	assert.Equal(t, OutcomeCompilerMissing, res.Outcome)
	assert.False(t, res.OK())

	var cerr *CompilationError
	require.ErrorAs(t, res.Err(), &cerr)
	assert.Equal(t, KindCompilerMissing, cerr.Kind)
	assert.False(t, cerr.Retryable())
}

func TestCompile_Success(t *testing.T) {
	bin := fakeCompiler(t, `echo "This is XeTeX"; printf '%%PDF-1.4' > "$stem.pdf"`)
	dir := t.TempDir()
	job := writeSource(t, dir)

	res := NewLaTeX(Config{Binary: bin}).Compile(context.Background(), job)

	require.Equal(t, OutcomeSuccess, res.Outcome, res.Log)
	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
	assert.Equal(t, job.PDFPath(), res.PDFPath)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Log, "This is XeTeX")
}

func TestCompile_RunsInWorkDir(t *testing.T) {
	bin := fakeCompiler(t, `pwd > where.txt; printf x > "$stem.pdf"`)
	dir := t.TempDir()

	res := NewLaTeX(Config{Binary: bin}).Compile(context.Background(), writeSource(t, dir))
	require.True(t, res.OK())

	data, err := os.ReadFile(filepath.Join(dir, "where.txt"))
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, string(bytes.TrimSpace(data)))
}

func TestCompile_WarningsWithArtifact(t *testing.T) {
	bin := fakeCompiler(t, `echo "LaTeX Warning: Reference undefined" >&2; printf x > "$stem.pdf"; exit 1`)

	res := NewLaTeX(Config{Binary: bin}).Compile(context.Background(), writeSource(t, t.TempDir()))

	assert.Equal(t, OutcomeSuccessWithWarnings, res.Outcome)
	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Log, "Reference undefined")
}

func TestCompile_NoArtifactCapturesLog(t *testing.T) {
	bin := fakeCompiler(t, `echo "! Undefined control sequence."; exit 1`)

	res := NewLaTeX(Config{Binary: bin}).Compile(context.Background(), writeSource(t, t.TempDir()))

	assert.Equal(t, OutcomeNoArtifact, res.Outcome)
	assert.Empty(t, res.PDFPath)

	var cerr *CompilationError
	require.ErrorAs(t, res.Err(), &cerr)
	assert.Equal(t, KindNoArtifact, cerr.Kind)
	assert.Contains(t, cerr.LogOutput, "Undefined control sequence")
	assert.Equal(t, 1, cerr.ExitCode)
}

func TestCompile_StalePDFIgnored(t *testing.T) {
	bin := fakeCompiler(t, `exit 0`)
	dir := t.TempDir()
	job := writeSource(t, dir)
	require.NoError(t, os.WriteFile(job.PDFPath(), []byte("old"), 0644))

	res := NewLaTeX(Config{Binary: bin}).Compile(context.Background(), job)

	assert.Equal(t, OutcomeNoArtifact, res.Outcome)
	assert.NoFileExists(t, job.PDFPath())
}

func TestCompile_Timeout(t *testing.T) {
	bin := fakeCompiler(t, `exec sleep 5`)

	start := time.Now()
	res := NewLaTeX(Config{Binary: bin, Timeout: 200 * time.Millisecond}).Compile(context.Background(), writeSource(t, t.TempDir()))

	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Equal(t, OutcomeTimeout, res.Outcome)

	var cerr *CompilationError
	require.ErrorAs(t, res.Err(), &cerr)
	assert.Equal(t, KindTimeout, cerr.Kind)
	assert.True(t, cerr.Retryable())
}

func TestCompile_CallerCancelDoesNotKillProcess(t *testing.T) {
	bin := fakeCompiler(t, `sleep 0.3; printf x > "$stem.pdf"`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewLaTeX(Config{Binary: bin}).Compile(ctx, writeSource(t, t.TempDir()))

	assert.Equal(t, OutcomeSuccess, res.Outcome, res.Log)
}

func TestCleanupArtifacts(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".aux", ".log", ".pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc"+ext), []byte("x"), 0644))
	}

	require.NoError(t, CleanupArtifacts(dir, "doc"))

	assert.NoFileExists(t, filepath.Join(dir, "doc.aux"))
	assert.NoFileExists(t, filepath.Join(dir, "doc.log"))
	assert.FileExists(t, filepath.Join(dir, "doc.pdf"))

	require.NoError(t, CleanupArtifacts(dir, "doc", ".pdf"))
	assert.NoFileExists(t, filepath.Join(dir, "doc.pdf"))
}

// minimalPDF builds a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestVerifyPDF(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "ok.pdf")
	require.NoError(t, os.WriteFile(valid, minimalPDF(), 0644))
	assert.NoError(t, VerifyPDF(valid))

	garbage := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pdf at all"), 0644))
	err := VerifyPDF(garbage)
	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindInvalidArtifact, cerr.Kind)
}
