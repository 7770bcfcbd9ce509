package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AuxExtensions are the transient files a typesetter leaves behind.
var AuxExtensions = []string{".aux", ".log", ".out", ".synctex.gz"}

// CleanupArtifacts removes stem+ext from workDir for every extension given,
// or for AuxExtensions when none are. Missing files are not an error.
func CleanupArtifacts(workDir, stem string, exts ...string) error {
	if len(exts) == 0 {
		exts = AuxExtensions
	}
	var errs []error
	for _, ext := range exts {
		path := filepath.Join(workDir, stem+ext)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
