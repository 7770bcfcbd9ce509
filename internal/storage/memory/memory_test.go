package memory

import (
	"testing"

	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/storage/storagetest"
)

func TestResumeRepository(t *testing.T) {
	storagetest.RunResumeRepository(t, func(t *testing.T) storage.ResumeRepository {
		return NewResumeRepository()
	})
}

func TestPDFCacheRepository(t *testing.T) {
	storagetest.RunPDFCacheRepository(t, func(t *testing.T) storage.PDFCacheRepository {
		return NewPDFCacheRepository()
	})
}
