package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/achint227/Resume-Generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
  "name": "backend",
  "basic_info": {"name": "Jane Doe", "email": "j@x.com", "phone": 5551234},
  "education": [{"university": "U", "degree": "BS", "info": ["GPA 3.9"]}],
  "experiences": [{"company": "Acme", "projects": [{"title": "Billing", "tools": ["Go"], "details": ["Rewrote billing"]}]}],
  "projects": [{"title": "X", "repo": "https://github.com/j/x"}],
  "keywords": "Go, SQL"
}`

func TestValidateResumeJSON_Valid(t *testing.T) {
	assert.NoError(t, ValidateResumeJSON([]byte(validResume)))
	assert.NoError(t, ValidateResumeJSON([]byte(`{"basic_info": {"name": "A", "email": "a@b.c"}, "keywords": ["Go"]}`)))
}

func TestValidateResumeJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"missing basic info", `{"name": "x"}`, "(root)"},
		{"missing email", `{"basic_info": {"name": "A"}}`, "basic_info"},
		{"empty name", `{"basic_info": {"name": "", "email": "a@b.c"}}`, "basic_info.name"},
		{"phone as object", `{"basic_info": {"name": "A", "email": "a@b.c", "phone": {}}}`, "basic_info.phone"},
		{"projects not a list", `{"basic_info": {"name": "A", "email": "a@b.c"}, "projects": "x"}`, "projects"},
		{"numeric id", `{"id": 7, "basic_info": {"name": "A", "email": "a@b.c"}}`, "id"},
		{"tool not a string", `{"basic_info": {"name": "A", "email": "a@b.c"}, "projects": [{"tools": [1]}]}`, "projects.0.tools.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResumeJSON([]byte(tt.json))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.NotEmpty(t, verr.Errors)
			fields := make([]string, len(verr.Errors))
			for i, fe := range verr.Errors {
				fields[i] = fe.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateResumeJSON_Malformed(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"basic_info":`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "(root)", verr.FirstField())
}

func TestDecodeResume(t *testing.T) {
	doc, err := DecodeResume([]byte(validResume))
	require.NoError(t, err)

	assert.Equal(t, "backend", doc.Name)
	assert.Equal(t, types.Phone("5551234"), doc.BasicInfo.Phone)
	assert.Equal(t, types.Keywords{"Go", "SQL"}, doc.Keywords)
	assert.NotNil(t, doc.Projects[0].Tools)
}

func TestDecodeResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(validResume), 0644))

	doc, err := DecodeResumeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.BasicInfo.Name)

	_, err = DecodeResumeFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
