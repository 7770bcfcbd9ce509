package types

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResumeJSON = `{
	"name": "jane-backend",
	"basic_info": {
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": 5550100,
		"summary": "Backend engineer"
	},
	"education": [{"university": "State U", "degree": "BSc", "location": "Austin", "duration": "2010-2014"}],
	"experiences": [{"company": "Acme", "title": "SWE", "projects": [{"title": "Billing"}]}],
	"projects": [{"title": "x", "repo": "https://github.com/j/x"}],
	"keywords": "Go, PostgreSQL, ,go"
}`

func TestParseResume_FlexibleFields(t *testing.T) {
	r, err := ParseResume([]byte(sampleResumeJSON))
	require.NoError(t, err)

	assert.Equal(t, Phone("5550100"), r.BasicInfo.Phone)
	assert.Equal(t, Keywords{"Go", "PostgreSQL"}, r.Keywords)
	assert.Equal(t, "jane-backend", r.Name)
}

func TestParseResume_NormalizesLists(t *testing.T) {
	r, err := ParseResume([]byte(sampleResumeJSON))
	require.NoError(t, err)

	require.Len(t, r.Education, 1)
	assert.NotNil(t, r.Education[0].Info)
	require.Len(t, r.Experiences, 1)
	assert.NotNil(t, r.Experiences[0].Skills)
	assert.NotNil(t, r.Experiences[0].Tags)
	assert.NotNil(t, r.Experiences[0].Projects[0].Tools)
	assert.NotNil(t, r.Experiences[0].Projects[0].Details)
	assert.NotNil(t, r.Projects[0].Description)
	assert.NotNil(t, r.Projects[0].Tools)
}

func TestParseResume_MissingLists(t *testing.T) {
	r, err := ParseResume([]byte(`{"basic_info": {"name": "A", "email": "a@b.c"}}`))
	require.NoError(t, err)

	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.Experiences)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Keywords)
	assert.Empty(t, r.Keywords)
}

func TestParseResume_InvalidJSON(t *testing.T) {
	_, err := ParseResume([]byte(`{"basic_info": `))
	assert.Error(t, err)
}

func TestPhone_UnmarshalString(t *testing.T) {
	var p Phone
	require.NoError(t, json.Unmarshal([]byte(`"+1 (555) 0100"`), &p))
	assert.Equal(t, Phone("+1 (555) 0100"), p)
}

func TestPhone_UnmarshalNull(t *testing.T) {
	p := Phone("old")
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Equal(t, Phone(""), p)
}

func TestPhone_UnmarshalRejectsObject(t *testing.T) {
	var p Phone
	assert.Error(t, json.Unmarshal([]byte(`{"n": 1}`), &p))
}

func TestKeywords_UnmarshalList(t *testing.T) {
	var k Keywords
	require.NoError(t, json.Unmarshal([]byte(`[" Go ", "", "Kafka", "go"]`), &k))
	assert.Equal(t, Keywords{"Go", "Kafka"}, k)
}

func TestKeywords_MarshalNilAsEmptyList(t *testing.T) {
	data, err := json.Marshal(struct {
		K Keywords `json:"k"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k": []}`, string(data))
}

func TestMergeKeywords(t *testing.T) {
	got := MergeKeywords([]string{"Go", "Redis"}, []string{"redis", " SQL "})
	assert.Equal(t, Keywords{"Go", "Redis", "SQL"}, got)
}

func TestResume_Validate(t *testing.T) {
	r := &Resume{BasicInfo: BasicInfo{Name: "Jane", Email: "jane@example.com"}}
	assert.NoError(t, r.Validate())

	r.BasicInfo.Email = ""
	assert.Error(t, r.Validate())
}

func TestResume_ValidateConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := &Resume{BasicInfo: BasicInfo{Name: "Jane", Email: "jane@example.com"}}
			if i%2 == 1 {
				r.BasicInfo.Email = ""
				assert.Error(t, r.Validate())
				return
			}
			assert.NoError(t, r.Validate())
		}(i)
	}
	wg.Wait()
}

func TestResume_MapStringsIsPure(t *testing.T) {
	r, err := ParseResume([]byte(sampleResumeJSON))
	require.NoError(t, err)
	before, err := json.Marshal(r)
	require.NoError(t, err)

	upper := r.MapStrings(strings.ToUpper)

	after, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "receiver must not change")

	assert.Equal(t, "JANE DOE", upper.BasicInfo.Name)
	assert.Equal(t, "STATE U", upper.Education[0].University)
	assert.Equal(t, "BILLING", upper.Experiences[0].Projects[0].Title)
	assert.Equal(t, "HTTPS://GITHUB.COM/J/X", upper.Projects[0].Repo)
	assert.Equal(t, Keywords{"GO", "POSTGRESQL"}, upper.Keywords)
	assert.Equal(t, "jane-backend", upper.Name, "resume name is an identifier")
}

func TestResume_CloneIsDeep(t *testing.T) {
	r, err := ParseResume([]byte(sampleResumeJSON))
	require.NoError(t, err)

	c := r.Clone()
	c.Education[0].University = "Other"
	c.Keywords[0] = "Rust"

	assert.Equal(t, "State U", r.Education[0].University)
	assert.Equal(t, "Go", r.Keywords[0])
}
