package schemas

import (
	"testing"

	"github.com/jonathan/career-platform/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsedResumeValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(schemas.ParsedResume())
	require.NoError(t, err, "embedded schema must compile")
	return v
}

func TestValidate_AcceptsParserShapes(t *testing.T) {
	v := parsedResumeValidator(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"empty object", `{}`},
		{"full document", `{
			"job_titles": ["Backend Engineer"],
			"suited_roles": [
				"Backend Engineer",
				{"role": "SRE", "match_percent": 75}
			],
			"expected_salary_range": {"min": 90000, "max": 120000},
			"skills": ["Go", "PostgreSQL"],
			"skills_detailed": ["Go", {"name": "Kafka", "proficiency": "intermediate"}],
			"projects": [{"title": "Chat Server", "technologies": ["Go"]}],
			"location": "Berlin",
			"summary": "Platform engineer.",
			"education": [{"school": "TU Berlin"}],
			"experiences": [{"company": "Acme", "years": 3}]
		}`},
		{"legacy flat salary", `{"job_title": "SRE", "salary_min": 80000}`},
		{"unknown extra fields tolerated", `{"languages": ["en", "de"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate([]byte(tt.doc)))
		})
	}
}

func TestValidate_RejectsMalformedDocuments(t *testing.T) {
	v := parsedResumeValidator(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"skills not strings", `{"skills": [1, 2]}`},
		{"suited role missing name", `{"suited_roles": [{"match_percent": 90}]}`},
		{"match percent out of range", `{"suited_roles": [{"role": "SRE", "match_percent": 140}]}`},
		{"negative salary", `{"salary_min": -1}`},
		{"project without title", `{"projects": [{"description": "no title"}]}`},
		{"top level array", `["not", "an", "object"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestValidate_ReportsFieldPaths(t *testing.T) {
	v := parsedResumeValidator(t)

	err := v.Validate([]byte(`{"salary_min": -5, "location": 42}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.GreaterOrEqual(t, len(ve.Errors), 2)
	assert.Contains(t, err.Error(), "salary_min")
}
