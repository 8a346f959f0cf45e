package feedback

import (
	"errors"
	"testing"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const category = `{"score": 70, "tips": [{"type": "good", "tip": "Clear layout"}, {"type": "improve", "tip": "Add metrics", "explanation": "Quantify impact."}]}`

const generalDoc = `{"overallScore": 80, "candidateInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
 "ATS": ` + category + `, "toneAndStyle": ` + category + `, "content": ` + category + `,
 "structure": ` + category + `, "skills": ` + category + `}`

const jobMatchDoc = `{"overallScore": 78, "matchScore": 64,
 "ATS": ` + category + `, "toneAndStyle": ` + category + `, "content": ` + category + `,
 "structure": ` + category + `, "skills": ` + category + `,
 "jobMatch": {
   "matchingSkills": [{"skill": "Go", "evidence": "Four years building Go services"}],
   "missingSkills": [{"skill": "Kubernetes", "importance": "critical", "suggestion": "List cluster work"}],
   "matchingExperience": [{"requirement": "APIs", "match": "Built REST APIs", "matchLevel": "good"}],
   "overallAssessment": "Solid fit."
 }}`

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "direct object", in: `{"a":1}`, want: `{"a":1}`},
		{name: "whitespace around object", in: "\n  {\"a\":1}\n", want: `{"a":1}`},
		{name: "embedded in prose", in: `Here is the result: {"a":{"b":2}} Thanks!`, want: `{"a":{"b":2}}`},
		{name: "markdown fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "no braces", in: "sorry, I cannot help", wantErr: true},
		{name: "array is not an object", in: `[1,2,3]`, wantErr: true},
		{name: "span is not valid json", in: `prefix {"a": } suffix`, wantErr: true},
		{name: "two objects span is invalid", in: `{"a":1} and {"b":2}`, wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestParse_EmbeddedObjectFallback(t *testing.T) {
	text := "Here is the result: " + generalDoc + " Thanks!"

	fb, err := Parse(text, General)
	require.NoError(t, err)
	assert.Equal(t, 80.0, fb.OverallScore)
	require.NotNil(t, fb.CandidateInfo)
	assert.Equal(t, "Ada Lovelace", fb.CandidateInfo.Name)
	assert.Len(t, fb.Skills.Tips, 2)
	assert.Equal(t, model.TipImprove, fb.Skills.Tips[1].Type)
}

func TestParse_GeneralStripsJobFields(t *testing.T) {
	fb, err := Parse(jobMatchDoc, General)
	require.NoError(t, err)
	assert.Nil(t, fb.MatchScore)
	assert.Nil(t, fb.JobMatch)
}

func TestParse_JobMatch(t *testing.T) {
	fb, err := Parse(jobMatchDoc, JobMatch)
	require.NoError(t, err)
	require.NotNil(t, fb.MatchScore)
	assert.Equal(t, 64.0, *fb.MatchScore)
	require.NotNil(t, fb.JobMatch)
	assert.Equal(t, "Kubernetes", fb.JobMatch.MissingSkills[0].Skill)
	assert.Equal(t, "Solid fit.", fb.JobMatch.OverallAssessment)
}

func TestParse_JobMatchRequiresBothFields(t *testing.T) {
	_, err := Parse(generalDoc, JobMatch)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, JobMatch, schemaErr.Variant)
	assert.Len(t, schemaErr.Errors, 2)
	assert.Contains(t, schemaErr.Error(), "matchScore")
	assert.Contains(t, schemaErr.Error(), "jobMatch")
}

const nullTipCategory = `{"score": 60, "tips": [{"type": "improve", "tip": "Add a summary", "explanation": null}]}`

func TestParse_AcceptsNullOptionalFields(t *testing.T) {
	categories := `"ATS": ` + nullTipCategory + `, "toneAndStyle": ` + category + `, "content": ` + category +
		`, "structure": ` + category + `, "skills": ` + category

	tests := []struct {
		name    string
		doc     string
		variant Variant
	}{
		{name: "general with null matchScore", doc: `{"overallScore": 70, "matchScore": null, ` + categories + `}`, variant: General},
		{name: "general with null jobMatch", doc: `{"overallScore": 70, "jobMatch": null, ` + categories + `}`, variant: General},
		{name: "general with both null", doc: `{"overallScore": 70, "matchScore": null, "jobMatch": null, ` + categories + `}`, variant: General},
		{name: "job match with null explanation", doc: `{"overallScore": 70, "matchScore": 55, ` + categories +
			`, "jobMatch": {"matchingSkills": [], "missingSkills": [], "matchingExperience": [], "overallAssessment": "ok"}}`, variant: JobMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := Parse(tt.doc, tt.variant)
			require.NoError(t, err)
			assert.Equal(t, 70.0, fb.OverallScore)
			assert.Empty(t, fb.ATS.Tips[0].Explanation)
			if tt.variant == General {
				assert.Nil(t, fb.MatchScore)
				assert.Nil(t, fb.JobMatch)
			}
		})
	}
}

func TestParse_JobMatchRejectsNullJobFields(t *testing.T) {
	doc := `{"overallScore": 70, "matchScore": null, "jobMatch": null, "ATS": ` + category +
		`, "toneAndStyle": ` + category + `, "content": ` + category + `, "structure": ` + category + `, "skills": ` + category + `}`

	_, err := Parse(doc, JobMatch)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Contains(t, schemaErr.Error(), "matchScore")
	assert.Contains(t, schemaErr.Error(), "jobMatch")
}

func TestParse_RejectsIncompleteObject(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing categories", doc: `{"overallScore": 50}`},
		{name: "score out of range", doc: `{"overallScore": 140, "ATS": ` + category + `, "toneAndStyle": ` + category +
			`, "content": ` + category + `, "structure": ` + category + `, "skills": ` + category + `}`},
		{name: "unknown tip type", doc: `{"overallScore": 40, "ATS": {"score": 1, "tips": [{"type": "meh", "tip": "x"}]}, "toneAndStyle": ` +
			category + `, "content": ` + category + `, "structure": ` + category + `, "skills": ` + category + `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := Parse(tt.doc, General)
			assert.Nil(t, fb)
			var schemaErr *SchemaError
			assert.True(t, errors.As(err, &schemaErr), "got %v", err)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("the model refused", General)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVariantFor(t *testing.T) {
	assert.Equal(t, General, VariantFor(nil))
	assert.Equal(t, General, VariantFor(&model.JobTarget{JobTitle: "Backend Engineer", JobDescription: "  "}))
	assert.Equal(t, JobMatch, VariantFor(&model.JobTarget{JobDescription: "Go, Kubernetes"}))
	assert.Equal(t, "job_match", JobMatch.String())
	assert.Equal(t, "general", General.String())
}
