package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadedResume_PendingFeedbackIsEmptyString(t *testing.T) {
	r := UploadedResume{ID: "abc", ResumePath: "resumes/abc.pdf", ImagePath: "images/abc.png"}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","resumePath":"resumes/abc.pdf","imagePath":"images/abc.png","feedback":""}`, string(b))

	var back UploadedResume
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.IsAnalyzed())
	assert.Equal(t, "abc", back.ID)
}

func TestUploadedResume_FeedbackObject(t *testing.T) {
	score := 70.0
	r := UploadedResume{
		ID:             "abc",
		JobDescription: "Build APIs",
		Feedback: &Feedback{
			OverallScore: 82,
			MatchScore:   &score,
			ATS:          Category{Score: 90, Tips: []Tip{{Type: TipGood, Tip: "clean layout"}}},
			JobMatch:     &JobMatch{OverallAssessment: "solid"},
		},
	}

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	fb, ok := raw["feedback"].(map[string]any)
	require.True(t, ok, "feedback should be an object")
	assert.EqualValues(t, 82, fb["overallScore"])

	var back UploadedResume
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, back.IsAnalyzed())
	assert.True(t, back.IsJobMatch())
	assert.Equal(t, 70.0, *back.Feedback.MatchScore)
	assert.Equal(t, "clean layout", back.Feedback.ATS.Tips[0].Tip)
}

func TestUploadedResume_FeedbackEncodedAsString(t *testing.T) {
	data := `{"id":"abc","resumePath":"p","imagePath":"i","feedback":"{\"overallScore\":55}"}`

	var r UploadedResume
	require.NoError(t, json.Unmarshal([]byte(data), &r))
	require.True(t, r.IsAnalyzed())
	assert.Equal(t, 55.0, r.Feedback.OverallScore)
}

func TestUploadedResume_BadFeedback(t *testing.T) {
	var r UploadedResume
	err := json.Unmarshal([]byte(`{"id":"abc","feedback":"not json"}`), &r)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","feedback":null}`), &r))
	assert.False(t, r.IsAnalyzed())
}

func TestJobTarget_HasDescription(t *testing.T) {
	var nilTarget *JobTarget
	assert.False(t, nilTarget.HasDescription())
	assert.False(t, (&JobTarget{JobTitle: "Dev", JobDescription: "   "}).HasDescription())
	assert.True(t, (&JobTarget{JobDescription: "Go"}).HasDescription())
}
