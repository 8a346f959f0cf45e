package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobMatchInstructions_EmbedsJob(t *testing.T) {
	got := JobMatchInstructions("Backend Engineer", "We run Go services on Kubernetes.")
	assert.Contains(t, got, "Backend Engineer")
	assert.Contains(t, got, "We run Go services on Kubernetes.")
	assert.Contains(t, got, "jobMatch")
	assert.Contains(t, got, FeedbackFormat)
	assert.Contains(t, got, "ENGLISH ONLY")
}

func TestGeneralInstructions(t *testing.T) {
	got := GeneralInstructions()
	assert.Contains(t, got, FeedbackFormat)
	assert.Contains(t, got, "ENGLISH ONLY")
	assert.Contains(t, got, "single JSON object")
}

func TestCoverLetterPrompt_OptionalSections(t *testing.T) {
	score := 82.0
	full := CoverLetterPrompt(CoverLetterInput{
		CandidateName: "Ada", CandidateEmail: "ada@example.com", CandidatePhone: "1",
		CurrentTitle: "Engineer", CompanyName: "Acme", JobTitle: "Go Dev", JobDescription: "Go",
		MatchScore: &score, MatchedSkills: "- Go", MissingSkills: "- Rust", OverallAssessment: "Strong",
		OverallScore: 75, ATSScore: 70,
	})
	assert.Contains(t, full, "- Current Role: Engineer")
	assert.Contains(t, full, "Match Score: 82/100")
	assert.Contains(t, full, "Areas the candidate is working to improve:\n- Rust")
	assert.Contains(t, full, "Overall Job Fit: Strong")
	assert.Contains(t, full, "Overall CV Score: 75/100")

	bare := CoverLetterPrompt(CoverLetterInput{CandidateName: "Ada", CompanyName: "Acme", JobTitle: "Go Dev"})
	assert.NotContains(t, bare, "Current Role")
	assert.NotContains(t, bare, "Match Score")
	assert.NotContains(t, bare, "Job Description:")
	assert.NotContains(t, bare, "Overall Job Fit")
}

func TestResumeChatPrompt(t *testing.T) {
	withText := ResumeChatPrompt("Overall Score: 80/100", "Ada Lovelace, Analyst", "How do I improve?")
	assert.Contains(t, withText, "Resume Full Text:\nAda Lovelace, Analyst")
	assert.Contains(t, withText, "User Question: How do I improve?")

	withoutText := ResumeChatPrompt("ctx", "", "q")
	assert.NotContains(t, withoutText, "Resume Full Text:")
}
