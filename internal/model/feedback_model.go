package model

type TipType string

const (
	TipGood    TipType = "good"
	TipImprove TipType = "improve"
)

type Tip struct {
	Type        TipType `json:"type"`
	Tip         string  `json:"tip"`
	Explanation string  `json:"explanation,omitempty"`
}

// Category is one scored feedback section.
type Category struct {
	Score float64 `json:"score"`
	Tips  []Tip   `json:"tips"`
}

type CandidateInfo struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CurrentTitle string `json:"currentTitle,omitempty"`
}

type MatchingSkill struct {
	Skill    string `json:"skill"`
	Evidence string `json:"evidence"`
}

type MissingSkill struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"` // critical, important, nice-to-have
	Suggestion string `json:"suggestion"`
}

type ExperienceMatch struct {
	Requirement string `json:"requirement"`
	Match       string `json:"match"`
	MatchLevel  string `json:"matchLevel"` // excellent, good, partial, none
}

type JobMatch struct {
	MatchingSkills     []MatchingSkill   `json:"matchingSkills"`
	MissingSkills      []MissingSkill    `json:"missingSkills"`
	MatchingExperience []ExperienceMatch `json:"matchingExperience"`
	OverallAssessment  string            `json:"overallAssessment"`
}

// Feedback is the structured analysis returned by the AI. MatchScore and
// JobMatch are set together, and only for job-match submissions.
type Feedback struct {
	OverallScore  float64        `json:"overallScore"`
	MatchScore    *float64       `json:"matchScore,omitempty"`
	CandidateInfo *CandidateInfo `json:"candidateInfo,omitempty"`
	ATS           Category       `json:"ATS"`
	ToneAndStyle  Category       `json:"toneAndStyle"`
	Content       Category       `json:"content"`
	Structure     Category       `json:"structure"`
	Skills        Category       `json:"skills"`
	JobMatch      *JobMatch      `json:"jobMatch,omitempty"`
}

func (f *Feedback) Categories() map[string]Category {
	return map[string]Category{
		"ATS":          f.ATS,
		"toneAndStyle": f.ToneAndStyle,
		"content":      f.Content,
		"structure":    f.Structure,
		"skills":       f.Skills,
	}
}
