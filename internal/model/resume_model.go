package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	ResumeKeyPrefix  = "resume-"
	ResumeKeyPattern = ResumeKeyPrefix + "*"
)

func ResumeKey(id string) string {
	return ResumeKeyPrefix + id
}

// JobTarget carries the optional job the résumé is analyzed against.
type JobTarget struct {
	CompanyName    string `json:"companyName,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

func (t *JobTarget) HasDescription() bool {
	return t != nil && strings.TrimSpace(t.JobDescription) != ""
}

// UploadedResume is the record stored under ResumeKey(ID). Feedback is nil
// until analysis completes and is then serialized as a JSON object; before
// that it is serialized as the empty string.
type UploadedResume struct {
	ID             string    `json:"id"`
	ResumePath     string    `json:"resumePath"`
	ImagePath      string    `json:"imagePath"`
	CompanyName    string    `json:"companyName,omitempty"`
	JobTitle       string    `json:"jobTitle,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty"`
	Feedback       *Feedback `json:"-"`
}

func (r *UploadedResume) IsAnalyzed() bool {
	return r.Feedback != nil
}

func (r *UploadedResume) IsJobMatch() bool {
	return strings.TrimSpace(r.JobDescription) != ""
}

type resumeAlias UploadedResume

type resumeJSON struct {
	resumeAlias
	Feedback json.RawMessage `json:"feedback"`
}

var emptyFeedback = json.RawMessage(`""`)

func (r UploadedResume) MarshalJSON() ([]byte, error) {
	fb := emptyFeedback
	if r.Feedback != nil {
		b, err := json.Marshal(r.Feedback)
		if err != nil {
			return nil, err
		}
		fb = b
	}
	return json.Marshal(resumeJSON{resumeAlias: resumeAlias(r), Feedback: fb})
}

func (r *UploadedResume) UnmarshalJSON(data []byte) error {
	var raw resumeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = UploadedResume(raw.resumeAlias)
	r.Feedback = nil

	fb := bytes.TrimSpace(raw.Feedback)
	if len(fb) == 0 || bytes.Equal(fb, []byte("null")) {
		return nil
	}
	if fb[0] == '"' {
		var s string
		if err := json.Unmarshal(fb, &s); err != nil {
			return fmt.Errorf("decode feedback: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		fb = []byte(s)
	}

	var f Feedback
	if err := json.Unmarshal(fb, &f); err != nil {
		return fmt.Errorf("decode feedback: %w", err)
	}
	r.Feedback = &f
	return nil
}
