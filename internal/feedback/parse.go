// Package feedback turns raw AI output into a validated model.Feedback.
package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/tidwall/gjson"
)

var ErrMalformed = errors.New("response does not contain a JSON object")

type Variant int

const (
	General Variant = iota
	JobMatch
)

func (v Variant) String() string {
	if v == JobMatch {
		return "job_match"
	}
	return "general"
}

func VariantFor(target *model.JobTarget) Variant {
	if target.HasDescription() {
		return JobMatch
	}
	return General
}

// ExtractJSON returns text itself when it is a JSON object, otherwise the
// span from the first '{' to the last '}' when that span is one.
func ExtractJSON(text string) (string, error) {
	t := strings.TrimSpace(text)
	if isObject(t) {
		return t, nil
	}
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		if candidate := t[start : end+1]; isObject(candidate) {
			return candidate, nil
		}
	}
	return "", ErrMalformed
}

func isObject(s string) bool {
	return gjson.Valid(s) && gjson.Parse(s).IsObject()
}

// Parse extracts, validates and decodes feedback. General feedback never
// carries matchScore or jobMatch; job-match feedback must carry both.
func Parse(text string, variant Variant) (*model.Feedback, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	if err := Validate(raw, variant); err != nil {
		return nil, err
	}

	var fb model.Feedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if variant == General {
		fb.MatchScore = nil
		fb.JobMatch = nil
	}
	return &fb, nil
}
