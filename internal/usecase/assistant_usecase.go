package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/resumind/internal/metrics"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/prompt"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/fadilmartias/resumind/internal/util"
	"github.com/gofiber/fiber/v2/log"
	"github.com/tidwall/gjson"
)

var (
	ErrNotAnalyzed      = errors.New("resume has not been analyzed yet")
	ErrMissingJobTarget = errors.New("company name and job title are required")
	ErrEmptyAIResponse  = errors.New("AI returned an empty response")
	ErrNoJobsFound      = errors.New("no jobs found")
)

const (
	suggestionLimit     = 3
	suggestionCandidate = 10

	defaultCandidateName  = "Candidate"
	defaultCandidateEmail = "email@example.com"
	defaultCandidatePhone = "(555) 123-4567"
)

var idArrayPattern = regexp.MustCompile(`\[.*?\]`)

// CoverLetterRequest overrides the job target stored on the record.
type CoverLetterRequest struct {
	CompanyName    string
	JobTitle       string
	JobDescription string
}

// AssistantUsecase serves the AI features derived from stored feedback.
type AssistantUsecase struct {
	resumes  *ResumeUsecase
	ai       service.AIProvider
	jobs     service.JobSearcher
	blobs    storage.BlobStore
	metrics  *metrics.PipelineMetrics
	readText func(ctx context.Context, pdf []byte) (string, error)
}

func NewAssistantUsecase(resumes *ResumeUsecase, ai service.AIProvider, jobs service.JobSearcher, blobs storage.BlobStore, m *metrics.PipelineMetrics) *AssistantUsecase {
	return &AssistantUsecase{
		resumes:  resumes,
		ai:       ai,
		jobs:     jobs,
		blobs:    blobs,
		metrics:  m,
		readText: util.ExtractPDFText,
	}
}

func (uc *AssistantUsecase) analyzed(ctx context.Context, id string) (*model.UploadedResume, error) {
	r, err := uc.resumes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsAnalyzed() {
		return nil, ErrNotAnalyzed
	}
	return r, nil
}

type pagedSearcher interface {
	SearchPages(ctx context.Context, query string, pages int) ([]model.JobListing, error)
}

// SearchJobs queries the configured job source directly. pages is honored
// by sources that paginate.
func (uc *AssistantUsecase) SearchJobs(ctx context.Context, query string, pages int) ([]model.JobListing, error) {
	if ps, ok := uc.jobs.(pagedSearcher); ok && pages > 0 {
		return ps.SearchPages(ctx, query, pages)
	}
	return uc.jobs.Search(ctx, query)
}

// SuggestJobs searches jobs for the résumé's leading skill and lets the AI
// pick the best three. Unusable AI answers fall back to the first three.
func (uc *AssistantUsecase) SuggestJobs(ctx context.Context, id string) ([]model.JobListing, error) {
	r, err := uc.analyzed(ctx, id)
	if err != nil {
		return nil, err
	}

	cvSkills := skillSummary(r.Feedback)
	query := strings.TrimSpace(leadingSkill(cvSkills) + " developer")

	jobs, err := uc.jobs.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, ErrNoJobsFound
	}

	candidates := jobs[:min(len(jobs), suggestionCandidate)]
	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, err
	}

	resp, err := uc.ai.Chat(ctx, prompt.JobSuggestionPrompt(cvSkills, string(payload)))
	uc.metrics.ObserveAI("job_suggestions", err)
	if err != nil {
		return nil, fmt.Errorf("rank jobs: %w", err)
	}
	if resp == nil {
		return nil, ErrEmptyAIResponse
	}
	text, _ := resp.Text()

	picked := pickJobs(jobs, text)
	if len(picked) == 0 {
		log.Debug("job ranking unusable, falling back to search order")
		return jobs[:min(len(jobs), suggestionLimit)], nil
	}
	return picked, nil
}

func skillSummary(fb *model.Feedback) string {
	tips := make([]string, 0, len(fb.Skills.Tips))
	for _, t := range fb.Skills.Tips {
		tips = append(tips, t.Tip)
	}
	if len(tips) == 0 {
		return "No skills"
	}
	return strings.Join(tips, ", ")
}

func leadingSkill(cvSkills string) string {
	first := strings.TrimSpace(strings.Split(cvSkills, ",")[0])
	if first == "" || cvSkills == "No skills" {
		return "software"
	}
	return first
}

// pickJobs keeps jobs whose id appears in the first JSON array of text, in
// search order, capped at three.
func pickJobs(jobs []model.JobListing, text string) []model.JobListing {
	raw := idArrayPattern.FindString(text)
	if raw == "" || !gjson.Valid(raw) {
		return nil
	}
	wanted := make(map[string]bool)
	for _, v := range gjson.Parse(raw).Array() {
		wanted[v.String()] = true
	}
	out := make([]model.JobListing, 0, suggestionLimit)
	for _, j := range jobs {
		if wanted[j.ID] {
			out = append(out, j)
			if len(out) == suggestionLimit {
				break
			}
		}
	}
	return out
}

// CoverLetter drafts a letter for the stored or overridden job target and
// returns the AI text verbatim.
func (uc *AssistantUsecase) CoverLetter(ctx context.Context, id string, req CoverLetterRequest) (string, error) {
	r, err := uc.analyzed(ctx, id)
	if err != nil {
		return "", err
	}

	in := coverLetterInput(r, req)
	if in.CompanyName == "" || in.JobTitle == "" {
		return "", ErrMissingJobTarget
	}

	resp, err := uc.ai.Chat(ctx, prompt.CoverLetterPrompt(in))
	uc.metrics.ObserveAI("cover_letter", err)
	if err != nil {
		return "", fmt.Errorf("generate cover letter: %w", err)
	}
	return nonEmptyText(resp)
}

func coverLetterInput(r *model.UploadedResume, req CoverLetterRequest) prompt.CoverLetterInput {
	fb := r.Feedback
	in := prompt.CoverLetterInput{
		CandidateName:  defaultCandidateName,
		CandidateEmail: defaultCandidateEmail,
		CandidatePhone: defaultCandidatePhone,
		CompanyName:    firstNonEmpty(req.CompanyName, r.CompanyName),
		JobTitle:       firstNonEmpty(req.JobTitle, r.JobTitle),
		JobDescription: firstNonEmpty(req.JobDescription, r.JobDescription),
		MatchScore:     fb.MatchScore,
		OverallScore:   fb.OverallScore,
		ATSScore:       fb.ATS.Score,
	}
	if ci := fb.CandidateInfo; ci != nil {
		in.CandidateName = firstNonEmpty(ci.Name, in.CandidateName)
		in.CandidateEmail = firstNonEmpty(ci.Email, in.CandidateEmail)
		in.CandidatePhone = firstNonEmpty(ci.Phone, in.CandidatePhone)
		in.CurrentTitle = ci.CurrentTitle
	}

	var matched, missing []string
	if jm := fb.JobMatch; jm != nil {
		for _, s := range jm.MatchingSkills {
			matched = append(matched, fmt.Sprintf("- %s: %s", s.Skill, s.Evidence))
		}
		for _, s := range jm.MissingSkills {
			missing = append(missing, fmt.Sprintf("- %s (%s)", s.Skill, s.Importance))
		}
		in.OverallAssessment = jm.OverallAssessment
	}
	if len(matched) == 0 {
		for _, c := range []model.Category{fb.Skills, fb.Content, fb.ATS} {
			for _, t := range c.Tips {
				if t.Type == model.TipGood {
					matched = append(matched, "- "+t.Tip)
				}
			}
		}
	}
	in.MatchedSkills = strings.Join(matched, "\n")
	in.MissingSkills = strings.Join(missing, "\n")
	return in
}

// Chat answers a question about the résumé using its feedback and, when
// readable, the PDF text.
func (uc *AssistantUsecase) Chat(ctx context.Context, id, message string) (string, error) {
	r, err := uc.analyzed(ctx, id)
	if err != nil {
		return "", err
	}

	resumeText := ""
	if pdf, err := uc.blobs.Read(ctx, r.ResumePath); err != nil {
		log.Warnw("resume text unavailable for chat", "id", id, "error", err)
	} else if resumeText, err = uc.readText(ctx, pdf); err != nil {
		log.Warnw("resume text unavailable for chat", "id", id, "error", err)
		resumeText = ""
	}

	resp, err := uc.ai.Chat(ctx, prompt.ResumeChatPrompt(chatContext(r), resumeText, message))
	uc.metrics.ObserveAI("chat", err)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return nonEmptyText(resp)
}

func chatContext(r *model.UploadedResume) string {
	fb := r.Feedback
	var b strings.Builder
	b.WriteString("Resume Analysis Context:\n")
	fmt.Fprintf(&b, "- Overall Score: %g/100\n", fb.OverallScore)
	fmt.Fprintf(&b, "- ATS Score: %g/100\n", fb.ATS.Score)
	fmt.Fprintf(&b, "- Company: %s\n", firstNonEmpty(r.CompanyName, "N/A"))
	fmt.Fprintf(&b, "- Job Title: %s\n", firstNonEmpty(r.JobTitle, "N/A"))

	b.WriteString("\nKey Strengths:\n")
	writeTips(&b, fb.ATS.Tips, model.TipGood, false)
	b.WriteString("\nAreas for Improvement:\n")
	writeTips(&b, fb.ATS.Tips, model.TipImprove, false)
	b.WriteString("\nSkills Analysis:\n")
	writeTips(&b, fb.Skills.Tips, "", true)
	b.WriteString("\nContent Analysis:\n")
	writeTips(&b, fb.Content.Tips, "", true)
	return strings.TrimSpace(b.String())
}

// writeTips writes tips of the given type, or all tips when only is empty.
func writeTips(b *strings.Builder, tips []model.Tip, only model.TipType, detailed bool) {
	for _, t := range tips {
		if only != "" && t.Type != only {
			continue
		}
		if detailed {
			fmt.Fprintf(b, "- [%s] %s: %s\n", t.Type, t.Tip, t.Explanation)
		} else {
			fmt.Fprintf(b, "- %s\n", t.Tip)
		}
	}
}

func nonEmptyText(resp *service.AIResponse) (string, error) {
	text, ok := resp.Text()
	if !ok || text == "" {
		return "", ErrEmptyAIResponse
	}
	return text, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
