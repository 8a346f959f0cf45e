package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// JobSearcher finds jobs for a free-text query.
type JobSearcher interface {
	Search(ctx context.Context, query string) ([]model.JobListing, error)
}

// JSearchService queries the RapidAPI JSearch endpoint.
type JSearchService struct {
	client   *resty.Client
	numPages int
}

func NewJSearchService() *JSearchService {
	cfg := config.LoadJobSearchConfig()
	s := newJSearchService(cfg.BaseURL, cfg.Host, cfg.RapidAPIKey, cfg.NumPages)
	s.client.SetTimeout(cfg.Timeout)
	return s
}

func newJSearchService(baseURL, host, apiKey string, numPages int) *JSearchService {
	if numPages < 1 {
		numPages = 1
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("x-rapidapi-key", apiKey).
		SetHeader("x-rapidapi-host", host)
	return &JSearchService{client: client, numPages: numPages}
}

func (s *JSearchService) Search(ctx context.Context, query string) ([]model.JobListing, error) {
	return s.SearchPages(ctx, query, s.numPages)
}

func (s *JSearchService) SearchPages(ctx context.Context, query string, pages int) ([]model.JobListing, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if pages < 1 {
		pages = 1
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":     query,
			"page":      "1",
			"num_pages": strconv.Itoa(pages),
		}).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("jsearch request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("jsearch status %d: %s", resp.StatusCode(), gjson.Get(resp.String(), "message").String())
	}
	return mapJSearchJobs(resp.Body()), nil
}

func mapJSearchJobs(body []byte) []model.JobListing {
	jobs := []model.JobListing{}
	i := 0
	gjson.GetBytes(body, "data").ForEach(func(_, job gjson.Result) bool {
		jobs = append(jobs, model.JobListing{
			ID:             orDefault(job.Get("job_id").String(), fmt.Sprintf("job-%d", i)),
			Title:          orDefault(job.Get("job_title").String(), "Untitled"),
			Company:        orDefault(job.Get("employer_name").String(), "Unknown Company"),
			Location:       jobLocation(job.Get("job_city").String(), job.Get("job_country").String()),
			Description:    job.Get("job_description").String(),
			URL:            orDefault(job.Get("job_apply_link").String(), job.Get("job_google_link").String()),
			EmploymentType: orDefault(job.Get("job_employment_type").String(), "Full-time"),
			DatePosted:     job.Get("job_posted_at_datetime_utc").String(),
		})
		i++
		return true
	})
	return jobs
}

func jobLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case country != "":
		return country
	default:
		return "Remote"
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

var _ JobSearcher = (*JSearchService)(nil)
