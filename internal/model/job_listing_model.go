package model

// JobListing is a job returned by a job-search source.
type JobListing struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
	URL            string `json:"url,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	DatePosted     string `json:"datePosted,omitempty"`
}
