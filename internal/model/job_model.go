package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Job is an admin-curated catalog entry searched by embedding distance.
type Job struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string          `json:"title"`
	Company        string          `json:"company"`
	Location       string          `json:"location,omitempty"`
	Description    string          `gorm:"type:text" json:"description"`
	URL            string          `json:"url,omitempty"`
	EmploymentType string          `json:"employmentType,omitempty"`
	Embedding      pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// EmbeddingText is the text embedded for semantic search.
func (j *Job) EmbeddingText() string {
	return j.Title + " at " + j.Company + "\n\n" + j.Description
}

func (j *Job) Listing() JobListing {
	return JobListing{
		ID:             j.ID.String(),
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		Description:    j.Description,
		URL:            j.URL,
		EmploymentType: j.EmploymentType,
		DatePosted:     j.CreatedAt.UTC().Format(time.RFC3339),
	}
}
