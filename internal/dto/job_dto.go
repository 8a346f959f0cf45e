package dto

import "github.com/fadilmartias/resumind/internal/model"

type JobSearchQuery struct {
	Query string `query:"query" json:"query" validate:"required,max=200"`
	Pages int    `query:"pages" json:"pages" validate:"omitempty,min=1,max=5"`
}

type CreateJobRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	Company        string `json:"company" validate:"required,max=200"`
	Location       string `json:"location" validate:"max=200"`
	Description    string `json:"description" validate:"required,max=20000"`
	URL            string `json:"url" validate:"omitempty,url"`
	EmploymentType string `json:"employmentType" validate:"max=50"`
}

func (r *CreateJobRequest) Job() *model.Job {
	return &model.Job{
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		Description:    r.Description,
		URL:            r.URL,
		EmploymentType: r.EmploymentType,
	}
}
