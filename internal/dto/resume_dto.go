package dto

import "github.com/fadilmartias/resumind/internal/model"

// AnalyzeResumeForm holds the optional job target sent with the upload.
type AnalyzeResumeForm struct {
	CompanyName    string `form:"companyName" json:"companyName" validate:"max=200"`
	JobTitle       string `form:"jobTitle" json:"jobTitle" validate:"max=200"`
	JobDescription string `form:"jobDescription" json:"jobDescription" validate:"max=20000"`
}

func (f *AnalyzeResumeForm) JobTarget() *model.JobTarget {
	if f.CompanyName == "" && f.JobTitle == "" && f.JobDescription == "" {
		return nil
	}
	return &model.JobTarget{CompanyName: f.CompanyName, JobTitle: f.JobTitle, JobDescription: f.JobDescription}
}

type ListQuery struct {
	Page     int `query:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
}

type AnalyzeResponse struct {
	ID         string                `json:"id"`
	Redirect   string                `json:"redirect"`
	Status     string                `json:"status"`
	PreviewURL string                `json:"previewUrl,omitempty"`
	Resume     *model.UploadedResume `json:"resume"`
}
