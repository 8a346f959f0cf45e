package dto

type CoverLetterRequest struct {
	CompanyName    string `json:"companyName" validate:"max=200"`
	JobTitle       string `json:"jobTitle" validate:"max=200"`
	JobDescription string `json:"jobDescription" validate:"max=20000"`
}

type CoverLetterResponse struct {
	CoverLetter string `json:"coverLetter"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
