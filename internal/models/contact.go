package models

// ProjectType is the kind of lighting project a visitor enquires about
type ProjectType string

const (
	ProjectResidential   ProjectType = "residential"
	ProjectCommercial    ProjectType = "commercial"
	ProjectOutdoor       ProjectType = "outdoor"
	ProjectSmart         ProjectType = "smart"
	ProjectArchitectural ProjectType = "architectural"
	ProjectOther         ProjectType = "other"
)

// ProjectTypes lists the accepted project types in display order. The
// validator's project_type rule accepts exactly these.
var ProjectTypes = []ProjectType{
	ProjectResidential,
	ProjectCommercial,
	ProjectOutdoor,
	ProjectSmart,
	ProjectArchitectural,
	ProjectOther,
}

// Submission represents a contact form submission. It lives only for the
// duration of the request.
type Submission struct {
	Name        string `json:"name" validate:"required,trimmed_min=2"`
	Email       string `json:"email" validate:"required,contact_email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType" validate:"required,project_type"`
	Message     string `json:"message" validate:"required,trimmed_min=10"`
}

// SubscribeRequest is the newsletter signup body
type SubscribeRequest struct {
	Email string `json:"email"`
}

// APIResponse is the envelope every public endpoint answers with
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}
