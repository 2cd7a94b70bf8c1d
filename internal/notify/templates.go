package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/msquare-lighting/msquare-api/internal/models"
)

const (
	companyName            = "M Square Lighting"
	acknowledgementSubject = "Thank You for Contacting " + companyName
)

// html/template escapes every submitted value, so markup typed into the
// form is shown literally in the email.
var operatorTemplate = template.Must(template.New("operator").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #4CAF50; padding-bottom: 10px;">
    New Contact Form Submission
  </h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Phone:</strong> {{if .Phone}}{{.Phone}}{{else}}Not provided{{end}}</p>
    <p><strong>Project Type:</strong> {{.ProjectType}}</p>
    <p><strong>Message:</strong></p>
    <p style="background-color: white; padding: 15px; border-left: 3px solid #4CAF50; white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <p style="color: #666; font-size: 12px;">
    This email was sent from the {{.Company}} website contact form.
  </p>
</div>
`))

var acknowledgementTemplate = template.Must(template.New("acknowledgement").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #4CAF50; padding-bottom: 10px;">
    Thank You for Your Inquiry
  </h2>
  <p>Dear {{.Name}},</p>
  <p>
    Thank you for reaching out to {{.Company}}. We have received your inquiry
    regarding <strong>{{.ProjectType}}</strong> and will get back to you within 24-48 hours.
  </p>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #4CAF50; margin-top: 0;">Your Inquiry Details:</h3>
    <p><strong>Project Type:</strong> {{.ProjectType}}</p>
    <p><strong>Your Message:</strong></p>
    <p style="background-color: white; padding: 15px; border-left: 3px solid #4CAF50; white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <p>
    In the meantime, feel free to explore our
    <a href="{{.PortfolioURL}}" style="color: #4CAF50;">portfolio</a>
    and learn more about our
    <a href="{{.ServicesURL}}" style="color: #4CAF50;">services</a>.
  </p>
  <p>Best regards,<br><strong>{{.Company}} Team</strong></p>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">
    {{.Company}} – Rest Assured<br>
    Bengaluru, Karnataka, India
  </p>
</div>
`))

type templateData struct {
	*models.Submission
	Company      string
	PortfolioURL string
	ServicesURL  string
}

func newTemplateData(sub *models.Submission, siteURL string) templateData {
	siteURL = strings.TrimRight(siteURL, "/")
	return templateData{
		Submission:   sub,
		Company:      companyName,
		PortfolioURL: siteURL + "/portfolio",
		ServicesURL:  siteURL + "/services",
	}
}

func operatorSubject(sub *models.Submission) string {
	// Header values cannot carry line breaks
	pt := strings.Join(strings.Fields(sub.ProjectType), " ")
	return "New Contact Form Submission - " + pt
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}
