package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msquare-lighting/msquare-api/internal/models"
)

func validSubmission() *models.Submission {
	return &models.Submission{
		Name:        "Jo",
		Email:       "jo@x.com",
		ProjectType: "residential",
		Message:     "Need lights for my home",
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	assert.Empty(t, ValidateSubmission(validSubmission()))

	for _, pt := range models.ProjectTypes {
		sub := validSubmission()
		sub.ProjectType = string(pt)
		assert.Empty(t, ValidateSubmission(sub), pt)
	}
}

func TestValidateSubmission_Name(t *testing.T) {
	for _, name := range []string{"", "J", " J ", "     ", "\té\n"} {
		sub := validSubmission()
		sub.Name = name
		assert.Equal(t, []string{"Name must be at least 2 characters long"}, ValidateSubmission(sub), "name %q", name)
	}

	sub := validSubmission()
	sub.Name = "Ōe"
	assert.Empty(t, ValidateSubmission(sub), "two runes are enough")
}

func TestValidateSubmission_Email(t *testing.T) {
	bad := []string{"", "bad", "jo@", "@x.com", "jo@x", "jo @x.com", "jo@x .com", "jo@@x.com", "jo@x.", "jo@.com x"}
	for _, email := range bad {
		sub := validSubmission()
		sub.Email = email
		assert.Equal(t, []string{"Please provide a valid email address"}, ValidateSubmission(sub), "email %q", email)
	}

	for _, email := range []string{"a@b.co", "first.last+tag@studio.example.in", "x@y.z.w"} {
		assert.True(t, IsValidEmail(email), email)
	}
}

func TestValidateSubmission_ProjectType(t *testing.T) {
	for _, pt := range []string{"", "Residential", "industrial", " residential", "other "} {
		sub := validSubmission()
		sub.ProjectType = pt
		assert.Equal(t, []string{"Please select a valid project type"}, ValidateSubmission(sub), "projectType %q", pt)
	}
}

func TestIsProjectType(t *testing.T) {
	for _, pt := range models.ProjectTypes {
		assert.True(t, IsProjectType(string(pt)), pt)
	}
	assert.Len(t, models.ProjectTypes, 6)
	for _, pt := range []string{"", "Smart", "smart ", "lighting"} {
		assert.False(t, IsProjectType(pt), pt)
	}
}

func TestValidateSubmission_Message(t *testing.T) {
	for _, msg := range []string{"", "hi", "   short   ", "123456789"} {
		sub := validSubmission()
		sub.Message = msg
		assert.Equal(t, []string{"Message must be at least 10 characters long"}, ValidateSubmission(sub), "message %q", msg)
	}

	sub := validSubmission()
	sub.Message = "1234567890"
	assert.Empty(t, ValidateSubmission(sub))
}

func TestValidateSubmission_CollectsAllInFieldOrder(t *testing.T) {
	sub := &models.Submission{Name: "J", Email: "bad", ProjectType: "", Message: "hi"}

	assert.Equal(t, []string{
		"Name must be at least 2 characters long",
		"Please provide a valid email address",
		"Please select a valid project type",
		"Message must be at least 10 characters long",
	}, ValidateSubmission(sub))
}

func TestValidateSubmission_PhoneIsOptional(t *testing.T) {
	sub := validSubmission()
	sub.Phone = ""
	assert.Empty(t, ValidateSubmission(sub))
	sub.Phone = "anything at all"
	assert.Empty(t, ValidateSubmission(sub))
}

func TestValidateSubmission_Idempotent(t *testing.T) {
	sub := &models.Submission{Name: " ", Email: "x@y", ProjectType: "garden", Message: "short"}

	first := ValidateSubmission(sub)
	second := ValidateSubmission(sub)
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestValidateSubmission_Nil(t *testing.T) {
	assert.Len(t, ValidateSubmission(nil), 4)
}
