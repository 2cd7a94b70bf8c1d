package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/msquare-lighting/msquare-api/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// One message per field regardless of which tag failed, matching what the
// contact page displays.
var fieldMessages = map[string]string{
	"Name":        "Name must be at least 2 characters long",
	"Email":       "Please provide a valid email address",
	"ProjectType": "Please select a valid project type",
	"Message":     "Message must be at least 10 characters long",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "trimmed_min", trimmedMin)
	mustRegister(v, "contact_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v, "project_type", func(fl validator.FieldLevel) bool {
		return IsProjectType(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// trimmedMin checks the rune length of the value with surrounding
// whitespace removed.
func trimmedMin(fl validator.FieldLevel) bool {
	minLen, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minLen
}

// IsProjectType reports whether s is one of models.ProjectTypes. Matching is
// exact; case and surrounding spaces matter.
func IsProjectType(s string) bool {
	for _, pt := range models.ProjectTypes {
		if string(pt) == s {
			return true
		}
	}
	return false
}

// IsValidEmail reports whether s looks like local@domain.tld
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateSubmission returns every violated rule in field order. An empty
// result means the submission is acceptable.
func ValidateSubmission(sub *models.Submission) []string {
	violations := []string{}
	if sub == nil {
		sub = &models.Submission{}
	}

	err := validate.Struct(sub)
	if err == nil {
		return violations
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input
		return append(violations, err.Error())
	}

	for _, fe := range fieldErrors {
		msg, known := fieldMessages[fe.StructField()]
		if !known {
			msg = fe.Field() + " is invalid"
		}
		violations = append(violations, msg)
	}
	return violations
}
