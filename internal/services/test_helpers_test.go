package services_test

import (
	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func validSubmission() *models.Submission {
	return &models.Submission{
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		Phone:       "9845000000",
		ProjectType: "residential",
		Message:     "Need lighting for a 3BHK apartment.",
	}
}
