package services

import (
	"context"

	"github.com/msquare-lighting/msquare-api/internal/models"
)

// ContactServiceInterface defines the interface for contact intake operations
type ContactServiceInterface interface {
	Admit(ctx context.Context, clientKey string) error
	Submit(ctx context.Context, sub *models.Submission) error
}

// NewsletterServiceInterface defines the interface for newsletter signups
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, email string) error
}

// CatalogueServiceInterface defines the interface for catalogue reads
type CatalogueServiceInterface interface {
	Items(ctx context.Context) ([]models.CatalogueItem, error)
}

// Ensure services implement their interfaces
var _ ContactServiceInterface = (*ContactService)(nil)
var _ NewsletterServiceInterface = (*NewsletterService)(nil)
var _ CatalogueServiceInterface = (*CatalogueService)(nil)
