package ports

import (
	"context"

	"github.com/inest/inest-backend/internal/core/domain"
)

// ReportRepository persists WhistleNest reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Report, error)
	FindAll(ctx context.Context) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error)
}

// SubmitReportInput is the DTO passed from the transport layer to ReportService.
type SubmitReportInput struct {
	Subject     string
	Description string
	Type        string
}

// ReportService defines the WhistleNest use cases.
type ReportService interface {
	// Submit creates a pending report. author is nil for anonymous submissions.
	Submit(ctx context.Context, author *domain.Identity, input SubmitReportInput) (*domain.Report, error)
	ListMine(ctx context.Context, actor domain.Identity) ([]*domain.Report, error)
	ListAll(ctx context.Context) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Report, error)
}
