package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/ports"
)

type reportService struct {
	repo ports.ReportRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewReportService returns a ReportService implementation.
func NewReportService(repo ports.ReportRepository, log zerolog.Logger) ports.ReportService {
	return &reportService{repo: repo, log: log, now: time.Now}
}

func (s *reportService) Submit(ctx context.Context, author *domain.Identity, in ports.SubmitReportInput) (*domain.Report, error) {
	report, err := domain.NewReport(in.Subject, in.Description, domain.ReportType(in.Type), author, s.now().UTC())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, report)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store report")
		return nil, err
	}

	// Never log the author of a report.
	s.log.Info().Str("report_id", created.ID).Str("type", string(created.Type)).Msg("report submitted")
	return created, nil
}

func (s *reportService) ListMine(ctx context.Context, actor domain.Identity) ([]*domain.Report, error) {
	if actor.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return s.repo.FindByUser(ctx, actor.UserID)
}

func (s *reportService) ListAll(ctx context.Context) ([]*domain.Report, error) {
	return s.repo.FindAll(ctx)
}

func (s *reportService) UpdateStatus(ctx context.Context, id, status string) (*domain.Report, error) {
	st := domain.ReportStatus(status)
	if !st.Valid() {
		return nil, domain.Invalid("status must be one of: pending, under_review, resolved")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("report_id", id).Str("status", status).Msg("report status updated")
	return updated, nil
}
