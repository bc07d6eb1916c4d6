package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/ports"
)

// listing constrains PT to the pointer form of a listing record type.
type listing[T any] interface {
	*T
	domain.Listing
}

// ListingService implements CRUD over one listing collection. Any caller
// that passed the route's role gate may mutate any record; there is no
// per-record ownership check.
type ListingService[T any, PT listing[T]] struct {
	repo   ports.ListingRepository[T]
	kind   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewListingService returns a service for records of type T. kind is the
// display name used in confirmation messages and logs (e.g. "Baker").
func NewListingService[T any, PT listing[T]](repo ports.ListingRepository[T], kind string, logger zerolog.Logger) *ListingService[T, PT] {
	return &ListingService[T, PT]{
		repo:   repo,
		kind:   kind,
		logger: logger.With().Str("resource", kind).Logger(),
		now:    time.Now,
	}
}

func (s *ListingService[T, PT]) List(ctx context.Context) ([]*T, error) {
	return s.repo.List(ctx)
}

func (s *ListingService[T, PT]) Create(ctx context.Context, actor domain.Identity, item *T) (*T, error) {
	rec := PT(item)
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	rec.Prepare(actor, s.now().UTC())

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create listing")
		return nil, err
	}
	s.logger.Info().Str("user_id", actor.UserID).Msg("listing created")
	return created, nil
}

func (s *ListingService[T, PT]) Update(ctx context.Context, id string, patch domain.Patch) (*T, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return s.repo.FindByID(ctx, id)
	}
	fields["updatedAt"] = s.now().UTC()

	return s.repo.Update(ctx, id, fields)
}

func (s *ListingService[T, PT]) Delete(ctx context.Context, id string) (string, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	s.logger.Info().Str("id", id).Msg("listing deleted")
	return s.kind + " deleted", nil
}
