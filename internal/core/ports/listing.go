package ports

import (
	"context"

	"github.com/inest/inest-backend/internal/core/domain"
)

// ListingRepository is the document-store contract shared by all listing
// collections.
type ListingRepository[T any] interface {
	List(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	// Update applies fields with $set and returns the updated document.
	Update(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ListingService defines the CRUD use cases for one listing type.
type ListingService[T any] interface {
	List(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, actor domain.Identity, item *T) (*T, error)
	Update(ctx context.Context, id string, patch domain.Patch) (*T, error)
	// Delete removes the record and returns a confirmation message.
	Delete(ctx context.Context, id string) (string, error)
}
