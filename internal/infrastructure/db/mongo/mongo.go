package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inest/inest-backend/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Repositories groups every collection-backed repository.
type Repositories struct {
	Users    *UserRepository
	Reports  *ReportRepository
	Bakers   *ListingRepository[domain.Baker]
	Laundry  *ListingRepository[domain.Laundry]
	Medicals *ListingRepository[domain.Medical]
}

// NewRepositories binds all repositories to db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Reports:  NewReportRepository(db),
		Bakers:   NewListingRepository[domain.Baker](db, collectionBakers, domain.ErrBakerNotFound),
		Laundry:  NewListingRepository[domain.Laundry](db, collectionLaundry, domain.ErrLaundryNotFound, "ownerId"),
		Medicals: NewListingRepository[domain.Medical](db, collectionMedicals, domain.ErrMedicalNotFound),
	}
}

// EnsureIndexes creates the indexes the repositories rely on.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	if err := r.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := r.Reports.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("reports indexes: %w", err)
	}
	return nil
}
