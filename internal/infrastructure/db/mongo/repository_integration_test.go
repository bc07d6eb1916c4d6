package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/testutil"
)

func setupRepositories(t *testing.T) *Repositories {
	t.Helper()
	uri := testutil.RequireEnv(t, "MONGO_TEST_URI")

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: fmt.Sprintf("inest_test_%d", time.Now().UnixNano())})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repos := NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return repos
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	now := time.Now().UTC()

	u := &domain.User{Email: "dup@example.com", PasswordHash: "h", Role: domain.RoleStudent, CreatedAt: now, UpdatedAt: now}
	created, err := repos.Users.Create(ctx, u)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := repos.Users.Create(ctx, u); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict from unique index, got %v", err)
	}

	found, err := repos.Users.FindByEmail(ctx, "dup@example.com")
	if err != nil || found.ID != created.ID {
		t.Fatalf("find by email: %v %+v", err, found)
	}
	if _, err := repos.Users.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestListingRepository_CRUD(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	created, err := repos.Bakers.Create(ctx, &domain.Baker{Name: "B", Contact: "1", Menu: []string{}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.ID) != 24 {
		t.Fatalf("expected hex object id, got %q", created.ID)
	}

	updated, err := repos.Bakers.Update(ctx, created.ID, map[string]any{"rating": 4.5})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 4.5 || updated.Name != "B" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := repos.Bakers.Update(ctx, "not-an-id", map[string]any{"rating": 1}); !errors.Is(err, domain.ErrBakerNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}

	if err := repos.Bakers.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repos.Bakers.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListingRepository_OwnerStoredAsObjectID(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := repos.Laundry.Create(ctx, &domain.Laundry{Name: "L", Contact: "1", Price: 5, OwnerID: owner.Hex()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.OwnerID != owner.Hex() {
		t.Fatalf("expected owner %s, got %q", owner.Hex(), created.OwnerID)
	}

	oid, _ := primitive.ObjectIDFromHex(created.ID)
	var raw bson.M
	if err := repos.Laundry.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		t.Fatalf("raw read: %v", err)
	}
	if raw["ownerId"] != owner {
		t.Fatalf("expected ownerId stored as ObjectID, got %T %v", raw["ownerId"], raw["ownerId"])
	}

	if _, err := repos.Laundry.Create(ctx, &domain.Laundry{Name: "L", Contact: "1", OwnerID: "not-hex"}); err == nil {
		t.Fatalf("expected error for malformed owner id")
	}
}

func TestReportRepository_FindByUser(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	now := time.Now().UTC()

	userID := primitive.NewObjectID()
	uid := userID.Hex()

	mine, _ := domain.NewReport("s", "d", domain.ReportAbuse, &domain.Identity{UserID: uid}, now)
	anon, _ := domain.NewReport("s", "d", domain.ReportAbuse, nil, now)
	created, err := repos.Reports.Create(ctx, mine)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repos.Reports.Create(ctx, anon); err != nil {
		t.Fatalf("create anon: %v", err)
	}

	// Documents written by earlier deployments carry the same ObjectID shape.
	if _, err := repos.Reports.col.InsertOne(ctx, bson.M{
		"subject": "legacy", "description": "d", "type": "abuse", "status": "pending",
		"userId": userID, "createdAt": now, "updatedAt": now,
	}); err != nil {
		t.Fatalf("insert legacy: %v", err)
	}

	got, err := repos.Reports.FindByUser(ctx, uid)
	if err != nil || len(got) != 2 {
		t.Fatalf("find by user: %v (%d)", err, len(got))
	}
	for _, rep := range got {
		if rep.UserID == nil || *rep.UserID != uid {
			t.Fatalf("unexpected author on %+v", rep)
		}
	}

	var raw bson.M
	if err := repos.Reports.col.FindOne(ctx, bson.M{"subject": "s"}).Decode(&raw); err != nil {
		t.Fatalf("raw read: %v", err)
	}
	if _, ok := raw["userId"].(primitive.ObjectID); !ok {
		t.Fatalf("expected userId stored as ObjectID, got %T", raw["userId"])
	}

	if got, err := repos.Reports.FindByUser(ctx, "u1"); err != nil || len(got) != 0 {
		t.Fatalf("non-ObjectID user should own nothing: %v (%d)", err, len(got))
	}

	updated, err := repos.Reports.UpdateStatus(ctx, created.ID, domain.ReportResolved)
	if err != nil || updated.Status != domain.ReportResolved {
		t.Fatalf("update status: %v %+v", err, updated)
	}
}
