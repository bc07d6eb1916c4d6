package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inest/inest-backend/internal/core/domain"
)

const collectionReports = "whistlenests"

// ReportRepository persists WhistleNest reports. The author reference is
// stored as an ObjectID, like every other user reference in the database.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

// EnsureIndexes creates the index backing per-user report reads.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}

type mongoReport struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty"`
	Subject           string              `bson:"subject"`
	Description       string              `bson:"description"`
	Type              string              `bson:"type"`
	Status            string              `bson:"status"`
	UserID            *primitive.ObjectID `bson:"userId"`
	domain.Timestamps `bson:",inline"`
}

func newMongoReport(rep *domain.Report) (mongoReport, error) {
	doc := mongoReport{
		Subject:     rep.Subject,
		Description: rep.Description,
		Type:        string(rep.Type),
		Status:      string(rep.Status),
		Timestamps:  rep.Timestamps,
	}
	if rep.UserID != nil {
		oid, err := primitive.ObjectIDFromHex(*rep.UserID)
		if err != nil {
			return mongoReport{}, fmt.Errorf("report author %q: %w", *rep.UserID, err)
		}
		doc.UserID = &oid
	}
	return doc, nil
}

func (m mongoReport) toDomain() *domain.Report {
	rep := &domain.Report{
		ID:          m.ID.Hex(),
		Subject:     m.Subject,
		Description: m.Description,
		Type:        domain.ReportType(m.Type),
		Status:      domain.ReportStatus(m.Status),
		Timestamps:  m.Timestamps,
	}
	if m.UserID != nil {
		uid := m.UserID.Hex()
		rep.UserID = &uid
	}
	return rep
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	doc, err := newMongoReport(rep)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// FindByUser returns the reports authored by userID. An id that is not an
// ObjectID cannot own any report.
func (r *ReportRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Report{}, nil
	}
	return r.find(ctx, bson.M{"userId": oid})
}

func (r *ReportRepository) FindAll(ctx context.Context) ([]*domain.Report, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReportRepository) find(ctx context.Context, filter bson.M) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	var docs []mongoReport
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	reports := make([]*domain.Report, 0, len(docs))
	for _, d := range docs {
		reports = append(reports, d.toDomain())
	}
	return reports, nil
}

// UpdateStatus atomically sets the status and returns the updated report.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoReport
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("update report status: %w", err)
	}
	return doc.toDomain(), nil
}
