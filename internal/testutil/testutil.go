// Package testutil provides in-memory implementations of the repository
// ports and small helpers shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/inest/inest-backend/internal/core/domain"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

type idSeq struct{ n int }

// next returns a 24 hex digit id shaped like a Mongo ObjectID.
func (s *idSeq) next() string {
	s.n++
	return fmt.Sprintf("%024x", s.n)
}

// ListingRepo is an in-memory ports.ListingRepository. Documents are kept as
// JSON objects so partial updates merge the same way $set does.
type ListingRepo[T any] struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	order    []string
	ids      idSeq
	notFound error
}

func NewListingRepo[T any](notFound error) *ListingRepo[T] {
	return &ListingRepo[T]{docs: make(map[string]map[string]any), notFound: notFound}
}

func (r *ListingRepo[T]) List(_ context.Context) ([]*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*T, 0, len(r.order))
	for _, id := range r.order {
		item, err := decode[T](r.docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ListingRepo[T]) FindByID(_ context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, r.notFound
	}
	return decode[T](doc)
}

func (r *ListingRepo[T]) Create(_ context.Context, item *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := encode(item)
	if err != nil {
		return nil, err
	}
	id := r.ids.next()
	doc["id"] = id
	r.docs[id] = doc
	r.order = append(r.order, id)
	return decode[T](doc)
}

func (r *ListingRepo[T]) Update(_ context.Context, id string, fields map[string]any) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, r.notFound
	}
	patch, err := encode(fields)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		doc[k] = v
	}
	return decode[T](doc)
}

func (r *ListingRepo[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return r.notFound
	}
	delete(r.docs, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored documents.
func (r *ListingRepo[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func encode(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decode[T any](m map[string]any) (*T, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserRepo is an in-memory ports.UserRepository enforcing email uniqueness.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	ids   idSeq
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*domain.User)}
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := *user
	stored.ID = r.ids.next()
	r.users[stored.Email] = &stored
	clone := stored
	return &clone, nil
}

// ReportRepo is an in-memory ports.ReportRepository.
type ReportRepo struct {
	mu      sync.Mutex
	reports []*domain.Report
	ids     idSeq
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

func cloneReport(r *domain.Report) *domain.Report {
	c := *r
	if r.UserID != nil {
		uid := *r.UserID
		c.UserID = &uid
	}
	return &c
}

func (r *ReportRepo) Create(_ context.Context, rep *domain.Report) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneReport(rep)
	stored.ID = r.ids.next()
	r.reports = append(r.reports, stored)
	return cloneReport(stored), nil
}

func (r *ReportRepo) FindByUser(_ context.Context, userID string) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Report{}
	for _, rep := range r.reports {
		if rep.UserID != nil && *rep.UserID == userID {
			out = append(out, cloneReport(rep))
		}
	}
	return out, nil
}

func (r *ReportRepo) FindAll(_ context.Context) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, cloneReport(rep))
	}
	return out, nil
}

func (r *ReportRepo) UpdateStatus(_ context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		if rep.ID == id {
			rep.Status = status
			return cloneReport(rep), nil
		}
	}
	return nil, domain.ErrReportNotFound
}
