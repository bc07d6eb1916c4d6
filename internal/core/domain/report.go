package domain

import (
	"strings"
	"time"
)

// ReportType classifies a whistle-blower report.
type ReportType string

const (
	ReportAbuse        ReportType = "abuse"
	ReportServiceIssue ReportType = "service issue"
	ReportSuggestion   ReportType = "suggestion"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportAbuse, ReportServiceIssue, ReportSuggestion:
		return true
	}
	return false
}

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	ReportPending     ReportStatus = "pending"
	ReportUnderReview ReportStatus = "under_review"
	ReportResolved    ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportUnderReview, ReportResolved:
		return true
	}
	return false
}

// Report is a WhistleNest submission. UserID is nil for anonymous reports.
type Report struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Subject     string       `json:"subject" bson:"subject"`
	Description string       `json:"description" bson:"description"`
	Type        ReportType   `json:"type" bson:"type"`
	Status      ReportStatus `json:"status" bson:"status"`
	UserID      *string      `json:"userId" bson:"userId"`
	Timestamps  `bson:",inline"`
}

// NewReport builds a pending report, validating the submitted fields.
func NewReport(subject, description string, typ ReportType, author *Identity, now time.Time) (*Report, error) {
	switch {
	case strings.TrimSpace(subject) == "":
		return nil, Invalid("subject is required")
	case strings.TrimSpace(description) == "":
		return nil, Invalid("description is required")
	case typ == "":
		return nil, Invalid("type is required")
	case !typ.Valid():
		return nil, Invalid("type must be one of: abuse, service issue, suggestion")
	}

	r := &Report{
		Subject:     subject,
		Description: description,
		Type:        typ,
		Status:      ReportPending,
	}
	if author != nil && author.UserID != "" {
		uid := author.UserID
		r.UserID = &uid
	}
	r.stamp(now)
	return r, nil
}
