// Package services – ReportService
//
// This file implements the staff dashboard aggregates and the filtered
// export. Aggregates are computed over the whole contact set on each call;
// nothing is cached.
package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/export"
)

const (
	recentUnreadLimit = 5
	dailyWindowDays   = 30
	dayLayout         = "2006-01-02"
)

// StatusTotals is the per-status breakdown of all contacts.
type StatusTotals struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"inProgress"`
	Contacted  int64 `json:"contacted"`
	Qualified  int64 `json:"qualified"`
	Closed     int64 `json:"closed"`
}

// RecentContact is the dashboard summary of an unread contact.
type RecentContact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactStats is the dashboard payload. DailyCounts only holds days with at
// least one contact; days are UTC calendar days.
type ContactStats struct {
	Total          int64            `json:"total"`
	Stats          StatusTotals     `json:"stats"`
	UnreadCount    int64            `json:"unreadCount"`
	RecentContacts []RecentContact  `json:"recentContacts"`
	StatusCounts   map[string]int64 `json:"statusCounts"`
	ServiceCounts  map[string]int64 `json:"serviceCounts"`
	PriorityCounts map[string]int64 `json:"priorityCounts"`
	DailyCounts    map[string]int64 `json:"dailyCounts"`
}

// ReportService computes dashboard statistics and exports.
type ReportService struct {
	Store ContactStore
	Now   func() time.Time
}

// NewReportService wires a ReportService with wall-clock time.
func NewReportService(store ContactStore) *ReportService {
	return &ReportService{Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *ReportService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Stats computes the dashboard aggregates.
func (s *ReportService) Stats(ctx context.Context) (*ContactStats, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Stats")
	defer span.End()

	out := &ContactStats{}
	var err error

	if out.StatusCounts, err = s.Store.CountBy(ctx, domain.GroupByStatus); err != nil {
		return nil, err
	}
	if out.ServiceCounts, err = s.Store.CountBy(ctx, domain.GroupByService); err != nil {
		return nil, err
	}
	if out.PriorityCounts, err = s.Store.CountBy(ctx, domain.GroupByPriority); err != nil {
		return nil, err
	}
	out.Stats = statusTotals(out.StatusCounts)
	out.Total = out.Stats.Total

	unread := false
	if out.UnreadCount, err = s.Store.Count(ctx, domain.ContactFilter{IsRead: &unread}); err != nil {
		return nil, err
	}
	recent, err := s.Store.List(ctx, domain.ContactQuery{
		Filter: domain.ContactFilter{IsRead: &unread},
		Limit:  recentUnreadLimit,
	})
	if err != nil {
		return nil, err
	}
	out.RecentContacts = make([]RecentContact, 0, len(recent))
	for _, c := range recent {
		out.RecentContacts = append(out.RecentContacts, RecentContact{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Subject:   c.Subject,
			Priority:  c.Priority,
			CreatedAt: c.CreatedAt,
		})
	}

	since := s.now().AddDate(0, 0, -dailyWindowDays)
	times, err := s.Store.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	out.DailyCounts = make(map[string]int64)
	for _, t := range times {
		out.DailyCounts[t.UTC().Format(dayLayout)]++
	}

	span.SetAttributes(
		attribute.Int64("contacts.total", out.Total),
		attribute.Int64("contacts.unread", out.UnreadCount),
	)
	return out, nil
}

func statusTotals(byStatus map[string]int64) StatusTotals {
	var t StatusTotals
	for status, n := range byStatus {
		t.Total += n
		switch status {
		case domain.StatusNew:
			t.New = n
		case domain.StatusInProgress:
			t.InProgress = n
		case domain.StatusContacted:
			t.Contacted = n
		case domain.StatusQualified:
			t.Qualified = n
		case domain.StatusClosed:
			t.Closed = n
		}
	}
	return t
}

// Export renders every contact matching f, newest first, in format.
func (s *ReportService) Export(ctx context.Context, format export.Format, f domain.ContactFilter) (*export.Payload, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Export", trace.WithAttributes(attribute.String("export.format", string(format))))
	defer span.End()

	contacts, err := s.Store.List(ctx, domain.ContactQuery{Filter: f})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("export.rows", len(contacts)))
	return export.Build(format, contacts, s.now())
}
