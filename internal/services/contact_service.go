// Package services – ContactService
//
// This file implements ContactService, which owns the lifecycle of a contact
// submission: public intake (validate, derive, persist, notify), staff
// listing and retrieval (first view marks the contact read), single and bulk
// triage updates, marking a contact responded, and permanent deletion.
//
// Storage is reached through the narrow ContactStore interface so that the
// same rules run on top of either the SQL store or the JSON file store.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// carry contact identifiers and pagination parameters where applicable.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/repo"
	"github.com/renacod/backend/internal/utils"
	"github.com/renacod/backend/internal/validation"
)

// ContactStore is the persistence contract required by ContactService and
// ReportService. Missing records are reported as repo.ErrNotFound.
type ContactStore interface {
	// Create inserts a fully prepared contact.
	Create(ctx context.Context, c *domain.Contact) error
	// Get fetches one contact by ID.
	Get(ctx context.Context, id string) (*domain.Contact, error)
	// List returns one page of matching contacts, newest first.
	List(ctx context.Context, q domain.ContactQuery) ([]domain.Contact, error)
	// Count returns the number of contacts matching f.
	Count(ctx context.Context, f domain.ContactFilter) (int64, error)
	// Save writes back the staff-mutable fields of an existing contact.
	Save(ctx context.Context, c *domain.Contact) error
	// Delete permanently removes a contact.
	Delete(ctx context.Context, id string) error
	// UpdateMany applies patch to every listed contact in one operation.
	UpdateMany(ctx context.Context, ids []string, patch domain.ContactPatch, now time.Time) (domain.BulkResult, error)
	// CountBy groups the full contact set by field.
	CountBy(ctx context.Context, field domain.GroupField) (map[string]int64, error)
	// CreatedSince returns creation times at or after since, ascending.
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// ReplayStore remembers which contact a public submission with an
// Idempotency-Key produced.
type ReplayStore interface {
	FindReplay(ctx context.Context, clientID, key string, now time.Time) (string, error)
	RememberReplay(ctx context.Context, clientID, key, contactID string, ttl time.Duration) error
}

// Dispatcher hands a new contact to the notification pipeline. It must not
// block the caller.
type Dispatcher interface {
	Dispatch(c domain.Contact)
}

// ContactService implements the contact lifecycle.
type ContactService struct {
	Store    ContactStore
	Notifier Dispatcher

	// Replays is optional; without it Idempotency-Key is ignored.
	Replays   ReplayStore
	ReplayTTL time.Duration

	// Now and NewID are seams for tests.
	Now   func() time.Time
	NewID func() string
}

// NewContactService wires a ContactService with wall-clock time and UUIDs.
func NewContactService(store ContactStore, notifier Dispatcher) *ContactService {
	return &ContactService{
		Store:     store,
		Notifier:  notifier,
		ReplayTTL: 24 * time.Hour,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     uuid.NewString,
	}
}

func (s *ContactService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *ContactService) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

func tracer() trace.Tracer { return otel.Tracer("services/ContactService") }

// Submit validates a public submission, persists it, and queues the staff
// notification without waiting for it. Validation failures return a
// *ValidationError and persist nothing.
func (s *ContactService) Submit(ctx context.Context, in validation.Submission) (*domain.Contact, error) {
	ctx, span := tracer().Start(ctx, "Submit")
	defer span.End()

	sub, errs := validation.ValidateSubmission(in)
	if len(errs) > 0 {
		contactsRejected.Inc()
		span.SetStatus(codes.Error, "validation failed")
		return nil, invalid(errs)
	}

	c := sub.Contact()
	domain.PrepareNew(c, s.newID(), s.now())
	span.SetAttributes(attribute.String("contact.id", c.ID), attribute.String("contact.service", c.Service))

	if err := s.Store.Create(ctx, c); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create contact: %w", err)
	}
	contactsSubmitted.WithLabelValues(c.Service).Inc()

	if s.Notifier != nil {
		s.Notifier.Dispatch(*c)
	}
	return c, nil
}

// SubmitOnce is Submit guarded by an Idempotency-Key. When the same client
// already submitted with key, the earlier contact is returned with
// replayed=true and nothing is created or sent.
func (s *ContactService) SubmitOnce(ctx context.Context, clientID, key string, in validation.Submission) (c *domain.Contact, replayed bool, err error) {
	if key == "" || s.Replays == nil {
		c, err = s.Submit(ctx, in)
		return c, false, err
	}

	id, err := s.Replays.FindReplay(ctx, clientID, key, s.now())
	switch {
	case err == nil:
		prev, gerr := s.Store.Get(ctx, id)
		if gerr == nil {
			contactsReplayed.Inc()
			return prev, true, nil
		}
		if !repo.IsNotFound(gerr) {
			return nil, false, gerr
		}
		// The original contact was deleted since; treat as a fresh submission.
	case !repo.IsNotFound(err):
		return nil, false, fmt.Errorf("find replay: %w", err)
	}

	c, err = s.Submit(ctx, in)
	if err != nil {
		return nil, false, err
	}
	if rerr := s.Replays.RememberReplay(ctx, clientID, key, c.ID, s.ReplayTTL); rerr != nil {
		log.Warn().Err(rerr).Str("contact_id", c.ID).Msg("remember idempotency key")
	}
	return c, false, nil
}

// List returns one page of contacts matching f, newest first, together with
// the page metadata. Invalid page or limit values fall back to defaults.
func (s *ContactService) List(ctx context.Context, f domain.ContactFilter, page, limit int) ([]domain.Contact, utils.PageInfo, error) {
	page, limit = utils.NormalizePage(page, limit)
	ctx, span := tracer().Start(ctx, "List",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	total, err := s.Store.Count(ctx, f)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	info := utils.NewPageInfo(page, limit, total)
	if total == 0 {
		return []domain.Contact{}, info, nil
	}

	items, err := s.Store.List(ctx, domain.ContactQuery{
		Filter: f,
		Offset: utils.Offset(page, limit),
		Limit:  limit,
	})
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return items, info, nil
}

// Get returns one contact. The first call for an unread contact marks it
// read; later calls leave ReadAt untouched.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	ctx, span := tracer().Start(ctx, "Get", trace.WithAttributes(attribute.String("contact.id", id)))
	defer span.End()

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.MarkRead(s.now()) {
		if err := s.save(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Update applies the allow-listed fields of patch to one contact.
func (s *ContactService) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	ctx, span := tracer().Start(ctx, "Update", trace.WithAttributes(attribute.String("contact.id", id)))
	defer span.End()

	patch, errs := validation.ValidatePatch(patch)
	if len(errs) > 0 {
		return nil, invalid(errs)
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Apply(patch, s.now())
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// MarkResponded records that staff answered the contact, forcing its status
// to "contacted". An empty method means "email".
func (s *ContactService) MarkResponded(ctx context.Context, id, method string) (*domain.Contact, error) {
	ctx, span := tracer().Start(ctx, "MarkResponded",
		trace.WithAttributes(
			attribute.String("contact.id", id),
			attribute.String("response.method", method),
		),
	)
	defer span.End()

	method, errs := validation.ValidateResponseMethod(method)
	if len(errs) > 0 {
		return nil, invalid(errs)
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.MarkResponded(method, s.now())
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete permanently removes a contact.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	ctx, span := tracer().Start(ctx, "Delete", trace.WithAttributes(attribute.String("contact.id", id)))
	defer span.End()

	if err := s.Store.Delete(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

// BulkUpdate applies status, priority and tags to every listed contact.
// Notes are never bulk-editable and are dropped from patch.
func (s *ContactService) BulkUpdate(ctx context.Context, ids []string, patch domain.ContactPatch) (domain.BulkResult, error) {
	ctx, span := tracer().Start(ctx, "BulkUpdate", trace.WithAttributes(attribute.Int("contacts.count", len(ids))))
	defer span.End()

	if len(ids) == 0 {
		return domain.BulkResult{}, ErrNoContactIDs
	}
	patch.Notes = nil
	if patch.Empty() {
		return domain.BulkResult{}, ErrNoValidUpdates
	}
	patch, errs := validation.ValidatePatch(patch)
	if len(errs) > 0 {
		return domain.BulkResult{}, invalid(errs)
	}

	res, err := s.Store.UpdateMany(ctx, ids, patch, s.now())
	if err != nil {
		span.RecordError(err)
		return domain.BulkResult{}, err
	}
	span.SetAttributes(
		attribute.Int64("contacts.matched", res.MatchedCount),
		attribute.Int64("contacts.modified", res.ModifiedCount),
	)
	return res, nil
}

func (s *ContactService) load(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := s.Store.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *ContactService) save(ctx context.Context, c *domain.Contact) error {
	if err := s.Store.Save(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}
