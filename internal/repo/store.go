package repo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/renacod/backend/internal/domain"
)

// SQLStore adapts the GORM repository functions to the store interfaces the
// service layer depends on.
type SQLStore struct {
	DB *gorm.DB
}

// NewSQLStore wraps db.
func NewSQLStore(db *gorm.DB) *SQLStore { return &SQLStore{DB: db} }

func (s *SQLStore) Create(ctx context.Context, c *domain.Contact) error {
	return CreateContact(ctx, s.DB, c)
}

func (s *SQLStore) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return GetContact(ctx, s.DB, id)
}

func (s *SQLStore) List(ctx context.Context, q domain.ContactQuery) ([]domain.Contact, error) {
	return ListContactsPage(ctx, s.DB, q)
}

func (s *SQLStore) Count(ctx context.Context, f domain.ContactFilter) (int64, error) {
	return CountContacts(ctx, s.DB, f)
}

func (s *SQLStore) Save(ctx context.Context, c *domain.Contact) error {
	return SaveContact(ctx, s.DB, c)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	return DeleteContact(ctx, s.DB, id)
}

func (s *SQLStore) UpdateMany(ctx context.Context, ids []string, patch domain.ContactPatch, now time.Time) (domain.BulkResult, error) {
	return UpdateContacts(ctx, s.DB, ids, patch, now)
}

func (s *SQLStore) CountBy(ctx context.Context, field domain.GroupField) (map[string]int64, error) {
	return CountContactsBy(ctx, s.DB, field)
}

func (s *SQLStore) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	return ContactTimesSince(ctx, s.DB, since)
}

// Ping checks database connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// FindReplay returns the contact ID recorded for (clientID, key), or
// ErrNotFound when there is no live record.
func (s *SQLStore) FindReplay(ctx context.Context, clientID, key string, now time.Time) (string, error) {
	rec, err := GetIdempotency(ctx, s.DB, clientID, key, now)
	if err != nil {
		return "", err
	}
	return rec.ContactID, nil
}

// RememberReplay records that (clientID, key) produced contactID. A
// concurrent duplicate is not an error: the first writer wins.
func (s *SQLStore) RememberReplay(ctx context.Context, clientID, key, contactID string, ttl time.Duration) error {
	_, err := CreateIdempotency(ctx, s.DB, clientID, key, contactID, http.StatusCreated, ttl)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

// PurgeReplays removes expired idempotency records.
func (s *SQLStore) PurgeReplays(ctx context.Context, now time.Time) (int64, error) {
	return PurgeExpiredIdempotency(ctx, s.DB, now)
}
