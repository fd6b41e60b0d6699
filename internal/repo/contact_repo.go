// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Contact
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no lifecycle rules, only
// persistence and query composition. Lifecycle decisions (what to stamp on
// first read, what "responded" means) live in package domain and are driven
// by the service layer.
//
// Error semantics:
//   - When a contact is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/search"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// writableColumns are the columns rewritten by SaveContact. id, the
// submission fields and created_at are never touched after insert.
var writableColumns = []string{
	"status", "priority", "notes", "tags",
	"is_read", "read_at", "responded_at", "response_method", "updated_at",
}

// CreateContact inserts a fully prepared contact.
func CreateContact(ctx context.Context, db *gorm.DB, c *domain.Contact) error {
	return db.WithContext(ctx).Create(c).Error
}

// GetContact fetches a single contact by ID, or ErrNotFound if missing.
func GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error) {
	var c domain.Contact
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContactsPage returns the contacts matching q.Filter, newest first.
// A non-positive q.Limit returns every match.
func ListContactsPage(ctx context.Context, db *gorm.DB, q domain.ContactQuery) ([]domain.Contact, error) {
	var out []domain.Contact
	tx := scopeContacts(db.WithContext(ctx).Model(&domain.Contact{}), q.Filter).
		Order("created_at DESC").Order("id DESC")
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountContacts returns how many contacts match f.
func CountContacts(ctx context.Context, db *gorm.DB, f domain.ContactFilter) (int64, error) {
	var n int64
	err := scopeContacts(db.WithContext(ctx).Model(&domain.Contact{}), f).Count(&n).Error
	return n, err
}

// SaveContact writes back the mutable columns of an existing contact.
// Returns ErrNotFound if the row no longer exists.
func SaveContact(ctx context.Context, db *gorm.DB, c *domain.Contact) error {
	res := db.WithContext(ctx).
		Model(c).
		Select(writableColumns).
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact permanently removes a contact. Returns ErrNotFound if
// nothing was deleted.
func DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateContacts applies patch to every contact in ids inside a single
// transaction. MatchedCount counts the ids that exist; ModifiedCount counts
// the rows whose stored values actually changed.
func UpdateContacts(ctx context.Context, db *gorm.DB, ids []string, patch domain.ContactPatch, now time.Time) (domain.BulkResult, error) {
	var res domain.BulkResult
	if len(ids) == 0 {
		return res, nil
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []domain.Contact
		if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return err
		}
		res.MatchedCount = int64(len(rows))

		changed := make([]string, 0, len(rows))
		for i := range rows {
			if rows[i].Apply(patch, now) {
				changed = append(changed, rows[i].ID)
			}
		}
		if len(changed) == 0 {
			return nil
		}
		upd := tx.Model(&domain.Contact{}).Where("id IN ?", changed).Updates(patch.Columns(now))
		if upd.Error != nil {
			return upd.Error
		}
		res.ModifiedCount = upd.RowsAffected
		return nil
	})
	if err != nil {
		return domain.BulkResult{}, err
	}
	return res, nil
}

// scopeContacts narrows tx to the contacts matching f.
func scopeContacts(tx *gorm.DB, f domain.ContactFilter) *gorm.DB {
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		tx = tx.Where("priority = ?", f.Priority)
	}
	if f.Service != "" {
		tx = tx.Where("service = ?", f.Service)
	}
	if f.Source != "" {
		tx = tx.Where("source = ?", f.Source)
	}
	if f.IsRead != nil {
		tx = tx.Where("is_read = ?", *f.IsRead)
	}
	if term := search.Compile(f.Search); !term.Empty() {
		tx = tx.Where(`search_text LIKE ? ESCAPE '\'`, term.LikePattern())
	}
	if f.Start != nil {
		tx = tx.Where("created_at >= ?", f.Start.UTC())
	}
	if f.End != nil {
		tx = tx.Where("created_at <= ?", f.End.UTC())
	}
	return tx
}

// IsNotFound reports whether err means "no such row".
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
