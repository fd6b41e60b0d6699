// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the admin
// dashboard: grouped counts over the whole contact set and the creation
// timestamps needed for daily bucketing.
package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/renacod/backend/internal/domain"
)

// CountContactsBy returns the number of contacts per distinct value of field.
// Only the columns enumerated by domain.GroupField are accepted.
func CountContactsBy(ctx context.Context, db *gorm.DB, field domain.GroupField) (map[string]int64, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("repo: cannot group contacts by %q", field)
	}
	var rows []struct {
		Bucket string
		Total  int64
	}
	col := string(field)
	err := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Select(col + " AS bucket, COUNT(*) AS total").
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Bucket] = r.Total
	}
	return out, nil
}

// ContactTimesSince returns the CreatedAt of every contact created at or
// after since. Bucketing by calendar day happens in the caller so that the
// day boundaries are always UTC, regardless of the database's own date
// functions.
func ContactTimesSince(ctx context.Context, db *gorm.DB, since time.Time) ([]time.Time, error) {
	var rows []struct {
		CreatedAt time.Time
	}
	err := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Select("created_at").
		Where("created_at >= ?", since.UTC()).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CreatedAt)
	}
	return out, nil
}
