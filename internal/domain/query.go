package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ContactFilter is a conjunction of optional predicates over contacts.
// Empty strings and nil pointers mean "no constraint". Search is a
// case-insensitive substring matched against any of name, email, company,
// subject and message.
type ContactFilter struct {
	Status   string
	Priority string
	Service  string
	Source   string
	IsRead   *bool
	Search   string
	Start    *time.Time
	End      *time.Time
}

// ContactQuery selects one page of contacts ordered by CreatedAt descending.
// A Limit of zero or less means "no limit".
type ContactQuery struct {
	Filter ContactFilter
	Offset int
	Limit  int
}

// ContactPatch carries the staff-writable fields of a contact. Nil means
// "leave unchanged".
type ContactPatch struct {
	Status   *string   `json:"status,omitempty"`
	Priority *string   `json:"priority,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// Empty reports whether the patch sets nothing.
func (p ContactPatch) Empty() bool {
	return p.Status == nil && p.Priority == nil && p.Notes == nil && p.Tags == nil
}

// Columns returns the column assignments for a set-based update, including
// updated_at.
func (p ContactPatch) Columns(now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now.UTC()}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.Priority != nil {
		cols["priority"] = *p.Priority
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.Tags != nil {
		cols["tags"] = datatypes.JSONSlice[string](append([]string{}, (*p.Tags)...))
	}
	return cols
}

// BulkResult reports how many contacts a bulk update matched and how many
// it actually changed.
type BulkResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// GroupField names a column contacts can be counted by.
type GroupField string

const (
	GroupByStatus   GroupField = "status"
	GroupByService  GroupField = "service"
	GroupByPriority GroupField = "priority"
)

// Valid reports whether f is one of the known grouping columns.
func (f GroupField) Valid() bool {
	switch f {
	case GroupByStatus, GroupByService, GroupByPriority:
		return true
	}
	return false
}

// Value returns the field of c that f groups by.
func (f GroupField) Value(c *Contact) string {
	switch f {
	case GroupByStatus:
		return c.Status
	case GroupByService:
		return c.Service
	case GroupByPriority:
		return c.Priority
	}
	return ""
}

// SearchFields returns the texts a search term is matched against.
func (c *Contact) SearchFields() []string {
	return []string{c.Name, c.Email, c.Company, c.Subject, c.Message}
}

// TrimTags trims every tag and drops the empty ones.
func TrimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
