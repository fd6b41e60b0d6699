// Package domain defines the persistence model for contact-form submissions
// together with the lifecycle rules that apply to them. These types are
// mapped with GORM, serialized by the file store, and shared across the
// repository, service and HTTP layers.
package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/renacod/backend/internal/search"
)

// Contact is one inbound enquiry submitted through the public contact form
// and later triaged by staff.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / Email / Phone / Company: who wrote in.
//   - Subject / Message: what they wrote. Subject may be synthesized from
//     Service when the visitor left it blank.
//   - Service / Budget / Timeline / Source: categorical answers, see enums.go.
//   - Status / Priority / Tags / Notes: staff triage state.
//   - IsRead / ReadAt: set once, on the first admin view.
//   - RespondedAt / ResponseMethod: set when staff mark the enquiry answered.
//   - CreatedAt / UpdatedAt: timestamps, always UTC. UpdatedAt is stamped
//     by the lifecycle methods, never by GORM.
//   - SearchText: folded copy of the searchable fields, not serialized.
//
// Deletion is permanent; there is no soft-delete column.
type Contact struct {
	ID             string                      `json:"id"                       gorm:"type:char(36);primaryKey"`
	Name           string                      `json:"name"                     gorm:"type:varchar(100);not null"`
	Email          string                      `json:"email"                    gorm:"type:varchar(254);not null;index:idx_contacts_email_created,priority:1"`
	Phone          string                      `json:"phone,omitempty"          gorm:"type:varchar(20)"`
	Company        string                      `json:"company,omitempty"        gorm:"type:varchar(100)"`
	Subject        string                      `json:"subject"                  gorm:"type:varchar(200);not null"`
	Message        string                      `json:"message"                  gorm:"type:text;not null"`
	Service        string                      `json:"service"                  gorm:"type:varchar(32);not null;index"`
	Budget         string                      `json:"budget"                   gorm:"type:varchar(32);not null"`
	Timeline       string                      `json:"timeline"                 gorm:"type:varchar(32);not null"`
	Status         string                      `json:"status"                   gorm:"type:varchar(16);not null;index:idx_contacts_status_priority_created,priority:1"`
	Priority       string                      `json:"priority"                 gorm:"type:varchar(16);not null;index:idx_contacts_status_priority_created,priority:2"`
	Source         string                      `json:"source"                   gorm:"type:varchar(32);not null"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	Notes          string                      `json:"notes,omitempty"          gorm:"type:varchar(1000)"`
	IsRead         bool                        `json:"isRead"                   gorm:"not null;index:idx_contacts_read_created,priority:1"`
	ReadAt         *time.Time                  `json:"readAt,omitempty"`
	RespondedAt    *time.Time                  `json:"respondedAt,omitempty"`
	ResponseMethod string                      `json:"responseMethod"           gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time                   `json:"createdAt"                gorm:"not null;index:idx_contacts_status_priority_created,priority:3;index:idx_contacts_email_created,priority:2;index:idx_contacts_read_created,priority:2"`
	UpdatedAt      time.Time                   `json:"updatedAt"                gorm:"autoUpdateTime:false"`

	// SearchText is the case-folded concatenation of SearchFields, matched
	// by the SQL store's free-text filter.
	SearchText string `json:"-" gorm:"type:text;not null;default:''"`
}

// TableName returns the database table name for Contact.
func (Contact) TableName() string { return "contacts" }

// InquirySubject returns the subject used when a visitor leaves it blank.
// Only the first hyphen of the service becomes a space, so "ui-ux" reads
// "ui ux" and "web-development" reads "web development". It returns "" when
// no subject can be derived (no service, "other", or an unknown value).
func InquirySubject(service string) string {
	if service == "" || service == ServiceOther || !Services.Contains(service) {
		return ""
	}
	return "Inquiry about " + strings.Replace(service, "-", " ", 1) + " services"
}

// PrepareNew applies the pre-persist rules to a freshly validated submission:
// defaults for unset categorical fields, a synthesized subject, the initial
// triage state, and derived tags. It is idempotent for the fields it fills.
func PrepareNew(c *Contact, id string, now time.Time) {
	now = now.UTC()
	c.ID = id

	c.Service = orDefault(c.Service, Services.Default)
	c.Budget = orDefault(c.Budget, Budgets.Default)
	c.Timeline = orDefault(c.Timeline, Timelines.Default)
	c.Source = orDefault(c.Source, Sources.Default)

	if c.Subject == "" {
		c.Subject = InquirySubject(c.Service)
	}

	c.Status = StatusNew
	c.Priority = PriorityMedium
	c.ResponseMethod = ResponseEmail
	c.IsRead = false
	c.ReadAt = nil
	c.RespondedAt = nil
	c.CreatedAt = now
	c.UpdatedAt = now
	c.SearchText = search.Document(c.SearchFields()...)

	if c.Service != ServiceOther {
		c.Tags = deriveTags(c.Service, c.Budget, c.Timeline)
	} else if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
}

func deriveTags(values ...string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// MarkRead stamps the first admin view. It reports whether anything changed;
// later calls keep the original ReadAt.
func (c *Contact) MarkRead(now time.Time) bool {
	if c.IsRead {
		return false
	}
	at := now.UTC()
	c.IsRead = true
	c.ReadAt = &at
	c.UpdatedAt = at
	return true
}

// MarkResponded moves the contact to "contacted" and records how and when
// staff answered. Repeating it overwrites RespondedAt.
func (c *Contact) MarkResponded(method string, now time.Time) {
	at := now.UTC()
	if method == "" {
		method = ResponseEmail
	}
	c.Status = StatusContacted
	c.RespondedAt = &at
	c.ResponseMethod = method
	c.UpdatedAt = at
}

// Apply copies the set fields of p onto c and bumps UpdatedAt. It reports
// whether any stored value actually changed.
func (c *Contact) Apply(p ContactPatch, now time.Time) bool {
	changed := false
	if p.Status != nil && *p.Status != c.Status {
		c.Status = *p.Status
		changed = true
	}
	if p.Priority != nil && *p.Priority != c.Priority {
		c.Priority = *p.Priority
		changed = true
	}
	if p.Notes != nil && *p.Notes != c.Notes {
		c.Notes = *p.Notes
		changed = true
	}
	if p.Tags != nil && !equalTags(c.Tags, *p.Tags) {
		c.Tags = append(datatypes.JSONSlice[string]{}, (*p.Tags)...)
		changed = true
	}
	c.UpdatedAt = now.UTC()
	return changed
}

func equalTags(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ResponseTime is the time between submission and the staff response, or
// nil while the contact is unanswered.
func (c *Contact) ResponseTime() *time.Duration {
	if c.RespondedAt == nil {
		return nil
	}
	d := c.RespondedAt.Sub(c.CreatedAt)
	return &d
}

// ContactView is the admin-facing projection of a Contact: every stored
// field plus the derived response time and age in milliseconds.
type ContactView struct {
	Contact
	ResponseTimeMs      *int64 `json:"responseTimeMs"`
	TimeSinceCreationMs int64  `json:"timeSinceCreationMs"`
}

// View builds the admin projection of c as seen at now.
func (c Contact) View(now time.Time) ContactView {
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	v := ContactView{Contact: c, TimeSinceCreationMs: now.Sub(c.CreatedAt).Milliseconds()}
	if d := c.ResponseTime(); d != nil {
		ms := d.Milliseconds()
		v.ResponseTimeMs = &ms
	}
	return v
}

// Views maps a result page onto admin projections.
func Views(cs []Contact, now time.Time) []ContactView {
	out := make([]ContactView, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.View(now))
	}
	return out
}

// Receipt is the public confirmation returned to whoever submitted the form.
type Receipt struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Receipt returns the public projection of c.
func (c Contact) Receipt() Receipt {
	return Receipt{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Subject:     c.Subject,
		SubmittedAt: c.CreatedAt,
	}
}
