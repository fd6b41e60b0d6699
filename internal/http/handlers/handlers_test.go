package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/http/middleware"
	"github.com/renacod/backend/internal/repo"
	"github.com/renacod/backend/internal/services"
)

// ---------- harness ----------

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []domain.Contact
}

func (d *recordingDispatcher) Dispatch(c domain.Contact) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, c)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type harness struct {
	r        *gin.Engine
	store    *repo.SQLStore
	notifier *recordingDispatcher
	clock    time.Time
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:contact_handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newHarness mounts the contact routes without authentication; auth is
// covered by the middleware and router tests.
func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		store:    repo.NewSQLStore(newTestDB(t)),
		notifier: &recordingDispatcher{},
		clock:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	now := func() time.Time {
		h.clock = h.clock.Add(time.Minute)
		return h.clock
	}

	contacts := services.NewContactService(h.store, h.notifier)
	contacts.Replays = h.store
	contacts.Now = now
	reports := services.NewReportService(h.store)
	reports.Now = func() time.Time { return h.clock }

	hd := New(contacts, reports, h.store, "test")

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/health", hd.Health)
	api := r.Group("/api")
	api.POST("/contact", middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil), hd.SubmitContact)
	api.GET("/contact", hd.ListContacts)
	api.GET("/contact/stats", hd.ContactStats)
	api.GET("/contact/export", hd.ExportContacts)
	api.PATCH("/contact/bulk", hd.BulkUpdateContacts)
	api.GET("/contact/:id", hd.GetContact)
	api.PATCH("/contact/:id", hd.UpdateContact)
	api.PATCH("/contact/:id/respond", hd.MarkResponded)
	api.DELETE("/contact/:id", hd.DeleteContact)
	h.r = r
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

var janeDoe = map[string]any{
	"name":    "Jane Doe",
	"email":   "Jane@Example.com",
	"phone":   "+15551234567",
	"subject": "Need a website",
	"message": "We would like a new marketing site for our bakery.",
	"service": "web-development",
	"budget":  "10k-25k",
}

func (h *harness) submit(t *testing.T, body map[string]any) string {
	t.Helper()
	w := h.do(t, http.MethodPost, "/api/contact", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	return decode[ReceiptResponse](t, w).Data.Contact.ID
}

func with(base map[string]any, kv ...any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

// ---------- submit ----------

func TestSubmitContact_JaneDoe(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/contact", janeDoe)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "bakery") || strings.Contains(w.Body.String(), "5551234567") {
		t.Fatalf("receipt must not echo message or phone: %s", w.Body.String())
	}
	resp := decode[ReceiptResponse](t, w)
	if resp.Status != "success" || resp.Message != "Thank you for your message! We will get back to you within 24 hours." {
		t.Fatalf("envelope = %+v", resp)
	}
	rc := resp.Data.Contact
	if rc.ID == "" || rc.Name != "Jane Doe" || rc.Email != "jane@example.com" || rc.Subject != "Need a website" {
		t.Fatalf("receipt = %+v", rc)
	}

	stored, err := h.store.Get(context.Background(), rc.ID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.Status != domain.StatusNew || stored.Priority != domain.PriorityMedium || stored.IsRead {
		t.Fatalf("defaults not applied: %+v", stored)
	}
	if stored.Timeline != "not-specified" || stored.Source != "website" {
		t.Fatalf("enum defaults: timeline=%q source=%q", stored.Timeline, stored.Source)
	}
	if got := []string(stored.Tags); len(got) != 3 || got[0] != "web-development" {
		t.Fatalf("tags = %v", got)
	}
	if h.notifier.count() != 1 {
		t.Fatalf("notifications = %d", h.notifier.count())
	}
}

func TestSubmitContact_ValidationFailsAndPersistsNothing(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "J",
		"email":   "not-an-email",
		"subject": "Hi",
		"message": "short",
		"service": "rocket-science",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Status != "error" || resp.Code != ErrCodeValidation || resp.Message != "Validation failed" {
		t.Fatalf("envelope = %+v", resp)
	}
	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	for _, f := range []string{"name", "email", "subject", "message", "service"} {
		if !fields[f] {
			t.Fatalf("missing error for %s in %+v", f, resp.Errors)
		}
	}
	if resp.RequestID == "" {
		t.Fatalf("request id missing")
	}

	n, _ := h.store.Count(context.Background(), domain.ContactFilter{})
	if n != 0 || h.notifier.count() != 0 {
		t.Fatalf("nothing should be stored or sent: count=%d sent=%d", n, h.notifier.count())
	}
}

func TestSubmitContact_BadJSON(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/contact", `{"name":`)
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Code != ErrCodeBadRequest {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitContact_IdempotentReplay(t *testing.T) {
	h := newHarness(t)
	first := h.do(t, http.MethodPost, "/api/contact", janeDoe, middleware.HeaderIdempotencyKey, "retry-1")
	second := h.do(t, http.MethodPost, "/api/contact", janeDoe, middleware.HeaderIdempotencyKey, "retry-1")
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("codes = %d, %d", first.Code, second.Code)
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("replay header missing")
	}
	a := decode[ReceiptResponse](t, first).Data.Contact.ID
	b := decode[ReceiptResponse](t, second).Data.Contact.ID
	if a != b {
		t.Fatalf("replay returned a different contact: %s vs %s", a, b)
	}
	if n, _ := h.store.Count(context.Background(), domain.ContactFilter{}); n != 1 {
		t.Fatalf("count = %d", n)
	}
	if h.notifier.count() != 1 {
		t.Fatalf("replay must not notify again")
	}
}

// ---------- list / get ----------

func TestListContacts_SecondPageOfOne(t *testing.T) {
	h := newHarness(t)
	h.submit(t, with(janeDoe, "name", "Alice Smith"))
	middle := h.submit(t, with(janeDoe, "name", "Bob Jones"))
	h.submit(t, with(janeDoe, "name", "Carol White"))

	w := h.do(t, http.MethodGet, "/api/contact?page=2&limit=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[ListContactsResponse](t, w)
	p := resp.Pagination
	if resp.Results != 1 || len(resp.Data.Contacts) != 1 {
		t.Fatalf("results = %d", resp.Results)
	}
	if p.Page != 2 || p.Limit != 1 || p.Total != 3 || p.TotalPages != 3 || !p.HasNextPage || !p.HasPrevPage {
		t.Fatalf("pagination = %+v", p)
	}
	if resp.Data.Contacts[0].ID != middle {
		t.Fatalf("newest-first order broken: got %s want %s", resp.Data.Contacts[0].ID, middle)
	}
}

func TestListContacts_FiltersAndBadInput(t *testing.T) {
	h := newHarness(t)
	h.submit(t, janeDoe)
	h.submit(t, with(janeDoe, "name", "Mark Lee", "service", "consulting"))

	resp := decode[ListContactsResponse](t, h.do(t, http.MethodGet, "/api/contact?service=consulting&page=x&limit=-3", nil))
	if resp.Pagination.Total != 1 || resp.Pagination.Page != 1 || resp.Pagination.Limit != 20 {
		t.Fatalf("pagination = %+v", resp.Pagination)
	}
	if resp.Data.Contacts[0].Name != "Mark Lee" {
		t.Fatalf("filter mismatch: %+v", resp.Data.Contacts)
	}

	resp = decode[ListContactsResponse](t, h.do(t, http.MethodGet, "/api/contact?search=MARK", nil))
	if resp.Pagination.Total != 1 {
		t.Fatalf("search total = %d", resp.Pagination.Total)
	}
	resp = decode[ListContactsResponse](t, h.do(t, http.MethodGet, "/api/contact?isRead=yes", nil))
	if resp.Pagination.Total != 2 {
		t.Fatalf("isRead other than \"true\" means unread; total = %d", resp.Pagination.Total)
	}

	w := h.do(t, http.MethodGet, "/api/contact?startDate=yesterday", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", w.Code)
	}
}

func TestGetContact_MarksReadOnce(t *testing.T) {
	h := newHarness(t)
	id := h.submit(t, janeDoe)

	first := decode[ContactResponse](t, h.do(t, http.MethodGet, "/api/contact/"+id, nil)).Data.Contact
	second := decode[ContactResponse](t, h.do(t, http.MethodGet, "/api/contact/"+id, nil)).Data.Contact
	if !first.IsRead || first.ReadAt == nil {
		t.Fatalf("first view must mark read: %+v", first.Contact)
	}
	if !second.ReadAt.Equal(*first.ReadAt) {
		t.Fatalf("readAt changed on second view: %v -> %v", first.ReadAt, second.ReadAt)
	}

	w := h.do(t, http.MethodGet, "/api/contact/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound || decode[ErrorResponse](t, w).Message != "Contact not found" {
		t.Fatalf("missing contact: %d %s", w.Code, w.Body.String())
	}
}

// ---------- updates ----------

func TestUpdateContact(t *testing.T) {
	h := newHarness(t)
	id := h.submit(t, janeDoe)

	w := h.do(t, http.MethodPatch, "/api/contact/"+id, map[string]any{
		"status": "qualified",
		"notes":  "  Call back Tuesday ",
		"tags":   []string{"vip"},
		"email":  "ignored@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	resp := decode[ContactResponse](t, w)
	got := resp.Data.Contact
	if resp.Message != "Contact updated successfully" || got.Status != "qualified" || got.Notes != "Call back Tuesday" {
		t.Fatalf("update = %+v", resp)
	}
	if got.Email != "jane@example.com" || len(got.Tags) != 1 {
		t.Fatalf("non-writable field changed or tags wrong: %+v", got.Contact)
	}

	w = h.do(t, http.MethodPatch, "/api/contact/"+id, map[string]any{"priority": "whenever"})
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Code != ErrCodeValidation {
		t.Fatalf("invalid priority: %d %s", w.Code, w.Body.String())
	}
	if w := h.do(t, http.MethodPatch, "/api/contact/nope", map[string]any{"status": "closed"}); w.Code != http.StatusNotFound {
		t.Fatalf("missing id: %d", w.Code)
	}
}

func TestMarkResponded(t *testing.T) {
	h := newHarness(t)
	id := h.submit(t, janeDoe)

	w := h.do(t, http.MethodPatch, "/api/contact/"+id+"/respond", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	got := decode[ContactResponse](t, w).Data.Contact
	if got.Status != domain.StatusContacted || got.ResponseMethod != "email" || got.RespondedAt == nil {
		t.Fatalf("responded = %+v", got.Contact)
	}
	if got.ResponseTimeMs == nil || *got.ResponseTimeMs <= 0 {
		t.Fatalf("responseTimeMs = %v", got.ResponseTimeMs)
	}

	got = decode[ContactResponse](t, h.do(t, http.MethodPatch, "/api/contact/"+id+"/respond", map[string]any{"responseMethod": "phone"})).Data.Contact
	if got.ResponseMethod != "phone" {
		t.Fatalf("method = %q", got.ResponseMethod)
	}
	if w := h.do(t, http.MethodPatch, "/api/contact/"+id+"/respond", map[string]any{"responseMethod": "fax"}); w.Code != http.StatusBadRequest {
		t.Fatalf("fax accepted: %d", w.Code)
	}
}

func TestBulkUpdateContacts(t *testing.T) {
	h := newHarness(t)
	a := h.submit(t, janeDoe)
	b := h.submit(t, with(janeDoe, "name", "John Roe"))

	w := h.do(t, http.MethodPatch, "/api/contact/bulk", map[string]any{"contactIds": []string{}, "updates": map[string]any{"status": "closed"}})
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Message != "Contact IDs array is required" {
		t.Fatalf("empty ids: %d %s", w.Code, w.Body.String())
	}
	w = h.do(t, http.MethodPatch, "/api/contact/bulk", map[string]any{"contactIds": []string{a}, "updates": map[string]any{"notes": "x"}})
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Message != "No valid updates provided" {
		t.Fatalf("notes-only: %d %s", w.Code, w.Body.String())
	}

	w = h.do(t, http.MethodPatch, "/api/contact/bulk", map[string]any{
		"contactIds": []string{a, b, "missing"},
		"updates":    map[string]any{"status": "closed", "priority": "low"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk: %d %s", w.Code, w.Body.String())
	}
	resp := decode[BulkUpdateResponse](t, w)
	if resp.Message != "2 contacts updated successfully" || resp.Data.MatchedCount != 2 || resp.Data.ModifiedCount != 2 {
		t.Fatalf("bulk resp = %+v", resp)
	}
	got, _ := h.store.Get(context.Background(), b)
	if got.Status != "closed" || got.Priority != "low" {
		t.Fatalf("bulk not applied: %+v", got)
	}
}

func TestDeleteContact_Twice(t *testing.T) {
	h := newHarness(t)
	id := h.submit(t, janeDoe)

	w := h.do(t, http.MethodDelete, "/api/contact/"+id, nil)
	if w.Code != http.StatusOK || decode[MessageResponse](t, w).Message != "Contact deleted successfully" {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if w := h.do(t, http.MethodDelete, "/api/contact/"+id, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", w.Code)
	}
}

// ---------- reports ----------

func TestContactStats(t *testing.T) {
	h := newHarness(t)
	a := h.submit(t, janeDoe)
	h.submit(t, with(janeDoe, "name", "John Roe", "service", "consulting"))
	h.do(t, http.MethodGet, "/api/contact/"+a, nil)

	w := h.do(t, http.MethodGet, "/api/contact/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	s := decode[StatsResponse](t, w).Data
	if s.Stats.Total != 2 || s.Stats.New != 2 || s.UnreadCount != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if len(s.RecentContacts) != 1 || s.RecentContacts[0].Name != "John Roe" {
		t.Fatalf("recent = %+v", s.RecentContacts)
	}
	if s.ServiceCounts["consulting"] != 1 || s.DailyCounts["2024-06-01"] != 2 {
		t.Fatalf("counts = %v %v", s.ServiceCounts, s.DailyCounts)
	}
}

func TestExportContacts(t *testing.T) {
	h := newHarness(t)
	h.submit(t, janeDoe)
	h.submit(t, with(janeDoe, "name", "John Roe"))

	w := h.do(t, http.MethodGet, "/api/contact/export?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csv status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=contacts.csv" {
		t.Fatalf("disposition = %q", cd)
	}
	lines := strings.Split(w.Body.String(), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], `"Name","Email"`) || !strings.HasPrefix(lines[1], `"John Roe"`) {
		t.Fatalf("csv = %q", w.Body.String())
	}

	resp := decode[ExportResponse](t, h.do(t, http.MethodGet, "/api/contact/export?status=closed", nil))
	if resp.Status != "success" || resp.Results != 0 || resp.Data.Contacts == nil {
		t.Fatalf("json export = %+v", resp)
	}
}

// ---------- health ----------

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/health", nil)
	resp := decode[HealthResponse](t, w)
	if w.Code != http.StatusOK || resp.Message != "Renacod API is running" || resp.Environment != "test" {
		t.Fatalf("health = %d %+v", w.Code, resp)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", New(nil, nil, pingFunc(func(context.Context) error { return errors.New("disk gone") }), "test").Health)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable || decode[ErrorResponse](t, w).Code != ErrCodeUnavailable {
		t.Fatalf("failing store: %d %s", w.Code, w.Body.String())
	}
}
