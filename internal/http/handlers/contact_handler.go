// Contact HTTP handlers.
//
// This file exposes the contact endpoints:
//   - POST   /contact               (public submission)
//   - GET    /contact               (staff list, filtered and paginated)
//   - GET    /contact/{id}          (staff detail, marks read)
//   - PATCH  /contact/{id}          (staff triage update)
//   - PATCH  /contact/{id}/respond  (staff marks responded)
//   - PATCH  /contact/bulk          (staff bulk triage)
//   - DELETE /contact/{id}          (admin delete)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/export"
	"github.com/renacod/backend/internal/http/middleware"
	"github.com/renacod/backend/internal/services"
	"github.com/renacod/backend/internal/utils"
	"github.com/renacod/backend/internal/validation"
)

// ContactService is the contact lifecycle consumed by the handlers.
type ContactService interface {
	SubmitOnce(ctx context.Context, clientID, key string, in validation.Submission) (*domain.Contact, bool, error)
	List(ctx context.Context, f domain.ContactFilter, page, limit int) ([]domain.Contact, utils.PageInfo, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error)
	MarkResponded(ctx context.Context, id, method string) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(ctx context.Context, ids []string, patch domain.ContactPatch) (domain.BulkResult, error)
}

// ReportService computes the dashboard and exports.
type ReportService interface {
	Stats(ctx context.Context) (*services.ContactStats, error)
	Export(ctx context.Context, format export.Format, f domain.ContactFilter) (*export.Payload, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	contacts ContactService
	reports  ReportService
	store    Pinger
	env      string
	now      func() time.Time
}

// New binds the handlers to their services. store may be nil, in which case
// the health check does not probe storage.
func New(contacts ContactService, reports ReportService, store Pinger, env string) *Handlers {
	return &Handlers{
		contacts: contacts,
		reports:  reports,
		store:    store,
		env:      env,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

//
// DTOs
//

// ReceiptResponse is returned for an accepted submission.
type ReceiptResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Thank you for your message! We will get back to you within 24 hours."`
	Data    struct {
		Contact domain.Receipt `json:"contact"`
	} `json:"data"`
}

// ContactResponse wraps one contact.
type ContactResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty" example:"Contact updated successfully"`
	Data    struct {
		Contact domain.ContactView `json:"contact"`
	} `json:"data"`
}

// ListContactsResponse wraps one page of contacts.
type ListContactsResponse struct {
	Status     string         `json:"status" example:"success"`
	Results    int            `json:"results" example:"20"`
	Pagination utils.PageInfo `json:"pagination"`
	Data       struct {
		Contacts []domain.ContactView `json:"contacts"`
	} `json:"data"`
}

// BulkUpdateRequest applies one patch to many contacts. Notes are ignored.
type BulkUpdateRequest struct {
	ContactIDs []string            `json:"contactIds" example:"3f2504e0-4f89-41d3-9a0c-0305e82c3301"`
	Updates    domain.ContactPatch `json:"updates"`
}

// BulkUpdateResponse reports how many contacts matched and changed.
type BulkUpdateResponse struct {
	Status  string            `json:"status" example:"success"`
	Message string            `json:"message" example:"2 contacts updated successfully"`
	Data    domain.BulkResult `json:"data"`
}

// RespondRequest records how staff answered a contact.
type RespondRequest struct {
	ResponseMethod string `json:"responseMethod" example:"email" enums:"email,phone,meeting"`
}

func (h *Handlers) contactResponse(c *domain.Contact, msg string) ContactResponse {
	resp := ContactResponse{Status: statusSuccess, Message: msg}
	resp.Data.Contact = c.View(h.now())
	return resp
}

//
// Query parsing
//

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC
// midnight).
func parseDate(s string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

// parseFilter reads the list/export filter from the query string. isRead is
// true only for the literal "true".
func parseFilter(c *gin.Context) (domain.ContactFilter, error) {
	f := domain.ContactFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Service:  c.Query("service"),
		Source:   c.Query("source"),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if v, present := c.GetQuery("isRead"); present {
		read := v == "true"
		f.IsRead = &read
	}
	for _, p := range []struct {
		param string
		dst   **time.Time
	}{{"startDate", &f.Start}, {"endDate", &f.End}} {
		v := c.Query(p.param)
		if v == "" {
			continue
		}
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("%s: %w", p.param, err)
		}
		*p.dst = t
	}
	return f, nil
}

//
// Handlers
//

// SubmitContact godoc
// @ID          submitContact
// @Summary     Submit the contact form
// @Description Validates and stores a contact submission and notifies staff by e-mail. Retries carrying the same Idempotency-Key return the original receipt.
// @Tags        Contact
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                    false  "Client retry key"
// @Param       body             body    validation.Submission     true   "Contact form"
//
// @Success     201  {object}  handlers.ReceiptResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contact [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	var in validation.Submission
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}
	key, _ := middleware.GetIdempotencyKey(c)

	contact, replayed, err := h.contacts.SubmitOnce(c.Request.Context(), middleware.ClientID(c), key, in)
	if err != nil {
		failFromError(c, err)
		return
	}
	if replayed {
		c.Header("Idempotent-Replayed", "true")
	}

	resp := ReceiptResponse{
		Status:  statusSuccess,
		Message: "Thank you for your message! We will get back to you within 24 hours.",
	}
	resp.Data.Contact = contact.Receipt()
	ok(c, http.StatusCreated, resp)
}

// ListContacts godoc
// @ID          listContacts
// @Summary     List contacts
// @Description Returns one page of contacts, newest first. Invalid page or limit values fall back to 1 and 20.
// @Tags        Contact
// @Produce     json
// @Security    BearerAuth
//
// @Param       page       query  int     false  "Page number"       default(1)
// @Param       limit      query  int     false  "Items per page"    default(20)
// @Param       status     query  string  false  "Status filter"     Enums(new, in-progress, contacted, qualified, closed)
// @Param       priority   query  string  false  "Priority filter"   Enums(low, medium, high, urgent)
// @Param       service    query  string  false  "Service filter"
// @Param       source     query  string  false  "Source filter"
// @Param       isRead     query  bool    false  "Read flag filter"
// @Param       search     query  string  false  "Case-insensitive match on name, email, company, subject or message"
// @Param       startDate  query  string  false  "Created at or after (RFC 3339 or YYYY-MM-DD)"
// @Param       endDate    query  string  false  "Created at or before (RFC 3339 or YYYY-MM-DD)"
//
// @Success     200  {object}  handlers.ListContactsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad date"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Router      /contact [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	page := utils.AtoiDefault(c.Query("page"), utils.DefaultPage)
	limit := utils.AtoiDefault(c.Query("limit"), utils.DefaultLimit)

	items, info, err := h.contacts.List(c.Request.Context(), f, page, limit)
	if err != nil {
		failFromError(c, err)
		return
	}
	resp := ListContactsResponse{
		Status:     statusSuccess,
		Results:    len(items),
		Pagination: info,
	}
	resp.Data.Contacts = domain.Views(items, h.now())
	ok(c, http.StatusOK, resp)
}

// GetContact godoc
// @ID          getContact
// @Summary     Get a contact
// @Description Returns one contact. The first staff view marks it read.
// @Tags        Contact
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string  true  "Contact ID"
// @Success     200  {object}  handlers.ContactResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /contact/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	contact, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, h.contactResponse(contact, ""))
}

// UpdateContact godoc
// @ID          updateContact
// @Summary     Update a contact
// @Description Changes status, priority, notes and tags. Other fields in the body are ignored.
// @Tags        Contact
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string               true  "Contact ID"
// @Param       body  body  domain.ContactPatch  true  "Fields to change"
// @Success     200  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /contact/{id} [patch]
func (h *Handlers) UpdateContact(c *gin.Context) {
	var patch domain.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}
	contact, err := h.contacts.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, h.contactResponse(contact, "Contact updated successfully"))
}

// MarkResponded godoc
// @ID          markContactResponded
// @Summary     Mark a contact responded
// @Description Records the response time and method and sets the status to contacted. The body is optional; the method defaults to email.
// @Tags        Contact
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string                   true   "Contact ID"
// @Param       body  body  handlers.RespondRequest  false  "Response method"
// @Success     200  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /contact/{id}/respond [patch]
func (h *Handlers) MarkResponded(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}
	contact, err := h.contacts.MarkResponded(c.Request.Context(), c.Param("id"), req.ResponseMethod)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, h.contactResponse(contact, "Contact marked as responded"))
}

// DeleteContact godoc
// @ID          deleteContact
// @Summary     Delete a contact
// @Description Permanently removes a contact. Admins only.
// @Tags        Contact
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string  true  "Contact ID"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /contact/{id} [delete]
func (h *Handlers) DeleteContact(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Status: statusSuccess, Message: "Contact deleted successfully"})
}

// BulkUpdateContacts godoc
// @ID          bulkUpdateContacts
// @Summary     Bulk update contacts
// @Description Applies status, priority and tags to every listed contact. Notes cannot be bulk edited.
// @Tags        Contact
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.BulkUpdateRequest  true  "IDs and updates"
// @Success     200  {object}  handlers.BulkUpdateResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing IDs or updates"
// @Router      /contact/bulk [patch]
func (h *Handlers) BulkUpdateContacts(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}
	res, err := h.contacts.BulkUpdate(c.Request.Context(), req.ContactIDs, req.Updates)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, BulkUpdateResponse{
		Status:  statusSuccess,
		Message: fmt.Sprintf("%d contacts updated successfully", res.ModifiedCount),
		Data:    res,
	})
}
