package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/export"
	"github.com/renacod/backend/internal/services"
)

// StatsResponse wraps the dashboard aggregates.
type StatsResponse struct {
	Status string                `json:"status" example:"success"`
	Data   services.ContactStats `json:"data"`
}

// ExportResponse is the JSON export.
type ExportResponse struct {
	Status  string `json:"status" example:"success"`
	Results int    `json:"results" example:"42"`
	Data    struct {
		Contacts []domain.ContactView `json:"contacts"`
	} `json:"data"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status      string    `json:"status" example:"success"`
	Message     string    `json:"message" example:"Renacod API is running"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment" example:"development"`
}

// ContactStats godoc
// @ID          contactStats
// @Summary     Dashboard statistics
// @Description Totals per status, service and priority, unread count, the five newest unread contacts, and daily counts for the last 30 days.
// @Tags        Reports
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.StatsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /contact/stats [get]
func (h *Handlers) ContactStats(c *gin.Context) {
	stats, err := h.reports.Stats(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, StatsResponse{Status: statusSuccess, Data: *stats})
}

// ExportContacts godoc
// @ID          exportContacts
// @Summary     Export contacts
// @Description Exports every contact matching the list filters, newest first, as JSON or as a CSV attachment.
// @Tags        Reports
// @Produce     json
// @Produce     text/csv
// @Security    BearerAuth
// @Param       format     query  string  false  "Output format"  Enums(json, csv)  default(json)
// @Param       status     query  string  false  "Status filter"
// @Param       startDate  query  string  false  "Created at or after"
// @Param       endDate    query  string  false  "Created at or before"
// @Success     200  {object}  handlers.ExportResponse
// @Header      200  {string}  Content-Disposition  "attachment; filename=contacts.csv (CSV only)"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad date"
// @Router      /contact/export [get]
func (h *Handlers) ExportContacts(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	p, err := h.reports.Export(c.Request.Context(), export.ParseFormat(c.Query("format")), f)
	if err != nil {
		failFromError(c, err)
		return
	}

	if p.Format == export.CSV {
		c.Header("Content-Disposition", "attachment; filename="+p.Filename)
		c.Data(http.StatusOK, p.ContentType, p.Body)
		return
	}
	resp := ExportResponse{Status: statusSuccess, Results: p.Count}
	resp.Data.Contacts = p.Contacts
	ok(c, http.StatusOK, resp)
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unreachable"
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "Storage is unavailable")
			return
		}
	}
	ok(c, http.StatusOK, HealthResponse{
		Status:      statusSuccess,
		Message:     "Renacod API is running",
		Timestamp:   h.now(),
		Environment: h.env,
	})
}
