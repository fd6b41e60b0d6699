package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/renacod/backend/internal/services"
	"github.com/renacod/backend/internal/validation"
)

func TestFailFromError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		code int
		want string
	}{
		{&services.ValidationError{Fields: validation.FieldErrors{{Field: "name", Message: "too short"}}}, http.StatusBadRequest, ErrCodeValidation},
		{fmt.Errorf("load: %w", services.ErrContactNotFound), http.StatusNotFound, ErrCodeNotFound},
		{services.ErrNoContactIDs, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrNoValidUpdates, http.StatusBadRequest, ErrCodeBadRequest},
		{errors.New("database is locked"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		failFromError(c, tc.err)

		if w.Code != tc.code {
			t.Fatalf("%v: status = %d; want %d", tc.err, w.Code, tc.code)
		}
		resp := decode[ErrorResponse](t, w)
		if resp.Status != "error" || resp.Code != tc.want {
			t.Fatalf("%v: body = %+v", tc.err, resp)
		}
		if strings.Contains(w.Body.String(), "database is locked") {
			t.Fatalf("internal error detail leaked: %s", w.Body.String())
		}
	}
}

func TestFail_ExportedEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Writer.Header().Set("X-Request-ID", "rid-9")

	Fail(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	resp := decode[ErrorResponse](t, w)
	if resp.RequestID != "rid-9" || resp.Message != "route not found" || len(resp.Errors) != 0 {
		t.Fatalf("envelope = %+v", resp)
	}
}
