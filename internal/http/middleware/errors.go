package middleware

import "github.com/gin-gonic/gin"

// Error codes emitted by middleware. They match the codes used by handlers.
const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeRateLimited  = "too_many_requests"
	codeInternal     = "internal_error"
)

type errorBody struct {
	Status    string `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// abort writes the API error envelope and stops the chain.
func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorBody{
		Status:    "error",
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFrom(c),
	})
}
