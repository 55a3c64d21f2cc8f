package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// Request is the body of POST /rpc.
type Request struct {
	Method string          `json:"method" binding:"required"`
	Params json.RawMessage `json:"params,omitempty"`
	Origin string          `json:"origin,omitempty"`
}

// ErrorBody is the error shape of every endpoint.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// InsightResponse is the body of a successful POST /insight.
type InsightResponse struct {
	Content *domain.Component `json:"content"`
	Text    string            `json:"text"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRPC(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}

	origin := req.Origin
	if origin == "" {
		origin = c.GetHeader("Origin")
	}

	res, err := s.deps.RPC.Handle(c.Request.Context(), domain.RPCRequest{
		Origin: origin,
		Method: req.Method,
		Params: req.Params,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

func (s *Server) handleInsight(c *gin.Context) {
	var tx domain.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	content, err := s.deps.Insight.OnTransaction(c.Request.Context(), tx)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, InsightResponse{Content: content, Text: content.PlainText()})
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	detail := ErrorDetail{Message: err.Error()}
	if kind := domain.ErrorKindOf(err); kind != 0 {
		detail.Kind = kind.String()
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: detail})
}

// statusFor maps an error to the HTTP status returned to the caller.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMethodNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	}

	switch domain.ErrorKindOf(err) {
	case domain.ErrorKindTransport, domain.ErrorKindHTTPStatus, domain.ErrorKindGraphQL:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
