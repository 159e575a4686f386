// file: internal/response/response.go
package response

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/contextutils"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE ENVELOPE
// ===============================

// APIResponse is the envelope every endpoint returns. Data is present only
// on success.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// Builder writes API responses with consistent headers and logging.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a response builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// WriteSuccess writes a 200 envelope around data.
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	b.write(w, r, http.StatusOK, data, message, true)
}

// WriteCreated writes a 201 envelope around data.
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	b.write(w, r, http.StatusCreated, data, message, true)
}

// WriteError maps a service error onto the envelope. Unknown error types are
// reported as an internal error without leaking detail.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if svcErr, ok := services.AsServiceError(err); ok {
		status = svcErr.GetStatusCode()
		message = svcErr.Message
		if status >= 500 {
			message = "internal server error"
		}
	}

	if status >= 500 {
		b.logger.Error("Request failed",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	b.write(w, r, status, nil, message, false)
}

func (b *Builder) write(w http.ResponseWriter, r *http.Request, status int, data interface{}, message string, success bool) {
	w.Header().Set("Content-Type", "application/json")
	if requestID := contextutils.GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}
	w.WriteHeader(status)

	envelope := APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    success,
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}
