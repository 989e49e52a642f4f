package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// ErrorResponse is the error body returned by every API endpoint.
type ErrorResponse struct {
	Error   domain.Kind `json:"error"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent, so the failure can only be logged.
			logger.Printf("failed to encode JSON response: %v\n", err)
		}
	}
}

// statusOf maps an error kind onto the HTTP status returned to API clients.
func statusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalid:
		return http.StatusBadRequest
	case domain.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	kind := domain.KindOf(err)
	logger.Printf("request failed (%s): %v\n", kind, err)
	writeJSON(w, logger, statusOf(kind), ErrorResponse{
		Error:   kind,
		Message: domain.UserMessage(err),
	})
}

func writeBadRequest(w http.ResponseWriter, logger *log.Logger, message string) {
	writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{
		Error:   domain.KindInvalid,
		Message: message,
	})
}
