/*
handlers.go - HTTP API handlers for the claim-count engine

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates to the engine.

ENDPOINTS:
  POST /api/claims/count   Compute a claim count for the given criteria
  GET  /api/health         Liveness check

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid criteria (missing required field, bad date, bad enum)
  - 503: A collaborator (subject lookup or claim source) is unavailable
  - 500: Anything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/warp/claims-engine/engine"
)

// Handler holds the API's dependencies.
type Handler struct {
	engine *engine.Engine
}

// NewHandler creates a handler backed by the given engine.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// =============================================================================
// CLAIM COUNT ENDPOINT
// =============================================================================

// CountClaims handles POST /api/claims/count.
func (h *Handler) CountClaims(w http.ResponseWriter, r *http.Request) {
	var req CountClaimsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	criteria, err := req.toCriteria()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid criteria", err)
		return
	}

	count, err := h.engine.CountClaims(r.Context(), criteria)
	if err != nil {
		switch {
		case engine.IsClientError(err):
			writeError(w, http.StatusBadRequest, "invalid criteria", err)
		case engine.IsUnavailable(err):
			writeError(w, http.StatusServiceUnavailable, "claim data unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, CountClaimsResponse{Count: count})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
