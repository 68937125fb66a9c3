package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleDevToken issues a token without credentials. Only mounted when
// AUTH_MODE=dev.
// POST /api/auth/dev
func (h *Handlers) HandleDevToken(w http.ResponseWriter, r *http.Request) {
	var req DevTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body")
		return
	}

	resp, err := h.service.IssueToken(req.UserID)
	if err != nil {
		if errors.Is(err, ErrInvalidSubject) {
			writeError(w, http.StatusBadRequest, "invalid_request", "userId contains unsupported characters")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
