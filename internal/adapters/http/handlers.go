package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/The-Wary-One/lens-protocol/internal/application"
	"github.com/The-Wary-One/lens-protocol/internal/domain"
	"github.com/The-Wary-One/lens-protocol/internal/ports"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service  *application.Service
	verifier ports.HostTokenVerifier
}

func NewHandler(service *application.Service, verifier ports.HostTokenVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

// hostAuthMiddleware gates the mutating endpoints: only the owning
// registry holds a valid host token. When no verifier is configured the
// gate is open, which is the local-run mode.
func (h *Handler) hostAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		claims, err := h.verifier.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyHostClaims, claims)))
	})
}

type initializeRequest struct {
	Config json.RawMessage `json:"config"`
}

func (h *Handler) initializeProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profile_id")
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	echoed, err := h.service.Initialize(r.Context(), profileID, req.Config)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, json.RawMessage(echoed))
}

type followRequest struct {
	Follower  string          `json:"follower"`
	Assertion json.RawMessage `json:"assertion"`
}

func (h *Handler) processFollow(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profile_id")
	var req followRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	follower, err := domain.ParseAddress(req.Follower)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid follower address")
		return
	}
	resp, err := h.service.ProcessFollow(r.Context(), follower, profileID, req.Assertion)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) validateFollow(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profile_id")
	follower, err := domain.ParseAddress(chi.URLParam(r, "follower"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid follower address")
		return
	}
	var receiptID uint64
	if raw := r.URL.Query().Get("receipt_id"); raw != "" {
		receiptID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "receipt_id must be a non-negative integer")
			return
		}
	}
	resp, err := h.service.ValidateFollow(r.Context(), profileID, follower, receiptID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

type transferHookRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	ReceiptID uint64 `json:"receipt_id"`
}

func (h *Handler) receiptTransferHook(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profile_id")
	var req transferHookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	from, err := domain.ParseAddress(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid from address")
		return
	}
	to, err := domain.ParseAddress(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid to address")
		return
	}
	if err := h.service.TransferHook(r.Context(), profileID, from, to, req.ReceiptID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "acknowledged")
}

func (h *Handler) getProfileConfig(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profile_id")
	resp, err := h.service.GetProfileConfig(r.Context(), profileID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
