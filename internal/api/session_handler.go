package api

import (
	"net/http"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"
)

type sessionHandler struct {
	sessions service.SessionService
}

type openSessionRequest struct {
	RegisterID int32 `json:"register_id"`
}

func (h *sessionHandler) open(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleWorker)
	if err != nil {
		writeError(w, err)
		return
	}
	var req openSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.sessions.Open(r.Context(), claims.ActorID, req.RegisterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *sessionHandler) close(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleWorker)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.sessions.Close(r.Context(), claims.ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *sessionHandler) current(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleWorker)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.sessions.Summary(r.Context(), claims.ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
