package api

import (
	"net/http"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"
)

type authHandler struct {
	auth service.AuthService
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	Worker      *domain.Worker `json:"worker"`
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token, worker, err := h.auth.LoginWorker(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, Worker: worker})
}

type registerWorkerRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// registerWorker creates a cashier account under the calling admin's
// merchant. Merchant-admin tokens carry the merchant ID as the actor ID.
func (h *authHandler) registerWorker(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleMerchantAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	var req registerWorkerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	worker, err := h.auth.RegisterWorker(r.Context(), claims.ActorID, req.Phone, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, worker)
}
