package api

import (
	"fmt"
	"net/http"
	"strconv"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type transferHandler struct {
	transfers service.TransferService
}

type renderRequest struct {
	RegisterID    int32           `json:"register_id"`
	CustomerPhone string          `json:"customer_phone"`
	Amount        decimal.Decimal `json:"amount"`
}

func (h *transferHandler) render(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleWorker)
	if err != nil {
		writeError(w, err)
		return
	}
	var req renderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	receipt, err := h.transfers.Render(r.Context(), claims.ActorID, req.RegisterID, req.CustomerPhone, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

type collectRequest struct {
	RegisterID    int32           `json:"register_id"`
	CustomerPhone string          `json:"customer_phone"`
	Amount        decimal.Decimal `json:"amount"`
	// Password confirms the worker identity a second time before money
	// leaves the customer's wallet.
	Password string `json:"password"`
}

func (h *transferHandler) collect(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleWorker)
	if err != nil {
		writeError(w, err)
		return
	}
	var req collectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	receipt, err := h.transfers.Collect(r.Context(), claims.ActorID, req.Password, req.RegisterID, req.CustomerPhone, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

type correctRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *transferHandler) correct(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleWorker)
	if err != nil {
		writeError(w, err)
		return
	}
	transactionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req correctRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	receipt, err := h.transfers.Correct(r.Context(), claims.ActorID, transactionID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrValidation)
	}
	return int32(id), nil
}
