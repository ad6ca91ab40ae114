package api

import (
	"net/http"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"

	"github.com/shopspring/decimal"
)

type registerHandler struct {
	registers service.RegisterService
}

type createRegisterRequest struct {
	Name       string          `json:"name"`
	MinBalance decimal.Decimal `json:"min_balance"`
}

func (h *registerHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleMerchantAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	register, err := h.registers.CreateRegister(r.Context(), claims.ActorID, req.Name, req.MinBalance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, register)
}

func (h *registerHandler) list(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleMerchantAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	registers, err := h.registers.ListByMerchant(r.Context(), claims.ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registers)
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func (h *registerHandler) balance(w http.ResponseWriter, r *http.Request) {
	if _, err := requireRole(r, domain.RoleWorker, domain.RoleMerchantAdmin); err != nil {
		writeError(w, err)
		return
	}
	registerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	balance, err := h.registers.GetBalance(r.Context(), registerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

type rechargeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *registerHandler) recharge(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleMerchantAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	registerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req rechargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.registers.Recharge(r.Context(), claims.ActorID, registerID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type registerTransferRequest struct {
	SourceID      int32           `json:"source_id"`
	DestinationID int32           `json:"destination_id"`
	Amount        decimal.Decimal `json:"amount"`
}

func (h *registerHandler) transfer(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleMerchantAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	var req registerTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.registers.TransferBetween(r.Context(), claims.ActorID, req.SourceID, req.DestinationID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
