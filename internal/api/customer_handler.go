package api

import (
	"net/http"
	"strconv"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type customerHandler struct {
	customers service.CustomerService
}

// lookup resolves a customer by phone at the point of sale, provisioning an
// empty wallet when the phone is unknown.
func (h *customerHandler) lookup(w http.ResponseWriter, r *http.Request) {
	if _, err := requireRole(r, domain.RoleWorker); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.customers.LookupByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *customerHandler) scan(w http.ResponseWriter, r *http.Request) {
	if _, err := requireRole(r, domain.RoleWorker); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.customers.LookupByQRCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

type registerDeviceRequest struct {
	DeviceToken string `json:"device_token"`
}

func (h *customerHandler) registerDevice(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleCustomer)
	if err != nil {
		writeError(w, err)
		return
	}
	var req registerDeviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.customers.RegisterDevice(r.Context(), claims.ActorID, req.DeviceToken); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type customerBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func (h *customerHandler) balance(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleCustomer)
	if err != nil {
		writeError(w, err)
		return
	}
	balance, err := h.customers.GetBalance(r.Context(), claims.ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customerBalanceResponse{Balance: balance})
}

type transactionPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int32                `json:"total"`
	Page         int32                `json:"page"`
	PageSize     int32                `json:"page_size"`
}

func (h *customerHandler) transactions(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.RoleCustomer)
	if err != nil {
		writeError(w, err)
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	transactions, total, err := h.customers.ListTransactions(r.Context(), claims.ActorID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionPage{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	})
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
