package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
	"renthub-backend/internal/service"
)

type WalletHandler struct {
	wallets service.WalletService
}

func NewWalletHandler(wallets service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
		return
	}

	wallet, err := h.wallets.GetWallet(r.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Portafoglio non trovato")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Errore interno")
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

type transactionListResponse struct {
	Transactions []domain.WalletTransaction `json:"transactions"`
	Total        int32                      `json:"total"`
}

func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
		return
	}
	page, pageSize := paginationParams(r)

	txs, total, err := h.wallets.ListTransactions(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Errore interno")
		return
	}
	if txs == nil {
		txs = []domain.WalletTransaction{}
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Transactions: txs, Total: total})
}

// RegisterWalletRoutes registers the authenticated wallet endpoints
func RegisterWalletRoutes(router *mux.Router, wallets service.WalletService) {
	handler := NewWalletHandler(wallets)
	router.HandleFunc("/api/v1/wallet", handler.Get).Methods("GET")
	router.HandleFunc("/api/v1/wallet/transactions", handler.ListTransactions).Methods("GET")
}
