package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banklink/banklink/internal/adapter/http/dto"
	"github.com/banklink/banklink/internal/usecase"
)

// TransferHandler handles transfer and balance-operation HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Deposit credits an account.
func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Deposit(r.Context(), usecase.DepositInput{
		AccountID:   accountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromResult(result))
}

// Withdraw debits an account.
func (h *TransferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Withdraw(r.Context(), usecase.WithdrawInput{
		AccountID:   accountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to withdraw", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromResult(result))
}

// Create creates an internal transfer.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// CreateExternal creates an outbound external transfer. A gateway failure
// surfaces as a transfer with status failed, not as an HTTP error.
func (h *TransferHandler) CreateExternal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExternalTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.TransferExternal(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create external transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Receive credits a local account with an inbound external transfer.
func (h *TransferHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req dto.ReceiveTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.ReceiveExternal(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to receive transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// ListByAccount lists transfers for an account.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transfers, err := h.transferUC.ListTransfersByAccount(r.Context(), usecase.ListTransfersByAccountInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
