package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banklink/banklink/internal/adapter/http/dto"
	"github.com/banklink/banklink/internal/usecase"
)

// BankHandler handles external bank registry HTTP requests.
type BankHandler struct {
	bankUC *usecase.BankUseCase
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankUC *usecase.BankUseCase) *BankHandler {
	return &BankHandler{bankUC: bankUC}
}

// Create registers a counterpart bank.
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := h.bankUC.CreateBank(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create bank", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankFromDomain(bank))
}

// Get retrieves a bank by ID.
func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank ID", "")
		return
	}

	bank, err := h.bankUC.GetBank(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get bank", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}

// List lists registered banks.
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	banks, err := h.bankUC.ListBanks(r.Context(), usecase.ListBanksInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list banks", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BanksFromDomain(banks))
}

// Update updates a bank's mutable fields.
func (h *BankHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank ID", "")
		return
	}

	var req dto.UpdateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := h.bankUC.UpdateBank(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update bank", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}

// Delete removes a bank.
func (h *BankHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bank ID", "")
		return
	}

	if err := h.bankUC.DeleteBank(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete bank", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
