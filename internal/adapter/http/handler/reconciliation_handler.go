package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banklink/banklink/internal/adapter/http/dto"
	"github.com/banklink/banklink/internal/usecase"
)

// ReconciliationHandler handles reconciliation HTTP requests.
type ReconciliationHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC *usecase.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// CheckAccount reconciles one account's stored balance against its
// movement log.
func (h *ReconciliationHandler) CheckAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// CheckAll sweeps every account.
func (h *ReconciliationHandler) CheckAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.ReconcileAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromResult(report))
}
