package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/banklink/banklink/internal/adapter/http/dto"
	"github.com/banklink/banklink/internal/usecase"
)

// MovementHandler handles movement log HTTP requests.
type MovementHandler struct {
	movementUC *usecase.MovementUseCase
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// Get retrieves a movement by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := h.movementUC.GetMovement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// ListByAccount lists an account's movements, optionally bounded by
// from/to query parameters (RFC 3339).
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	input := usecase.ListMovementsInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
			return
		}
		input.From = &t
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
			return
		}
		input.To = &t
	}

	movements, err := h.movementUC.ListMovementsByAccount(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// ComputeBalance re-derives an account's balance from the movement log.
func (h *MovementHandler) ComputeBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	balance, err := h.movementUC.ComputeBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID:         accountID,
		CalculatedBalance: balance,
	})
}

// UpdateDescription corrects a movement's description.
func (h *MovementHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	var req dto.UpdateMovementDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.CorrectDescription(r.Context(), id, req.Description)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}
