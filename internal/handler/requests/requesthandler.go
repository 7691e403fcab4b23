package requesthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/internal/requests"
	"github.com/MikelBai/Bank-management-application/pkg/dto"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type coordinator interface {
	Submit(username string, t *domain.Transaction) (bool, error)
	Approve(index int) (bool, error)
	Reject(index int) error
	Pending() []*requests.RevertRequest
}

type tellerService interface {
	Transaction(id uuid.UUID) (*domain.Transaction, error)
}

type RequestHandler struct {
	coordinator coordinator
	teller      tellerService
}

func New(c coordinator, teller tellerService) *RequestHandler {
	return &RequestHandler{
		coordinator: c,
		teller:      teller,
	}
}

func (h *RequestHandler) SubmitRevert(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("User-ID")

	var req dto.RevertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a revert request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.TransactionID)
	if err != nil {
		http.Error(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	t, err := h.teller.Transaction(id)
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	accepted, err := h.coordinator.Submit(username, t)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			http.Error(w, "exchange rate unavailable", http.StatusBadGateway)
			return
		}
		logger.Log.Error("error while submitting revert request", logger.String("user_id", username), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if !accepted {
		logger.Log.Warn("revert request declined", logger.String("user_id", username), logger.String("transaction_id", req.TransactionID))
		http.Error(w, "transaction is not revertible or already requested", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *RequestHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending := h.coordinator.Pending()

	dtos := make([]dto.PendingRevert, len(pending))
	for i, request := range pending {
		dtos[i] = dto.PendingRevert{
			Index:       i,
			Username:    request.Username,
			Description: request.Transaction.State().Describe(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		logger.Log.Error("error while encoding pending reverts to JSON", logger.Error(err))
	}
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	index, ok := h.requestIndex(w, r)
	if !ok {
		return
	}

	reverted, err := h.coordinator.Approve(index)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			http.Error(w, "no such pending request", http.StatusNotFound)
		case errors.Is(err, domain.ErrRateUnavailable):
			http.Error(w, "exchange rate unavailable", http.StatusBadGateway)
		default:
			logger.Log.Error("error while approving revert request", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}
	if !reverted {
		http.Error(w, "transaction can no longer be reverted", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	index, ok := h.requestIndex(w, r)
	if !ok {
		return
	}

	if err := h.coordinator.Reject(index); err != nil {
		http.Error(w, "no such pending request", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *RequestHandler) requestIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid request index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}
