package atmhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikelBai/Bank-management-application/internal/cash"
	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/pkg/dto"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
)

type tellerService interface {
	Restock(denomination, count int) error
	Stock() (cash.Combination, int)
}

type ATMHandler struct {
	teller tellerService
}

func New(teller tellerService) *ATMHandler {
	return &ATMHandler{teller: teller}
}

func (h *ATMHandler) Stock(w http.ResponseWriter, r *http.Request) {
	stock, total := h.teller.Stock()

	resp := dto.Stock{
		Fifties:  stock[0],
		Twenties: stock[1],
		Tens:     stock[2],
		Fives:    stock[3],
		Total:    total,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Error("error while encoding stock to JSON", logger.Error(err))
	}
}

func (h *ATMHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req dto.Restock
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a restock request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.teller.Restock(req.Denomination, req.Count); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownDenomination):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrBillLimitExceeded):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
