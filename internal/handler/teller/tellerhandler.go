package tellerhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/pkg/dto"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/theplant/luhn"
)

type tellerService interface {
	Deposit(accountID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error)
	Withdraw(accountID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error)
	PayBill(accountID uuid.UUID, amount decimal.Decimal, payee string, date time.Time) (*domain.Transaction, bool, error)
	Transfer(fromID, toID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error)
	TransferToUser(fromID uuid.UUID, toUsername string, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error)
}

type accountService interface {
	Account(id uuid.UUID) (*domain.Account, error)
}

type TellerHandler struct {
	teller   tellerService
	accounts accountService
}

func New(teller tellerService, accounts accountService) *TellerHandler {
	return &TellerHandler{
		teller:   teller,
		accounts: accounts,
	}
}

func (h *TellerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.Deposit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a deposit request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	accountID, ok := h.ownedAccountID(w, r, req.AccountID)
	if !ok {
		return
	}

	t, executed, err := h.teller.Deposit(accountID, decimal.NewFromFloat(req.Sum), time.Now())
	h.respond(w, r, t, executed, err)
}

func (h *TellerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.Withdrawal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a withdrawal request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	accountID, ok := h.ownedAccountID(w, r, req.AccountID)
	if !ok {
		return
	}

	t, executed, err := h.teller.Withdraw(accountID, decimal.NewFromFloat(req.Sum), time.Now())
	h.respond(w, r, t, executed, err)
}

func (h *TellerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.Transfer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a transfer request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fromID, ok := h.ownedAccountID(w, r, req.FromAccountID)
	if !ok {
		return
	}

	amount := decimal.NewFromFloat(req.Sum)
	if req.ToUsername != "" {
		t, executed, err := h.teller.TransferToUser(fromID, req.ToUsername, amount, time.Now())
		h.respond(w, r, t, executed, err)
		return
	}

	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		http.Error(w, "invalid destination account ID", http.StatusBadRequest)
		return
	}

	t, executed, err := h.teller.Transfer(fromID, toID, amount, time.Now())
	h.respond(w, r, t, executed, err)
}

func (h *TellerHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	var req dto.BillPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a bill payment request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	payeeAccount, err := strconv.ParseInt(req.PayeeAccount, 10, 64)
	if err != nil {
		logger.Log.Warn("invalid payee account number", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if ok := luhn.Valid(int(payeeAccount)); !ok {
		logger.Log.Warn("invalid payee account number, Luhn check failed", logger.String("payee_account", req.PayeeAccount))
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	accountID, ok := h.ownedAccountID(w, r, req.AccountID)
	if !ok {
		return
	}

	t, executed, err := h.teller.PayBill(accountID, decimal.NewFromFloat(req.Sum), req.Payee, time.Now())
	h.respond(w, r, t, executed, err)
}

func (h *TellerHandler) respond(w http.ResponseWriter, r *http.Request, t *domain.Transaction, executed bool, err error) {
	username := r.Header.Get("User-ID")

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateUnavailable):
			logger.Log.Error("exchange rate unavailable", logger.String("user_id", username), logger.Error(err))
			http.Error(w, "exchange rate unavailable", http.StatusBadGateway)
		case errors.Is(err, domain.ErrForeignCashOperation):
			logger.Log.Warn("cash operation on foreign currency account", logger.String("user_id", username))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrNoPrimaryAccount):
			logger.Log.Warn("recipient has no primary account", logger.String("user_id", username))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrAccountNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrNonPositiveAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Log.Error("error while running transaction", logger.String("user_id", username), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	if !executed {
		logger.Log.Warn("transaction declined", logger.String("user_id", username))
		http.Error(w, "insufficient funds or cash stock", http.StatusPaymentRequired)
		return
	}

	st := t.State()
	resp := dto.Transaction{
		ID:          st.ID.String(),
		Kind:        st.Kind.String(),
		Sum:         st.Amount.InexactFloat64(),
		Date:        st.Date.Format(time.RFC3339),
		Description: st.Describe(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Error("error while encoding transaction to JSON", logger.String("user_id", username), logger.Error(err))
	}
}

func (h *TellerHandler) ownedAccountID(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	username := r.Header.Get("User-ID")

	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid account ID", http.StatusBadRequest)
		return uuid.Nil, false
	}

	account, err := h.accounts.Account(id)
	if err != nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	if !account.OwnedBy(username) {
		logger.Log.Warn("account access denied", logger.String("user_id", username), logger.String("account_id", id.String()))
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return uuid.Nil, false
	}

	return id, true
}
