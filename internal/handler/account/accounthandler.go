package accounthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/pkg/dto"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService interface {
	Create(kind domain.AccountKind, owner string, createdAt time.Time) *domain.Account
	Account(id uuid.UUID) (*domain.Account, error)
	OwnedBy(username string) []*domain.Account
	TotalBalance(username string) decimal.Decimal
	SetCurrency(id uuid.UUID, code string) error
	AddOwner(id uuid.UUID, username string) error
}

type userService interface {
	Exists(login string) bool
}

type AccountHandler struct {
	accounts accountService
	users    userService
}

func New(accounts accountService, users userService) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		users:    users,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("User-ID")

	var req dto.CreateAccount
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a create account request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := domain.ParseAccountKind(req.Kind)
	if err != nil {
		logger.Log.Warn("unknown account kind", logger.String("kind", req.Kind))
		http.Error(w, "unknown account kind", http.StatusBadRequest)
		return
	}

	account := h.accounts.Create(kind, username, time.Now())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(accountDTO(account)); err != nil {
		logger.Log.Error("error while encoding account to JSON", logger.Error(err))
	}
}

func (h *AccountHandler) Owned(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("User-ID")

	summary := dto.OwnedSummary{
		TotalBalance: h.accounts.TotalBalance(username).InexactFloat64(),
	}
	for _, account := range h.accounts.OwnedBy(username) {
		summary.Accounts = append(summary.Accounts, accountDTO(account))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.Log.Error("error while encoding accounts to JSON", logger.String("user_id", username), logger.Error(err))
	}
}

func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	summary := dto.AccountSummary{Account: accountDTO(account)}
	for _, t := range account.Transactions() {
		summary.Transactions = append(summary.Transactions, transactionDTO(t))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.Log.Error("error while encoding account summary to JSON", logger.Error(err))
	}
}

func (h *AccountHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	var req dto.SetCurrency
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a set currency request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.accounts.SetCurrency(account.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCurrencyLocked):
			http.Error(w, "currency code already set", http.StatusConflict)
		case errors.Is(err, domain.ErrUnsupportedCurrency), errors.Is(err, domain.ErrNotForeignAccount):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *AccountHandler) AddOwner(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	var req dto.AddOwner
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding an add owner request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !h.users.Exists(req.Username) {
		logger.Log.Warn("cannot add unknown user as owner", logger.String("username", req.Username))
		http.Error(w, "user not found", http.StatusUnprocessableEntity)
		return
	}

	if err := h.accounts.AddOwner(account.ID, req.Username); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ownedAccount resolves the {accountID} route parameter and enforces that the
// authenticated user owns it.
func (h *AccountHandler) ownedAccount(w http.ResponseWriter, r *http.Request) (*domain.Account, bool) {
	username := r.Header.Get("User-ID")

	id, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		http.Error(w, "invalid account ID", http.StatusBadRequest)
		return nil, false
	}

	account, err := h.accounts.Account(id)
	if err != nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return nil, false
	}

	if !account.OwnedBy(username) {
		logger.Log.Warn("account access denied", logger.String("user_id", username), logger.String("account_id", id.String()))
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return nil, false
	}

	return account, true
}

func accountDTO(a *domain.Account) dto.Account {
	st := a.State()
	return dto.Account{
		ID:        st.ID.String(),
		Kind:      st.Kind.String(),
		Balance:   st.Balance.InexactFloat64(),
		Currency:  st.CurrencyCode,
		Primary:   st.Primary,
		Owners:    st.Owners,
		CreatedAt: st.CreatedAt.Format(time.RFC3339),
	}
}

func transactionDTO(t *domain.Transaction) dto.Transaction {
	st := t.State()
	return dto.Transaction{
		ID:          st.ID.String(),
		Kind:        st.Kind.String(),
		Sum:         st.Amount.InexactFloat64(),
		Date:        st.Date.Format(time.RFC3339),
		Description: st.Describe(),
	}
}
