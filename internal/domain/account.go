package domain

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const HomeCurrency = "CAD"

type AccountKind int

const (
	Chequing AccountKind = iota
	Savings
	CreditCard
	LineOfCredit
	CashableGIC
	ForeignCurrency
)

var accountKindNames = map[AccountKind]string{
	Chequing:        "chequing",
	Savings:         "savings",
	CreditCard:      "credit_card",
	LineOfCredit:    "line_of_credit",
	CashableGIC:     "cashable_gic",
	ForeignCurrency: "foreign_currency",
}

func ParseAccountKind(s string) (AccountKind, error) {
	for kind, name := range accountKindNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return kind, nil
		}
	}
	return 0, ErrUnknownAccountKind
}

func (k AccountKind) String() string {
	return accountKindNames[k]
}

// OverdraftFloor is the most negative balance an account of this kind may reach.
func (k AccountKind) OverdraftFloor() decimal.Decimal {
	switch k {
	case Chequing:
		return decimal.NewFromInt(-100)
	case CreditCard, LineOfCredit:
		return decimal.NewFromInt(-100000)
	default:
		return decimal.Zero
	}
}

func (k AccountKind) canTransferOut() bool {
	return k != CreditCard
}

var currencySymbols = map[string]rune{
	"CAD": '$',
	"USD": '$',
	"EUR": '€',
	"JPY": '¥',
	"GBP": '£',
	"AUD": '$',
	"CNH": '¥',
}

// Account owns its balance and its transaction history. Callers mutate it only
// while holding its lock; operations spanning two accounts take both locks via
// LockPair so lock order is fixed by ID.
type Account struct {
	mu sync.Mutex

	ID        uuid.UUID
	Kind      AccountKind
	Balance   decimal.Decimal
	Owners    []string
	Primary   bool
	CreatedAt time.Time
	History   []*Transaction

	CurrencyCode   string
	currencyLocked bool
}

func NewAccount(kind AccountKind, owner string, createdAt time.Time) *Account {
	a := &Account{
		ID:        uuid.New(),
		Kind:      kind,
		Balance:   decimal.Zero,
		Owners:    []string{owner},
		CreatedAt: createdAt,
	}
	if kind == ForeignCurrency {
		a.CurrencyCode = HomeCurrency
	}
	return a
}

func (a *Account) Lock()   { a.mu.Lock() }
func (a *Account) Unlock() { a.mu.Unlock() }

// LockPair locks both accounts ordered by ID so that concurrent transfers
// touching the same pair cannot deadlock.
func LockPair(a, b *Account) {
	if a.ID.String() < b.ID.String() {
		a.mu.Lock()
		b.mu.Lock()
	} else {
		b.mu.Lock()
		a.mu.Lock()
	}
}

func UnlockPair(a, b *Account) {
	a.mu.Unlock()
	b.mu.Unlock()
}

// CanWithdraw reports whether amount can leave the account without dropping
// the balance below the overdraft floor. Pure predicate, never cached.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.Balance.Sub(amount).GreaterThanOrEqual(a.Kind.OverdraftFloor()) &&
		amount.IsPositive()
}

func (a *Account) CanDeposit(amount decimal.Decimal) bool {
	return amount.IsPositive()
}

func (a *Account) CanTransferOut(amount decimal.Decimal) bool {
	return a.Kind.canTransferOut() && a.CanWithdraw(amount)
}

func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if !a.CanWithdraw(amount) {
		return false
	}
	a.setBalance(a.Balance.Sub(amount))
	return true
}

func (a *Account) Deposit(amount decimal.Decimal) bool {
	if !a.CanDeposit(amount) {
		return false
	}
	a.setBalance(a.Balance.Add(amount))
	return true
}

// setBalance rounds to two decimal places after every mutation.
func (a *Account) setBalance(balance decimal.Decimal) {
	a.Balance = balance.Round(2)
}

// OwnedBy takes the account lock itself: ownership checks run from request
// handlers that hold no locks, concurrently with AddOwner.
func (a *Account) OwnedBy(username string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ownedBy(username)
}

func (a *Account) ownedBy(username string) bool {
	for _, owner := range a.Owners {
		if owner == username {
			return true
		}
	}
	return false
}

func (a *Account) AddOwner(username string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ownedBy(username) {
		a.Owners = append(a.Owners, username)
	}
}

// Record prepends so the history stays most-recent-first.
func (a *Account) Record(t *Transaction) {
	a.History = append([]*Transaction{t}, a.History...)
}

func (a *Account) Transactions() []*Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*Transaction, len(a.History))
	copy(out, a.History)
	return out
}

// SetCurrencyCode assigns the currency of a foreign currency account exactly
// once; after the first successful assignment the code is locked for good.
func (a *Account) SetCurrencyCode(code string) error {
	if a.Kind != ForeignCurrency {
		return ErrNotForeignAccount
	}
	if a.currencyLocked {
		return ErrCurrencyLocked
	}
	if _, ok := currencySymbols[code]; !ok {
		return ErrUnsupportedCurrency
	}
	a.CurrencyCode = code
	a.currencyLocked = true
	return nil
}

func (a *Account) CurrencySymbol() rune {
	if a.Kind == ForeignCurrency {
		if symbol, ok := currencySymbols[a.CurrencyCode]; ok {
			return symbol
		}
	}
	return '$'
}

func (a *Account) Foreign() bool {
	return a.Kind == ForeignCurrency
}

// AccountState is the flat persisted form used by the external
// snapshot/restore collaborator. History is carried separately as an ordered
// transaction ID list because transactions are shared between accounts.
type AccountState struct {
	ID             uuid.UUID       `json:"id"`
	Kind           AccountKind     `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
	Owners         []string        `json:"owners"`
	Primary        bool            `json:"primary"`
	CreatedAt      time.Time       `json:"created_at"`
	CurrencyCode   string          `json:"currency_code,omitempty"`
	CurrencyLocked bool            `json:"currency_locked,omitempty"`
	HistoryIDs     []uuid.UUID     `json:"history_ids"`
}

func (a *Account) State() AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := AccountState{
		ID:             a.ID,
		Kind:           a.Kind,
		Balance:        a.Balance,
		Owners:         append([]string(nil), a.Owners...),
		Primary:        a.Primary,
		CreatedAt:      a.CreatedAt,
		CurrencyCode:   a.CurrencyCode,
		CurrencyLocked: a.currencyLocked,
	}
	for _, t := range a.History {
		st.HistoryIDs = append(st.HistoryIDs, t.ID)
	}
	return st
}

func AccountFromState(st AccountState, history []*Transaction) *Account {
	return &Account{
		ID:             st.ID,
		Kind:           st.Kind,
		Balance:        st.Balance,
		Owners:         st.Owners,
		Primary:        st.Primary,
		CreatedAt:      st.CreatedAt,
		CurrencyCode:   st.CurrencyCode,
		currencyLocked: st.CurrencyLocked,
		History:        history,
	}
}
