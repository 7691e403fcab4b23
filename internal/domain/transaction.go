package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind int

const (
	Deposit TransactionKind = iota
	Withdrawal
	BillPayment
	Transfer
	TransferToUser
)

var transactionKindNames = map[TransactionKind]string{
	Deposit:        "deposit",
	Withdrawal:     "withdrawal",
	BillPayment:    "bill_payment",
	Transfer:       "transfer",
	TransferToUser: "transfer_to_user",
}

func (k TransactionKind) String() string {
	return transactionKindNames[k]
}

// Transaction is a single money movement bound to one or two accounts by ID.
// Amount and accounts are fixed at construction; only the lifecycle flags
// change, and only under the transaction's own lock. Before a revert exactly
// one of executable/revertible is true; after a successful revert both are
// false and reverted stays true forever.
type Transaction struct {
	mu sync.Mutex

	ID          uuid.UUID
	Kind        TransactionKind
	PrimaryID   uuid.UUID
	SecondaryID uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Payee       string
	ToUsername  string

	executable      bool
	revertible      bool
	reverted        bool
	revertRequested bool
}

func NewTransaction(kind TransactionKind, primaryID uuid.UUID, amount decimal.Decimal, date time.Time) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return &Transaction{
		ID:         uuid.New(),
		Kind:       kind,
		PrimaryID:  primaryID,
		Amount:     amount,
		Date:       date,
		executable: true,
	}, nil
}

func NewTransferTransaction(kind TransactionKind, primaryID, secondaryID uuid.UUID, amount decimal.Decimal, date time.Time) (*Transaction, error) {
	t, err := NewTransaction(kind, primaryID, amount, date)
	if err != nil {
		return nil, err
	}
	t.SecondaryID = secondaryID
	return t, nil
}

func (t *Transaction) Lock()   { t.mu.Lock() }
func (t *Transaction) Unlock() { t.mu.Unlock() }

// The flag accessors below assume the caller holds the transaction lock.

func (t *Transaction) Executable() bool { return t.executable }
func (t *Transaction) Revertible() bool { return t.revertible }
func (t *Transaction) Reverted() bool   { return t.reverted }

func (t *Transaction) MarkExecuted() {
	t.executable = false
	t.revertible = true
}

func (t *Transaction) MarkReverted() {
	t.revertible = false
	t.reverted = true
}

func (t *Transaction) RevertRequested() bool {
	return t.revertRequested
}

func (t *Transaction) SetRevertRequested(requested bool) {
	t.revertRequested = requested
}

// TransactionState is the flat persisted form used by the external
// snapshot/restore collaborator.
type TransactionState struct {
	ID              uuid.UUID       `json:"id"`
	Kind            TransactionKind `json:"kind"`
	PrimaryID       uuid.UUID       `json:"primary_id"`
	SecondaryID     uuid.UUID       `json:"secondary_id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Payee           string          `json:"payee,omitempty"`
	ToUsername      string          `json:"to_username,omitempty"`
	Executable      bool            `json:"executable"`
	Revertible      bool            `json:"revertible"`
	Reverted        bool            `json:"reverted"`
	RevertRequested bool            `json:"revert_requested"`
}

func (t *Transaction) State() TransactionState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return TransactionState{
		ID:              t.ID,
		Kind:            t.Kind,
		PrimaryID:       t.PrimaryID,
		SecondaryID:     t.SecondaryID,
		Amount:          t.Amount,
		Date:            t.Date,
		Payee:           t.Payee,
		ToUsername:      t.ToUsername,
		Executable:      t.executable,
		Revertible:      t.revertible,
		Reverted:        t.reverted,
		RevertRequested: t.revertRequested,
	}
}

func TransactionFromState(st TransactionState) *Transaction {
	return &Transaction{
		ID:              st.ID,
		Kind:            st.Kind,
		PrimaryID:       st.PrimaryID,
		SecondaryID:     st.SecondaryID,
		Amount:          st.Amount,
		Date:            st.Date,
		Payee:           st.Payee,
		ToUsername:      st.ToUsername,
		executable:      st.Executable,
		revertible:      st.Revertible,
		reverted:        st.Reverted,
		revertRequested: st.RevertRequested,
	}
}

// PaymentDescription is the outgoing-ledger line for an executed bill
// payment. It reads only fields fixed at construction, so it is safe with or
// without the transaction lock.
func (t *Transaction) PaymentDescription() string {
	return fmt.Sprintf("bill payment of $%s from account %s to %s", t.Amount.StringFixed(2), t.PrimaryID, t.Payee)
}

func (st TransactionState) Describe() string {
	desc := ""
	switch st.Kind {
	case Deposit:
		desc = fmt.Sprintf("deposit of $%s to account %s", st.Amount.StringFixed(2), st.PrimaryID)
	case Withdrawal:
		desc = fmt.Sprintf("withdrawal of $%s from account %s", st.Amount.StringFixed(2), st.PrimaryID)
	case BillPayment:
		desc = fmt.Sprintf("bill payment of $%s from account %s to %s", st.Amount.StringFixed(2), st.PrimaryID, st.Payee)
	case Transfer:
		desc = fmt.Sprintf("transfer of $%s from account %s to account %s", st.Amount.StringFixed(2), st.PrimaryID, st.SecondaryID)
	case TransferToUser:
		desc = fmt.Sprintf("transfer of $%s from account %s to user %s", st.Amount.StringFixed(2), st.PrimaryID, st.ToUsername)
	}
	if st.Reverted {
		return "REVERTED: " + desc
	}
	return desc
}
