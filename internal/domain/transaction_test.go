package domain_test

import (
	"testing"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionRejectsNonPositiveAmount(t *testing.T) {
	_, err := domain.NewTransaction(domain.Deposit, uuid.New(), decimal.Zero, time.Now())
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	_, err = domain.NewTransaction(domain.Withdrawal, uuid.New(), money("-5"), time.Now())
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	_, err = domain.NewTransferTransaction(domain.Transfer, uuid.New(), uuid.New(), decimal.Zero, time.Now())
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
}

func TestTransactionLifecycle(t *testing.T) {
	tx, err := domain.NewTransaction(domain.Deposit, uuid.New(), money("10"), time.Now())
	require.NoError(t, err)

	tx.Lock()
	assert.True(t, tx.Executable())
	assert.False(t, tx.Revertible())
	assert.False(t, tx.Reverted())

	tx.MarkExecuted()
	assert.False(t, tx.Executable())
	assert.True(t, tx.Revertible())
	assert.False(t, tx.Reverted())

	tx.MarkReverted()
	assert.False(t, tx.Executable())
	assert.False(t, tx.Revertible())
	assert.True(t, tx.Reverted())
	tx.Unlock()
}

func TestTransactionStateRoundTrip(t *testing.T) {
	tx, err := domain.NewTransaction(domain.BillPayment, uuid.New(), money("99.99"), time.Now())
	require.NoError(t, err)
	tx.Payee = "Hydro One"

	tx.Lock()
	tx.MarkExecuted()
	tx.SetRevertRequested(true)
	tx.Unlock()

	restored := domain.TransactionFromState(tx.State())
	st := restored.State()

	assert.Equal(t, tx.ID, st.ID)
	assert.Equal(t, domain.BillPayment, st.Kind)
	assert.Equal(t, "Hydro One", st.Payee)
	assert.False(t, st.Executable)
	assert.True(t, st.Revertible)
	assert.True(t, st.RevertRequested)
}

func TestDescribe(t *testing.T) {
	from := uuid.New()
	to := uuid.New()

	tests := []struct {
		name string
		st   domain.TransactionState
		want string
	}{
		{
			name: "deposit",
			st:   domain.TransactionState{Kind: domain.Deposit, PrimaryID: from, Amount: money("25")},
			want: "deposit of $25.00 to account " + from.String(),
		},
		{
			name: "withdrawal",
			st:   domain.TransactionState{Kind: domain.Withdrawal, PrimaryID: from, Amount: money("25")},
			want: "withdrawal of $25.00 from account " + from.String(),
		},
		{
			name: "bill payment",
			st:   domain.TransactionState{Kind: domain.BillPayment, PrimaryID: from, Amount: money("60.50"), Payee: "Hydro One"},
			want: "bill payment of $60.50 from account " + from.String() + " to Hydro One",
		},
		{
			name: "transfer",
			st:   domain.TransactionState{Kind: domain.Transfer, PrimaryID: from, SecondaryID: to, Amount: money("10")},
			want: "transfer of $10.00 from account " + from.String() + " to account " + to.String(),
		},
		{
			name: "transfer to user",
			st:   domain.TransactionState{Kind: domain.TransferToUser, PrimaryID: from, Amount: money("10"), ToUsername: "bob"},
			want: "transfer of $10.00 from account " + from.String() + " to user bob",
		},
		{
			name: "reverted prefix",
			st:   domain.TransactionState{Kind: domain.Deposit, PrimaryID: from, Amount: money("25"), Reverted: true},
			want: "REVERTED: deposit of $25.00 to account " + from.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.st.Describe())
		})
	}
}
