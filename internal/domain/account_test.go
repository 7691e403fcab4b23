package domain_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAccountKind(t *testing.T) {
	tests := []struct {
		input string
		want  domain.AccountKind
		err   error
	}{
		{input: "chequing", want: domain.Chequing},
		{input: "Savings", want: domain.Savings},
		{input: "  credit_card ", want: domain.CreditCard},
		{input: "line_of_credit", want: domain.LineOfCredit},
		{input: "cashable_gic", want: domain.CashableGIC},
		{input: "foreign_currency", want: domain.ForeignCurrency},
		{input: "bitcoin", err: domain.ErrUnknownAccountKind},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := domain.ParseAccountKind(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestOverdraftFloor(t *testing.T) {
	tests := []struct {
		kind domain.AccountKind
		want string
	}{
		{domain.Chequing, "-100"},
		{domain.Savings, "0"},
		{domain.CreditCard, "-100000"},
		{domain.LineOfCredit, "-100000"},
		{domain.CashableGIC, "0"},
		{domain.ForeignCurrency, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.True(t, tt.kind.OverdraftFloor().Equal(money(tt.want)))
		})
	}
}

func TestWithdrawOverdraft(t *testing.T) {
	a := domain.NewAccount(domain.Chequing, "alice", time.Now())
	require.True(t, a.Deposit(money("0.01")))

	assert.False(t, a.CanWithdraw(money("100.02")))
	assert.False(t, a.Withdraw(money("100.02")))
	assert.True(t, a.Balance.Equal(money("0.01")))

	require.True(t, a.CanWithdraw(money("100.01")))
	require.True(t, a.Withdraw(money("100.01")))
	assert.True(t, a.Balance.Equal(money("-100")))
}

func TestWithdrawRejectsNonPositive(t *testing.T) {
	a := domain.NewAccount(domain.Chequing, "alice", time.Now())
	a.Deposit(money("50"))

	assert.False(t, a.Withdraw(decimal.Zero))
	assert.False(t, a.Withdraw(money("-10")))
	assert.True(t, a.Balance.Equal(money("50")))
}

func TestDepositRounds(t *testing.T) {
	a := domain.NewAccount(domain.Savings, "alice", time.Now())

	require.True(t, a.Deposit(money("1.23456")))
	assert.Equal(t, "1.23", a.Balance.StringFixed(2))

	require.True(t, a.Deposit(money("1.285")))
	assert.Equal(t, "2.52", a.Balance.StringFixed(2))
}

func TestCreditCardCannotTransferOut(t *testing.T) {
	a := domain.NewAccount(domain.CreditCard, "alice", time.Now())
	a.Deposit(money("500"))

	assert.True(t, a.CanWithdraw(money("100")))
	assert.False(t, a.CanTransferOut(money("100")))
}

func TestSetCurrencyCodeOnce(t *testing.T) {
	a := domain.NewAccount(domain.ForeignCurrency, "alice", time.Now())
	assert.Equal(t, domain.HomeCurrency, a.CurrencyCode)

	assert.ErrorIs(t, a.SetCurrencyCode("XBT"), domain.ErrUnsupportedCurrency)

	require.NoError(t, a.SetCurrencyCode("USD"))
	assert.Equal(t, "USD", a.CurrencyCode)

	assert.ErrorIs(t, a.SetCurrencyCode("EUR"), domain.ErrCurrencyLocked)
	assert.Equal(t, "USD", a.CurrencyCode)
}

func TestSetCurrencyCodeDomesticAccount(t *testing.T) {
	a := domain.NewAccount(domain.Chequing, "alice", time.Now())
	assert.ErrorIs(t, a.SetCurrencyCode("USD"), domain.ErrNotForeignAccount)
}

func TestCurrencySymbol(t *testing.T) {
	a := domain.NewAccount(domain.ForeignCurrency, "alice", time.Now())
	require.NoError(t, a.SetCurrencyCode("EUR"))
	assert.Equal(t, '€', a.CurrencySymbol())

	b := domain.NewAccount(domain.Savings, "alice", time.Now())
	assert.Equal(t, '$', b.CurrencySymbol())
}

func TestOwnership(t *testing.T) {
	a := domain.NewAccount(domain.Chequing, "alice", time.Now())

	assert.True(t, a.OwnedBy("alice"))
	assert.False(t, a.OwnedBy("bob"))

	a.AddOwner("bob")
	a.AddOwner("bob")
	assert.True(t, a.OwnedBy("bob"))
	assert.Equal(t, []string{"alice", "bob"}, a.Owners)
}

func TestConcurrentOwnerReadsAndWrites(t *testing.T) {
	a := domain.NewAccount(domain.Chequing, "alice", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		owner := fmt.Sprintf("owner-%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.AddOwner(owner)
		}()
		go func() {
			defer wg.Done()
			a.OwnedBy("alice")
		}()
	}
	wg.Wait()

	assert.True(t, a.OwnedBy("alice"))
	for i := 0; i < 50; i++ {
		assert.True(t, a.OwnedBy(fmt.Sprintf("owner-%d", i)))
	}
}

func TestAccountStateRoundTrip(t *testing.T) {
	a := domain.NewAccount(domain.ForeignCurrency, "alice", time.Now())
	require.NoError(t, a.SetCurrencyCode("JPY"))
	a.Deposit(money("42.50"))

	tx, err := domain.NewTransaction(domain.Deposit, a.ID, money("42.50"), time.Now())
	require.NoError(t, err)
	a.Record(tx)

	st := a.State()
	restored := domain.AccountFromState(st, []*domain.Transaction{tx})

	assert.Equal(t, a.ID, restored.ID)
	assert.Equal(t, a.Kind, restored.Kind)
	assert.True(t, restored.Balance.Equal(money("42.5")))
	assert.Equal(t, "JPY", restored.CurrencyCode)
	assert.ErrorIs(t, restored.SetCurrencyCode("USD"), domain.ErrCurrencyLocked)
	require.Len(t, restored.History, 1)
	assert.Equal(t, tx.ID, restored.History[0].ID)
}
