package cash_test

import (
	"sync"
	"testing"

	"github.com/MikelBai/Bank-management-application/internal/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	mu    sync.Mutex
	calls [][]int
}

func (a *recordingAlerter) NotifyLowStock(denominations []int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, denominations)
}

func newInventory(counts cash.Combination) *cash.Inventory {
	inv := cash.New(nil)
	inv.SetStock(counts)
	return inv
}

func TestCanDispense(t *testing.T) {
	tests := []struct {
		name    string
		stock   cash.Combination
		dollars int
		want    cash.Combination
		ok      bool
	}{
		{
			name:    "simple combination",
			stock:   cash.Combination{2, 2, 2, 2},
			dollars: 80,
			want:    cash.Combination{1, 1, 1, 0},
			ok:      true,
		},
		{
			name:    "descending denominations tried first",
			stock:   cash.Combination{1, 3, 1, 2},
			dollars: 60,
			want:    cash.Combination{1, 0, 1, 0},
			ok:      true,
		},
		{
			name:    "backtracks past unusable large bills",
			stock:   cash.Combination{1, 0, 0, 6},
			dollars: 30,
			want:    cash.Combination{0, 0, 0, 6},
			ok:      true,
		},
		{
			name:    "entire stock requested hands over everything",
			stock:   cash.Combination{0, 5, 0, 4},
			dollars: 120,
			want:    cash.Combination{0, 5, 0, 4},
			ok:      true,
		},
		{
			name:    "amount not reachable with held bills",
			stock:   cash.Combination{1, 0, 0, 0},
			dollars: 30,
			ok:      false,
		},
		{
			name:    "amount exceeds total stock",
			stock:   cash.Combination{0, 1, 0, 0},
			dollars: 25,
			ok:      false,
		},
		{
			name:    "amount not a multiple of five",
			stock:   cash.Combination{2, 2, 2, 2},
			dollars: 12,
			ok:      false,
		},
		{
			name:    "negative amount",
			stock:   cash.Combination{2, 2, 2, 2},
			dollars: -5,
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInventory(tt.stock)

			got, ok := inv.CanDispense(tt.dollars)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.dollars, got.Value())
			}
			assert.Equal(t, tt.stock, inv.Stock(), "CanDispense must not change stock")
		})
	}
}

func TestCanDispenseAgainstBruteForce(t *testing.T) {
	for fifties := 0; fifties <= 2; fifties++ {
		for twenties := 0; twenties <= 2; twenties++ {
			for tens := 0; tens <= 2; tens++ {
				for fives := 0; fives <= 2; fives++ {
					stock := cash.Combination{fifties, twenties, tens, fives}
					inv := newInventory(stock)

					for dollars := 0; dollars <= stock.Value(); dollars += 5 {
						got, ok := inv.CanDispense(dollars)
						require.Equal(t, combinationExists(stock, dollars), ok,
							"stock %v, $%d", stock, dollars)
						if !ok {
							continue
						}
						assert.Equal(t, dollars, got.Value())
						for i := range got {
							assert.LessOrEqual(t, got[i], stock[i])
						}
					}
				}
			}
		}
	}
}

func combinationExists(stock cash.Combination, dollars int) bool {
	for f := 0; f <= stock[0]; f++ {
		for tw := 0; tw <= stock[1]; tw++ {
			for te := 0; te <= stock[2]; te++ {
				for fi := 0; fi <= stock[3]; fi++ {
					if (cash.Combination{f, tw, te, fi}).Value() == dollars {
						return true
					}
				}
			}
		}
	}
	return false
}

func TestCanDispenseDeterministic(t *testing.T) {
	inv := newInventory(cash.Combination{3, 5, 5, 5})

	first, ok := inv.CanDispense(135)
	require.True(t, ok)

	for i := 0; i < 20; i++ {
		again, ok := inv.CanDispense(135)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestWithdrawRemovesBills(t *testing.T) {
	inv := newInventory(cash.Combination{30, 30, 30, 30})

	dispensed, ok := inv.Withdraw(85)
	require.True(t, ok)
	assert.Equal(t, 85, dispensed.Value())

	want := cash.Combination{30, 30, 30, 30}
	for i, count := range dispensed {
		want[i] -= count
	}
	assert.Equal(t, want, inv.Stock())
	assert.Equal(t, want.Value(), inv.TotalDollarAmount())
}

func TestWithdrawFailureLeavesStock(t *testing.T) {
	inv := newInventory(cash.Combination{1, 0, 0, 0})

	_, ok := inv.Withdraw(30)
	require.False(t, ok)
	assert.Equal(t, cash.Combination{1, 0, 0, 0}, inv.Stock())
	assert.Equal(t, 50, inv.TotalDollarAmount())
}

func TestWithdrawEntireStock(t *testing.T) {
	inv := newInventory(cash.Combination{0, 5, 0, 4})

	dispensed, ok := inv.Withdraw(120)
	require.True(t, ok)
	assert.Equal(t, cash.Combination{0, 5, 0, 4}, dispensed)
	assert.Equal(t, cash.Combination{}, inv.Stock())
	assert.Equal(t, 0, inv.TotalDollarAmount())
}

func TestAddAccumulates(t *testing.T) {
	inv := cash.New(nil)

	inv.Add(50, 25)
	inv.Add(5, 40)
	inv.Add(50, 5)

	assert.Equal(t, cash.Combination{30, 0, 0, 40}, inv.Stock())
	assert.Equal(t, 1700, inv.TotalDollarAmount())
}

func TestAddIgnoresUnknownDenomination(t *testing.T) {
	inv := cash.New(nil)

	inv.Add(100, 10)

	assert.Equal(t, cash.Combination{}, inv.Stock())
	assert.Equal(t, 0, inv.TotalDollarAmount())
}

func TestLowStockAlert(t *testing.T) {
	alerter := &recordingAlerter{}
	inv := cash.New(alerter)
	inv.SetStock(cash.Combination{20, 20, 20, 20})

	inv.Add(50, 1)
	assert.Empty(t, alerter.calls, "no alert while every drum is at the minimum")

	_, ok := inv.Withdraw(65)
	require.True(t, ok)

	require.Len(t, alerter.calls, 1)
	assert.Equal(t, []int{10, 5}, alerter.calls[0])
}

func TestFailedDispenseStillChecksStock(t *testing.T) {
	alerter := &recordingAlerter{}
	inv := cash.New(alerter)
	inv.SetStock(cash.Combination{1, 0, 0, 0})

	_, ok := inv.CanDispense(30)
	require.False(t, ok)

	require.Len(t, alerter.calls, 1, "a refused dispense still flags low drums")
	assert.Equal(t, []int{50, 20, 10, 5}, alerter.calls[0])
}

func TestCombinationValue(t *testing.T) {
	assert.Equal(t, 0, cash.Combination{}.Value())
	assert.Equal(t, 85, cash.Combination{1, 1, 1, 1}.Value())
	assert.Equal(t, 5*50+3*20+2*10+7*5, cash.Combination{5, 3, 2, 7}.Value())
}
