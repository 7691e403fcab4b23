package cash

import (
	"sync"

	"github.com/MikelBai/Bank-management-application/pkg/logger"
)

const (
	BillQuantityLimit = 1000
	BillMinimumLimit  = 20
)

// Denominations in the fixed solver traversal order.
var Denominations = [4]int{50, 20, 10, 5}

// Combination is a count per denomination: fifties, twenties, tens, fives.
type Combination [4]int

func (c Combination) Value() int {
	total := 0
	for i, count := range c {
		total += Denominations[i] * count
	}
	return total
}

// Alerter receives restock notifications. Delivery failures must not fail the
// withdrawal that triggered the alert.
type Alerter interface {
	NotifyLowStock(denominations []int)
}

// Inventory holds the machine's bill stock. The lock covers every
// check-and-dispense as one unit, since a dispense combination is only valid
// against the stock it was computed from.
type Inventory struct {
	mu      sync.Mutex
	counts  Combination
	total   int
	alerter Alerter
}

func New(alerter Alerter) *Inventory {
	return &Inventory{alerter: alerter}
}

// Add restocks count bills of the given denomination. Unknown denominations
// are ignored. Respecting BillQuantityLimit is the restocking caller's job.
func (inv *Inventory) Add(denomination, count int) {
	inv.mu.Lock()
	for i, d := range Denominations {
		if d == denomination {
			inv.counts[i] += count
			inv.total += denomination * count
		}
	}
	inv.mu.Unlock()

	inv.checkStock()
}

// CanDispense reports whether dollars can be paid out with the current stock,
// and with which bills. The stock alert check runs after every call, so a
// refused withdrawal still flags drums under the minimum.
func (inv *Inventory) CanDispense(dollars int) (Combination, bool) {
	inv.mu.Lock()
	solution, ok := inv.solve(dollars)
	inv.mu.Unlock()

	inv.checkStock()
	return solution, ok
}

// Withdraw dispenses dollars and removes the chosen bills from stock. The
// solve and the decrement happen under one lock; the stock alert check runs
// after every attempt, successful or not.
func (inv *Inventory) Withdraw(dollars int) (Combination, bool) {
	inv.mu.Lock()
	solution, ok := inv.solve(dollars)
	if ok {
		for i, count := range solution {
			inv.counts[i] -= count
		}
		inv.total -= dollars
	}
	inv.mu.Unlock()

	inv.checkStock()
	return solution, ok
}

func (inv *Inventory) Stock() Combination {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.counts
}

// SetStock replaces the whole drum contents, used when restoring a snapshot.
func (inv *Inventory) SetStock(counts Combination) {
	inv.mu.Lock()
	inv.counts = counts
	inv.total = counts.Value()
	inv.mu.Unlock()
}

func (inv *Inventory) TotalDollarAmount() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.total
}

// solve finds the bill combination for dollars. Caller holds the lock.
//
// When dollars equals the whole stock the machine hands over everything it
// holds without searching; that shortcut is observable (the search could pick
// a different mix) and is kept on purpose. Otherwise a depth-first walk over
// denominations in descending order returns the first combination found.
// The result is deterministic and not necessarily the fewest bills.
func (inv *Inventory) solve(dollars int) (Combination, bool) {
	if dollars < 0 || dollars%5 != 0 || dollars > inv.total {
		return Combination{}, false
	}
	if dollars == inv.total {
		return inv.counts, true
	}
	return search(dollars, inv.counts, Combination{}, 0)
}

// search extends used with bills at index >= position, never revisiting an
// earlier denomination, so it enumerates combinations rather than
// permutations. Recursion only continues while the partial value is below
// dollars, which prunes overshoots.
func search(dollars int, stock, used Combination, position int) (Combination, bool) {
	value := used.Value()
	if value == dollars {
		return used, true
	}
	if value > dollars {
		return Combination{}, false
	}
	for i := position; i < len(Denominations); i++ {
		if stock[i] > used[i] {
			next := used
			next[i]++
			if solution, ok := search(dollars, stock, next, i); ok {
				return solution, ok
			}
		}
	}
	return Combination{}, false
}

// checkStock emits one restock alert listing every denomination under the
// minimum. Runs outside the inventory lock; the alerter is fire-and-forget.
func (inv *Inventory) checkStock() {
	inv.mu.Lock()
	var low []int
	for i, d := range Denominations {
		if inv.counts[i] < BillMinimumLimit {
			low = append(low, d)
		}
	}
	inv.mu.Unlock()

	if len(low) == 0 {
		return
	}
	if inv.alerter == nil {
		logger.Log.Warn("bill stock below minimum with no alerter configured")
		return
	}
	inv.alerter.NotifyLowStock(low)
}
