package engine

import (
	"fmt"

	"github.com/MikelBai/Bank-management-application/internal/cash"
	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountStore interface {
	Account(id uuid.UUID) (*domain.Account, error)
}

type rateProvider interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

type outgoingLedger interface {
	RecordOutgoing(description string) error
}

// Engine runs transactions through their execute/revert lifecycle. All
// validation is re-checked under the account locks at call time; a false
// result leaves every account untouched. Collaborator failures (exchange
// rate) come back as errors, distinct from validation failures.
type Engine struct {
	accounts  accountStore
	inventory *cash.Inventory
	rates     rateProvider
	outgoing  outgoingLedger
}

func New(accounts accountStore, inventory *cash.Inventory, rates rateProvider, outgoing outgoingLedger) *Engine {
	return &Engine{
		accounts:  accounts,
		inventory: inventory,
		rates:     rates,
		outgoing:  outgoing,
	}
}

func (e *Engine) CanExecute(t *domain.Transaction) (bool, error) {
	t.Lock()
	defer t.Unlock()

	primary, secondary, err := e.resolve(t)
	if err != nil {
		return false, err
	}
	lockAccounts(primary, secondary)
	defer unlockAccounts(primary, secondary)

	return e.canExecute(t, primary, secondary)
}

// Execute re-checks the execute preconditions under the locks, applies the
// variant's mutation, records the transaction on each involved account, and
// flips the transaction to revertible. A failed call mutates nothing, so
// retrying a failed execute is a no-op.
func (e *Engine) Execute(t *domain.Transaction) (bool, error) {
	t.Lock()
	defer t.Unlock()

	primary, secondary, err := e.resolve(t)
	if err != nil {
		return false, err
	}
	lockAccounts(primary, secondary)
	defer unlockAccounts(primary, secondary)

	ok, err := e.canExecute(t, primary, secondary)
	if err != nil || !ok {
		return false, err
	}

	switch t.Kind {
	case domain.Deposit:
		primary.Deposit(t.Amount)
	case domain.Withdrawal:
		if _, dispensed := e.inventory.Withdraw(wholeDollars(t.Amount)); !dispensed {
			return false, nil
		}
		primary.Withdraw(t.Amount)
	case domain.BillPayment:
		primary.Withdraw(t.Amount)
		e.recordOutgoing(t)
	case domain.Transfer, domain.TransferToUser:
		converted, err := e.convertedAmount(primary, secondary, t.Amount)
		if err != nil {
			return false, err
		}
		primary.Withdraw(t.Amount)
		secondary.Deposit(converted)
	}

	primary.Record(t)
	if secondary != nil {
		secondary.Record(t)
	}
	t.MarkExecuted()
	return true, nil
}

func (e *Engine) CanRevert(t *domain.Transaction) (bool, error) {
	t.Lock()
	defer t.Unlock()

	primary, secondary, err := e.resolve(t)
	if err != nil {
		return false, err
	}
	lockAccounts(primary, secondary)
	defer unlockAccounts(primary, secondary)

	return e.canRevert(t, primary, secondary)
}

// Revert applies the inverse mutation if the transaction is revertible and
// the accounts can absorb it right now. A reverted withdrawal restores the
// account balance only; the dispensed bills already left the machine and are
// not added back to stock.
func (e *Engine) Revert(t *domain.Transaction) (bool, error) {
	t.Lock()
	defer t.Unlock()

	primary, secondary, err := e.resolve(t)
	if err != nil {
		return false, err
	}
	lockAccounts(primary, secondary)
	defer unlockAccounts(primary, secondary)

	ok, err := e.canRevert(t, primary, secondary)
	if err != nil || !ok {
		return false, err
	}

	switch t.Kind {
	case domain.Deposit:
		primary.Withdraw(t.Amount)
	case domain.Withdrawal:
		primary.Deposit(t.Amount)
	case domain.Transfer, domain.TransferToUser:
		converted, err := e.convertedAmount(primary, secondary, t.Amount)
		if err != nil {
			return false, err
		}
		secondary.Withdraw(converted)
		primary.Deposit(t.Amount)
	}

	t.MarkReverted()
	return true, nil
}

func (e *Engine) canExecute(t *domain.Transaction, primary, secondary *domain.Account) (bool, error) {
	if !t.Executable() {
		return false, nil
	}

	switch t.Kind {
	case domain.Deposit:
		return primary.CanDeposit(t.Amount), nil
	case domain.Withdrawal:
		// The drum check runs on every attempt, refused or not, so it is
		// evaluated before the balance check.
		_, ok := e.inventory.CanDispense(wholeDollars(t.Amount))
		return ok && primary.CanWithdraw(t.Amount), nil
	case domain.BillPayment:
		return primary.CanTransferOut(t.Amount), nil
	case domain.Transfer, domain.TransferToUser:
		if !primary.CanTransferOut(t.Amount) {
			return false, nil
		}
		converted, err := e.convertedAmount(primary, secondary, t.Amount)
		if err != nil {
			return false, err
		}
		return secondary.CanDeposit(converted), nil
	}
	return false, nil
}

func (e *Engine) canRevert(t *domain.Transaction, primary, secondary *domain.Account) (bool, error) {
	if !t.Revertible() {
		return false, nil
	}

	switch t.Kind {
	case domain.Deposit:
		return primary.CanWithdraw(t.Amount), nil
	case domain.Withdrawal:
		return primary.CanDeposit(t.Amount), nil
	case domain.BillPayment:
		// Payments to external payees are final.
		return false, nil
	case domain.Transfer, domain.TransferToUser:
		if !primary.CanDeposit(t.Amount) {
			return false, nil
		}
		converted, err := e.convertedAmount(primary, secondary, t.Amount)
		if err != nil {
			return false, err
		}
		return secondary.CanWithdraw(converted), nil
	}
	return false, nil
}

// convertedAmount is what the non-foreign side of a transfer moves by. The
// foreign side always moves by the raw amount in its own currency; when both
// sides are domestic no conversion happens at all.
func (e *Engine) convertedAmount(primary, secondary *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	from, to := "", ""
	switch {
	case primary.Foreign():
		from, to = primary.CurrencyCode, domain.HomeCurrency
		if secondary.Foreign() {
			to = secondary.CurrencyCode
		}
	case secondary.Foreign():
		from, to = domain.HomeCurrency, secondary.CurrencyCode
	default:
		return amount, nil
	}

	converted, err := e.rates.Convert(amount, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("converting transfer amount: %w", err)
	}
	return converted, nil
}

func (e *Engine) resolve(t *domain.Transaction) (*domain.Account, *domain.Account, error) {
	primary, err := e.accounts.Account(t.PrimaryID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving primary account: %w", err)
	}

	if t.Kind != domain.Transfer && t.Kind != domain.TransferToUser {
		return primary, nil, nil
	}

	secondary, err := e.accounts.Account(t.SecondaryID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving secondary account: %w", err)
	}
	return primary, secondary, nil
}

func (e *Engine) recordOutgoing(t *domain.Transaction) {
	if e.outgoing == nil {
		return
	}
	if err := e.outgoing.RecordOutgoing(t.PaymentDescription()); err != nil {
		// The payment already went through and has no inverse; the lost
		// record is logged, not surfaced.
		logger.Log.Warn("error recording outgoing payment", logger.Error(err))
	}
}

func lockAccounts(primary, secondary *domain.Account) {
	if secondary == nil {
		primary.Lock()
		return
	}
	domain.LockPair(primary, secondary)
}

func unlockAccounts(primary, secondary *domain.Account) {
	if secondary == nil {
		primary.Unlock()
		return
	}
	domain.UnlockPair(primary, secondary)
}

// wholeDollars maps an amount onto the bill solver's integer domain.
// Non-integral amounts come back as -1, which no stock can dispense.
func wholeDollars(amount decimal.Decimal) int {
	if !amount.IsInteger() {
		return -1
	}
	return int(amount.IntPart())
}
