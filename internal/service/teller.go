package service

import (
	"sync"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/cash"
	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/internal/engine"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TellerService builds transactions for the customer-facing operations, runs
// them through the engine, and keeps an index of executed transactions so
// they can be looked up later for revert requests.
type TellerService struct {
	mu           sync.Mutex
	accounts     *AccountService
	engine       *engine.Engine
	inventory    *cash.Inventory
	transactions map[uuid.UUID]*domain.Transaction
}

func NewTellerService(accounts *AccountService, eng *engine.Engine, inventory *cash.Inventory) *TellerService {
	return &TellerService{
		accounts:     accounts,
		engine:       eng,
		inventory:    inventory,
		transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// Deposit puts cash into a domestic account. The machine only takes domestic
// bills, so foreign currency accounts are refused outright.
func (s *TellerService) Deposit(accountID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error) {
	if err := s.refuseForeign(accountID); err != nil {
		return nil, false, err
	}

	t, err := domain.NewTransaction(domain.Deposit, accountID, amount, date)
	if err != nil {
		return nil, false, err
	}
	return s.run(t)
}

// Withdraw dispenses cash from a domestic account, bill availability
// permitting.
func (s *TellerService) Withdraw(accountID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error) {
	if err := s.refuseForeign(accountID); err != nil {
		return nil, false, err
	}

	t, err := domain.NewTransaction(domain.Withdrawal, accountID, amount, date)
	if err != nil {
		return nil, false, err
	}
	return s.run(t)
}

func (s *TellerService) PayBill(accountID uuid.UUID, amount decimal.Decimal, payee string, date time.Time) (*domain.Transaction, bool, error) {
	t, err := domain.NewTransaction(domain.BillPayment, accountID, amount, date)
	if err != nil {
		return nil, false, err
	}
	t.Payee = payee
	return s.run(t)
}

func (s *TellerService) Transfer(fromID, toID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error) {
	t, err := domain.NewTransferTransaction(domain.Transfer, fromID, toID, amount, date)
	if err != nil {
		return nil, false, err
	}
	return s.run(t)
}

// TransferToUser moves money into the recipient's primary account.
func (s *TellerService) TransferToUser(fromID uuid.UUID, toUsername string, amount decimal.Decimal, date time.Time) (*domain.Transaction, bool, error) {
	target, err := s.accounts.PrimaryAccount(toUsername)
	if err != nil {
		return nil, false, err
	}

	t, err := domain.NewTransferTransaction(domain.TransferToUser, fromID, target.ID, amount, date)
	if err != nil {
		return nil, false, err
	}
	t.ToUsername = toUsername
	return s.run(t)
}

func (s *TellerService) Transaction(id uuid.UUID) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

// Restock adds bills, refusing denominations the machine does not hold and
// counts that would push a drum past its capacity.
func (s *TellerService) Restock(denomination, count int) error {
	index := -1
	for i, d := range cash.Denominations {
		if d == denomination {
			index = i
		}
	}
	if index < 0 {
		return domain.ErrUnknownDenomination
	}
	if s.inventory.Stock()[index]+count > cash.BillQuantityLimit {
		return domain.ErrBillLimitExceeded
	}

	s.inventory.Add(denomination, count)
	return nil
}

func (s *TellerService) Stock() (cash.Combination, int) {
	return s.inventory.Stock(), s.inventory.TotalDollarAmount()
}

func (s *TellerService) run(t *domain.Transaction) (*domain.Transaction, bool, error) {
	executed, err := s.engine.Execute(t)
	if err != nil || !executed {
		return t, false, err
	}

	s.mu.Lock()
	s.transactions[t.ID] = t
	s.mu.Unlock()
	return t, true, nil
}

func (s *TellerService) refuseForeign(accountID uuid.UUID) error {
	account, err := s.accounts.Account(accountID)
	if err != nil {
		return err
	}
	if account.Foreign() {
		return domain.ErrForeignCashOperation
	}
	return nil
}

func (s *TellerService) allTransactions() []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*domain.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		all = append(all, t)
	}
	return all
}

func (s *TellerService) replaceTransactions(transactions []*domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = make(map[uuid.UUID]*domain.Transaction, len(transactions))
	for _, t := range transactions {
		s.transactions[t.ID] = t
	}
}
