package service

import (
	"sync"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService owns the account index. Individual account state is guarded
// by each account's own lock; the service mutex only covers the index.
type AccountService struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
}

func NewAccountService() *AccountService {
	return &AccountService{
		accounts: make(map[uuid.UUID]*domain.Account),
	}
}

// Create opens a new account of the given kind for owner. A chequing account
// becomes the owner's primary deposit destination if they have none yet.
func (s *AccountService) Create(kind domain.AccountKind, owner string, createdAt time.Time) *domain.Account {
	account := domain.NewAccount(kind, owner, createdAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == domain.Chequing && !s.hasPrimary(owner) {
		account.Primary = true
	}
	s.accounts[account.ID] = account
	return account
}

func (s *AccountService) Account(id uuid.UUID) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *AccountService) OwnedBy(username string) []*domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned []*domain.Account
	for _, account := range s.accounts {
		if account.OwnedBy(username) {
			owned = append(owned, account)
		}
	}
	return owned
}

// PrimaryAccount finds the default deposit destination for a user, used when
// another customer transfers money to them by username.
func (s *AccountService) PrimaryAccount(username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Primary && account.OwnedBy(username) {
			return account, nil
		}
	}
	return nil, domain.ErrNoPrimaryAccount
}

func (s *AccountService) AddOwner(id uuid.UUID, username string) error {
	account, err := s.Account(id)
	if err != nil {
		return err
	}

	account.AddOwner(username)
	return nil
}

func (s *AccountService) SetCurrency(id uuid.UUID, code string) error {
	account, err := s.Account(id)
	if err != nil {
		return err
	}

	account.Lock()
	defer account.Unlock()
	return account.SetCurrencyCode(code)
}

func (s *AccountService) TotalBalance(username string) decimal.Decimal {
	total := decimal.Zero
	for _, account := range s.OwnedBy(username) {
		account.Lock()
		total = total.Add(account.Balance)
		account.Unlock()
	}
	return total
}

// UpdateAll applies the end-of-month adjustment to every account: savings
// compound at 0.1%, a cashable GIC above its 5000 investment earns interest
// on the invested principal.
func (s *AccountService) UpdateAll() {
	s.mu.Lock()
	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	s.mu.Unlock()

	gicInvestment := decimal.NewFromInt(5000)
	gicInterest := gicInvestment.Mul(decimal.NewFromFloat(0.005))
	savingsRate := decimal.NewFromFloat(1.001)

	for _, account := range accounts {
		account.Lock()
		switch account.Kind {
		case domain.Savings:
			account.Balance = account.Balance.Mul(savingsRate).Round(2)
		case domain.CashableGIC:
			if account.Balance.GreaterThan(gicInvestment) {
				account.Balance = account.Balance.Add(gicInterest).Round(2)
			}
		}
		account.Unlock()
	}
}

func (s *AccountService) All() []*domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		all = append(all, account)
	}
	return all
}

func (s *AccountService) Replace(accounts []*domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[uuid.UUID]*domain.Account, len(accounts))
	for _, account := range accounts {
		s.accounts[account.ID] = account
	}
}

func (s *AccountService) hasPrimary(username string) bool {
	for _, account := range s.accounts {
		if account.Primary && account.OwnedBy(username) {
			return true
		}
	}
	return false
}
