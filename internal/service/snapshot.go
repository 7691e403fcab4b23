package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/cash"
	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	"github.com/google/uuid"
)

// ErrNoSnapshot is returned by a snapshot store that holds no saved state yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

type SnapshotStore interface {
	Save(ctx context.Context, takenAt time.Time, data []byte) error
	LoadLatest(ctx context.Context) ([]byte, error)
}

// Snapshot is the full persisted form of the in-memory state. Persistence is
// an external snapshot/restore operation; nothing in the core writes through
// to the store during normal transactions.
type Snapshot struct {
	TakenAt      time.Time                 `json:"taken_at"`
	Users        []domain.User             `json:"users"`
	Accounts     []domain.AccountState     `json:"accounts"`
	Transactions []domain.TransactionState `json:"transactions"`
	Stock        cash.Combination          `json:"stock"`
}

type SnapshotService struct {
	store     SnapshotStore
	users     *UserService
	accounts  *AccountService
	teller    *TellerService
	inventory *cash.Inventory
}

func NewSnapshotService(store SnapshotStore, users *UserService, accounts *AccountService, teller *TellerService, inventory *cash.Inventory) *SnapshotService {
	return &SnapshotService{
		store:     store,
		users:     users,
		accounts:  accounts,
		teller:    teller,
		inventory: inventory,
	}
}

func (s *SnapshotService) Save(ctx context.Context) error {
	snapshot := Snapshot{
		TakenAt: time.Now(),
		Stock:   s.inventory.Stock(),
	}
	for _, user := range s.users.All() {
		snapshot.Users = append(snapshot.Users, *user)
	}
	for _, t := range s.teller.allTransactions() {
		snapshot.Transactions = append(snapshot.Transactions, t.State())
	}
	for _, account := range s.accounts.All() {
		snapshot.Accounts = append(snapshot.Accounts, account.State())
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.store.Save(ctx, snapshot.TakenAt, data)
}

// Restore loads the latest snapshot and swaps it in wholesale. A store with
// no snapshot yet leaves the fresh empty state in place.
func (s *SnapshotService) Restore(ctx context.Context) error {
	data, err := s.store.LoadLatest(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		logger.Log.Info("no snapshot stored, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	transactions := make([]*domain.Transaction, 0, len(snapshot.Transactions))
	byID := make(map[uuid.UUID]*domain.Transaction, len(snapshot.Transactions))
	for _, st := range snapshot.Transactions {
		t := domain.TransactionFromState(st)
		transactions = append(transactions, t)
		byID[t.ID] = t
	}

	accounts := make([]*domain.Account, 0, len(snapshot.Accounts))
	for _, st := range snapshot.Accounts {
		var history []*domain.Transaction
		for _, id := range st.HistoryIDs {
			if t, ok := byID[id]; ok {
				history = append(history, t)
			}
		}
		accounts = append(accounts, domain.AccountFromState(st, history))
	}

	users := make([]*domain.User, 0, len(snapshot.Users))
	for i := range snapshot.Users {
		users = append(users, &snapshot.Users[i])
	}

	s.users.Replace(users)
	s.accounts.Replace(accounts)
	s.teller.replaceTransactions(transactions)
	s.inventory.SetStock(snapshot.Stock)

	logger.Log.Info("snapshot restored", logger.String("taken_at", snapshot.TakenAt.Format(time.RFC3339)))
	return nil
}
