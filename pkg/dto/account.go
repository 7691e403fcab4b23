package dto

import (
	"fmt"
	"strings"
)

type CreateAccount struct {
	Kind string `json:"kind"`
}

func (c CreateAccount) IsValid() error {
	if strings.TrimSpace(c.Kind) == "" {
		return fmt.Errorf("account kind is required")
	}
	return nil
}

type SetCurrency struct {
	Code string `json:"code"`
}

type AddOwner struct {
	Username string `json:"username"`
}

type Account struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Balance   float64  `json:"balance"`
	Currency  string   `json:"currency,omitempty"`
	Primary   bool     `json:"primary,omitempty"`
	Owners    []string `json:"owners"`
	CreatedAt string   `json:"created_at"`
}

type AccountSummary struct {
	Account      Account       `json:"account"`
	Transactions []Transaction `json:"transactions"`
}

type OwnedSummary struct {
	TotalBalance float64   `json:"total_balance"`
	Accounts     []Account `json:"accounts"`
}
