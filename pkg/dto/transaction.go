package dto

import (
	"errors"
	"fmt"
)

type Deposit struct {
	AccountID string  `json:"account_id"`
	Sum       float64 `json:"sum"`
}

type Withdrawal struct {
	AccountID string  `json:"account_id"`
	Sum       float64 `json:"sum"`
}

type Transfer struct {
	FromAccountID string  `json:"from_account_id"`
	ToAccountID   string  `json:"to_account_id,omitempty"`
	ToUsername    string  `json:"to_username,omitempty"`
	Sum           float64 `json:"sum"`
}

func (t Transfer) IsValid() error {
	var destErr, sumErr error

	if t.ToAccountID == "" && t.ToUsername == "" {
		destErr = fmt.Errorf("either to_account_id or to_username is required")
	}
	if t.Sum <= 0 {
		sumErr = fmt.Errorf("sum must be positive")
	}

	return errors.Join(destErr, sumErr)
}

type BillPayment struct {
	AccountID    string  `json:"account_id"`
	Payee        string  `json:"payee"`
	PayeeAccount string  `json:"payee_account"`
	Sum          float64 `json:"sum"`
}

type Transaction struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Sum         float64 `json:"sum"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}
