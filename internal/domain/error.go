package domain

import "errors"

var (
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrAccountNotFound      = errors.New("account not found")
	ErrNoPrimaryAccount     = errors.New("user has no primary account")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
	ErrUnknownAccountKind   = errors.New("unknown account kind")
	ErrCurrencyLocked       = errors.New("currency code already set")
	ErrUnsupportedCurrency  = errors.New("unsupported currency code")
	ErrNotForeignAccount    = errors.New("not a foreign currency account")
	ErrRateUnavailable      = errors.New("exchange rate unavailable")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrForeignCashOperation = errors.New("cash deposits and withdrawals are domestic currency only")
	ErrUnknownDenomination  = errors.New("unknown bill denomination")
	ErrBillLimitExceeded    = errors.New("bill quantity limit exceeded")
)
