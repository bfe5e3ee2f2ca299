package payroll

import "errors"

var (
	ErrNegativeNet      = errors.New("net salary is negative")
	ErrUnknownWorker    = errors.New("worker not found in roster")
	ErrInvalidMonth     = errors.New("invalid month key")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrSchemeNotAllowed = errors.New("worker cannot use the piece-rate scheme")
	ErrNotSettlement    = errors.New("entry is not a salary settlement")
	ErrAppendFailed     = errors.New("journal append failed")
)
