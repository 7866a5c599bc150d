package types

import (
	"cosmossdk.io/errors"
)

// Engine sentinel errors. Every component registers its variants here so
// callers can match the full taxonomy with errors.Is against a single
// codespace instead of juggling per-package enums.
var (
	// Math errors (1-9)
	ErrOverflow       = errors.Register(ModuleName, 1, "arithmetic overflow")
	ErrUnderflow      = errors.Register(ModuleName, 2, "arithmetic underflow")
	ErrDivisionByZero = errors.Register(ModuleName, 3, "division by zero")
	ErrInvalidAmount  = errors.Register(ModuleName, 4, "invalid amount")

	// Liquidity errors (10-19)
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 10, "insufficient liquidity")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 11, "insufficient input amount")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 12, "insufficient output amount")
	ErrInsufficientReserve         = errors.Register(ModuleName, 13, "insufficient reserve")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 14, "insufficient liquidity minted")
	ErrInsufficientShares          = errors.Register(ModuleName, 15, "insufficient liquidity shares")

	// Trading errors (20-29)
	ErrSlippageExceeded   = errors.Register(ModuleName, 20, "slippage exceeded")
	ErrPriceImpactTooHigh = errors.Register(ModuleName, 21, "price impact too high")
	ErrKInvariantViolated = errors.Register(ModuleName, 22, "constant product invariant violated")
	ErrInvalidToken       = errors.Register(ModuleName, 23, "invalid token for pair")

	// Lifecycle errors (30-39)
	ErrAlreadyGraduated   = errors.Register(ModuleName, 30, "token already graduated")
	ErrPoolNotFound       = errors.Register(ModuleName, 31, "pool not found")
	ErrTokenNotFound      = errors.Register(ModuleName, 32, "token not found")
	ErrPoolAlreadyExists  = errors.Register(ModuleName, 33, "pool already exists")
	ErrTokenAlreadyExists = errors.Register(ModuleName, 34, "token already exists")
	ErrInvalidState       = errors.Register(ModuleName, 35, "invalid engine state")

	// Oracle errors (40-49)
	ErrOracleWindowUnavailable = errors.Register(ModuleName, 40, "no observation old enough for requested window")

	// Security errors (50-59)
	ErrReentrancy         = errors.Register(ModuleName, 50, "reentrancy detected")
	ErrTransactionExpired = errors.Register(ModuleName, 51, "transaction deadline exceeded")

	// Fee errors (60-69)
	ErrFeeTooHigh = errors.Register(ModuleName, 60, "fee exceeds maximum")
)
