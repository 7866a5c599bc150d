package types

import (
	"fmt"

	"cosmossdk.io/math"
)

const (
	// ModuleName is the codespace for engine errors and the default
	// metrics subsystem prefix.
	ModuleName = "engine"

	// FeeDenominator expresses fees and impact ceilings in basis points.
	FeeDenominator = 10_000

	// DefaultFeeBps is the default swap fee, 0.30%.
	DefaultFeeBps = 30

	// DefaultMaxPriceImpactBps is the default price impact ceiling, 5%.
	DefaultMaxPriceImpactBps = 500

	// MinimumLiquidity is permanently locked on first deposit so a pool
	// can never be fully drained and share math never divides by zero.
	MinimumLiquidity = 1000
)

// Event types emitted in audit records and structured logs.
const (
	EventTypeCreatePool      = "create_pool"
	EventTypeSwap            = "swap"
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeLaunchToken     = "launch_token"
	EventTypeBuyTokens       = "buy_tokens"
	EventTypeSellTokens      = "sell_tokens"
	EventTypeGraduation      = "graduation"
)

// ReservePair is the canonical pool state for constant product pricing.
// Token0 and Token1 are held in lexicographic order so the same pair of
// assets always maps to the same pool identity.
type ReservePair struct {
	Token0      string
	Token1      string
	Reserve0    math.Int
	Reserve1    math.Int
	TotalShares math.Int
	KLast       math.Int
}

// NewReservePair orders the tokens and returns an empty pair.
func NewReservePair(tokenA, tokenB string) (ReservePair, error) {
	if tokenA == "" || tokenB == "" || tokenA == tokenB {
		return ReservePair{}, ErrInvalidToken.Wrapf("pair %q/%q", tokenA, tokenB)
	}
	t0, t1 := tokenA, tokenB
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	return ReservePair{
		Token0:      t0,
		Token1:      t1,
		Reserve0:    math.ZeroInt(),
		Reserve1:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		KLast:       math.ZeroInt(),
	}, nil
}

// ReservesFor returns (reserveIn, reserveOut) for a swap selling tokenIn.
func (p ReservePair) ReservesFor(tokenIn string) (math.Int, math.Int, error) {
	switch tokenIn {
	case p.Token0:
		return p.Reserve0, p.Reserve1, nil
	case p.Token1:
		return p.Reserve1, p.Reserve0, nil
	default:
		return math.Int{}, math.Int{}, ErrInvalidToken.Wrapf("token %q not in pair %s/%s", tokenIn, p.Token0, p.Token1)
	}
}

// OtherToken returns the counter asset of token within the pair.
func (p ReservePair) OtherToken(token string) (string, error) {
	switch token {
	case p.Token0:
		return p.Token1, nil
	case p.Token1:
		return p.Token0, nil
	default:
		return "", ErrInvalidToken.Wrapf("token %q not in pair %s/%s", token, p.Token0, p.Token1)
	}
}

func (p ReservePair) String() string {
	return fmt.Sprintf("%s/%s r0=%s r1=%s shares=%s", p.Token0, p.Token1, p.Reserve0, p.Reserve1, p.TotalShares)
}

// SwapResult reports an executed or simulated swap.
type SwapResult struct {
	TokenIn        string
	TokenOut       string
	AmountIn       math.Int
	AmountOut      math.Int
	PriceImpactBps math.Int
	NewReserveIn   math.Int
	NewReserveOut  math.Int
}

// LiquidityResult reports an add or remove liquidity operation.
type LiquidityResult struct {
	Amount0     math.Int
	Amount1     math.Int
	Shares      math.Int
	TotalShares math.Int
}

// FeeConfig governs trading and creation fees.
type FeeConfig struct {
	TradingFeeBps int64
	CreationFee   math.Int
	Treasury      string
}

// NewFeeConfig validates the fee bounds.
func NewFeeConfig(tradingFeeBps int64, creationFee math.Int, treasury string) (FeeConfig, error) {
	if tradingFeeBps < 0 || tradingFeeBps > FeeDenominator {
		return FeeConfig{}, ErrFeeTooHigh.Wrapf("trading fee %d bps outside [0, %d]", tradingFeeBps, FeeDenominator)
	}
	if creationFee.IsNil() || creationFee.IsNegative() {
		return FeeConfig{}, ErrInvalidAmount.Wrap("creation fee must be non-negative")
	}
	return FeeConfig{
		TradingFeeBps: tradingFeeBps,
		CreationFee:   creationFee,
		Treasury:      treasury,
	}, nil
}

// DefaultFeeConfig returns a 1% trading fee and a flat creation fee.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		TradingFeeBps: 100,
		CreationFee:   math.NewInt(100_000),
		Treasury:      "treasury",
	}
}
