package types

import (
	"cosmossdk.io/math"
)

// Params are the injected engine parameters. The engine never reads
// ambient globals, every pricing decision flows from these values.
type Params struct {
	SwapFeeBps          int64
	MaxPriceImpactBps   int64
	MinLiquidity        math.Int
	GraduationThreshold math.Int
	Fees                FeeConfig
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		SwapFeeBps:          DefaultFeeBps,
		MaxPriceImpactBps:   DefaultMaxPriceImpactBps,
		MinLiquidity:        math.NewInt(MinimumLiquidity),
		GraduationThreshold: math.NewInt(100_000_000_000),
		Fees:                DefaultFeeConfig(),
	}
}

// Validate checks every parameter bound.
func (p Params) Validate() error {
	if p.SwapFeeBps < 0 || p.SwapFeeBps > FeeDenominator {
		return ErrFeeTooHigh.Wrapf("swap fee %d bps outside [0, %d]", p.SwapFeeBps, FeeDenominator)
	}
	if p.MaxPriceImpactBps <= 0 || p.MaxPriceImpactBps > FeeDenominator {
		return ErrInvalidAmount.Wrapf("max price impact %d bps outside (0, %d]", p.MaxPriceImpactBps, FeeDenominator)
	}
	if p.MinLiquidity.IsNil() || !p.MinLiquidity.IsPositive() {
		return ErrInvalidAmount.Wrap("minimum liquidity must be positive")
	}
	if p.GraduationThreshold.IsNil() || !p.GraduationThreshold.IsPositive() {
		return ErrInvalidAmount.Wrap("graduation threshold must be positive")
	}
	if _, err := NewFeeConfig(p.Fees.TradingFeeBps, p.Fees.CreationFee, p.Fees.Treasury); err != nil {
		return err
	}
	return nil
}
