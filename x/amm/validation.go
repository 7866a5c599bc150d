package amm

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// Dust floors below which operations are rejected outright.
var (
	MinSwapAmount      = math.NewInt(100)
	MinLiquidityAmount = math.NewInt(1000)
)

// ValidateSwapAmount rejects zero, negative and dust inputs.
func ValidateSwapAmount(amountIn math.Int) error {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.ErrInsufficientInputAmount.Wrapf("amount %s", amountIn)
	}
	if amountIn.LT(MinSwapAmount) {
		return types.ErrInvalidAmount.Wrapf("amount %s below minimum %s", amountIn, MinSwapAmount)
	}
	return nil
}

// ValidateDeposit rejects deposits too small to seed or grow a pool.
func ValidateDeposit(amount0, amount1 math.Int) error {
	if amount0.IsNil() || !amount0.IsPositive() || amount1.IsNil() || !amount1.IsPositive() {
		return types.ErrInsufficientInputAmount.Wrapf("amounts %s/%s", amount0, amount1)
	}
	if amount0.LT(MinLiquidityAmount) || amount1.LT(MinLiquidityAmount) {
		return types.ErrInvalidAmount.Wrapf("amounts %s/%s below minimum %s", amount0, amount1, MinLiquidityAmount)
	}
	return nil
}

// ValidatePriceImpact fails when a swap would move the price past the
// configured ceiling.
func ValidatePriceImpact(amountIn, reserveIn, reserveOut math.Int, feeBps, maxImpactBps int64) error {
	impact, err := PriceImpactBps(amountIn, reserveIn, reserveOut, feeBps)
	if err != nil {
		return err
	}
	if impact.GT(math.NewInt(maxImpactBps)) {
		return types.ErrPriceImpactTooHigh.Wrapf("impact %s bps exceeds ceiling %d bps", impact, maxImpactBps)
	}
	return nil
}

// ValidateSlippage fails when the realized output falls short of the
// caller's minimum.
func ValidateSlippage(amountOut, minAmountOut math.Int) error {
	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("minimum output %s", minAmountOut)
	}
	if amountOut.LT(minAmountOut) {
		return types.ErrSlippageExceeded.Wrapf("output %s below minimum %s", amountOut, minAmountOut)
	}
	return nil
}

// ValidateMaxInput fails when the required input exceeds the caller's
// maximum.
func ValidateMaxInput(amountIn, maxAmountIn math.Int) error {
	if maxAmountIn.IsNil() || !maxAmountIn.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("maximum input %s", maxAmountIn)
	}
	if amountIn.GT(maxAmountIn) {
		return types.ErrSlippageExceeded.Wrapf("input %s above maximum %s", amountIn, maxAmountIn)
	}
	return nil
}

// ValidateKInvariant requires the constant product to strictly increase
// across a fee-bearing swap. Equality means the fee was lost.
func ValidateKInvariant(kBefore, kAfter math.Int) error {
	if !kAfter.GT(kBefore) {
		return types.ErrKInvariantViolated.Wrapf("k %s -> %s", kBefore, kAfter)
	}
	return nil
}

// ValidatePairState checks structural pool invariants. An empty pool
// (no shares, no reserves) is valid; a funded pool must have positive
// reserves on both sides and a consistent KLast.
func ValidatePairState(pair types.ReservePair) error {
	if pair.Token0 == "" || pair.Token1 == "" || pair.Token0 >= pair.Token1 {
		return types.ErrInvalidState.Wrapf("pair tokens %q/%q not ordered", pair.Token0, pair.Token1)
	}
	if pair.Reserve0.IsNil() || pair.Reserve1.IsNil() || pair.TotalShares.IsNil() {
		return types.ErrInvalidState.Wrap("pair has nil reserves")
	}
	if pair.Reserve0.IsNegative() || pair.Reserve1.IsNegative() || pair.TotalShares.IsNegative() {
		return types.ErrInvalidState.Wrapf("pair has negative state: %s", pair)
	}
	if pair.TotalShares.IsZero() {
		if !pair.Reserve0.IsZero() || !pair.Reserve1.IsZero() {
			return types.ErrInvalidState.Wrapf("reserves without shares: %s", pair)
		}
		return nil
	}
	if pair.Reserve0.IsZero() || pair.Reserve1.IsZero() {
		return types.ErrInvalidState.Wrapf("one-sided reserves: %s", pair)
	}
	k, err := safemath.Mul(pair.Reserve0, pair.Reserve1)
	if err != nil {
		return err
	}
	if !pair.KLast.IsNil() && !pair.KLast.IsZero() && k.LT(pair.KLast) {
		return types.ErrKInvariantViolated.Wrapf("k %s below recorded %s", k, pair.KLast)
	}
	return nil
}
