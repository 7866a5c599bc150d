// Package amm implements constant product pricing over integer
// reserves. All formulas are pure functions of their inputs, fees are
// expressed in basis points and rounding always favors the pool.
package amm

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// Quote returns the amount of the counter asset proportional to amountA
// at the current reserve ratio, with no fee applied.
func Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	if !amountA.IsPositive() {
		return math.Int{}, types.ErrInsufficientInputAmount.Wrapf("amount %s", amountA)
	}
	if !reserveA.IsPositive() || !reserveB.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveA, reserveB)
	}
	return safemath.MulDiv(amountA, reserveB, reserveA)
}

// GetAmountOut returns the output of a fee-on-input constant product
// swap. The fee is deducted from amountIn before pricing, and the
// division truncates in the pool's favor.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int, feeBps int64) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.Int{}, types.ErrInsufficientInputAmount.Wrapf("amount %s", amountIn)
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	if feeBps < 0 || feeBps > types.FeeDenominator {
		return math.Int{}, types.ErrFeeTooHigh.Wrapf("fee %d bps outside [0, %d]", feeBps, types.FeeDenominator)
	}

	feeMultiplier := math.NewInt(types.FeeDenominator - feeBps)
	amountInWithFee, err := safemath.Mul(amountIn, feeMultiplier)
	if err != nil {
		return math.Int{}, err
	}
	numerator, err := safemath.Mul(amountInWithFee, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	scaledReserveIn, err := safemath.Mul(reserveIn, math.NewInt(types.FeeDenominator))
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := safemath.Add(scaledReserveIn, amountInWithFee)
	if err != nil {
		return math.Int{}, err
	}
	return safemath.Div(numerator, denominator)
}

// GetAmountIn returns the minimum input that yields at least amountOut.
// It rounds up by one so a round trip through GetAmountOut never falls
// short of the requested output.
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int, feeBps int64) (math.Int, error) {
	if !amountOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientOutputAmount.Wrapf("amount %s", amountOut)
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientReserve.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}
	if feeBps < 0 || feeBps > types.FeeDenominator {
		return math.Int{}, types.ErrFeeTooHigh.Wrapf("fee %d bps outside [0, %d]", feeBps, types.FeeDenominator)
	}

	numerator, err := safemath.Mul(reserveIn, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	numerator, err = safemath.Mul(numerator, math.NewInt(types.FeeDenominator))
	if err != nil {
		return math.Int{}, err
	}
	remaining, err := safemath.Sub(reserveOut, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := safemath.Mul(remaining, math.NewInt(types.FeeDenominator-feeBps))
	if err != nil {
		return math.Int{}, err
	}
	amountIn, err := safemath.Div(numerator, denominator)
	if err != nil {
		return math.Int{}, err
	}
	return safemath.Add(amountIn, math.OneInt())
}

// PriceImpactBps returns how far a swap of amountIn moves the marginal
// price, in basis points of the pre-swap price.
func PriceImpactBps(amountIn, reserveIn, reserveOut math.Int, feeBps int64) (math.Int, error) {
	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut, feeBps)
	if err != nil {
		return math.Int{}, err
	}
	oldPrice, err := safemath.MulDiv(reserveOut, math.NewInt(types.FeeDenominator), reserveIn)
	if err != nil {
		return math.Int{}, err
	}
	if oldPrice.IsZero() {
		return math.Int{}, types.ErrDivisionByZero.Wrap("pre-swap price is zero")
	}
	newReserveIn, err := safemath.Add(reserveIn, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	newReserveOut, err := safemath.Sub(reserveOut, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	newPrice, err := safemath.MulDiv(newReserveOut, math.NewInt(types.FeeDenominator), newReserveIn)
	if err != nil {
		return math.Int{}, err
	}
	diff := oldPrice.Sub(newPrice)
	if diff.IsNegative() {
		diff = diff.Neg()
	}
	return safemath.MulDiv(diff, math.NewInt(types.FeeDenominator), oldPrice)
}

// SpotPrice returns reserveOut/reserveIn scaled by FeeDenominator.
func SpotPrice(reserveIn, reserveOut math.Int) (math.Int, error) {
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	return safemath.MulDiv(reserveOut, math.NewInt(types.FeeDenominator), reserveIn)
}
