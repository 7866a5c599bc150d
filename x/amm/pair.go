package amm

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// OptimalDepositAmounts resolves the actual deposit for a funded pool.
// It tries to keep amount0Desired and scale amount1 to the reserve
// ratio, falling back to scaling amount0 when that would exceed
// amount1Desired. Minimums bound how far either leg may shrink.
func OptimalDepositAmounts(pair types.ReservePair, amount0Desired, amount1Desired, amount0Min, amount1Min math.Int) (math.Int, math.Int, error) {
	if pair.TotalShares.IsZero() {
		return amount0Desired, amount1Desired, nil
	}
	amount1Optimal, err := Quote(amount0Desired, pair.Reserve0, pair.Reserve1)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amount1Optimal.LTE(amount1Desired) {
		if amount1Optimal.LT(amount1Min) {
			return math.Int{}, math.Int{}, types.ErrSlippageExceeded.Wrapf("amount1 %s below minimum %s", amount1Optimal, amount1Min)
		}
		return amount0Desired, amount1Optimal, nil
	}
	amount0Optimal, err := Quote(amount1Desired, pair.Reserve1, pair.Reserve0)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amount0Optimal.GT(amount0Desired) {
		return math.Int{}, math.Int{}, types.ErrInvalidAmount.Wrapf("optimal amount0 %s exceeds desired %s", amount0Optimal, amount0Desired)
	}
	if amount0Optimal.LT(amount0Min) {
		return math.Int{}, math.Int{}, types.ErrSlippageExceeded.Wrapf("amount0 %s below minimum %s", amount0Optimal, amount0Min)
	}
	return amount0Optimal, amount1Desired, nil
}

// AddLiquidity deposits into the pair and returns the new state plus
// the shares minted to the provider. On first deposit, minLiquidity
// shares are permanently locked: they count toward TotalShares but are
// never credited to anyone, so the pool can never be fully drained.
func AddLiquidity(pair types.ReservePair, amount0Desired, amount1Desired, amount0Min, amount1Min, minLiquidity math.Int) (types.ReservePair, types.LiquidityResult, error) {
	if err := ValidateDeposit(amount0Desired, amount1Desired); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	amount0, amount1, err := OptimalDepositAmounts(pair, amount0Desired, amount1Desired, amount0Min, amount1Min)
	if err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}

	var minted math.Int
	if pair.TotalShares.IsZero() {
		product, err := safemath.Mul(amount0, amount1)
		if err != nil {
			return types.ReservePair{}, types.LiquidityResult{}, err
		}
		shares, err := safemath.Sqrt(product)
		if err != nil {
			return types.ReservePair{}, types.LiquidityResult{}, err
		}
		if shares.LTE(minLiquidity) {
			return types.ReservePair{}, types.LiquidityResult{}, types.ErrInsufficientLiquidityMinted.Wrapf("shares %s below locked minimum %s", shares, minLiquidity)
		}
		minted = shares.Sub(minLiquidity)
		pair.TotalShares = shares
	} else {
		shares0, err := safemath.MulDiv(amount0, pair.TotalShares, pair.Reserve0)
		if err != nil {
			return types.ReservePair{}, types.LiquidityResult{}, err
		}
		shares1, err := safemath.MulDiv(amount1, pair.TotalShares, pair.Reserve1)
		if err != nil {
			return types.ReservePair{}, types.LiquidityResult{}, err
		}
		minted = math.MinInt(shares0, shares1)
		if !minted.IsPositive() {
			return types.ReservePair{}, types.LiquidityResult{}, types.ErrInsufficientLiquidityMinted.Wrapf("deposit %s/%s too small", amount0, amount1)
		}
		pair.TotalShares, err = safemath.Add(pair.TotalShares, minted)
		if err != nil {
			return types.ReservePair{}, types.LiquidityResult{}, err
		}
	}

	if pair.Reserve0, err = safemath.Add(pair.Reserve0, amount0); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	if pair.Reserve1, err = safemath.Add(pair.Reserve1, amount1); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	if pair.KLast, err = safemath.Mul(pair.Reserve0, pair.Reserve1); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}

	return pair, types.LiquidityResult{
		Amount0:     amount0,
		Amount1:     amount1,
		Shares:      minted,
		TotalShares: pair.TotalShares,
	}, nil
}

// RemoveLiquidity burns shares for a proportional cut of both reserves.
// The locked minimum can never be withdrawn.
func RemoveLiquidity(pair types.ReservePair, shares, amount0Min, amount1Min, minLiquidity math.Int) (types.ReservePair, types.LiquidityResult, error) {
	if shares.IsNil() || !shares.IsPositive() {
		return types.ReservePair{}, types.LiquidityResult{}, types.ErrInvalidAmount.Wrapf("shares %s", shares)
	}
	if pair.TotalShares.IsZero() {
		return types.ReservePair{}, types.LiquidityResult{}, types.ErrInsufficientLiquidity.Wrap("pool is empty")
	}
	withdrawable := pair.TotalShares.Sub(minLiquidity)
	if shares.GT(withdrawable) {
		return types.ReservePair{}, types.LiquidityResult{}, types.ErrInsufficientShares.Wrapf("shares %s exceed withdrawable %s", shares, withdrawable)
	}

	amount0, err := safemath.MulDiv(shares, pair.Reserve0, pair.TotalShares)
	if err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	amount1, err := safemath.MulDiv(shares, pair.Reserve1, pair.TotalShares)
	if err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	if !amount0.IsPositive() || !amount1.IsPositive() {
		return types.ReservePair{}, types.LiquidityResult{}, types.ErrInsufficientOutputAmount.Wrapf("amounts %s/%s", amount0, amount1)
	}
	if amount0.LT(amount0Min) {
		return types.ReservePair{}, types.LiquidityResult{}, types.ErrSlippageExceeded.Wrapf("amount0 %s below minimum %s", amount0, amount0Min)
	}
	if amount1.LT(amount1Min) {
		return types.ReservePair{}, types.LiquidityResult{}, types.ErrSlippageExceeded.Wrapf("amount1 %s below minimum %s", amount1, amount1Min)
	}

	if pair.Reserve0, err = safemath.Sub(pair.Reserve0, amount0); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	if pair.Reserve1, err = safemath.Sub(pair.Reserve1, amount1); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}
	pair.TotalShares = pair.TotalShares.Sub(shares)
	if pair.KLast, err = safemath.Mul(pair.Reserve0, pair.Reserve1); err != nil {
		return types.ReservePair{}, types.LiquidityResult{}, err
	}

	return pair, types.LiquidityResult{
		Amount0:     amount0,
		Amount1:     amount1,
		Shares:      shares,
		TotalShares: pair.TotalShares,
	}, nil
}

// SwapExactOut buys an exact amountOut of tokenOut, spending no more
// than maxAmountIn of the counter asset.
func SwapExactOut(pair types.ReservePair, tokenOut string, amountOut, maxAmountIn math.Int, feeBps, maxImpactBps int64) (types.ReservePair, types.SwapResult, error) {
	tokenIn, err := pair.OtherToken(tokenOut)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	reserveIn, reserveOut, err := pair.ReservesFor(tokenIn)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	amountIn, err := GetAmountIn(amountOut, reserveIn, reserveOut, feeBps)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	if err := ValidateMaxInput(amountIn, maxAmountIn); err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	return Swap(pair, tokenIn, amountIn, amountOut, feeBps, maxImpactBps)
}

// Swap sells amountIn of tokenIn into the pair. All validation happens
// before any state changes, so a failed swap leaves the pair untouched.
// The constant product is checked strictly after fees are folded in.
func Swap(pair types.ReservePair, tokenIn string, amountIn, minAmountOut math.Int, feeBps, maxImpactBps int64) (types.ReservePair, types.SwapResult, error) {
	if err := ValidateSwapAmount(amountIn); err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	reserveIn, reserveOut, err := pair.ReservesFor(tokenIn)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	tokenOut, err := pair.OtherToken(tokenIn)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}

	kBefore, err := safemath.Mul(reserveIn, reserveOut)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut, feeBps)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	if !amountOut.IsPositive() {
		return types.ReservePair{}, types.SwapResult{}, types.ErrInsufficientOutputAmount.Wrapf("swap of %s yields nothing", amountIn)
	}
	if err := ValidateSlippage(amountOut, minAmountOut); err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	impact, err := PriceImpactBps(amountIn, reserveIn, reserveOut, feeBps)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	if impact.GT(math.NewInt(maxImpactBps)) {
		return types.ReservePair{}, types.SwapResult{}, types.ErrPriceImpactTooHigh.Wrapf("impact %s bps exceeds ceiling %d bps", impact, maxImpactBps)
	}

	newReserveIn, err := safemath.Add(reserveIn, amountIn)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	newReserveOut, err := safemath.Sub(reserveOut, amountOut)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	kAfter, err := safemath.Mul(newReserveIn, newReserveOut)
	if err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}
	if err := ValidateKInvariant(kBefore, kAfter); err != nil {
		return types.ReservePair{}, types.SwapResult{}, err
	}

	if tokenIn == pair.Token0 {
		pair.Reserve0, pair.Reserve1 = newReserveIn, newReserveOut
	} else {
		pair.Reserve0, pair.Reserve1 = newReserveOut, newReserveIn
	}
	pair.KLast = kAfter

	return pair, types.SwapResult{
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		PriceImpactBps: impact,
		NewReserveIn:   newReserveIn,
		NewReserveOut:  newReserveOut,
	}, nil
}
