// Package engine orchestrates pools, token sales and oracles behind a
// single concurrency-safe facade. All pricing is delegated to the pure
// math packages; the engine adds locking, atomic state swaps, audit
// logging and metrics.
package engine

import (
	"math/big"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/nunalabs/Astro-Shiba-Pop/x/amm"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
	"github.com/nunalabs/Astro-Shiba-Pop/x/launch"
	"github.com/nunalabs/Astro-Shiba-Pop/x/oracle"
)

// Engine is the top-level pricing and settlement facade.
type Engine struct {
	store   *Store
	guard   *ReentrancyGuard
	params  types.Params
	logger  log.Logger
	metrics *Metrics
}

// New validates params and returns a ready engine.
func New(params types.Params, logger log.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		store:   NewStore(),
		guard:   NewReentrancyGuard(),
		params:  params,
		logger:  logger.With("module", types.ModuleName),
		metrics: NewMetrics(),
	}, nil
}

// Params returns the engine parameters.
func (e *Engine) Params() types.Params {
	return e.params
}

func (e *Engine) observe(op string, start time.Time) {
	e.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (e *Engine) audit(event string, keyvals ...any) {
	kv := append([]any{"trace_id", uuid.NewString()}, keyvals...)
	e.logger.Info(event, kv...)
}

// CreatePool opens a pool for the pair seeded with the initial deposit
// and returns the minted shares. The first deposit locks the minimum
// liquidity permanently.
func (e *Engine) CreatePool(tokenA, tokenB string, amountA, amountB math.Int, now int64) (*Pool, types.LiquidityResult, error) {
	defer e.observe("create_pool", time.Now())
	pair, err := types.NewReservePair(tokenA, tokenB)
	if err != nil {
		return nil, types.LiquidityResult{}, err
	}
	amount0, amount1 := amountA, amountB
	if tokenA != pair.Token0 {
		amount0, amount1 = amountB, amountA
	}
	newPair, res, err := amm.AddLiquidity(pair, amount0, amount1,
		math.ZeroInt(), math.ZeroInt(), e.params.MinLiquidity)
	if err != nil {
		return nil, types.LiquidityResult{}, err
	}

	orc := oracle.New()
	if err := orc.Update(now, newPair.Reserve0, newPair.Reserve1); err != nil {
		return nil, types.LiquidityResult{}, err
	}
	pool, err := e.store.CreatePool(newPair, orc)
	if err != nil {
		return nil, types.LiquidityResult{}, err
	}

	pools, _ := e.store.Counts()
	e.metrics.PoolsActive.Set(float64(pools))
	e.audit(types.EventTypeCreatePool,
		"pool_id", pool.ID, "pair", pairKey(newPair.Token0, newPair.Token1),
		"shares", res.Shares.String())
	return pool, res, nil
}

// Swap executes a swap against the pool. The pool and oracle are
// updated atomically; a failure at any stage leaves both untouched.
func (e *Engine) Swap(poolID uint64, tokenIn string, amountIn, minAmountOut math.Int, deadline, now int64) (types.SwapResult, error) {
	defer e.observe("swap", time.Now())
	var result types.SwapResult
	err := e.guard.WithLock(poolKey(poolID), func() error {
		if err := checkDeadline(deadline, now); err != nil {
			return err
		}
		pool, err := e.store.GetPool(poolID)
		if err != nil {
			return err
		}
		newPair, res, err := amm.Swap(pool.Pair, tokenIn, amountIn, minAmountOut,
			e.params.SwapFeeBps, e.params.MaxPriceImpactBps)
		if err != nil {
			return err
		}
		if err := pool.Oracle.Update(now, newPair.Reserve0, newPair.Reserve1); err != nil {
			return err
		}
		pool.Pair = newPair
		if err := e.store.PutPool(pool); err != nil {
			return err
		}
		result = res
		return nil
	})

	pairLabel := ""
	if result.TokenIn != "" {
		pairLabel = result.TokenIn + "/" + result.TokenOut
	}
	if err != nil {
		e.metrics.SwapErrors.WithLabelValues(errReason(err)).Inc()
		return types.SwapResult{}, err
	}
	e.metrics.SwapsTotal.WithLabelValues(pairLabel, "ok").Inc()
	volume, _ := new(big.Float).SetInt(result.AmountIn.BigInt()).Float64()
	e.metrics.SwapVolume.WithLabelValues(result.TokenIn).Add(volume)
	e.audit(types.EventTypeSwap,
		"pool_id", poolID, "token_in", result.TokenIn, "amount_in", result.AmountIn.String(),
		"amount_out", result.AmountOut.String(), "impact_bps", result.PriceImpactBps.String())
	return result, nil
}

// SwapExactOut buys an exact output, bounded by maxAmountIn.
func (e *Engine) SwapExactOut(poolID uint64, tokenOut string, amountOut, maxAmountIn math.Int, deadline, now int64) (types.SwapResult, error) {
	defer e.observe("swap_exact_out", time.Now())
	var result types.SwapResult
	err := e.guard.WithLock(poolKey(poolID), func() error {
		if err := checkDeadline(deadline, now); err != nil {
			return err
		}
		pool, err := e.store.GetPool(poolID)
		if err != nil {
			return err
		}
		newPair, res, err := amm.SwapExactOut(pool.Pair, tokenOut, amountOut, maxAmountIn,
			e.params.SwapFeeBps, e.params.MaxPriceImpactBps)
		if err != nil {
			return err
		}
		if err := pool.Oracle.Update(now, newPair.Reserve0, newPair.Reserve1); err != nil {
			return err
		}
		pool.Pair = newPair
		if err := e.store.PutPool(pool); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		e.metrics.SwapErrors.WithLabelValues(errReason(err)).Inc()
		return types.SwapResult{}, err
	}
	e.metrics.SwapsTotal.WithLabelValues(result.TokenIn+"/"+result.TokenOut, "ok").Inc()
	e.audit(types.EventTypeSwap,
		"pool_id", poolID, "token_out", result.TokenOut, "amount_in", result.AmountIn.String(),
		"amount_out", result.AmountOut.String())
	return result, nil
}

// QuoteSwap prices a swap without executing it.
func (e *Engine) QuoteSwap(poolID uint64, tokenIn string, amountIn math.Int) (types.SwapResult, error) {
	pool, err := e.store.GetPool(poolID)
	if err != nil {
		return types.SwapResult{}, err
	}
	reserveIn, reserveOut, err := pool.Pair.ReservesFor(tokenIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	tokenOut, err := pool.Pair.OtherToken(tokenIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	amountOut, err := amm.GetAmountOut(amountIn, reserveIn, reserveOut, e.params.SwapFeeBps)
	if err != nil {
		return types.SwapResult{}, err
	}
	impact, err := amm.PriceImpactBps(amountIn, reserveIn, reserveOut, e.params.SwapFeeBps)
	if err != nil {
		return types.SwapResult{}, err
	}
	return types.SwapResult{
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		PriceImpactBps: impact,
	}, nil
}

// QuoteAmountIn returns the input needed for a desired output.
func (e *Engine) QuoteAmountIn(poolID uint64, tokenOut string, amountOut math.Int) (math.Int, error) {
	pool, err := e.store.GetPool(poolID)
	if err != nil {
		return math.Int{}, err
	}
	tokenIn, err := pool.Pair.OtherToken(tokenOut)
	if err != nil {
		return math.Int{}, err
	}
	reserveIn, reserveOut, err := pool.Pair.ReservesFor(tokenIn)
	if err != nil {
		return math.Int{}, err
	}
	return amm.GetAmountIn(amountOut, reserveIn, reserveOut, e.params.SwapFeeBps)
}

// AddLiquidity deposits into a pool.
func (e *Engine) AddLiquidity(poolID uint64, amount0Desired, amount1Desired, amount0Min, amount1Min math.Int, deadline, now int64) (types.LiquidityResult, error) {
	defer e.observe("add_liquidity", time.Now())
	var result types.LiquidityResult
	err := e.guard.WithLock(poolKey(poolID), func() error {
		if err := checkDeadline(deadline, now); err != nil {
			return err
		}
		pool, err := e.store.GetPool(poolID)
		if err != nil {
			return err
		}
		newPair, res, err := amm.AddLiquidity(pool.Pair, amount0Desired, amount1Desired,
			amount0Min, amount1Min, e.params.MinLiquidity)
		if err != nil {
			return err
		}
		if err := pool.Oracle.Update(now, newPair.Reserve0, newPair.Reserve1); err != nil {
			return err
		}
		pool.Pair = newPair
		if err := e.store.PutPool(pool); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return types.LiquidityResult{}, err
	}
	e.audit(types.EventTypeAddLiquidity,
		"pool_id", poolID, "amount0", result.Amount0.String(), "amount1", result.Amount1.String(),
		"shares", result.Shares.String())
	return result, nil
}

// RemoveLiquidity burns shares for both reserves.
func (e *Engine) RemoveLiquidity(poolID uint64, shares, amount0Min, amount1Min math.Int, deadline, now int64) (types.LiquidityResult, error) {
	defer e.observe("remove_liquidity", time.Now())
	var result types.LiquidityResult
	err := e.guard.WithLock(poolKey(poolID), func() error {
		if err := checkDeadline(deadline, now); err != nil {
			return err
		}
		pool, err := e.store.GetPool(poolID)
		if err != nil {
			return err
		}
		newPair, res, err := amm.RemoveLiquidity(pool.Pair, shares,
			amount0Min, amount1Min, e.params.MinLiquidity)
		if err != nil {
			return err
		}
		if err := pool.Oracle.Update(now, newPair.Reserve0, newPair.Reserve1); err != nil {
			return err
		}
		pool.Pair = newPair
		if err := e.store.PutPool(pool); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return types.LiquidityResult{}, err
	}
	e.audit(types.EventTypeRemoveLiquidity,
		"pool_id", poolID, "amount0", result.Amount0.String(), "amount1", result.Amount1.String(),
		"shares", result.Shares.String())
	return result, nil
}

// TWAP returns the pool's time-weighted average price0 over the window.
func (e *Engine) TWAP(poolID uint64, secondsAgo int64) (math.Int, error) {
	pool, err := e.store.GetPool(poolID)
	if err != nil {
		return math.Int{}, err
	}
	return pool.Oracle.TWAP(secondsAgo)
}

// SpotPrice returns the pool's instantaneous price0.
func (e *Engine) SpotPrice(poolID uint64) (math.Int, error) {
	pool, err := e.store.GetPool(poolID)
	if err != nil {
		return math.Int{}, err
	}
	return oracle.SpotPrice(pool.Pair.Reserve0, pool.Pair.Reserve1)
}

// GetPool returns a snapshot of the pool.
func (e *Engine) GetPool(poolID uint64) (*Pool, error) {
	return e.store.GetPool(poolID)
}

// ListPools returns snapshots of all pools.
func (e *Engine) ListPools() []*Pool {
	return e.store.ListPools()
}

// LaunchToken opens a token sale on the requested curve shape.
// Constant product is the default when shape is empty.
func (e *Engine) LaunchToken(token string, totalSupply math.Int, shape string) (*launch.TokenSale, error) {
	defer e.observe("launch_token", time.Now())
	var (
		curve launch.PricingCurve
		err   error
	)
	if shape == "" || shape == "constant-product" {
		curve, err = launch.NewBondingCurve(totalSupply)
	} else {
		var cs launch.CurveShape
		cs, err = launch.ParseCurveShape(shape)
		if err == nil {
			curve, err = launch.NewShapedCurve(cs, totalSupply)
		}
	}
	if err != nil {
		return nil, err
	}
	sale, err := launch.NewTokenSale(token, curve)
	if err != nil {
		return nil, err
	}
	if err := e.store.CreateSale(sale); err != nil {
		return nil, err
	}

	_, bonding := e.store.Counts()
	e.metrics.SalesActive.Set(float64(bonding))
	e.audit(types.EventTypeLaunchToken,
		"token", token, "total_supply", totalSupply.String(), "shape", shape)
	return sale.Clone(), nil
}

// BuyTokens spends base asset on a bonding token.
func (e *Engine) BuyTokens(token string, baseIn, minTokensOut math.Int, deadline, now int64) (launch.TradeResult, error) {
	defer e.observe("buy_tokens", time.Now())
	var result launch.TradeResult
	err := e.guard.WithLock(saleKey(token), func() error {
		if err := checkDeadline(deadline, now); err != nil {
			return err
		}
		sale, err := e.store.GetSale(token)
		if err != nil {
			return err
		}
		res, err := sale.Buy(baseIn, minTokensOut, e.params.Fees, e.params.GraduationThreshold)
		if err != nil {
			return err
		}
		if err := e.store.PutSale(sale); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return launch.TradeResult{}, err
	}
	e.metrics.CurveTradesTotal.WithLabelValues(token, "buy").Inc()
	if result.Graduated {
		e.metrics.Graduations.Inc()
		_, bonding := e.store.Counts()
		e.metrics.SalesActive.Set(float64(bonding))
		e.audit(types.EventTypeGraduation, "token", token)
	}
	e.audit(types.EventTypeBuyTokens,
		"token", token, "base_in", result.AmountIn.String(),
		"tokens_out", result.AmountOut.String(), "fee", result.Fee.String())
	return result, nil
}

// SellTokens returns tokens to a bonding curve for base asset.
func (e *Engine) SellTokens(token string, tokensIn, minBaseOut math.Int, deadline, now int64) (launch.TradeResult, error) {
	defer e.observe("sell_tokens", time.Now())
	var result launch.TradeResult
	err := e.guard.WithLock(saleKey(token), func() error {
		if err := checkDeadline(deadline, now); err != nil {
			return err
		}
		sale, err := e.store.GetSale(token)
		if err != nil {
			return err
		}
		res, err := sale.Sell(tokensIn, minBaseOut, e.params.Fees)
		if err != nil {
			return err
		}
		if err := e.store.PutSale(sale); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return launch.TradeResult{}, err
	}
	e.metrics.CurveTradesTotal.WithLabelValues(token, "sell").Inc()
	e.audit(types.EventTypeSellTokens,
		"token", token, "tokens_in", result.AmountIn.String(),
		"base_out", result.AmountOut.String(), "fee", result.Fee.String())
	return result, nil
}

// GetSale returns a snapshot of the sale.
func (e *Engine) GetSale(token string) (*launch.TokenSale, error) {
	return e.store.GetSale(token)
}

// ListSales returns snapshots of all sales.
func (e *Engine) ListSales() []*launch.TokenSale {
	return e.store.ListSales()
}

// GraduationProgress returns bonding progress in basis points.
func (e *Engine) GraduationProgress(token string) (int64, error) {
	sale, err := e.store.GetSale(token)
	if err != nil {
		return 0, err
	}
	return sale.GraduationProgress(e.params.GraduationThreshold)
}

func errReason(err error) string {
	switch {
	case types.ErrSlippageExceeded.Is(err):
		return "slippage"
	case types.ErrPriceImpactTooHigh.Is(err):
		return "price_impact"
	case types.ErrKInvariantViolated.Is(err):
		return "invariant"
	case types.ErrTransactionExpired.Is(err):
		return "expired"
	case types.ErrReentrancy.Is(err):
		return "reentrancy"
	case types.ErrPoolNotFound.Is(err):
		return "not_found"
	default:
		return "other"
	}
}
