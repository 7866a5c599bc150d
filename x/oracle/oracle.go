// Package oracle accumulates time-weighted prices over a fixed ring of
// observations. Timestamps are supplied by the caller, the oracle never
// reads the clock, so replaying the same updates yields the same TWAP.
package oracle

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

const (
	// BufferSize is the number of retained observations.
	BufferSize = 8

	// PricePrecision scales instantaneous prices before accumulation.
	PricePrecision = 1_000_000_000
)

// Observation is a cumulative price checkpoint.
type Observation struct {
	Timestamp        int64
	Price0Cumulative math.Int
	Price1Cumulative math.Int
}

// Oracle holds the latest cumulative state and a ring of checkpoints.
type Oracle struct {
	Last         Observation
	Observations [BufferSize]Observation
	Index        int
}

// New returns an empty oracle.
func New() *Oracle {
	o := &Oracle{}
	o.Last.Price0Cumulative = math.ZeroInt()
	o.Last.Price1Cumulative = math.ZeroInt()
	for i := range o.Observations {
		o.Observations[i].Price0Cumulative = math.ZeroInt()
		o.Observations[i].Price1Cumulative = math.ZeroInt()
	}
	return o
}

// instantPrice returns quote*PricePrecision/base, zero on empty base.
func instantPrice(base, quote math.Int) (math.Int, error) {
	if !base.IsPositive() {
		return math.ZeroInt(), nil
	}
	return safemath.MulDiv(quote, math.NewInt(PricePrecision), base)
}

// Update folds the reserves at timestamp into the cumulative price and
// checkpoints the result. An update at or before the last recorded
// timestamp is a no-op, never an error, so idempotent replays are safe.
func (o *Oracle) Update(timestamp int64, reserve0, reserve1 math.Int) error {
	if timestamp <= o.Last.Timestamp {
		return nil
	}
	elapsed := math.NewInt(timestamp - o.Last.Timestamp)

	price0, err := instantPrice(reserve0, reserve1)
	if err != nil {
		return err
	}
	price1, err := instantPrice(reserve1, reserve0)
	if err != nil {
		return err
	}
	weighted0, err := safemath.Mul(price0, elapsed)
	if err != nil {
		return err
	}
	weighted1, err := safemath.Mul(price1, elapsed)
	if err != nil {
		return err
	}
	cum0, err := safemath.Add(o.Last.Price0Cumulative, weighted0)
	if err != nil {
		return err
	}
	cum1, err := safemath.Add(o.Last.Price1Cumulative, weighted1)
	if err != nil {
		return err
	}

	o.Last = Observation{
		Timestamp:        timestamp,
		Price0Cumulative: cum0,
		Price1Cumulative: cum1,
	}
	o.Observations[o.Index] = o.Last
	o.Index = (o.Index + 1) % BufferSize
	return nil
}

// TWAP returns the time-weighted average of price0 over the trailing
// window. It anchors on the newest checkpoint no younger than the
// window start; a window deeper than the buffered history fails.
func (o *Oracle) TWAP(secondsAgo int64) (math.Int, error) {
	if secondsAgo <= 0 {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("window %d seconds", secondsAgo)
	}
	if o.Last.Timestamp == 0 {
		return math.Int{}, types.ErrOracleWindowUnavailable.Wrap("no observations recorded")
	}
	target := o.Last.Timestamp - secondsAgo

	var anchor *Observation
	for i := range o.Observations {
		obs := &o.Observations[i]
		if obs.Timestamp == 0 || obs.Timestamp > target {
			continue
		}
		if anchor == nil || obs.Timestamp > anchor.Timestamp {
			anchor = obs
		}
	}
	if anchor == nil {
		return math.Int{}, types.ErrOracleWindowUnavailable.Wrapf("window %d seconds exceeds buffered history", secondsAgo)
	}
	if anchor.Timestamp == o.Last.Timestamp {
		return math.Int{}, types.ErrOracleWindowUnavailable.Wrap("window contains a single observation")
	}

	deltaCum, err := safemath.Sub(o.Last.Price0Cumulative, anchor.Price0Cumulative)
	if err != nil {
		return math.Int{}, err
	}
	deltaTime := math.NewInt(o.Last.Timestamp - anchor.Timestamp)
	return safemath.Div(deltaCum, deltaTime)
}

// SpotPrice returns the instantaneous price0 for the given reserves,
// scaled by PricePrecision.
func SpotPrice(reserve0, reserve1 math.Int) (math.Int, error) {
	if !reserve0.IsPositive() || !reserve1.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserve0, reserve1)
	}
	return safemath.MulDiv(reserve1, math.NewInt(PricePrecision), reserve0)
}

// Clone returns an independent copy.
func (o *Oracle) Clone() *Oracle {
	cp := *o
	return &cp
}
