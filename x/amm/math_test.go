package amm_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/nunalabs/Astro-Shiba-Pop/x/amm"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

func TestQuote_Proportional(t *testing.T) {
	cases := []struct {
		amountA, reserveA, reserveB, want int64
	}{
		{100, 1000, 1000, 100},
		{100, 1000, 2000, 200},
		{100, 2000, 1000, 50},
	}
	for _, tc := range cases {
		out, err := amm.Quote(math.NewInt(tc.amountA), math.NewInt(tc.reserveA), math.NewInt(tc.reserveB))
		require.NoError(t, err)
		require.Equal(t, tc.want, out.Int64(), "quote(%d,%d,%d)", tc.amountA, tc.reserveA, tc.reserveB)
	}
}

func TestQuote_ZeroAmount(t *testing.T) {
	_, err := amm.Quote(math.ZeroInt(), math.NewInt(1000), math.NewInt(2000))
	require.ErrorIs(t, err, types.ErrInsufficientInputAmount)
}

func TestQuote_EmptyReserves(t *testing.T) {
	_, err := amm.Quote(math.NewInt(100), math.ZeroInt(), math.NewInt(2000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestGetAmountOut_BoundedByFeeAndImpact(t *testing.T) {
	// 1M into a 10M/10M pool at 30 bps lands strictly between 900k
	// (heavy impact bound) and 1M (no-fee, no-impact bound).
	out, err := amm.GetAmountOut(math.NewInt(1_000_000), math.NewInt(10_000_000), math.NewInt(10_000_000), 30)
	require.NoError(t, err)
	require.True(t, out.GT(math.NewInt(900_000)), "out=%s", out)
	require.True(t, out.LT(math.NewInt(1_000_000)), "out=%s", out)
}

func TestGetAmountOut_ZeroFee(t *testing.T) {
	out, err := amm.GetAmountOut(math.NewInt(1_000), math.NewInt(1_000_000), math.NewInt(1_000_000), 0)
	require.NoError(t, err)
	// x*y=k exactly: 1000*1000000/1001000 = 999.0...
	require.Equal(t, int64(999), out.Int64())
}

func TestGetAmountOut_InvalidFee(t *testing.T) {
	_, err := amm.GetAmountOut(math.NewInt(1), math.NewInt(1000), math.NewInt(1000), 10_001)
	require.ErrorIs(t, err, types.ErrFeeTooHigh)
}

func TestGetAmountIn_RoundTrip(t *testing.T) {
	reserveIn := math.NewInt(10_000_000)
	reserveOut := math.NewInt(10_000_000)
	desired := math.NewInt(500_000)

	in, err := amm.GetAmountIn(desired, reserveIn, reserveOut, 30)
	require.NoError(t, err)

	out, err := amm.GetAmountOut(in, reserveIn, reserveOut, 30)
	require.NoError(t, err)
	require.True(t, out.GTE(desired), "out %s < desired %s", out, desired)
	// The +1 rounding keeps the overshoot within one unit of input.
	require.True(t, out.Sub(desired).LTE(math.NewInt(2)), "overshoot %s", out.Sub(desired))
}

func TestGetAmountIn_ExceedsReserve(t *testing.T) {
	_, err := amm.GetAmountIn(math.NewInt(1001), math.NewInt(1000), math.NewInt(1000), 30)
	require.ErrorIs(t, err, types.ErrInsufficientReserve)

	_, err = amm.GetAmountIn(math.NewInt(1000), math.NewInt(1000), math.NewInt(1000), 30)
	require.ErrorIs(t, err, types.ErrInsufficientReserve)
}

func TestPriceImpactBps_SmallVsLarge(t *testing.T) {
	reserveIn := math.NewInt(10_000_000)
	reserveOut := math.NewInt(10_000_000)

	small, err := amm.PriceImpactBps(math.NewInt(10_000), reserveIn, reserveOut, 30)
	require.NoError(t, err)
	large, err := amm.PriceImpactBps(math.NewInt(1_000_000), reserveIn, reserveOut, 30)
	require.NoError(t, err)

	require.True(t, small.LT(large), "small=%s large=%s", small, large)
	// 0.1% of the pool moves the price well under the 5% ceiling.
	require.True(t, small.LT(math.NewInt(types.DefaultMaxPriceImpactBps)), "small=%s", small)
	// 10% of the pool blows through it.
	require.True(t, large.GT(math.NewInt(types.DefaultMaxPriceImpactBps)), "large=%s", large)
}

func TestSpotPrice(t *testing.T) {
	price, err := amm.SpotPrice(math.NewInt(1_000), math.NewInt(2_000))
	require.NoError(t, err)
	require.Equal(t, int64(20_000), price.Int64())

	_, err = amm.SpotPrice(math.ZeroInt(), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}
