package amm_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/nunalabs/Astro-Shiba-Pop/x/amm"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

func newFundedPair(t *testing.T, r0, r1 int64) types.ReservePair {
	t.Helper()
	pair, err := types.NewReservePair("uatom", "ushib")
	require.NoError(t, err)
	pair, _, err = amm.AddLiquidity(pair, math.NewInt(r0), math.NewInt(r1),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.NoError(t, err)
	return pair
}

func TestNewReservePair_Ordering(t *testing.T) {
	pair, err := types.NewReservePair("ushib", "uatom")
	require.NoError(t, err)
	require.Equal(t, "uatom", pair.Token0)
	require.Equal(t, "ushib", pair.Token1)

	_, err = types.NewReservePair("uatom", "uatom")
	require.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestAddLiquidity_FirstDepositLocksMinimum(t *testing.T) {
	pair, err := types.NewReservePair("uatom", "ushib")
	require.NoError(t, err)

	pair, res, err := amm.AddLiquidity(pair, math.NewInt(1_000_000), math.NewInt(1_000_000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.NoError(t, err)

	// sqrt(1e12) = 1e6 total, 1000 locked forever.
	require.Equal(t, int64(1_000_000), res.TotalShares.Int64())
	require.Equal(t, int64(999_000), res.Shares.Int64())
	require.Equal(t, int64(1_000_000), pair.Reserve0.Int64())
	require.NoError(t, amm.ValidatePairState(pair))
}

func TestAddLiquidity_FirstDepositTooSmall(t *testing.T) {
	pair, err := types.NewReservePair("uatom", "ushib")
	require.NoError(t, err)

	// sqrt(1000*1000) = 1000 mints nothing once the minimum is locked.
	_, _, err = amm.AddLiquidity(pair, math.NewInt(1000), math.NewInt(1000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidityMinted)
}

func TestAddLiquidity_DustDepositRejected(t *testing.T) {
	pair, err := types.NewReservePair("uatom", "ushib")
	require.NoError(t, err)

	_, _, err = amm.AddLiquidity(pair, math.NewInt(5), math.NewInt(5),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	require.ErrorIs(t, amm.ValidateDeposit(math.NewInt(5), math.NewInt(5)), types.ErrInvalidAmount)
	require.ErrorIs(t, amm.ValidateDeposit(math.NewInt(999), math.NewInt(2000)), types.ErrInvalidAmount)
	require.NoError(t, amm.ValidateDeposit(math.NewInt(1000), math.NewInt(1000)))
}

func TestAddLiquidity_SubsequentProRata(t *testing.T) {
	pair := newFundedPair(t, 1_000_000, 4_000_000)

	pair, res, err := amm.AddLiquidity(pair, math.NewInt(100_000), math.NewInt(400_000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.NoError(t, err)
	// 10% of the pool mints 10% of prior shares: sqrt(4e12)=2e6.
	require.Equal(t, int64(200_000), res.Shares.Int64())
	require.Equal(t, int64(1_100_000), pair.Reserve0.Int64())
	require.Equal(t, int64(4_400_000), pair.Reserve1.Int64())
}

func TestAddLiquidity_ScalesToReserveRatio(t *testing.T) {
	pair := newFundedPair(t, 1_000_000, 2_000_000)

	// Desired amounts off-ratio: amount1 is scaled down to 200k.
	_, res, err := amm.AddLiquidity(pair, math.NewInt(100_000), math.NewInt(500_000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.NoError(t, err)
	require.Equal(t, int64(100_000), res.Amount0.Int64())
	require.Equal(t, int64(200_000), res.Amount1.Int64())
}

func TestRemoveLiquidity_ProRata(t *testing.T) {
	pair := newFundedPair(t, 1_000_000, 1_000_000)

	pair, res, err := amm.RemoveLiquidity(pair, math.NewInt(500_000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.NoError(t, err)
	require.Equal(t, int64(500_000), res.Amount0.Int64())
	require.Equal(t, int64(500_000), res.Amount1.Int64())
	require.Equal(t, int64(500_000), pair.TotalShares.Int64())
	require.NoError(t, amm.ValidatePairState(pair))
}

func TestRemoveLiquidity_CannotDrainLockedMinimum(t *testing.T) {
	pair := newFundedPair(t, 1_000_000, 1_000_000)

	// Total shares are 1e6; only 1e6-1000 are withdrawable.
	_, _, err := amm.RemoveLiquidity(pair, math.NewInt(1_000_000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	_, _, err = amm.RemoveLiquidity(pair, math.NewInt(999_000),
		math.ZeroInt(), math.ZeroInt(), math.NewInt(types.MinimumLiquidity))
	require.NoError(t, err)
}

func TestSwap_KStrictlyIncreases(t *testing.T) {
	pair := newFundedPair(t, 10_000_000, 10_000_000)
	kBefore := pair.KLast

	pair, res, err := amm.Swap(pair, "uatom", math.NewInt(100_000), math.ZeroInt(),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.NoError(t, err)
	require.True(t, pair.KLast.GT(kBefore), "k %s -> %s", kBefore, pair.KLast)
	require.Equal(t, "ushib", res.TokenOut)
	require.True(t, res.AmountOut.IsPositive())
	require.NoError(t, amm.ValidatePairState(pair))
}

func TestSwap_SlippageExceeded(t *testing.T) {
	pair := newFundedPair(t, 10_000_000, 10_000_000)

	_, _, err := amm.Swap(pair, "uatom", math.NewInt(100_000), math.NewInt(100_000),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.ErrorIs(t, err, types.ErrSlippageExceeded)
}

func TestSwap_PriceImpactCeiling(t *testing.T) {
	pair := newFundedPair(t, 10_000_000, 10_000_000)

	// 10% of the pool trips the 5% ceiling.
	_, _, err := amm.Swap(pair, "uatom", math.NewInt(1_000_000), math.ZeroInt(),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.ErrorIs(t, err, types.ErrPriceImpactTooHigh)

	// 0.1% sails through.
	_, _, err = amm.Swap(pair, "uatom", math.NewInt(10_000), math.ZeroInt(),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.NoError(t, err)
}

func TestSwap_UnknownToken(t *testing.T) {
	pair := newFundedPair(t, 1_000_000, 1_000_000)

	_, _, err := amm.Swap(pair, "udoge", math.NewInt(10_000), math.ZeroInt(),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestSwapExactOut_BoundedByMaxIn(t *testing.T) {
	pair := newFundedPair(t, 10_000_000, 10_000_000)

	pair, res, err := amm.SwapExactOut(pair, "ushib", math.NewInt(50_000), math.NewInt(60_000),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.NoError(t, err)
	require.True(t, res.AmountOut.GTE(math.NewInt(50_000)))
	require.True(t, res.AmountIn.LTE(math.NewInt(60_000)))
	require.NoError(t, amm.ValidatePairState(pair))
}

func TestSwapExactOut_MaxInExceeded(t *testing.T) {
	pair := newFundedPair(t, 10_000_000, 10_000_000)

	_, _, err := amm.SwapExactOut(pair, "ushib", math.NewInt(50_000), math.NewInt(40_000),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.ErrorIs(t, err, types.ErrSlippageExceeded)
}

func TestSwap_FailureLeavesPairUntouched(t *testing.T) {
	pair := newFundedPair(t, 10_000_000, 10_000_000)
	before := pair

	_, _, err := amm.Swap(pair, "uatom", math.NewInt(1_000_000), math.ZeroInt(),
		types.DefaultFeeBps, types.DefaultMaxPriceImpactBps)
	require.Error(t, err)
	require.Equal(t, before, pair)
}
