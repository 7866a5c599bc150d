package oracle_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
	"github.com/nunalabs/Astro-Shiba-Pop/x/oracle"
)

func TestUpdate_SameTimestampIsNoOp(t *testing.T) {
	o := oracle.New()
	require.NoError(t, o.Update(100, math.NewInt(1_000), math.NewInt(2_000)))
	last := o.Last

	require.NoError(t, o.Update(100, math.NewInt(5_000), math.NewInt(1)))
	require.Equal(t, last, o.Last)

	require.NoError(t, o.Update(50, math.NewInt(5_000), math.NewInt(1)))
	require.Equal(t, last, o.Last)
}

func TestTWAP_ConstantPrice(t *testing.T) {
	o := oracle.New()
	// Price0 = 2 * PricePrecision throughout.
	require.NoError(t, o.Update(100, math.NewInt(1_000), math.NewInt(2_000)))
	require.NoError(t, o.Update(200, math.NewInt(1_000), math.NewInt(2_000)))
	require.NoError(t, o.Update(300, math.NewInt(1_000), math.NewInt(2_000)))

	twap, err := o.TWAP(200)
	require.NoError(t, err)
	require.Equal(t, int64(2*oracle.PricePrecision), twap.Int64())
}

func TestTWAP_WeightsByElapsedTime(t *testing.T) {
	o := oracle.New()
	require.NoError(t, o.Update(100, math.NewInt(1_000), math.NewInt(1_000)))
	require.NoError(t, o.Update(150, math.NewInt(1_000), math.NewInt(1_000)))
	require.NoError(t, o.Update(250, math.NewInt(1_000), math.NewInt(3_000)))

	// 50s at price 1.0 then 100s at price 3.0 over the 150s window:
	// (50 + 300) / 150 = 2.333...
	twap, err := o.TWAP(150)
	require.NoError(t, err)
	require.Equal(t, int64(2_333_333_333), twap.Int64())
}

func TestTWAP_WindowTooDeep(t *testing.T) {
	o := oracle.New()
	require.NoError(t, o.Update(1_000, math.NewInt(1_000), math.NewInt(2_000)))
	require.NoError(t, o.Update(1_100, math.NewInt(1_000), math.NewInt(2_000)))

	// No checkpoint at or before t=100.
	_, err := o.TWAP(1_000)
	require.ErrorIs(t, err, types.ErrOracleWindowUnavailable)
}

func TestTWAP_ZeroWindow(t *testing.T) {
	o := oracle.New()
	require.NoError(t, o.Update(100, math.NewInt(1_000), math.NewInt(2_000)))

	_, err := o.TWAP(0)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestTWAP_EmptyOracle(t *testing.T) {
	o := oracle.New()
	_, err := o.TWAP(60)
	require.ErrorIs(t, err, types.ErrOracleWindowUnavailable)
}

func TestTWAP_RingBufferEviction(t *testing.T) {
	o := oracle.New()
	// Fill the ring twice over; only the newest 8 checkpoints remain.
	for i := int64(1); i <= 16; i++ {
		require.NoError(t, o.Update(i*100, math.NewInt(1_000), math.NewInt(2_000)))
	}

	// Anchor inside the retained window works.
	twap, err := o.TWAP(400)
	require.NoError(t, err)
	require.Equal(t, int64(2*oracle.PricePrecision), twap.Int64())

	// Anchor before the oldest retained checkpoint (t=900) fails.
	_, err = o.TWAP(1_500)
	require.ErrorIs(t, err, types.ErrOracleWindowUnavailable)
}

func TestSpotPrice(t *testing.T) {
	price, err := oracle.SpotPrice(math.NewInt(1_000), math.NewInt(2_000))
	require.NoError(t, err)
	require.Equal(t, int64(2*oracle.PricePrecision), price.Int64())

	_, err = oracle.SpotPrice(math.ZeroInt(), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}
