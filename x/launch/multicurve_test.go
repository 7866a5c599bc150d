package launch_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
	"github.com/nunalabs/Astro-Shiba-Pop/x/launch"
)

func TestParseCurveShape(t *testing.T) {
	for name, want := range map[string]launch.CurveShape{
		"linear":      launch.ShapeLinear,
		"exponential": launch.ShapeExponential,
		"sigmoid":     launch.ShapeSigmoid,
	} {
		got, err := launch.ParseCurveShape(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, name, got.String())
	}

	_, err := launch.ParseCurveShape("parabolic")
	require.ErrorIs(t, err, types.ErrInvalidState)
}

func TestShapedCurve_InitialPriceIsBase(t *testing.T) {
	for _, shape := range []launch.CurveShape{launch.ShapeLinear, launch.ShapeExponential, launch.ShapeSigmoid} {
		c, err := launch.NewShapedCurve(shape, math.NewInt(1_000_000_000))
		require.NoError(t, err)
		price, err := c.CurrentPrice()
		require.NoError(t, err)
		require.Equal(t, int64(100), price.Int64(), "shape %s", shape)
	}
}

func TestShapedCurve_LinearPriceGrowsWithSupply(t *testing.T) {
	c, err := launch.NewShapedCurve(launch.ShapeLinear, math.NewInt(1_000_000_000))
	require.NoError(t, err)

	require.NoError(t, c.ExecuteBuy(math.NewInt(10_000_000), math.NewInt(100_000)))
	p1, err := c.CurrentPrice()
	require.NoError(t, err)

	require.NoError(t, c.ExecuteBuy(math.NewInt(10_000_000), math.NewInt(100_000)))
	p2, err := c.CurrentPrice()
	require.NoError(t, err)

	require.True(t, p1.GT(math.NewInt(100)))
	require.True(t, p2.GT(p1))
}

func TestShapedCurve_ExponentialGrowsSuperlinearly(t *testing.T) {
	exp, err := launch.NewShapedCurve(launch.ShapeExponential, math.NewInt(1_000_000_000))
	require.NoError(t, err)

	// Once the quadratic Taylor term dominates, doubling the supply
	// more than doubles the price.
	exp.CirculatingSupply = math.NewInt(200_000_000)
	p1, err := exp.CurrentPrice()
	require.NoError(t, err)

	exp.CirculatingSupply = math.NewInt(400_000_000)
	p2, err := exp.CurrentPrice()
	require.NoError(t, err)

	require.True(t, p2.GT(p1.MulRaw(2)), "p(2s)=%s not above 2*p(s)=%s", p2, p1.MulRaw(2))
}

func TestShapedCurve_SellPenaltyReducesPayout(t *testing.T) {
	c, err := launch.NewShapedCurve(launch.ShapeLinear, math.NewInt(1_000_000_000))
	require.NoError(t, err)
	c.CirculatingSupply = math.NewInt(100_000_000)
	c.BaseReserve = math.NewInt(1_000_000)

	sell, err := c.CalculateSell(math.NewInt(10_000_000))
	require.NoError(t, err)

	// Gross payout at the marginal price, minus the 2% penalty.
	price, err := c.CurrentPrice()
	require.NoError(t, err)
	gross := math.NewInt(10_000_000).Mul(price).QuoRaw(launch.CurvePrecision)
	require.True(t, sell.AmountOut.LT(gross), "payout %s not below gross %s", sell.AmountOut, gross)
}

func TestShapedCurve_SellMoreThanCirculating(t *testing.T) {
	c, err := launch.NewShapedCurve(launch.ShapeSigmoid, math.NewInt(1_000_000_000))
	require.NoError(t, err)

	_, err = c.CalculateSell(math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientReserve)
}

func TestShapedCurve_BuyCappedByRemainingSupply(t *testing.T) {
	c, err := launch.NewShapedCurve(launch.ShapeLinear, math.NewInt(1_000))
	require.NoError(t, err)

	// At base price 100, this would buy far more than total supply.
	_, err = c.CalculateBuy(math.NewInt(10_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientReserve)
}

func TestShapedCurve_SigmoidPhases(t *testing.T) {
	total := math.NewInt(1_000_000)
	c, err := launch.NewShapedCurve(launch.ShapeSigmoid, total)
	require.NoError(t, err)

	// Early phase, below a quarter of supply: half the linear price.
	c.CirculatingSupply = math.NewInt(100_000)
	early, err := c.CurrentPrice()
	require.NoError(t, err)

	// Late phase, above three quarters: double the linear price.
	c.CirculatingSupply = math.NewInt(900_000)
	late, err := c.CurrentPrice()
	require.NoError(t, err)

	require.True(t, late.GT(early), "late %s not above early %s", late, early)
}
