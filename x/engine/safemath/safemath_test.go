package safemath_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

func TestAdd_Overflow(t *testing.T) {
	_, err := safemath.Add(safemath.MaxInt128(), math.OneInt())
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrOverflow)

	sum, err := safemath.Add(math.NewInt(2), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, int64(5), sum.Int64())
}

func TestSub_Underflow(t *testing.T) {
	min := safemath.MaxInt128().Neg().SubRaw(1)
	_, err := safemath.Sub(min, math.OneInt())
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrUnderflow)

	diff, err := safemath.Sub(math.NewInt(3), math.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, int64(-2), diff.Int64())
}

func TestMul_Overflow(t *testing.T) {
	_, err := safemath.Mul(safemath.MaxInt128(), math.NewInt(2))
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrOverflow)

	prod, err := safemath.Mul(math.NewInt(7), math.NewInt(6))
	require.NoError(t, err)
	require.Equal(t, int64(42), prod.Int64())
}

func TestDiv_ByZero(t *testing.T) {
	_, err := safemath.Div(math.NewInt(10), math.ZeroInt())
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrDivisionByZero)

	q, err := safemath.Div(math.NewInt(10), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, int64(3), q.Int64())
}

func TestMulDiv_WideIntermediate(t *testing.T) {
	// a * b overflows 128 bits but the quotient fits.
	a := safemath.MaxInt128()
	res, err := safemath.MulDiv(a, a, a)
	require.NoError(t, err)
	require.True(t, res.Equal(a))

	_, err = safemath.MulDiv(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestApplyBps(t *testing.T) {
	fee, err := safemath.ApplyBps(math.NewInt(10_000), 100)
	require.NoError(t, err)
	require.Equal(t, int64(100), fee.Int64())

	_, err = safemath.ApplyBps(math.NewInt(10_000), 10_001)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestSlippageBps(t *testing.T) {
	up, err := safemath.SlippageBps(math.NewInt(1000), math.NewInt(1100))
	require.NoError(t, err)
	require.Equal(t, int64(1000), up.Int64())

	down, err := safemath.SlippageBps(math.NewInt(1000), math.NewInt(900))
	require.NoError(t, err)
	require.Equal(t, int64(-1000), down.Int64())

	_, err = safemath.SlippageBps(math.ZeroInt(), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestSqrt(t *testing.T) {
	cases := map[int64]int64{
		0:     0,
		1:     1,
		2:     1,
		3:     1,
		4:     2,
		9:     3,
		15:    3,
		16:    4,
		100:   10,
		10000: 100,
	}
	for in, want := range cases {
		got, err := safemath.Sqrt(math.NewInt(in))
		require.NoError(t, err)
		require.Equal(t, want, got.Int64(), "sqrt(%d)", in)
	}

	_, err := safemath.Sqrt(math.NewInt(-1))
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}
