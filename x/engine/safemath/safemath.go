// Package safemath provides checked 128-bit integer arithmetic for the
// pricing engine. Every operation validates its result against the
// signed 128-bit range and returns a registered error instead of
// wrapping or panicking, so the engine stays deterministic on overflow.
package safemath

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

var (
	maxInt128 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)))
	minInt128 = math.NewIntFromBigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127)))
)

// MaxInt128 returns the largest representable value.
func MaxInt128() math.Int {
	return maxInt128
}

func checkRange(v math.Int) (math.Int, error) {
	if v.GT(maxInt128) {
		return math.Int{}, types.ErrOverflow.Wrapf("value %s exceeds 128-bit range", v)
	}
	if v.LT(minInt128) {
		return math.Int{}, types.ErrUnderflow.Wrapf("value %s below 128-bit range", v)
	}
	return v, nil
}

// Add returns a + b, failing on 128-bit overflow.
func Add(a, b math.Int) (math.Int, error) {
	return checkRange(a.Add(b))
}

// Sub returns a - b, failing on 128-bit underflow.
func Sub(a, b math.Int) (math.Int, error) {
	return checkRange(a.Sub(b))
}

// Mul returns a * b, failing on 128-bit overflow.
func Mul(a, b math.Int) (math.Int, error) {
	return checkRange(a.Mul(b))
}

// Div returns a / b truncated toward zero, failing on division by zero.
func Div(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, types.ErrDivisionByZero.Wrapf("%s / 0", a)
	}
	return a.Quo(b), nil
}

// MulDiv returns a * b / denominator with a full-precision intermediate
// product, so a*b may exceed the 128-bit range as long as the quotient
// fits. This is the primitive behind fee and share proration.
func MulDiv(a, b, denominator math.Int) (math.Int, error) {
	if denominator.IsZero() {
		return math.Int{}, types.ErrDivisionByZero.Wrapf("%s * %s / 0", a, b)
	}
	return checkRange(a.Mul(b).Quo(denominator))
}

// ApplyBps prorates amount by bps out of 10000.
func ApplyBps(amount math.Int, bps int64) (math.Int, error) {
	if bps < 0 || bps > types.FeeDenominator {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("bps %d outside [0, %d]", bps, types.FeeDenominator)
	}
	return MulDiv(amount, math.NewInt(bps), math.NewInt(types.FeeDenominator))
}

// SlippageBps returns the signed deviation of after from before in basis
// points. A negative result means the value decreased.
func SlippageBps(before, after math.Int) (math.Int, error) {
	if before.IsZero() {
		return math.Int{}, types.ErrDivisionByZero.Wrap("slippage baseline is zero")
	}
	diff, err := Sub(after, before)
	if err != nil {
		return math.Int{}, err
	}
	return MulDiv(diff, math.NewInt(types.FeeDenominator), before)
}

// Sqrt returns the integer square root of y using Newton's method with
// the seed y/2 + 1. The iteration count is bounded by the bit length of
// y, so the result is deterministic across platforms.
func Sqrt(y math.Int) (math.Int, error) {
	if y.IsNegative() {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("square root of negative value %s", y)
	}
	if y.LT(math.NewInt(4)) {
		if y.IsZero() {
			return math.ZeroInt(), nil
		}
		return math.OneInt(), nil
	}
	z := y
	x := y.QuoRaw(2).AddRaw(1)
	for x.LT(z) {
		z = x
		x = y.Quo(x).Add(x).QuoRaw(2)
	}
	return z, nil
}
