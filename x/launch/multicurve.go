package launch

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// ShapePrecision is the fixed point scale for shaped curve steepness.
const ShapePrecision = 1_000_000

// CurveShape selects the pricing function of a ShapedCurve.
type CurveShape uint8

const (
	ShapeLinear CurveShape = iota
	ShapeExponential
	ShapeSigmoid
)

func (s CurveShape) String() string {
	switch s {
	case ShapeLinear:
		return "linear"
	case ShapeExponential:
		return "exponential"
	case ShapeSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// ParseCurveShape maps a shape name to its CurveShape.
func ParseCurveShape(name string) (CurveShape, error) {
	switch name {
	case "linear":
		return ShapeLinear, nil
	case "exponential":
		return ShapeExponential, nil
	case "sigmoid":
		return ShapeSigmoid, nil
	default:
		return 0, types.ErrInvalidState.Wrapf("unknown curve shape %q", name)
	}
}

// ShapedCurve prices tokens along a configurable supply curve. Buys and
// sells use the marginal price as an average price approximation, and
// sells pay an asymmetric penalty that stays in the reserve.
type ShapedCurve struct {
	Shape             CurveShape
	CirculatingSupply math.Int
	TotalSupply       math.Int
	BasePrice         math.Int
	K                 math.Int
	BaseReserve       math.Int
	SellPenaltyBps    int64
}

// NewShapedCurve returns a curve with per-shape steepness and penalty
// defaults. Exponential curves carry the steepest growth and the
// heaviest sell penalty.
func NewShapedCurve(shape CurveShape, totalSupply math.Int) (*ShapedCurve, error) {
	if totalSupply.IsNil() || !totalSupply.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("total supply %s", totalSupply)
	}
	c := &ShapedCurve{
		Shape:             shape,
		CirculatingSupply: math.ZeroInt(),
		TotalSupply:       totalSupply,
		BasePrice:         math.NewInt(100),
		BaseReserve:       math.ZeroInt(),
	}
	switch shape {
	case ShapeLinear:
		c.K = math.NewInt(1_000_000_000)
		c.SellPenaltyBps = 200
	case ShapeExponential:
		c.K = math.NewInt(100_000_000)
		c.SellPenaltyBps = 300
	case ShapeSigmoid:
		c.K = math.NewInt(500_000_000)
		c.SellPenaltyBps = 200
	default:
		return nil, types.ErrInvalidState.Wrapf("unknown curve shape %d", shape)
	}
	return c, nil
}

// CurrentPrice returns the marginal price for the current supply.
func (c *ShapedCurve) CurrentPrice() (math.Int, error) {
	if c.CirculatingSupply.IsZero() {
		return c.BasePrice, nil
	}
	switch c.Shape {
	case ShapeLinear:
		return c.priceLinear(c.CirculatingSupply)
	case ShapeExponential:
		return c.priceExponential(c.CirculatingSupply)
	case ShapeSigmoid:
		return c.priceSigmoid(c.CirculatingSupply)
	default:
		return math.Int{}, types.ErrInvalidState.Wrapf("unknown curve shape %d", c.Shape)
	}
}

// priceLinear: P(s) = base + s/k, scaled by ShapePrecision.
func (c *ShapedCurve) priceLinear(supply math.Int) (math.Int, error) {
	increase, err := safemath.MulDiv(supply, math.NewInt(ShapePrecision), c.K)
	if err != nil {
		return math.Int{}, err
	}
	return safemath.Add(c.BasePrice, increase)
}

// priceExponential: P(s) = base * e^(s/k), with e^x truncated to the
// first three Taylor terms 1 + x + x^2/2.
func (c *ShapedCurve) priceExponential(supply math.Int) (math.Int, error) {
	x, err := safemath.MulDiv(supply, math.NewInt(ShapePrecision), c.K)
	if err != nil {
		return math.Int{}, err
	}
	xSquared, err := safemath.MulDiv(x, x, math.NewInt(ShapePrecision))
	if err != nil {
		return math.Int{}, err
	}
	expApprox, err := safemath.Add(math.NewInt(ShapePrecision), x)
	if err != nil {
		return math.Int{}, err
	}
	expApprox, err = safemath.Add(expApprox, xSquared.QuoRaw(2))
	if err != nil {
		return math.Int{}, err
	}
	return safemath.MulDiv(c.BasePrice, expApprox, math.NewInt(ShapePrecision))
}

// priceSigmoid: piecewise blend around the supply midpoint, half the
// linear price early, exponential through the middle, double linear
// late.
func (c *ShapedCurve) priceSigmoid(supply math.Int) (math.Int, error) {
	midpoint := c.TotalSupply.QuoRaw(2)
	switch {
	case supply.LT(midpoint.QuoRaw(2)):
		p, err := c.priceLinear(supply)
		if err != nil {
			return math.Int{}, err
		}
		return p.QuoRaw(2), nil
	case supply.LT(midpoint.MulRaw(3).QuoRaw(2)):
		return c.priceExponential(supply)
	default:
		p, err := c.priceLinear(supply)
		if err != nil {
			return math.Int{}, err
		}
		return safemath.Mul(p, math.NewInt(2))
	}
}

// CalculateBuy prices baseIn at the current marginal price.
func (c *ShapedCurve) CalculateBuy(baseIn math.Int) (TradeQuote, error) {
	if baseIn.IsNil() || !baseIn.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientInputAmount.Wrapf("base in %s", baseIn)
	}
	price, err := c.CurrentPrice()
	if err != nil {
		return TradeQuote{}, err
	}
	tokens, err := safemath.MulDiv(baseIn, math.NewInt(CurvePrecision), price)
	if err != nil {
		return TradeQuote{}, err
	}
	if !tokens.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientOutputAmount.Wrapf("buy of %s yields nothing", baseIn)
	}
	remaining := c.TotalSupply.Sub(c.CirculatingSupply)
	if tokens.GT(remaining) {
		return TradeQuote{}, types.ErrInsufficientReserve.Wrapf("buy of %s tokens exceeds remaining %s", tokens, remaining)
	}
	return TradeQuote{AmountIn: baseIn, AmountOut: tokens}, nil
}

// CalculateSell prices tokensIn at the current marginal price and then
// deducts the sell penalty from the payout.
func (c *ShapedCurve) CalculateSell(tokensIn math.Int) (TradeQuote, error) {
	if tokensIn.IsNil() || !tokensIn.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientInputAmount.Wrapf("tokens in %s", tokensIn)
	}
	if tokensIn.GT(c.CirculatingSupply) {
		return TradeQuote{}, types.ErrInsufficientReserve.Wrapf("selling %s with only %s circulating", tokensIn, c.CirculatingSupply)
	}
	price, err := c.CurrentPrice()
	if err != nil {
		return TradeQuote{}, err
	}
	grossOut, err := safemath.MulDiv(tokensIn, price, math.NewInt(CurvePrecision))
	if err != nil {
		return TradeQuote{}, err
	}
	penalty, err := safemath.ApplyBps(grossOut, c.SellPenaltyBps)
	if err != nil {
		return TradeQuote{}, err
	}
	baseOut, err := safemath.Sub(grossOut, penalty)
	if err != nil {
		return TradeQuote{}, err
	}
	if !baseOut.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientOutputAmount.Wrapf("sell of %s yields nothing", tokensIn)
	}
	if baseOut.GT(c.BaseReserve) {
		return TradeQuote{}, types.ErrInsufficientReserve.Wrapf("payout %s exceeds reserve %s", baseOut, c.BaseReserve)
	}
	return TradeQuote{AmountIn: tokensIn, AmountOut: baseOut}, nil
}

// ExecuteBuy applies a validated buy. The penalty-free full payment
// enters the reserve.
func (c *ShapedCurve) ExecuteBuy(baseIn, tokensOut math.Int) error {
	newSupply, err := safemath.Add(c.CirculatingSupply, tokensOut)
	if err != nil {
		return err
	}
	newReserve, err := safemath.Add(c.BaseReserve, baseIn)
	if err != nil {
		return err
	}
	c.CirculatingSupply = newSupply
	c.BaseReserve = newReserve
	return nil
}

// ExecuteSell applies a validated sell. Only the net payout leaves the
// reserve, the penalty stays behind.
func (c *ShapedCurve) ExecuteSell(tokensIn, baseOut math.Int) error {
	newSupply, err := safemath.Sub(c.CirculatingSupply, tokensIn)
	if err != nil {
		return err
	}
	if newSupply.IsNegative() {
		return types.ErrUnderflow.Wrapf("circulating supply %s", newSupply)
	}
	newReserve, err := safemath.Sub(c.BaseReserve, baseOut)
	if err != nil {
		return err
	}
	if newReserve.IsNegative() {
		return types.ErrUnderflow.Wrapf("base reserve %s", newReserve)
	}
	c.CirculatingSupply = newSupply
	c.BaseReserve = newReserve
	return nil
}

// MarketCap values the circulating supply at the current price.
func (c *ShapedCurve) MarketCap() (math.Int, error) {
	price, err := c.CurrentPrice()
	if err != nil {
		return math.Int{}, err
	}
	return safemath.MulDiv(c.CirculatingSupply, price, math.NewInt(CurvePrecision))
}

// Clone returns an independent copy.
func (c *ShapedCurve) Clone() PricingCurve {
	cp := *c
	return &cp
}
