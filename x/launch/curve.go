// Package launch implements bonding curve pricing and the token sale
// lifecycle. A sale starts on a curve, accumulates base asset, and
// graduates one way once raised capital crosses the threshold.
package launch

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

const (
	// CurvePrecision is the fixed point scale for curve prices,
	// seven decimal places.
	CurvePrecision = 10_000_000

	// VirtualBaseUnits seeds the virtual base reserve so the first
	// buyer pays a nonzero price on an empty curve.
	VirtualBaseUnits = 1000
)

// TradeQuote is a priced but unexecuted curve trade.
type TradeQuote struct {
	AmountIn  math.Int
	AmountOut math.Int
}

// PricingCurve is the contract every curve shape satisfies. Calculate
// methods are pure; Execute methods mutate the receiver and must only
// be called with amounts a Calculate call just validated.
type PricingCurve interface {
	CalculateBuy(baseIn math.Int) (TradeQuote, error)
	CalculateSell(tokensIn math.Int) (TradeQuote, error)
	ExecuteBuy(baseIn, tokensOut math.Int) error
	ExecuteSell(tokensIn, baseOut math.Int) error
	CurrentPrice() (math.Int, error)
	MarketCap() (math.Int, error)
	Clone() PricingCurve
}

// BondingCurve is a constant product curve over a virtual base reserve.
// k = BaseReserve * TotalSupply is fixed at creation; buys move base in
// and tokens out along the hyperbola, so each purchase raises the price.
type BondingCurve struct {
	TotalSupply     math.Int
	TokensSold      math.Int
	TokensRemaining math.Int
	BaseReserve     math.Int
	K               math.Int
}

// NewBondingCurve seeds the virtual reserve and fixes k.
func NewBondingCurve(totalSupply math.Int) (*BondingCurve, error) {
	if totalSupply.IsNil() || !totalSupply.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("total supply %s", totalSupply)
	}
	virtualBase := math.NewInt(VirtualBaseUnits * CurvePrecision)
	k, err := safemath.Mul(virtualBase, totalSupply)
	if err != nil {
		return nil, err
	}
	return &BondingCurve{
		TotalSupply:     totalSupply,
		TokensSold:      math.ZeroInt(),
		TokensRemaining: totalSupply,
		BaseReserve:     virtualBase,
		K:               k,
	}, nil
}

// CalculateBuy prices baseIn against the curve without mutating it.
func (c *BondingCurve) CalculateBuy(baseIn math.Int) (TradeQuote, error) {
	if baseIn.IsNil() || !baseIn.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientInputAmount.Wrapf("base in %s", baseIn)
	}
	newBaseReserve, err := safemath.Add(c.BaseReserve, baseIn)
	if err != nil {
		return TradeQuote{}, err
	}
	newTokensRemaining, err := safemath.Div(c.K, newBaseReserve)
	if err != nil {
		return TradeQuote{}, err
	}
	tokensOut, err := safemath.Sub(c.TokensRemaining, newTokensRemaining)
	if err != nil {
		return TradeQuote{}, err
	}
	if !tokensOut.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientOutputAmount.Wrapf("buy of %s yields nothing", baseIn)
	}
	return TradeQuote{AmountIn: baseIn, AmountOut: tokensOut}, nil
}

// CalculateSell prices tokensIn against the curve without mutating it.
func (c *BondingCurve) CalculateSell(tokensIn math.Int) (TradeQuote, error) {
	if tokensIn.IsNil() || !tokensIn.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientInputAmount.Wrapf("tokens in %s", tokensIn)
	}
	if tokensIn.GT(c.TokensSold) {
		return TradeQuote{}, types.ErrInsufficientReserve.Wrapf("selling %s with only %s sold", tokensIn, c.TokensSold)
	}
	newTokensRemaining, err := safemath.Add(c.TokensRemaining, tokensIn)
	if err != nil {
		return TradeQuote{}, err
	}
	newBaseReserve, err := safemath.Div(c.K, newTokensRemaining)
	if err != nil {
		return TradeQuote{}, err
	}
	baseOut, err := safemath.Sub(c.BaseReserve, newBaseReserve)
	if err != nil {
		return TradeQuote{}, err
	}
	if !baseOut.IsPositive() {
		return TradeQuote{}, types.ErrInsufficientOutputAmount.Wrapf("sell of %s yields nothing", tokensIn)
	}
	return TradeQuote{AmountIn: tokensIn, AmountOut: baseOut}, nil
}

// ExecuteBuy applies a validated buy to the curve state.
func (c *BondingCurve) ExecuteBuy(baseIn, tokensOut math.Int) error {
	newBaseReserve, err := safemath.Add(c.BaseReserve, baseIn)
	if err != nil {
		return err
	}
	newTokensRemaining, err := safemath.Sub(c.TokensRemaining, tokensOut)
	if err != nil {
		return err
	}
	newTokensSold, err := safemath.Add(c.TokensSold, tokensOut)
	if err != nil {
		return err
	}
	c.BaseReserve = newBaseReserve
	c.TokensRemaining = newTokensRemaining
	c.TokensSold = newTokensSold
	return nil
}

// ExecuteSell applies a validated sell to the curve state.
func (c *BondingCurve) ExecuteSell(tokensIn, baseOut math.Int) error {
	newBaseReserve, err := safemath.Sub(c.BaseReserve, baseOut)
	if err != nil {
		return err
	}
	newTokensRemaining, err := safemath.Add(c.TokensRemaining, tokensIn)
	if err != nil {
		return err
	}
	newTokensSold, err := safemath.Sub(c.TokensSold, tokensIn)
	if err != nil {
		return err
	}
	c.BaseReserve = newBaseReserve
	c.TokensRemaining = newTokensRemaining
	c.TokensSold = newTokensSold
	return nil
}

// CurrentPrice returns the marginal price scaled by CurvePrecision.
func (c *BondingCurve) CurrentPrice() (math.Int, error) {
	if !c.TokensRemaining.IsPositive() {
		return math.Int{}, types.ErrInsufficientReserve.Wrap("curve is sold out")
	}
	return safemath.MulDiv(c.BaseReserve, math.NewInt(CurvePrecision), c.TokensRemaining)
}

// MarketCap approximates valuation as twice the base reserve.
func (c *BondingCurve) MarketCap() (math.Int, error) {
	return safemath.Mul(c.BaseReserve, math.NewInt(2))
}

// Clone returns an independent copy.
func (c *BondingCurve) Clone() PricingCurve {
	cp := *c
	return &cp
}
