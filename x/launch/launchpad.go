package launch

import (
	"cosmossdk.io/math"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/safemath"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// SaleStatus is the lifecycle state of a token sale.
type SaleStatus uint8

const (
	StatusBonding SaleStatus = iota
	StatusGraduated
)

func (s SaleStatus) String() string {
	switch s {
	case StatusBonding:
		return "bonding"
	case StatusGraduated:
		return "graduated"
	default:
		return "unknown"
	}
}

// TokenSale tracks a launched token through its bonding phase. Once
// BaseRaised crosses the graduation threshold the sale flips to
// Graduated and never trades on the curve again.
type TokenSale struct {
	Token      string
	Status     SaleStatus
	Curve      PricingCurve
	BaseRaised math.Int
}

// TradeResult reports an executed curve trade. AmountOut is net of the
// trading fee; Fee is the cut owed to the treasury.
type TradeResult struct {
	Token     string
	AmountIn  math.Int
	AmountOut math.Int
	Fee       math.Int
	Graduated bool
}

// NewTokenSale opens a sale on the given curve.
func NewTokenSale(token string, curve PricingCurve) (*TokenSale, error) {
	if token == "" {
		return nil, types.ErrInvalidToken.Wrap("empty token symbol")
	}
	if curve == nil {
		return nil, types.ErrInvalidState.Wrap("nil pricing curve")
	}
	return &TokenSale{
		Token:      token,
		Status:     StatusBonding,
		Curve:      curve,
		BaseRaised: math.ZeroInt(),
	}, nil
}

// Buy spends baseIn on the curve. The trading fee is taken from the
// tokens received; the curve itself advances by the gross amount so
// pricing is independent of the fee schedule. All validation happens
// before the first mutation.
func (s *TokenSale) Buy(baseIn, minTokensOut math.Int, fees types.FeeConfig, threshold math.Int) (TradeResult, error) {
	if s.Status != StatusBonding {
		return TradeResult{}, types.ErrAlreadyGraduated.Wrapf("token %s", s.Token)
	}
	quote, err := s.Curve.CalculateBuy(baseIn)
	if err != nil {
		return TradeResult{}, err
	}
	fee, err := safemath.ApplyBps(quote.AmountOut, fees.TradingFeeBps)
	if err != nil {
		return TradeResult{}, err
	}
	netTokens, err := safemath.Sub(quote.AmountOut, fee)
	if err != nil {
		return TradeResult{}, err
	}
	if !netTokens.IsPositive() {
		return TradeResult{}, types.ErrInsufficientOutputAmount.Wrapf("buy of %s yields nothing after fees", baseIn)
	}
	if netTokens.LT(minTokensOut) {
		return TradeResult{}, types.ErrSlippageExceeded.Wrapf("tokens %s below minimum %s", netTokens, minTokensOut)
	}
	newRaised, err := safemath.Add(s.BaseRaised, baseIn)
	if err != nil {
		return TradeResult{}, err
	}

	if err := s.Curve.ExecuteBuy(baseIn, quote.AmountOut); err != nil {
		return TradeResult{}, err
	}
	s.BaseRaised = newRaised

	graduated := false
	if s.BaseRaised.GTE(threshold) {
		s.Status = StatusGraduated
		graduated = true
	}
	return TradeResult{
		Token:     s.Token,
		AmountIn:  baseIn,
		AmountOut: netTokens,
		Fee:       fee,
		Graduated: graduated,
	}, nil
}

// Sell returns tokensIn to the curve for base asset. The trading fee is
// taken from the payout. Sells on a graduated sale are rejected, that
// market has moved on.
func (s *TokenSale) Sell(tokensIn, minBaseOut math.Int, fees types.FeeConfig) (TradeResult, error) {
	if s.Status != StatusBonding {
		return TradeResult{}, types.ErrAlreadyGraduated.Wrapf("token %s", s.Token)
	}
	quote, err := s.Curve.CalculateSell(tokensIn)
	if err != nil {
		return TradeResult{}, err
	}
	fee, err := safemath.ApplyBps(quote.AmountOut, fees.TradingFeeBps)
	if err != nil {
		return TradeResult{}, err
	}
	netBase, err := safemath.Sub(quote.AmountOut, fee)
	if err != nil {
		return TradeResult{}, err
	}
	if !netBase.IsPositive() {
		return TradeResult{}, types.ErrInsufficientOutputAmount.Wrapf("sell of %s yields nothing after fees", tokensIn)
	}
	if netBase.LT(minBaseOut) {
		return TradeResult{}, types.ErrSlippageExceeded.Wrapf("base %s below minimum %s", netBase, minBaseOut)
	}
	newRaised, err := safemath.Sub(s.BaseRaised, quote.AmountOut)
	if err != nil {
		return TradeResult{}, err
	}
	if newRaised.IsNegative() {
		newRaised = math.ZeroInt()
	}

	if err := s.Curve.ExecuteSell(tokensIn, quote.AmountOut); err != nil {
		return TradeResult{}, err
	}
	s.BaseRaised = newRaised

	return TradeResult{
		Token:     s.Token,
		AmountIn:  tokensIn,
		AmountOut: netBase,
		Fee:       fee,
	}, nil
}

// GraduationProgress returns how far the sale is toward graduation in
// basis points, capped at 10000.
func (s *TokenSale) GraduationProgress(threshold math.Int) (int64, error) {
	if threshold.IsNil() || !threshold.IsPositive() {
		return 0, types.ErrInvalidAmount.Wrapf("threshold %s", threshold)
	}
	progress, err := safemath.MulDiv(s.BaseRaised, math.NewInt(types.FeeDenominator), threshold)
	if err != nil {
		return 0, err
	}
	if progress.GT(math.NewInt(types.FeeDenominator)) {
		return types.FeeDenominator, nil
	}
	return progress.Int64(), nil
}

// Clone returns an independent copy of the sale and its curve.
func (s *TokenSale) Clone() *TokenSale {
	return &TokenSale{
		Token:      s.Token,
		Status:     s.Status,
		Curve:      s.Curve.Clone(),
		BaseRaised: s.BaseRaised,
	}
}
