package server

import (
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
	"github.com/nunalabs/Astro-Shiba-Pop/x/launch"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errStatus(err error) int {
	switch {
	case types.ErrPoolNotFound.Is(err), types.ErrTokenNotFound.Is(err):
		return http.StatusNotFound
	case types.ErrInvalidAmount.Is(err), types.ErrInvalidToken.Is(err),
		types.ErrInsufficientInputAmount.Is(err), types.ErrInsufficientOutputAmount.Is(err):
		return http.StatusBadRequest
	case types.ErrOracleWindowUnavailable.Is(err):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func abortErr(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errStatus(err), gin.H{"error": err.Error()})
}

func (s *Server) handleListPools(c *gin.Context) {
	pools := s.engine.ListPools()
	out := make([]gin.H, 0, len(pools))
	for _, p := range pools {
		out = append(out, gin.H{
			"id":           p.ID,
			"token0":       p.Pair.Token0,
			"token1":       p.Pair.Token1,
			"reserve0":     p.Pair.Reserve0.String(),
			"reserve1":     p.Pair.Reserve1.String(),
			"total_shares": p.Pair.TotalShares.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"pools": out})
}

func (s *Server) handleGetPool(c *gin.Context) {
	poolID := cast.ToUint64(c.Param("id"))
	pool, err := s.engine.GetPool(poolID)
	if err != nil {
		abortErr(c, err)
		return
	}
	spot, err := s.engine.SpotPrice(poolID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           pool.ID,
		"token0":       pool.Pair.Token0,
		"token1":       pool.Pair.Token1,
		"reserve0":     pool.Pair.Reserve0.String(),
		"reserve1":     pool.Pair.Reserve1.String(),
		"total_shares": pool.Pair.TotalShares.String(),
		"spot_price":   spot.String(),
	})
}

func (s *Server) handleQuote(c *gin.Context) {
	poolID := cast.ToUint64(c.Param("id"))
	tokenIn := c.Query("token_in")
	amountIn, ok := math.NewIntFromString(c.Query("amount_in"))
	if !ok {
		abortErr(c, types.ErrInvalidAmount.Wrapf("amount_in %q", c.Query("amount_in")))
		return
	}
	quote, err := s.engine.QuoteSwap(poolID, tokenIn, amountIn)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_in":         quote.TokenIn,
		"token_out":        quote.TokenOut,
		"amount_in":        quote.AmountIn.String(),
		"amount_out":       quote.AmountOut.String(),
		"price_impact_bps": quote.PriceImpactBps.String(),
	})
}

func (s *Server) handleTWAP(c *gin.Context) {
	poolID := cast.ToUint64(c.Param("id"))
	window := cast.ToInt64(c.DefaultQuery("window", "300"))
	twap, err := s.engine.TWAP(poolID, window)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pool_id":        poolID,
		"window_seconds": window,
		"twap":           twap.String(),
	})
}

func saleView(sale *launch.TokenSale) gin.H {
	return gin.H{
		"token":       sale.Token,
		"status":      sale.Status.String(),
		"base_raised": sale.BaseRaised.String(),
	}
}

func (s *Server) handleListSales(c *gin.Context) {
	sales := s.engine.ListSales()
	out := make([]gin.H, 0, len(sales))
	for _, sale := range sales {
		out = append(out, saleView(sale))
	}
	c.JSON(http.StatusOK, gin.H{"tokens": out})
}

func (s *Server) handleGetSale(c *gin.Context) {
	sale, err := s.engine.GetSale(c.Param("symbol"))
	if err != nil {
		abortErr(c, err)
		return
	}
	view := saleView(sale)
	if price, err := sale.Curve.CurrentPrice(); err == nil {
		view["current_price"] = price.String()
	}
	if cap, err := sale.Curve.MarketCap(); err == nil {
		view["market_cap"] = cap.String()
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleSaleQuote(c *gin.Context) {
	sale, err := s.engine.GetSale(c.Param("symbol"))
	if err != nil {
		abortErr(c, err)
		return
	}
	if sale.Status != launch.StatusBonding {
		abortErr(c, types.ErrAlreadyGraduated.Wrapf("token %s", sale.Token))
		return
	}
	baseIn, ok := math.NewIntFromString(c.Query("base_in"))
	if !ok {
		abortErr(c, types.ErrInvalidAmount.Wrapf("base_in %q", c.Query("base_in")))
		return
	}
	quote, err := sale.Curve.CalculateBuy(baseIn)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      sale.Token,
		"base_in":    quote.AmountIn.String(),
		"tokens_out": quote.AmountOut.String(),
	})
}

func (s *Server) handleGraduationProgress(c *gin.Context) {
	token := c.Param("symbol")
	progress, err := s.engine.GraduationProgress(token)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"progress_bps": progress,
	})
}
