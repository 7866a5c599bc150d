package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
	"github.com/nunalabs/Astro-Shiba-Pop/x/launch"
)

var (
	curveShape  string
	curveSupply string
	curveSell   bool
)

var curveCmd = &cobra.Command{
	Use:   "curve <amount>",
	Short: "Simulate a bonding curve trade on a fresh curve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, ok := math.NewIntFromString(args[0])
		if !ok {
			return types.ErrInvalidAmount.Wrapf("amount %q", args[0])
		}
		supply, ok := math.NewIntFromString(curveSupply)
		if !ok {
			return types.ErrInvalidAmount.Wrapf("supply %q", curveSupply)
		}

		var (
			curve launch.PricingCurve
			err   error
		)
		if curveShape == "constant-product" {
			curve, err = launch.NewBondingCurve(supply)
		} else {
			var shape launch.CurveShape
			shape, err = launch.ParseCurveShape(curveShape)
			if err == nil {
				curve, err = launch.NewShapedCurve(shape, supply)
			}
		}
		if err != nil {
			return err
		}

		if curveSell {
			quote, err := curve.CalculateSell(amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "base_out: %s\n", quote.AmountOut)
			return nil
		}

		quote, err := curve.CalculateBuy(amount)
		if err != nil {
			return err
		}
		price, err := curve.CurrentPrice()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tokens_out: %s\nstart_price: %s\n", quote.AmountOut, price)
		return nil
	},
}

func init() {
	curveCmd.Flags().StringVar(&curveShape, "shape", "constant-product",
		"curve shape: constant-product, linear, exponential or sigmoid")
	curveCmd.Flags().StringVar(&curveSupply, "supply", "1000000000", "total token supply")
	curveCmd.Flags().BoolVar(&curveSell, "sell", false, "simulate a sell instead of a buy")
}
