package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/nunalabs/Astro-Shiba-Pop/x/amm"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

var (
	quoteReserveIn  string
	quoteReserveOut string
	quoteFeeBps     int64
	quoteExactOut   bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount>",
	Short: "Price a swap against given reserves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, ok := math.NewIntFromString(args[0])
		if !ok {
			return types.ErrInvalidAmount.Wrapf("amount %q", args[0])
		}
		reserveIn, ok := math.NewIntFromString(quoteReserveIn)
		if !ok {
			return types.ErrInvalidAmount.Wrapf("reserve-in %q", quoteReserveIn)
		}
		reserveOut, ok := math.NewIntFromString(quoteReserveOut)
		if !ok {
			return types.ErrInvalidAmount.Wrapf("reserve-out %q", quoteReserveOut)
		}

		if quoteExactOut {
			amountIn, err := amm.GetAmountIn(amount, reserveIn, reserveOut, quoteFeeBps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "amount_in: %s\n", amountIn)
			return nil
		}

		amountOut, err := amm.GetAmountOut(amount, reserveIn, reserveOut, quoteFeeBps)
		if err != nil {
			return err
		}
		impact, err := amm.PriceImpactBps(amount, reserveIn, reserveOut, quoteFeeBps)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "amount_out: %s\nprice_impact_bps: %s\n", amountOut, impact)
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quoteReserveIn, "reserve-in", "", "input side reserve")
	quoteCmd.Flags().StringVar(&quoteReserveOut, "reserve-out", "", "output side reserve")
	quoteCmd.Flags().Int64Var(&quoteFeeBps, "fee-bps", types.DefaultFeeBps, "swap fee in basis points")
	quoteCmd.Flags().BoolVar(&quoteExactOut, "exact-out", false, "treat amount as desired output")
	_ = quoteCmd.MarkFlagRequired("reserve-in")
	_ = quoteCmd.MarkFlagRequired("reserve-out")
}
