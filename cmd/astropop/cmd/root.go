// Package cmd implements the astropop CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "astropop",
	Short: "Pooled liquidity pricing and token launch engine",
	Long: `astropop prices constant product swaps, runs bonding curve token
sales and serves quotes and TWAP data over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(serveCmd)
}
