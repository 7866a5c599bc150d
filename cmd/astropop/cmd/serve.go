package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/nunalabs/Astro-Shiba-Pop/config"
	"github.com/nunalabs/Astro-Shiba-Pop/server"
	"github.com/nunalabs/Astro-Shiba-Pop/x/engine"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quote and launch API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger := log.NewLogger(os.Stderr)

		params, err := cfg.EngineParams()
		if err != nil {
			return err
		}
		eng, err := engine.New(params, logger)
		if err != nil {
			return err
		}

		srv := server.New(eng, logger, server.Options{
			ListenAddr:         cfg.ListenAddr,
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			RateLimitBurst:     cfg.RateLimitBurst,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}
