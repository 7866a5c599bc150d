// Package config loads engine and server settings from file,
// environment and flags via viper.
package config

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/viper"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
)

// Config is the full runtime configuration.
type Config struct {
	ListenAddr          string `mapstructure:"listen_addr"`
	RateLimitPerSecond  int    `mapstructure:"rate_limit_per_second"`
	RateLimitBurst      int    `mapstructure:"rate_limit_burst"`
	SwapFeeBps          int64  `mapstructure:"swap_fee_bps"`
	MaxPriceImpactBps   int64  `mapstructure:"max_price_impact_bps"`
	MinLiquidity        int64  `mapstructure:"min_liquidity"`
	GraduationThreshold string `mapstructure:"graduation_threshold"`
	TradingFeeBps       int64  `mapstructure:"trading_fee_bps"`
	CreationFee         int64  `mapstructure:"creation_fee"`
	Treasury            string `mapstructure:"treasury"`
	LogLevel            string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	def := types.DefaultParams()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("rate_limit_per_second", 50)
	v.SetDefault("rate_limit_burst", 100)
	v.SetDefault("swap_fee_bps", def.SwapFeeBps)
	v.SetDefault("max_price_impact_bps", def.MaxPriceImpactBps)
	v.SetDefault("min_liquidity", def.MinLiquidity.Int64())
	v.SetDefault("graduation_threshold", def.GraduationThreshold.String())
	v.SetDefault("trading_fee_bps", def.Fees.TradingFeeBps)
	v.SetDefault("creation_fee", def.Fees.CreationFee.Int64())
	v.SetDefault("treasury", def.Fees.Treasury)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from the optional file path plus the
// ASTROSHIBA_* environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ASTROSHIBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration by building engine params from it.
func (c *Config) Validate() error {
	params, err := c.EngineParams()
	if err != nil {
		return err
	}
	return params.Validate()
}

// EngineParams converts the configuration into engine parameters.
func (c *Config) EngineParams() (types.Params, error) {
	threshold, ok := math.NewIntFromString(c.GraduationThreshold)
	if !ok {
		return types.Params{}, types.ErrInvalidAmount.Wrapf("graduation threshold %q", c.GraduationThreshold)
	}
	fees, err := types.NewFeeConfig(c.TradingFeeBps, math.NewInt(c.CreationFee), c.Treasury)
	if err != nil {
		return types.Params{}, err
	}
	return types.Params{
		SwapFeeBps:          c.SwapFeeBps,
		MaxPriceImpactBps:   c.MaxPriceImpactBps,
		MinLiquidity:        math.NewInt(c.MinLiquidity),
		GraduationThreshold: threshold,
		Fees:                fees,
	}, nil
}
