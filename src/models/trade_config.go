package models

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TradeConfig tunes the protective limit bounds and the intra-run refresh
// policy. Every field has a working default, so the config file is optional.
type TradeConfig struct {
	BuyLimitMultiplier  float64       `yaml:"buy_limit_multiplier" validate:"gt=1"`
	SellLimitMultiplier float64       `yaml:"sell_limit_multiplier" validate:"gt=0,lte=1"`
	Duration            TradeDuration `yaml:"duration" validate:"oneof=day gtc"`

	// RefreshAfterSubmit rebuilds the positions snapshot for the remaining
	// accounts after each successful submission. Off by default: the
	// snapshot is built once up front and a fill earlier in the run does
	// not affect later decisions.
	RefreshAfterSubmit bool `yaml:"refresh_after_submit"`
}

func DefaultTradeConfig() *TradeConfig {
	return &TradeConfig{
		BuyLimitMultiplier:  1.10,
		SellLimitMultiplier: 0.90,
		Duration:            TradeDurationDay,
	}
}

func (c *TradeConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("TradeConfig.Validate: %w", err)
	}

	return nil
}

// LoadTradeConfig reads a yaml trade config. An empty path returns the
// defaults.
func LoadTradeConfig(path string) (*TradeConfig, error) {
	config := DefaultTradeConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadTradeConfig: failed to read %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("LoadTradeConfig: failed to parse %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
