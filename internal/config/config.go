package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"symbol-mapper/internal/core"
)

type Config struct {
	MappingFile          string         `yaml:"mapping_file"`
	DefaultQuoteCurrency string         `yaml:"default_quote_currency"`
	DefaultMarkets       MarketDefaults `yaml:"default_markets"`
	YearHorizon          int            `yaml:"year_horizon"`
}

type MarketDefaults struct {
	Equity string `yaml:"equity"`
	Forex  string `yaml:"forex"`
	Future string `yaml:"future"`
	Option string `yaml:"option"`
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("config must contain a single YAML document")
		}
		return Config{}, err
	}
	cfg.normalize()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.MappingFile = strings.TrimSpace(c.MappingFile)
	c.DefaultQuoteCurrency = strings.ToUpper(strings.TrimSpace(c.DefaultQuoteCurrency))
	c.DefaultMarkets.Equity = strings.ToUpper(strings.TrimSpace(c.DefaultMarkets.Equity))
	c.DefaultMarkets.Forex = strings.ToUpper(strings.TrimSpace(c.DefaultMarkets.Forex))
	c.DefaultMarkets.Future = strings.ToUpper(strings.TrimSpace(c.DefaultMarkets.Future))
	c.DefaultMarkets.Option = strings.ToUpper(strings.TrimSpace(c.DefaultMarkets.Option))
}

func (c *Config) applyDefaults() {
	if c.DefaultQuoteCurrency == "" {
		c.DefaultQuoteCurrency = "USD"
	}
	if c.DefaultMarkets.Equity == "" {
		c.DefaultMarkets.Equity = core.MarketUSA
	}
	if c.DefaultMarkets.Forex == "" {
		c.DefaultMarkets.Forex = core.MarketFXCM
	}
	if c.DefaultMarkets.Future == "" {
		c.DefaultMarkets.Future = core.MarketCME
	}
	if c.DefaultMarkets.Option == "" {
		c.DefaultMarkets.Option = core.MarketUSA
	}
	if c.YearHorizon == 0 {
		c.YearHorizon = 20
	}
}

func (c Config) Validate() error {
	if len(c.DefaultQuoteCurrency) != 3 || !isAlpha(c.DefaultQuoteCurrency) {
		return fmt.Errorf("default_quote_currency must be a 3-letter currency code")
	}
	if c.YearHorizon < 1 || c.YearHorizon > 50 {
		return fmt.Errorf("year_horizon must be between 1 and 50")
	}
	return nil
}

func isAlpha(v string) bool {
	for _, r := range v {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(v) > 0
}
