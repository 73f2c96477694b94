package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"EquitySim/internal/market"
	"EquitySim/internal/simulation"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from the YAML file
// first, then environment variables override individual fields.
type Config struct {
	Simulation struct {
		Symbol              string  `yaml:"symbol" envconfig:"SIM_SYMBOL"`
		AssetClass          string  `yaml:"asset_class" envconfig:"SIM_ASSET_CLASS"`
		InitialAmount       float64 `yaml:"initial_amount" envconfig:"SIM_INITIAL_AMOUNT"`
		Period              string  `yaml:"period" envconfig:"SIM_PERIOD"`
		PurchaseDate        string  `yaml:"purchase_date" envconfig:"SIM_PURCHASE_DATE"`
		ConsiderDividends   bool    `yaml:"consider_dividends" envconfig:"SIM_CONSIDER_DIVIDENDS"`
		ReinvestDividends   bool    `yaml:"reinvest_dividends" envconfig:"SIM_REINVEST_DIVIDENDS"`
		MonthlyContribution float64 `yaml:"monthly_contribution" envconfig:"SIM_MONTHLY_CONTRIBUTION"`
		RiskFreeRate        float64 `yaml:"risk_free_rate" envconfig:"SIM_RISK_FREE_RATE"`
	} `yaml:"simulation"`
	Compare struct {
		Symbols []string `yaml:"symbols" envconfig:"COMPARE_SYMBOLS"`
	} `yaml:"compare"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron" envconfig:"CRON_DAILY"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine: env and defaults carry it.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	// Defaults
	if cfg.Simulation.Symbol == "" {
		cfg.Simulation.Symbol = "AAPL"
	}
	if cfg.Simulation.InitialAmount == 0 {
		cfg.Simulation.InitialAmount = 10000
	}
	if cfg.Simulation.Period == "" {
		cfg.Simulation.Period = "1y"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/equitysim.db"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 18 * * 1-5"
	}

	return cfg, nil
}

// Validate checks everything that must be right before any fetch happens.
func (c *Config) Validate() error {
	if c.Simulation.Symbol == "" {
		return fmt.Errorf("simulation.symbol is required")
	}
	if !market.ValidPeriod(c.Simulation.Period) {
		return fmt.Errorf("simulation.period %q is not one of %v", c.Simulation.Period, market.Periods)
	}
	if _, err := c.SimulationConfig(); err != nil {
		return err
	}
	return nil
}

// SimulationConfig translates the file/env fields into an engine Config.
func (c *Config) SimulationConfig() (simulation.Config, error) {
	sim := simulation.Config{
		InitialAmount:       c.Simulation.InitialAmount,
		ConsiderDividends:   c.Simulation.ConsiderDividends,
		ReinvestDividends:   c.Simulation.ReinvestDividends,
		MonthlyContribution: c.Simulation.MonthlyContribution,
		RiskFreeRate:        c.Simulation.RiskFreeRate,
	}
	if c.Simulation.PurchaseDate != "" {
		d, err := time.Parse("2006-01-02", c.Simulation.PurchaseDate)
		if err != nil {
			return simulation.Config{}, fmt.Errorf("simulation.purchase_date: %w", err)
		}
		sim.PurchaseDate = d
	}
	if err := sim.Validate(); err != nil {
		return simulation.Config{}, err
	}
	return sim, nil
}

// Suggestions lists popular symbols per asset class, offered as a starting
// point when picking an instrument. Purely informational.
var Suggestions = map[string][]string{
	"us_stocks": {"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX"},
	"br_stocks": {"PETR4.SA", "VALE3.SA", "ITUB4.SA", "BBDC4.SA", "ABEV3.SA", "MGLU3.SA", "WEGE3.SA", "B3SA3.SA"},
	"bdrs":      {"AAPL34.SA", "MSFT34.SA", "GOGL34.SA", "AMZO34.SA", "TSLA34.SA"},
	"us_etfs":   {"SPY", "QQQ", "VTI", "VOO", "IWM"},
	"br_etfs":   {"BOVA11.SA", "IVVB11.SA", "SMAL11.SA", "HASH11.SA"},
}

// AssetClasses returns the suggestion classes in stable order.
func AssetClasses() []string {
	classes := make([]string, 0, len(Suggestions))
	for class := range Suggestions {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}
