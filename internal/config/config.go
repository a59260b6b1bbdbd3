package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/moneyflow/internal/model"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	UI        UIConfig
	Constants ConstantsConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// ConstantsConfig seeds the income constants form for new paste sessions.
type ConstantsConfig struct {
	DisabilityInsuranceDeduction float64 `mapstructure:"disability_insurance_deduction"`
	LegalPlanDeduction           float64 `mapstructure:"legal_plan_deduction"`
	GivingDeduction              float64 `mapstructure:"giving_deduction"`
	ESPPRate                     float64 `mapstructure:"espp_rate"`
}

// IncomeConstants converts the configured defaults to the model type.
func (c ConstantsConfig) IncomeConstants() model.IncomeConstants {
	return model.IncomeConstants{
		DisabilityInsuranceDeduction: c.DisabilityInsuranceDeduction,
		LegalPlanDeduction:           c.LegalPlanDeduction,
		GivingDeduction:              c.GivingDeduction,
		ESPPRate:                     c.ESPPRate,
	}
}

// Load reads configuration from file and env. Env var overrides use prefix MONEYFLOW_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "moneyflow", "moneyflow.db"))
	v.SetDefault("database.migrations_path", "internal/store/migrations")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("constants.disability_insurance_deduction", 0.0)
	v.SetDefault("constants.legal_plan_deduction", 0.0)
	v.SetDefault("constants.giving_deduction", 0.0)
	v.SetDefault("constants.espp_rate", 0.0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MONEYFLOW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "moneyflow"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MONEYFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view for the constants defaults.
func Save(cfg Config) error {
	path := os.Getenv("MONEYFLOW_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "moneyflow", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("constants.disability_insurance_deduction", cfg.Constants.DisabilityInsuranceDeduction)
	v.Set("constants.legal_plan_deduction", cfg.Constants.LegalPlanDeduction)
	v.Set("constants.giving_deduction", cfg.Constants.GivingDeduction)
	v.Set("constants.espp_rate", cfg.Constants.ESPPRate)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
