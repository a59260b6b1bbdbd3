package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONEYFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, "internal/store/migrations", cfg.Database.MigrationsPath)
	require.NotEmpty(t, cfg.Database.Path)
	require.Zero(t, cfg.Constants.ESPPRate)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ui]
currency_symbol = "€"

[constants]
disability_insurance_deduction = 20.0
espp_rate = 0.05
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("MONEYFLOW_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
	require.InDelta(t, 20, cfg.Constants.DisabilityInsuranceDeduction, 1e-9)
	require.InDelta(t, 0.05, cfg.Constants.ESPPRate, 1e-9)
	// untouched keys keep their defaults
	require.Equal(t, "internal/store/migrations", cfg.Database.MigrationsPath)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MONEYFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MONEYFLOW_UI_CURRENCY_SYMBOL", "£")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "£", cfg.UI.CurrencySymbol)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("MONEYFLOW_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Constants.GivingDeduction = 7.5
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.InDelta(t, 7.5, got.Constants.GivingDeduction, 1e-9)
}

func TestIncomeConstantsConversion(t *testing.T) {
	t.Parallel()
	c := ConstantsConfig{
		DisabilityInsuranceDeduction: 20,
		LegalPlanDeduction:           10,
		GivingDeduction:              5,
		ESPPRate:                     0.05,
	}
	ic := c.IncomeConstants()
	require.InDelta(t, 20, ic.DisabilityInsuranceDeduction, 1e-9)
	require.InDelta(t, 0.05, ic.ESPPRate, 1e-9)
}
