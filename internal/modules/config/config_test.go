package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "values_test.yaml"), []byte(body), 0o600))
	t.Setenv(configDirENV, dir)
	t.Setenv(configFilePathENV, "values_test.yaml")
	return dir
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(configDirENV, t.TempDir())

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "R_10", cfg.Trading.Symbol)
	assert.Equal(t, "CALL", cfg.Trading.ContractType)
	assert.Equal(t, "-0.21", cfg.Trading.Barrier)
	assert.Equal(t, 5, cfg.Trading.Duration)
	assert.Equal(t, "t", cfg.Trading.DurationUnit)
	assert.Equal(t, 100*time.Minute, cfg.Trading.TrendWindow)
	assert.Equal(t, time.Second, cfg.Trading.PollInterval)
	assert.Equal(t, 3.0, cfg.Trading.StakeMultiplier)
	assert.Zero(t, cfg.Trading.MaxStake)
}

func TestNewConfig_FileAndEnv(t *testing.T) {
	writeConfig(t, `
deriv:
  app_id: "42"
trading:
  symbol: R_50
  poll_interval: 500ms
  max_stake: 81
service:
  public_port: 9090
`)
	t.Setenv("BOT_TRADING_SYMBOL", "R_100")
	t.Setenv("BOT_TRADING_SETTLEMENT_TIMEOUT", "45s")
	t.Setenv("BOT_TELEGRAM_CHAT_ID", "123456")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "R_100", cfg.Trading.Symbol, "env wins over file")
	assert.Equal(t, 500*time.Millisecond, cfg.Trading.PollInterval)
	assert.Equal(t, 45*time.Second, cfg.Trading.SettlementTimeout)
	assert.Equal(t, 81.0, cfg.Trading.MaxStake)
	assert.Equal(t, 9090, cfg.Service.PublicPort)
	assert.Equal(t, int64(123456), cfg.Telegram.ChatID)
	// не заданное в файле остаётся дефолтом
	assert.Equal(t, "CALL", cfg.Trading.ContractType)
	assert.Equal(t, "wss://ws.binaryws.com/websockets/v3?app_id=42", cfg.Deriv.Endpoint())
}

func TestNewConfig_Invalid(t *testing.T) {
	writeConfig(t, "trading:\n  stake_multiplier: 0.5\n")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "stake_multiplier")
}

func TestNewConfig_BrokenYAML(t *testing.T) {
	writeConfig(t, "trading: [")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "decode config file")
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "wss://x/ws?app_id=1", DerivConfig{URL: "wss://x/ws", AppID: "1"}.Endpoint())
	assert.Equal(t, "wss://x/ws?l=EN&app_id=1", DerivConfig{URL: "wss://x/ws?l=EN", AppID: "1"}.Endpoint())
	assert.Equal(t, "wss://x/ws?app_id=7", DerivConfig{URL: "wss://x/ws?app_id=7", AppID: "1"}.Endpoint())
	assert.Equal(t, "wss://x/ws", DerivConfig{URL: "wss://x/ws"}.Endpoint())
}
