package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	envPrefix         = "BOT"
)

// Config ...
type Config struct {
	Deriv    DerivConfig    `yaml:"deriv"`
	Trading  TradingConfig  `yaml:"trading"`
	Service  ServiceConfig  `yaml:"service"`
	Telegram TelegramConfig `yaml:"telegram"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Log      LogConfig      `yaml:"log"`
	Run      RunConfig      `yaml:"run"`
}

type DerivConfig struct {
	URL          string        `yaml:"url"`
	AppID        string        `yaml:"app_id"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	PingInterval time.Duration `yaml:"ping_interval"` // 0: без keepalive
}

type TradingConfig struct {
	Symbol       string `yaml:"symbol"`
	ContractType string `yaml:"contract_type"`
	Barrier      string `yaml:"barrier"`
	Duration     int    `yaml:"duration"`
	DurationUnit string `yaml:"duration_unit"`
	Currency     string `yaml:"currency"`
	Basis        string `yaml:"basis"`

	TrendEngine string        `yaml:"trend_engine"`
	TrendWindow time.Duration `yaml:"trend_window"` // окно истории тиков

	PollInterval      time.Duration `yaml:"poll_interval"`      // опрос открытого контракта
	IterationInterval time.Duration `yaml:"iteration_interval"` // пауза между итерациями
	SettlementTimeout time.Duration `yaml:"settlement_timeout"` // 0: ждать без ограничения
	RunTimeout        time.Duration `yaml:"run_timeout"`        // 0: без ограничения

	// Мартингейл: после проигрыша ставка умножается, после выигрыша сбрасывается.
	StakeMultiplier float64 `yaml:"stake_multiplier"`
	MaxStake        float64 `yaml:"max_stake"` // 0: потолка нет
}

type ServiceConfig struct {
	Host       string `yaml:"host"`
	PublicPort int    `yaml:"public_port"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// RunConfig: параметры одиночного запуска из cmd/run.
type RunConfig struct {
	APIToken     string  `yaml:"api_token"`
	InitialStake float64 `yaml:"initial_stake"`
	ProfitTarget float64 `yaml:"profit_target"`
}

func Default() Config {
	return Config{
		Deriv: DerivConfig{
			URL:          "wss://ws.binaryws.com/websockets/v3",
			AppID:        "1089",
			ReadTimeout:  30 * time.Second,
			PingInterval: 30 * time.Second,
		},
		Trading: TradingConfig{
			Symbol:            "R_10",
			ContractType:      "CALL",
			Barrier:           "-0.21",
			Duration:          5,
			DurationUnit:      "t",
			Currency:          "USD",
			Basis:             "stake",
			TrendEngine:       "last_two",
			TrendWindow:       100 * time.Minute,
			PollInterval:      time.Second,
			IterationInterval: time.Second,
			SettlementTimeout: 2 * time.Minute,
			StakeMultiplier:   3,
		},
		Service: ServiceConfig{
			Host:       "0.0.0.0",
			PublicPort: 8080,
		},
		Tracing: TracingConfig{
			Host: "localhost",
			Port: 6831,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
		},
	}
}

// NewConfig: дефолты -> configs/$CONFIG_FILE -> переменные окружения BOT_*.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	dir := os.Getenv(configDirENV)
	if dir == "" {
		dir = "configs"
	}

	config := Default()
	if err := decodeFile(filepath.Join(dir, configFileName), &config); err != nil {
		return nil, err
	}

	applyEnv(newEnv(), &config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// decodeFile накатывает yaml поверх уже заполненного cfg. Файла может не быть.
func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "open config file %s", path)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return errors.Wrapf(err, "decode config file %s", path)
	}
	return nil
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// applyEnv: BOT_TRADING_SYMBOL -> trading.symbol и т.д.
func applyEnv(v *viper.Viper, cfg *Config) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v.IsSet(key) {
			*dst = v.GetDuration(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flt := func(key string, dst *float64) {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}

	str("deriv.url", &cfg.Deriv.URL)
	str("deriv.app_id", &cfg.Deriv.AppID)
	dur("deriv.read_timeout", &cfg.Deriv.ReadTimeout)
	dur("deriv.ping_interval", &cfg.Deriv.PingInterval)

	str("trading.symbol", &cfg.Trading.Symbol)
	str("trading.contract_type", &cfg.Trading.ContractType)
	str("trading.barrier", &cfg.Trading.Barrier)
	num("trading.duration", &cfg.Trading.Duration)
	str("trading.duration_unit", &cfg.Trading.DurationUnit)
	str("trading.currency", &cfg.Trading.Currency)
	str("trading.basis", &cfg.Trading.Basis)
	str("trading.trend_engine", &cfg.Trading.TrendEngine)
	dur("trading.trend_window", &cfg.Trading.TrendWindow)
	dur("trading.poll_interval", &cfg.Trading.PollInterval)
	dur("trading.iteration_interval", &cfg.Trading.IterationInterval)
	dur("trading.settlement_timeout", &cfg.Trading.SettlementTimeout)
	dur("trading.run_timeout", &cfg.Trading.RunTimeout)
	flt("trading.stake_multiplier", &cfg.Trading.StakeMultiplier)
	flt("trading.max_stake", &cfg.Trading.MaxStake)

	str("service.host", &cfg.Service.Host)
	num("service.public_port", &cfg.Service.PublicPort)

	str("telegram.token", &cfg.Telegram.Token)
	if v.IsSet("telegram.chat_id") {
		cfg.Telegram.ChatID = v.GetInt64("telegram.chat_id")
	}

	if v.IsSet("tracing.enabled") {
		cfg.Tracing.Enabled = v.GetBool("tracing.enabled")
	}
	str("tracing.host", &cfg.Tracing.Host)
	num("tracing.port", &cfg.Tracing.Port)

	str("log.level", &cfg.Log.Level)
	str("log.file", &cfg.Log.File)

	str("run.api_token", &cfg.Run.APIToken)
	flt("run.initial_stake", &cfg.Run.InitialStake)
	flt("run.profit_target", &cfg.Run.ProfitTarget)
}

func (c *Config) Validate() error {
	switch {
	case c.Deriv.URL == "":
		return errors.New("deriv.url is required")
	case c.Trading.Symbol == "":
		return errors.New("trading.symbol is required")
	case c.Trading.ContractType == "":
		return errors.New("trading.contract_type is required")
	case c.Trading.Duration <= 0:
		return errors.New("trading.duration must be > 0")
	case c.Trading.PollInterval <= 0:
		return errors.New("trading.poll_interval must be > 0")
	case c.Trading.IterationInterval < 0:
		return errors.New("trading.iteration_interval must be >= 0")
	case c.Trading.TrendWindow <= 0:
		return errors.New("trading.trend_window must be > 0")
	case c.Trading.StakeMultiplier < 1:
		return errors.New("trading.stake_multiplier must be >= 1")
	case c.Trading.MaxStake < 0:
		return errors.New("trading.max_stake must be >= 0")
	case c.Trading.SettlementTimeout < 0 || c.Trading.RunTimeout < 0:
		return errors.New("timeouts must be >= 0")
	}
	return nil
}

// Endpoint: url с app_id, как его ждёт биржа.
func (c DerivConfig) Endpoint() string {
	if c.AppID == "" || strings.Contains(c.URL, "app_id=") {
		return c.URL
	}
	sep := "?"
	if strings.Contains(c.URL, "?") {
		sep = "&"
	}
	return c.URL + sep + "app_id=" + c.AppID
}
