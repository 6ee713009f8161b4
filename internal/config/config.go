// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig      `mapstructure:"app"`
	Ledger    LedgerConfig   `mapstructure:"ledger"`
	Wallet    WalletConfig   `mapstructure:"wallet"`
	Trade     TradeConfig    `mapstructure:"trade"`
	Markets   []MarketConfig `mapstructure:"markets"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// LedgerConfig holds ledger node endpoints and client limits.
type LedgerConfig struct {
	RPCURL            string        `mapstructure:"rpc_url"`
	WebSocketURL      string        `mapstructure:"websocket_url"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	ExplorerURL       string        `mapstructure:"explorer_url"`
}

// WalletConfig holds the wallet proxy endpoint and sender identity.
type WalletConfig struct {
	SignerURL string `mapstructure:"signer_url"`
	Address   string `mapstructure:"address"`
}

// TradeConfig holds composition defaults.
type TradeConfig struct {
	DefaultSlippagePct string        `mapstructure:"default_slippage_pct"`
	QuoteDebounce      time.Duration `mapstructure:"quote_debounce"`
	TUIMode            bool          `mapstructure:"-"` // Set at runtime, not from config file
}

// DefaultSlippage returns the default slippage tolerance as a decimal percent.
func (c *TradeConfig) DefaultSlippage() decimal.Decimal {
	d, err := decimal.NewFromString(c.DefaultSlippagePct)
	if err != nil {
		return decimal.RequireFromString("0.5")
	}
	return d
}

// MarketConfig describes one tokenized-yield market.
type MarketConfig struct {
	Symbol             string `mapstructure:"symbol"`
	UnderlyingType     string `mapstructure:"underlying_type"`
	SYType             string `mapstructure:"sy_type"`
	PTType             string `mapstructure:"pt_type"`
	YTType             string `mapstructure:"yt_type"`
	Decimals           uint8  `mapstructure:"decimals"`
	PackageID          string `mapstructure:"package_id"`
	MaturityMs         int64  `mapstructure:"maturity_ms"`
	MarketStateID      string `mapstructure:"market_state_id"`
	FactoryConfigID    string `mapstructure:"factory_config_id"`
	YieldFactoryID     string `mapstructure:"yield_factory_id"`
	PYStateID          string `mapstructure:"py_state_id"`
	SYStateID          string `mapstructure:"sy_state_id"`
	PriceOracleID      string `mapstructure:"price_oracle_id"`
	PYPositionType     string `mapstructure:"py_position_type"`
	MarketPositionType string `mapstructure:"market_position_type"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("YS")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "YS_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "YS_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "YS_LOG_LEVEL", "LOG_LEVEL")

	// Ledger
	v.BindEnv("ledger.rpc_url", "YS_LEDGER_RPC_URL", "LEDGER_RPC_URL")
	v.BindEnv("ledger.websocket_url", "YS_LEDGER_WS_URL", "LEDGER_WS_URL")
	v.BindEnv("ledger.explorer_url", "YS_LEDGER_EXPLORER_URL")

	// Wallet
	v.BindEnv("wallet.signer_url", "YS_WALLET_SIGNER_URL", "WALLET_SIGNER_URL")
	v.BindEnv("wallet.address", "YS_WALLET_ADDRESS", "WALLET_ADDRESS")

	// Trade
	v.BindEnv("trade.default_slippage_pct", "YS_DEFAULT_SLIPPAGE_PCT")

	// Telemetry
	v.BindEnv("telemetry.enabled", "YS_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "YS_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "YS_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "yieldsplit")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Ledger defaults
	v.SetDefault("ledger.request_timeout", "10s")
	v.SetDefault("ledger.requests_per_minute", 300)

	// Trade defaults
	v.SetDefault("trade.default_slippage_pct", "0.5")
	v.SetDefault("trade.quote_debounce", "300ms")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "yieldsplit")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Ledger.RPCURL == "" {
		return fmt.Errorf("ledger.rpc_url is required")
	}
	for i, m := range c.Markets {
		if m.Symbol == "" {
			return fmt.Errorf("markets[%d].symbol is required", i)
		}
		if m.SYType == "" || m.PTType == "" || m.YTType == "" {
			return fmt.Errorf("market %s: sy_type, pt_type and yt_type are required", m.Symbol)
		}
		if m.MaturityMs <= 0 {
			return fmt.Errorf("market %s: maturity_ms must be positive", m.Symbol)
		}
	}
	return nil
}
