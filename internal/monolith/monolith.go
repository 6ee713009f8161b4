// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/config"
	"github.com/fd1az/yieldsplit/internal/di"
	"github.com/fd1az/yieldsplit/internal/logger"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	CoinRegistry() *asset.Registry
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config       *config.Config
	logger       logger.LoggerInterface
	coinRegistry *asset.Registry
	container    di.Container
}

// New creates a new Monolith instance. The coin registry is populated
// from the configured markets so every context resolves coins by type tag.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	registry := asset.NewRegistry()
	for _, m := range cfg.Markets {
		registerMarketCoins(registry, m)
	}

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("coinRegistry", registry)

	return &app{
		config:       cfg,
		logger:       log,
		coinRegistry: registry,
		container:    container,
	}, nil
}

func registerMarketCoins(registry *asset.Registry, m config.MarketConfig) {
	type entry struct {
		typeTag string
		symbol  string
	}
	entries := []entry{
		{m.UnderlyingType, m.Symbol},
		{m.SYType, "SY-" + m.Symbol},
		{m.PTType, "PT-" + m.Symbol},
		{m.YTType, "YT-" + m.Symbol},
		{m.MarketPositionType, "LP-" + m.Symbol},
	}
	for _, e := range entries {
		if e.typeTag == "" {
			continue
		}
		tag := asset.CoinType(e.typeTag)
		if _, ok := registry.Get(tag); ok {
			continue
		}
		registry.Register(asset.NewCoin(tag, e.symbol, m.Decimals))
	}
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) CoinRegistry() *asset.Registry {
	return a.coinRegistry
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	return nil
}
