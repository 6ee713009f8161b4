// Package main is the entry point for the yieldsplit client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/fd1az/yieldsplit/business/ledger"
	ledgerDI "github.com/fd1az/yieldsplit/business/ledger/di"
	"github.com/fd1az/yieldsplit/business/market"
	marketDI "github.com/fd1az/yieldsplit/business/market/di"
	"github.com/fd1az/yieldsplit/business/position"
	positionDI "github.com/fd1az/yieldsplit/business/position/di"
	"github.com/fd1az/yieldsplit/business/pricing"
	pricingDI "github.com/fd1az/yieldsplit/business/pricing/di"
	pricingdomain "github.com/fd1az/yieldsplit/business/pricing/domain"
	"github.com/fd1az/yieldsplit/business/trade"
	tradeDI "github.com/fd1az/yieldsplit/business/trade/di"
	tradedomain "github.com/fd1az/yieldsplit/business/trade/domain"
	tradeinfra "github.com/fd1az/yieldsplit/business/trade/infra"
	"github.com/fd1az/yieldsplit/internal/apm"
	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/config"
	"github.com/fd1az/yieldsplit/internal/health"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/metrics"
	"github.com/fd1az/yieldsplit/internal/monolith"
	"github.com/fd1az/yieldsplit/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type cliFlags struct {
	configPath string
	cliMode    bool
	action     string
	market     string
	side       string
	amount     string
	slippage   string
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var flags cliFlags
	flag.StringVar(&flags.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&flags.cliMode, "cli", false, "Run in CLI mode with logs (no TUI)")
	flag.StringVar(&flags.action, "action", "", "One-shot action: rates, quote, buy, sell, add-liquidity, remove-liquidity, redeem")
	flag.StringVar(&flags.market, "market", "", "Market symbol, e.g. haSUI")
	flag.StringVar(&flags.side, "side", "pt", "Token side for buy/sell: pt or yt")
	flag.StringVar(&flags.amount, "amount", "", "Human-readable amount, e.g. 2.5")
	flag.StringVar(&flags.slippage, "slippage", "", "Slippage percent override, e.g. 0.5")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("yieldsplit %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// A one-shot action never runs the TUI.
	tuiMode := !flags.cliMode && flags.action == ""

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, flags, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, flags cliFlags, tuiMode bool) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Trade.TUIMode = tuiMode

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs (discard output)
		log = logger.New(io.Discard, logLevel, cfg.App.Name, apm.TraceID)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, apm.TraceID)
		log.Info(ctx, "starting yieldsplit",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Modules in dependency order
	modules := []monolith.Module{
		&ledger.Module{},
		&market.Module{},
		&pricing.Module{},
		&position.Module{},
		&trade.Module{},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	if flags.action != "" {
		return runAction(ctx, mono, cfg, flags)
	}
	if tuiMode {
		return runTUI(ctx, mono, cfg)
	}

	log.Info(ctx, "all modules started, waiting for shutdown")
	<-ctx.Done()
	return nil
}

// runAction executes a single composed action and prints the result.
func runAction(ctx context.Context, mono monolith.Monolith, cfg *config.Config, flags cliFlags) error {
	if flags.market == "" {
		return fmt.Errorf("-market is required for -action %s", flags.action)
	}
	if flags.amount == "" && flags.action != "rates" {
		return fmt.Errorf("-amount is required for -action %s", flags.action)
	}

	markets := marketDI.GetMarketService(mono.Services())
	m, err := markets.Resolve(flags.market)
	if err != nil {
		return err
	}

	reporter := tradeinfra.NewConsoleReporter(cfg.Ledger.ExplorerURL)

	if flags.action == "rates" {
		oracle := pricingDI.GetRateOracle(mono.Services())
		snapshot, err := oracle.Snapshot(ctx, m)
		if err != nil {
			return err
		}
		reporter.ReportSnapshot(snapshot)
		return nil
	}

	slippage := cfg.Trade.DefaultSlippage()
	if flags.slippage != "" {
		var err error
		slippage, err = decimal.NewFromString(flags.slippage)
		if err != nil {
			return fmt.Errorf("invalid slippage %q: %w", flags.slippage, err)
		}
	}

	side := tradedomain.TokenSide(strings.ToLower(flags.side))
	if !side.Valid() {
		return fmt.Errorf("invalid side %q: want pt or yt", flags.side)
	}

	// The typed amount is denominated in whichever coin the action spends.
	coin := m.SY
	switch flags.action {
	case "sell", "quote":
		coin = m.PT
		if side == tradedomain.SideYT {
			coin = m.YT
		}
	case "remove-liquidity":
		coin = m.LP
	case "redeem":
		coin = m.PT
	}
	amt, err := asset.ParseString(coin, flags.amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", flags.amount, err)
	}
	amount := amt.Raw()

	if flags.action == "quote" {
		oracle := pricingDI.GetRateOracle(mono.Services())
		dir := pricingdomain.DirPTToSY
		if side == tradedomain.SideYT {
			dir = pricingdomain.DirYTToSY
		}
		quote, err := oracle.Quote(ctx, m, dir, amount)
		if err != nil {
			return err
		}
		reporter.ReportQuote(m.Symbol,
			asset.ScaleToHuman(quote.In, m.Decimals()),
			asset.ScaleToHuman(quote.Out, m.Decimals()),
		)
		return nil
	}

	composer := tradeDI.GetComposer(mono.Services())

	var result *tradedomain.ActionResult
	switch flags.action {
	case "buy":
		result = composer.Buy(ctx, flags.market, side, amount, slippage)
	case "sell":
		result = composer.Sell(ctx, flags.market, side, amount, slippage)
	case "add-liquidity":
		result = composer.AddLiquidity(ctx, flags.market, amount, slippage)
	case "remove-liquidity":
		result = composer.RemoveLiquidity(ctx, flags.market, amount, slippage)
	case "redeem":
		result = composer.RedeemBoth(ctx, flags.market, amount, slippage)
	default:
		return fmt.Errorf("unknown action %q", flags.action)
	}

	reporter.Report(result, m.Decimals())
	if !result.OK() {
		return fmt.Errorf("%s failed", flags.action)
	}
	return nil
}

// runTUI starts the quote-watch interface.
func runTUI(ctx context.Context, mono monolith.Monolith, cfg *config.Config) error {
	oracle := pricingDI.GetRateOracle(mono.Services())
	aggregator := positionDI.GetAggregator(mono.Services())
	markets := marketDI.GetMarketService(mono.Services())
	ledgerSvc := ledgerDI.GetLedgerService(mono.Services())

	checkpoints, err := ledgerSvc.SubscribeCheckpoints(ctx)
	if err != nil {
		// The watcher still works without live staleness marks.
		checkpoints = nil
	}

	model := ui.New(
		oracle,
		aggregator,
		checkpoints,
		markets.List(),
		cfg.Wallet.Address,
		cfg.Trade.DefaultSlippage(),
		cfg.Trade.QuoteDebounce,
	)

	return ui.Run(model)
}
