package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/package-shark/internal/application"
	"github.com/eugenenazirov/package-shark/internal/config"
	"github.com/eugenenazirov/package-shark/internal/logging"
	"github.com/eugenenazirov/package-shark/internal/notify"
	"github.com/eugenenazirov/package-shark/internal/quantity"
	"github.com/eugenenazirov/package-shark/internal/tui"
)

var signalNotifyContext = signal.NotifyContext

type cliFlags struct {
	configFile     *string
	envFile        *string
	baseURL        *string
	requestTimeout *time.Duration
	rateLimitRPS   *float64
	rateLimitBurst *int
	logFile        *string
	logLevel       *string
	metricsAddr    *string
}

func (f cliFlags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile:  *f.configFile,
		EnvFile:     *f.envFile,
		BaseURL:     f.baseURL,
		LogFile:     f.logFile,
		LogLevel:    f.logLevel,
		MetricsAddr: f.metricsAddr,
	}

	if *f.requestTimeout >= 0 {
		overrides.RequestTimeout = f.requestTimeout
	}

	if *f.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = f.rateLimitRPS
	}

	if *f.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = f.rateLimitBurst
	}

	return overrides
}

func main() {
	kingpinApp := kingpin.New("packshark", "Package Shark - asks the pack service how an order quantity breaks into packs")
	flags := cliFlags{
		configFile:     kingpinApp.Flag("config", "Path to YAML configuration file").String(),
		envFile:        kingpinApp.Flag("env-file", "Path to a dotenv file (default .env when present)").String(),
		baseURL:        kingpinApp.Flag("base-url", "Pack service base URL; lookups go to <base-url>/packs/{quantity}").String(),
		requestTimeout: kingpinApp.Flag("request-timeout", "Transport timeout per lookup (0 disables)").Default("-1ns").Duration(),
		rateLimitRPS:   kingpinApp.Flag("rate-limit-rps", "Outbound lookups per second (set 0 to disable)").Default("-1").Float64(),
		rateLimitBurst: kingpinApp.Flag("rate-limit-burst", "Burst capacity for outbound lookups").Default("-1").Int(),
		logFile:        kingpinApp.Flag("log-file", "Log destination: a file path, stderr or stdout").String(),
		logLevel:       kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String(),
		metricsAddr:    kingpinApp.Flag("metrics-addr", "Serve Prometheus metrics on this address").String(),
	}

	tuiCmd := kingpinApp.Command("tui", "Interactive terminal client").Default()
	getCmd := kingpinApp.Command("get", "Look up a single quantity and print the packs")
	getQuantity := getCmd.Arg("quantity", "Number of items to order").Required().String()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	cfg, err := config.Load(flags.overrides())
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	ctx, stop := signalNotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case tuiCmd.FullCommand():
		err = runTUI(ctx, cfg)
	case getCmd.FullCommand():
		err = runGet(ctx, cfg, quantity.Normalize(*getQuantity), os.Stdout, os.Stderr)
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func runTUI(ctx context.Context, cfg config.Config) error {
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = config.DefaultTUILogFile
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, OutputPath: logFile})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	toast := &notify.Toast{}
	app, err := application.New(cfg, logger, toast)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	if err := app.Start(); err != nil {
		logger.Error("failed to start metrics server", zap.Error(err))
		return err
	}
	defer shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)

	model := tui.NewModel(app.Orchestrator(), toast,
		tui.WithContext(ctx),
		tui.WithNoticeDuration(cfg.ToastDuration),
	)
	if err := tui.Run(ctx, model); err != nil && ctx.Err() == nil {
		logger.Error("terminal UI exited with error", zap.Error(err))
		return err
	}
	return nil
}

func runGet(ctx context.Context, cfg config.Config, q int, stdout, stderr io.Writer) error {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, OutputPath: cfg.LogFile})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, notify.Writer(stderr))
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	if err := app.Start(); err != nil {
		logger.Error("failed to start metrics server", zap.Error(err))
		return err
	}
	defer shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)

	if err := app.PrintPacks(ctx, q, stdout); err != nil {
		if !errors.Is(err, application.ErrLookupFailed) {
			logger.Error("failed to print packs", zap.Error(err))
		}
		return err
	}
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	if server == nil {
		return
	}
	logger.Info("shutting down metrics server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
