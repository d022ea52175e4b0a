package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/you/spread-scanner/internal/cex"
	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/dexsource"
	"github.com/you/spread-scanner/internal/feed"
	"github.com/you/spread-scanner/internal/metrics"
	"github.com/you/spread-scanner/internal/render"
	"github.com/you/spread-scanner/internal/risk"
	"github.com/you/spread-scanner/internal/scanner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	return cfg.Build()
}

func main() {
	cfgPath := flag.String("config", "./config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; it only carries secrets that don't belong in yaml
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		cfg.Redis.Password = pw
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Warn("received signal, shutting down...")
		cancel()
	}()

	metrics.Serve(ctx, cfg.Metrics.ListenAddr, nil, logger)

	dex := dexsource.NewClient(cfg.DexScreener.BaseURL, cfg.HTTPTimeout(), logger)
	venues, err := cex.Build(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build cex clients", zap.Error(err))
	}
	annotator := risk.NewAnnotator(cfg, logger)
	sc := scanner.New(cfg, dex, venues, annotator, logger)

	var pub *feed.Publisher
	if cfg.Redis.Addr != "" {
		pub = feed.NewPublisher(cfg)
		defer pub.Close()
	}

	logger.Info("scanner starting",
		zap.String("chain", cfg.ChainID().Display()),
		zap.Int("venues", len(venues)),
		zap.Bool("risk_check", !cfg.Risk.SkipCheck),
		zap.Duration("interval", cfg.ScanInterval()),
	)

	runOnce := func() {
		res, err := sc.Run(ctx)
		if err != nil {
			var fatal *scanner.ScanFatalError
			if errors.As(err, &fatal) {
				logger.Error("dex source unreachable, scan aborted", zap.Error(fatal.Err))
				return
			}
			logger.Error("scan failed", zap.Error(err))
			return
		}
		render.PrintResult(os.Stdout, res)
		if pub != nil {
			if err := pub.PublishScan(ctx, res.Opportunities); err != nil {
				logger.Warn("redis publish failed", zap.Error(err))
			}
		}
	}

	runOnce()
	if cfg.ScanInterval() == 0 {
		return
	}

	t := time.NewTicker(cfg.ScanInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("scanner stopped")
			return
		case <-t.C:
			runOnce()
		}
	}
}
