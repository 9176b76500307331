package main

import (
	"context"
	"fmt"
	"os"
	"time"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/prsync/internal/cfg"
)

const appName = "prsync"

var logger = zap.NewNop()

// Version is set via a ldflag on compilation
var Version = "unknown"

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught, terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stderr,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func initZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	return cfg.Build()
}

// initLogger creates the logger and installs it as global zap logger.
// Log output is written to stderr, stdout contains only the report.
func initLogger(config *cfg.Config, verbose bool) error {
	var logLevel zapcore.Level
	if verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			return fmt.Errorf("can not set log level to %q: %w", config.LogLevel, err)
		}
	}

	var l *zap.Logger
	switch config.LogFormat {
	case "logfmt":
		l = initLogFmtLogger(config, logLevel)
	case "console", "json":
		var err error
		l, err = initZapFormatLogger(config, logLevel)
		if err != nil {
			return fmt.Errorf("could not initialize logger: %w", err)
		}
	default:
		return fmt.Errorf("unsupported log-format argument: %q", config.LogFormat)
	}

	logger = l.Named("main")
	zap.ReplaceGlobals(l)

	goodbye.Register(func(context.Context, os.Signal) {
		// syncing stderr fails on some platforms with EINVAL, it is ignored
		_ = logger.Sync()
	})

	return nil
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func main() {
	defer panicHandler()

	ctx := context.Background()
	defer goodbye.Exit(ctx, -1)
	goodbye.Notify(ctx)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		goodbye.Exit(ctx, 1)
	}
}
