package logger

import (
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup builds the process logger. Non-local environments get the
// production JSON encoder; local runs get a console encoder with
// colored levels for readable terminal output.
func Setup(env, level string) *zap.Logger {
	zapLevel := parseLogLevel(level)

	if strings.ToLower(strings.TrimSpace(env)) == "local" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		cfg.EncoderConfig.EncodeLevel = colorLevelEncoder
		return mustBuild(cfg)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return mustBuild(cfg)
}

func mustBuild(cfg zap.Config) *zap.Logger {
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	text := level.CapitalString()
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(color.MagentaString(text))
	case zapcore.InfoLevel:
		enc.AppendString(color.BlueString(text))
	case zapcore.WarnLevel:
		enc.AppendString(color.YellowString(text))
	default:
		enc.AppendString(color.RedString(text))
	}
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
