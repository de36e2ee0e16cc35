package logging

import (
	"fmt"

	"github.com/ogurasousui/timecard-audit/internal/platform/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は設定に従って標準エラー出力へ書き込む zap.Logger を生成します。
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(defaultLevel(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("logging: parse level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

func defaultLevel(raw string) string {
	if raw == "" {
		return "info"
	}
	return raw
}
