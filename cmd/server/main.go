package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"github.com/ogurasousui/timecard-audit/internal/platform/config"
	"github.com/ogurasousui/timecard-audit/internal/platform/logging"
	"github.com/ogurasousui/timecard-audit/internal/platform/server"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	strategy, err := timecard.ParseIdentityStrategy(cfg.Source.Identity)
	if err != nil {
		logger.Fatal("invalid identity strategy", zap.Error(err))
	}

	rules := audit.Rules{
		ConsecutiveDays: cfg.Rules.ConsecutiveDays,
		MinBreakHours:   cfg.Rules.MinBreakHours,
		MaxBreakHours:   cfg.Rules.MaxBreakHours,
		MaxShiftHours:   cfg.Rules.MaxShiftHours,
	}
	auditSvc := audit.NewService(rules, strategy, logger, nil)
	grpcServer := server.New(cfg.Server.ListenAddr, auditSvc, logger)

	logger.Info("gRPC server listening", zap.String("addr", cfg.Server.ListenAddr))

	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}
