package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"go.uber.org/zap"
)

// Source は勤務表の取り込み元の抽象です。
type Source interface {
	Load(ctx context.Context) ([]timecard.Row, error)
}

// IDGenerator は監査ごとの実行 ID を払い出します。
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// UseCase は監査ユースケースの公開インターフェースです。
type UseCase interface {
	Run(ctx context.Context, src Source) (*Report, error)
	Audit(ctx context.Context, in AuditInput) (*Report, error)
}

// AuditInput は読み込み済みの行に対する監査の入力です。
// Strategy が空の場合は Service の既定値を使います。
type AuditInput struct {
	Rows     []timecard.Row
	Strategy timecard.IdentityStrategy
}

// Service は取り込みと判定を順に実行します。
type Service struct {
	rules    Rules
	strategy timecard.IdentityStrategy
	logger   *zap.Logger
	ids      IDGenerator
}

// NewService は Service を生成します。
func NewService(rules Rules, strategy timecard.IdentityStrategy, logger *zap.Logger, ids IDGenerator) *Service {
	if strategy == "" {
		strategy = timecard.IdentityByID
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = uuidGenerator{}
	}
	return &Service{rules: rules, strategy: strategy, logger: logger, ids: ids}
}

// Run は取り込み元から全行を読み込み、監査結果を返します。
// 読み込みに失敗した場合は結果を返さずに終了します。
func (s *Service) Run(ctx context.Context, src Source) (*Report, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	rows, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return s.Audit(ctx, AuditInput{Rows: rows})
}

// Audit は行を社員ごとにまとめ、全行の取り込みが終わってから判定を行います。
func (s *Service) Audit(ctx context.Context, in AuditInput) (*Report, error) {
	if err := s.rules.Validate(); err != nil {
		return nil, err
	}

	raw := in.Strategy
	if raw == "" {
		raw = s.strategy
	}
	strategy, err := timecard.ParseIdentityStrategy(string(raw))
	if err != nil {
		return nil, err
	}

	runID := s.ids.NewID()
	logger := s.logger.With(zap.String("run_id", runID))

	roster, diags := timecard.Build(in.Rows, strategy)
	for _, d := range diags {
		logger.Warn("skipped timecard row", zap.Int("row", d.Row), zap.String("reason", d.Reason))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       runID,
		Strategy:    strategy,
		Sections:    Evaluate(roster, s.rules),
		Diagnostics: diags,
		Rows:        len(in.Rows),
		Employees:   roster.Len(),
	}

	logger.Info("timecard audit completed",
		zap.Int("rows", report.Rows),
		zap.Int("employees", report.Employees),
		zap.Int("skipped", len(diags)),
	)

	return report, nil
}
