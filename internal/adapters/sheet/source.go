package sheet

import (
	"errors"
	"fmt"

	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/platform/config"
)

var ErrUnsupportedFormat = errors.New("sheet: unsupported format")

// NewSource は設定の形式に応じた取り込み元を返します。
func NewSource(cfg config.SourceConfig) (audit.Source, error) {
	format := cfg.Format
	if format == "" {
		format = config.FormatFromPath(cfg.Path)
	}

	opts := OptionsFromConfig(cfg)
	switch format {
	case config.FormatXLSX:
		return NewXLSXSource(cfg.Path, opts), nil
	case config.FormatCSV:
		return NewCSVSource(cfg.Path, opts), nil
	default:
		return nil, fmt.Errorf("%s: %w", cfg.Path, ErrUnsupportedFormat)
	}
}
