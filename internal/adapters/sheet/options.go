package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"github.com/ogurasousui/timecard-audit/internal/platform/config"
	"github.com/xuri/excelize/v2"
)

// Options は列の対応とタイムスタンプの解釈方法です。列番号は 1 始まりで、0 は未使用です。
type Options struct {
	Columns    config.ColumnsConfig
	Sheet      string
	HeaderRows int
	Layouts    []string
	Location   *time.Location
}

// OptionsFromConfig は設定から Options を組み立てます。
func OptionsFromConfig(cfg config.SourceConfig) Options {
	return Options{
		Columns:    cfg.Columns,
		Sheet:      cfg.Sheet,
		HeaderRows: cfg.HeaderRows,
		Layouts:    cfg.TimeLayouts,
		Location:   cfg.Location,
	}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Options) layouts() []string {
	if len(o.Layouts) == 0 {
		return config.DefaultTimeLayouts
	}
	return o.Layouts
}

// decodeRow は 1 行分のセルを timecard.Row に変換します。
// text は表示用の文字列、raw はタイムスタンプ用の生の値を返します。
func (o Options) decodeRow(number int, text, raw []string) timecard.Row {
	c := o.Columns
	row := timecard.Row{
		Number:   number,
		ID:       cellAt(text, c.ID),
		Name:     cellAt(text, c.Name),
		Duration: strings.TrimSpace(cellAt(text, c.Duration)),
	}

	start, err := o.parseTimestamp(cellAt(raw, c.Start))
	if err != nil {
		row.Err = fmt.Errorf("start: %w", err)
		return row
	}
	end, err := o.parseTimestamp(cellAt(raw, c.End))
	if err != nil {
		row.Err = fmt.Errorf("end: %w", err)
		return row
	}
	row.Start, row.End = start, end
	return row
}

func (o Options) parseTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, timecard.ErrMissingTimestamp
	}

	loc := o.location()
	for _, layout := range o.layouts() {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}

	// Excel のシリアル値 (1900 年基準)
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("%q: %w", v, timecard.ErrInvalidTimestamp)
}

func cellAt(cells []string, col int) string {
	if col <= 0 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
