package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"github.com/xuri/excelize/v2"
)

var ErrSheetNotFound = errors.New("sheet: worksheet not found")

// XLSXSource は Excel ブックの 1 シートを読み込む取り込み元です。
type XLSXSource struct {
	path string
	opts Options
}

// NewXLSXSource は XLSXSource を生成します。
func NewXLSXSource(path string, opts Options) *XLSXSource {
	return &XLSXSource{path: path, opts: opts}
}

// Load はブックを開き、対象シートの全行を返します。
func (s *XLSXSource) Load(ctx context.Context) ([]timecard.Row, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", s.path, err)
	}
	defer f.Close()

	return readWorkbook(ctx, f, s.opts)
}

// ReadXLSX は r からブックを読み込み、対象シートの全行を返します。
func ReadXLSX(ctx context.Context, r io.Reader, opts Options) ([]timecard.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(ctx, f, opts)
}

func readWorkbook(ctx context.Context, f *excelize.File, opts Options) ([]timecard.Row, error) {
	name, err := sheetName(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	// 識別子と勤務時間は表示形式の文字列、タイムスタンプはシリアル値を使う
	text, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("sheet: read rows of %s: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet: read raw rows of %s: %w", name, err)
	}

	rows := make([]timecard.Row, 0, len(text))
	for i, cells := range text {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i < opts.HeaderRows || isBlank(cells) {
			continue
		}
		var rawCells []string
		if i < len(raw) {
			rawCells = raw[i]
		}
		rows = append(rows, opts.decodeRow(i+1, cells, rawCells))
	}

	return rows, nil
}

func sheetName(f *excelize.File, want string) (string, error) {
	sheets := f.GetSheetList()
	if want == "" {
		if len(sheets) == 0 {
			return "", ErrSheetNotFound
		}
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("%q: %w", want, ErrSheetNotFound)
}
