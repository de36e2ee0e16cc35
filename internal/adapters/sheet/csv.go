package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
)

// CSVSource は CSV ファイルを読み込む取り込み元です。
type CSVSource struct {
	path string
	opts Options
}

// NewCSVSource は CSVSource を生成します。
func NewCSVSource(path string, opts Options) *CSVSource {
	return &CSVSource{path: path, opts: opts}
}

// Load はファイルを開き、全行を返します。
func (s *CSVSource) Load(ctx context.Context) ([]timecard.Row, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", s.path, err)
	}
	defer file.Close()

	return ReadCSV(ctx, file, s.opts)
}

// ReadCSV は r から CSV を読み込みます。CSV のセルはすべて文字列として扱います。
func ReadCSV(ctx context.Context, r io.Reader, opts Options) ([]timecard.Row, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows []timecard.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("sheet: read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if line <= opts.HeaderRows || isBlank(record) {
			continue
		}
		rows = append(rows, opts.decodeRow(line, record, record))
	}
}
