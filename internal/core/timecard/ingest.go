package timecard

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// IdentityStrategy は行を社員にまとめる際のキーの選び方です。
type IdentityStrategy string

const (
	IdentityByID   IdentityStrategy = "id"
	IdentityByName IdentityStrategy = "name"
)

// ParseIdentityStrategy は設定値から IdentityStrategy を解決します。空文字は IdentityByID です。
func ParseIdentityStrategy(raw string) (IdentityStrategy, error) {
	switch IdentityStrategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", IdentityByID:
		return IdentityByID, nil
	case IdentityByName:
		return IdentityByName, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidIdentityStrategy)
	}
}

// Label は出力で識別子の前に付ける表示名を返します。
func (s IdentityStrategy) Label() string {
	if s == IdentityByName {
		return "name"
	}
	return "ID"
}

// Row は取り込み元から読み出した 1 行分の値です。
// Err には取り込み元がタイムスタンプを解釈できなかった理由が入ります。
type Row struct {
	Number   int
	ID       string
	Name     string
	Start    time.Time
	End      time.Time
	Duration string
	Err      error
}

// Identity は strategy に従って行の識別子を返します。
func (r Row) Identity(strategy IdentityStrategy) string {
	if strategy == IdentityByName {
		return strings.TrimSpace(r.Name)
	}
	return strings.TrimSpace(r.ID)
}

// Diagnostic は取り込み時にスキップした行の記録です。
type Diagnostic struct {
	Row    int
	Reason string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d: %s", d.Row, d.Reason)
}

// Build は行を順に処理し、識別子ごとの Roster と診断情報を返します。
// タイムスタンプや識別子が欠けた行は Roster に影響を与えません。
func Build(rows []Row, strategy IdentityStrategy) (*Roster, []Diagnostic) {
	roster := NewRoster()
	var diags []Diagnostic

	for _, row := range rows {
		if err := checkRow(row, strategy); err != nil {
			diags = append(diags, Diagnostic{Row: row.Number, Reason: err.Error(), Err: err})
			continue
		}

		emp := roster.Resolve(row.Identity(strategy))
		emp.AddShift(row.Start, row.End, ParseHours(row.Duration))
	}

	return roster, diags
}

func checkRow(row Row, strategy IdentityStrategy) error {
	if row.Err != nil {
		if errors.Is(row.Err, ErrMissingTimestamp) || errors.Is(row.Err, ErrInvalidTimestamp) {
			return row.Err
		}
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, row.Err)
	}
	if row.Start.IsZero() {
		return fmt.Errorf("start: %w", ErrMissingTimestamp)
	}
	if row.End.IsZero() {
		return fmt.Errorf("end: %w", ErrMissingTimestamp)
	}
	if row.Identity(strategy) == "" {
		return fmt.Errorf("%s: %w", strategy, ErrMissingIdentity)
	}
	return nil
}
