package timecard

import (
	"math"
	"strconv"
	"strings"
)

// ParseHours は "H:MM" 形式の勤務時間文字列を時間単位の実数に変換します。
// 形式に合わない場合は NaN を返し、呼び出し側の比較はすべて偽になります。
func ParseHours(text string) float64 {
	parts := strings.Split(text, ":")
	if len(parts) < 2 {
		return math.NaN()
	}

	hours := parseNumber(parts[0])
	minutes := parseNumber(parts[1])
	return hours + minutes/60
}

// 空文字は 0 として扱う。
func parseNumber(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
