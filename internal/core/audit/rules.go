package audit

import (
	"fmt"
	"math"
)

// Rules は判定に使うしきい値です。
type Rules struct {
	ConsecutiveDays int
	MinBreakHours   float64
	MaxBreakHours   float64
	MaxShiftHours   float64
}

// DefaultRules は既定のしきい値 (7 日連続、休憩 1〜10 時間、14 時間超の勤務) を返します。
func DefaultRules() Rules {
	return Rules{
		ConsecutiveDays: 7,
		MinBreakHours:   1,
		MaxBreakHours:   10,
		MaxShiftHours:   14,
	}
}

// Validate はしきい値の整合性を検証します。
func (r Rules) Validate() error {
	if r.ConsecutiveDays < 1 {
		return fmt.Errorf("consecutive_days must be positive: %w", ErrInvalidRules)
	}
	thresholds := []struct {
		name  string
		value float64
	}{
		{"min_break_hours", r.MinBreakHours},
		{"max_break_hours", r.MaxBreakHours},
		{"max_shift_hours", r.MaxShiftHours},
	}
	for _, th := range thresholds {
		if math.IsNaN(th.value) || math.IsInf(th.value, 0) || th.value < 0 {
			return fmt.Errorf("%s must be a non-negative number: %w", th.name, ErrInvalidRules)
		}
	}
	if r.MinBreakHours >= r.MaxBreakHours {
		return fmt.Errorf("min_break_hours must be less than max_break_hours: %w", ErrInvalidRules)
	}
	return nil
}
