package timecard

import "time"

// Shift は 1 回分の勤務記録を表す値オブジェクトです。
// RecordedHours は申告された勤務時間で、Start から End までの実時間とは一致しないことがあります。
type Shift struct {
	Start         time.Time
	End           time.Time
	RecordedHours float64
}

// Span は Start から End までの経過時間を時間単位で返します。
func (s Shift) Span() float64 {
	return s.End.Sub(s.Start).Hours()
}

// Employee は 1 人分の勤務記録を保持する集約です。
// 勤務は取り込み順に保持され、時刻順には並べ替えません。
type Employee struct {
	identity string
	shifts   []Shift
}

// NewEmployee は Employee を生成します。
func NewEmployee(identity string) *Employee {
	return &Employee{identity: identity}
}

// Identity は集約のキー (社員 ID または氏名) を返します。
func (e *Employee) Identity() string {
	return e.identity
}

// AddShift は勤務を末尾に追加します。検証や重複排除は行いません。
func (e *Employee) AddShift(start, end time.Time, recordedHours float64) {
	e.shifts = append(e.shifts, Shift{Start: start, End: end, RecordedHours: recordedHours})
}

// Shifts は勤務記録のコピーを返します。
func (e *Employee) Shifts() []Shift {
	out := make([]Shift, len(e.shifts))
	copy(out, e.shifts)
	return out
}

// Len は勤務記録の件数を返します。
func (e *Employee) Len() int {
	return len(e.shifts)
}

// HasConsecutiveDays は連続する n 件の勤務の開始時刻がすべて異なる区間があるかを判定します。
// 判定は記録順の位置で行い、暦日の連続性は見ません。
func (e *Employee) HasConsecutiveDays(n int) bool {
	if n < 1 || len(e.shifts) < n {
		return false
	}

	for i := 0; i+n <= len(e.shifts); i++ {
		starts := make(map[time.Time]struct{}, n)
		for _, shift := range e.shifts[i : i+n] {
			// UTC に揃えてロケーション違いの同一時刻を同じキーにする
			starts[shift.Start.UTC()] = struct{}{}
		}
		if len(starts) == n {
			return true
		}
	}

	return false
}

// HasShortBreaks は隣り合う勤務の間の休憩が (minBreak, maxBreak) の範囲に入る組があるかを判定します。
// 休憩時間は (次の勤務の終了 - 当該勤務の開始) から当該勤務の申告時間を引いた値です。
func (e *Employee) HasShortBreaks(minBreak, maxBreak float64) bool {
	for i := 0; i+1 < len(e.shifts); i++ {
		current, next := e.shifts[i], e.shifts[i+1]
		total := next.End.Sub(current.Start).Hours()
		breakHours := total - current.RecordedHours
		if breakHours > minBreak && breakHours < maxBreak {
			return true
		}
	}

	return false
}

// HasLongShifts は maxHours を超える勤務が 1 件でもあるかを判定します。
func (e *Employee) HasLongShifts(maxHours float64) bool {
	for _, shift := range e.shifts {
		if shift.Span() > maxHours {
			return true
		}
	}

	return false
}
