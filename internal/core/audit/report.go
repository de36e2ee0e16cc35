package audit

import (
	"fmt"
	"strconv"

	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
)

// Rule は判定ルールの種類です。
type Rule string

const (
	RuleConsecutiveDays Rule = "consecutive_days"
	RuleShortBreaks     Rule = "short_breaks"
	RuleLongShifts      Rule = "long_shifts"
)

// Section は 1 ルール分の判定結果です。Identities は Roster の登録順で重複を含みません。
type Section struct {
	Rule       Rule
	Title      string
	Identities []string
}

// Report は 1 回の監査結果です。
type Report struct {
	RunID       string
	Strategy    timecard.IdentityStrategy
	Sections    []Section
	Diagnostics []timecard.Diagnostic
	Rows        int
	Employees   int
}

// Section は指定したルールの結果を返します。
func (r *Report) Section(rule Rule) (Section, bool) {
	for _, s := range r.Sections {
		if s.Rule == rule {
			return s, true
		}
	}
	return Section{}, false
}

// Evaluate は Roster の全社員に 3 つのルールを適用し、固定順のセクションを返します。
func Evaluate(roster *timecard.Roster, rules Rules) []Section {
	checks := []struct {
		rule  Rule
		title string
		match func(*timecard.Employee) bool
	}{
		{
			rule:  RuleConsecutiveDays,
			title: fmt.Sprintf("Employees who have worked for %d consecutive days:", rules.ConsecutiveDays),
			match: func(e *timecard.Employee) bool { return e.HasConsecutiveDays(rules.ConsecutiveDays) },
		},
		{
			rule: RuleShortBreaks,
			title: fmt.Sprintf("Employees with less than %s hours between shifts but greater than %s hour%s:",
				formatHours(rules.MaxBreakHours), formatHours(rules.MinBreakHours), plural(rules.MinBreakHours)),
			match: func(e *timecard.Employee) bool { return e.HasShortBreaks(rules.MinBreakHours, rules.MaxBreakHours) },
		},
		{
			rule:  RuleLongShifts,
			title: fmt.Sprintf("Employees who have worked for more than %s hours in a single shift:", formatHours(rules.MaxShiftHours)),
			match: func(e *timecard.Employee) bool { return e.HasLongShifts(rules.MaxShiftHours) },
		},
	}

	sections := make([]Section, 0, len(checks))
	for _, c := range checks {
		section := Section{Rule: c.rule, Title: c.title, Identities: []string{}}
		seen := make(map[string]struct{})
		for _, emp := range roster.Employees() {
			if _, dup := seen[emp.Identity()]; dup {
				continue
			}
			if c.match(emp) {
				seen[emp.Identity()] = struct{}{}
				section.Identities = append(section.Identities, emp.Identity())
			}
		}
		sections = append(sections, section)
	}

	return sections
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(v float64) string {
	if v == 1 {
		return ""
	}
	return "s"
}
