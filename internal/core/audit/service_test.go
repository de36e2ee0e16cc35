package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSource struct {
	rows  []timecard.Row
	err   error
	calls int
}

func (f *fakeSource) Load(_ context.Context) ([]timecard.Row, error) {
	f.calls++
	return f.rows, f.err
}

type stubIDs struct {
	id string
}

func (s stubIDs) NewID() string {
	return s.id
}

func weekRows(identity string) []timecard.Row {
	rows := make([]timecard.Row, 0, 7)
	for i := 0; i < 7; i++ {
		start := day0.AddDate(0, 0, i)
		rows = append(rows, timecard.Row{
			Number:   i + 2,
			ID:       identity,
			Name:     "Name " + identity,
			Start:    start,
			End:      start.Add(8 * time.Hour),
			Duration: "8:00",
		})
	}
	return rows
}

func TestService_Run(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	rows := append([]timecard.Row{{Number: 1, ID: "Employee ID", Err: timecard.ErrInvalidTimestamp}}, weekRows("E1")...)
	rows = append(rows, timecard.Row{Number: 9, ID: "E2", Start: hoursAfter(0), End: hoursAfter(15), Duration: "15:00"})
	src := &fakeSource{rows: rows}

	svc := NewService(DefaultRules(), timecard.IdentityByID, zap.New(core), stubIDs{id: "run-1"})
	report, err := svc.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if src.calls != 1 {
		t.Fatalf("expected source to be loaded once, got %d", src.calls)
	}
	if report.RunID != "run-1" || report.Strategy != timecard.IdentityByID {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if report.Rows != 9 || report.Employees != 2 {
		t.Fatalf("expected 9 rows and 2 employees, got %d and %d", report.Rows, report.Employees)
	}

	consecutive, _ := report.Section(RuleConsecutiveDays)
	if diff := cmp.Diff([]string{"E1"}, consecutive.Identities); diff != "" {
		t.Fatalf("unexpected consecutive-days identities (-want +got):\n%s", diff)
	}
	long, _ := report.Section(RuleLongShifts)
	if diff := cmp.Diff([]string{"E2"}, long.Identities); diff != "" {
		t.Fatalf("unexpected long-shift identities (-want +got):\n%s", diff)
	}

	if len(report.Diagnostics) != 1 || report.Diagnostics[0].Row != 1 {
		t.Fatalf("expected one diagnostic for row 1, got %v", report.Diagnostics)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
	fields := warnings[0].ContextMap()
	if fields["row"] != int64(1) || fields["run_id"] != "run-1" {
		t.Fatalf("unexpected warning fields: %v", fields)
	}
}

func TestService_RunSourceFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("open Assignment_Timecard.xlsx: no such file")
	svc := NewService(DefaultRules(), "", nil, nil)

	_, err := svc.Run(context.Background(), &fakeSource{err: cause})
	if !errors.Is(err, ErrSourceUnavailable) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}

	if _, err := svc.Run(context.Background(), nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}

func TestService_AuditByName(t *testing.T) {
	t.Parallel()

	svc := NewService(DefaultRules(), timecard.IdentityByID, nil, stubIDs{id: "run-2"})
	report, err := svc.Audit(context.Background(), AuditInput{Rows: weekRows("E7"), Strategy: timecard.IdentityByName})
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}

	section, _ := report.Section(RuleConsecutiveDays)
	if diff := cmp.Diff([]string{"Name E7"}, section.Identities); diff != "" {
		t.Fatalf("unexpected identities (-want +got):\n%s", diff)
	}
	if report.Strategy != timecard.IdentityByName {
		t.Fatalf("expected name strategy, got %q", report.Strategy)
	}
}

func TestService_AuditRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	bad := NewService(Rules{}, timecard.IdentityByID, nil, nil)
	if _, err := bad.Audit(context.Background(), AuditInput{}); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}

	svc := NewService(DefaultRules(), timecard.IdentityByID, nil, nil)
	_, err := svc.Audit(context.Background(), AuditInput{Strategy: "email"})
	if !errors.Is(err, timecard.ErrInvalidIdentityStrategy) {
		t.Fatalf("expected ErrInvalidIdentityStrategy, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Audit(ctx, AuditInput{Rows: weekRows("E1")}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewService_GeneratesRunIDs(t *testing.T) {
	t.Parallel()

	svc := NewService(DefaultRules(), "", nil, nil)
	a, err := svc.Audit(context.Background(), AuditInput{})
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}
	b, _ := svc.Audit(context.Background(), AuditInput{})
	if a.RunID == "" || a.RunID == b.RunID {
		t.Fatalf("expected distinct run ids, got %q and %q", a.RunID, b.RunID)
	}
}
