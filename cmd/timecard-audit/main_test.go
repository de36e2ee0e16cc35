package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const timecardCSV = `Position ID,Position Status,Time,Time Out,Timecard Hours (as Time),Pay Cycle Start Date,Pay Cycle End Date,Employee Name,File Number
P1,Active,2024-01-01 06:00,2024-01-01 21:00,15:00,2024-01-01,2024-01-14,Jane Doe,E1
P1,Active,2024-01-02 06:00,2024-01-02 14:00,8:00,2024-01-01,2024-01-14,Jane Doe,E1
P2,Active,2024-01-01 08:00,2024-01-01 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P2,Active,2024-01-02 08:00,2024-01-02 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P2,Active,2024-01-03 08:00,2024-01-03 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P2,Active,2024-01-04 08:00,2024-01-04 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P2,Active,2024-01-05 08:00,2024-01-05 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P2,Active,2024-01-06 08:00,2024-01-06 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P2,Active,2024-01-07 08:00,2024-01-07 16:00,8:00,2024-01-01,2024-01-14,Rick Roe,E2
P3,Active,2024-01-01 08:00,2024-01-01 12:00,4:00,2024-01-01,2024-01-14,Ann Poe,E3
P3,Active,2024-01-01 13:00,2024-01-01 17:00,4:00,2024-01-01,2024-01-14,Ann Poe,E3
P3,Active,not a time,2024-01-02 17:00,4:00,2024-01-01,2024-01-14,Ann Poe,E3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_PrintsReport(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "timecard.csv", timecardCSV)
	cfg := writeFile(t, dir, "config.yaml", "source:\n  header_rows: 1\nlogging:\n  level: error\n")

	stdout, stderr, err := execute(t, "--config", cfg, "--diagnostics", data)
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}

	want := `Employees who have worked for 7 consecutive days:
Employee ID: E2

Employees with less than 10 hours between shifts but greater than 1 hour:
Employee ID: E3

Employees who have worked for more than 14 hours in a single shift:
Employee ID: E1
`
	if stdout != want {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", stdout, want)
	}

	if !strings.Contains(stderr, "row 13: start:") {
		t.Fatalf("expected diagnostic for row 13, got %q", stderr)
	}
}

func TestRootCmd_ByName(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "timecard.csv", timecardCSV)
	cfg := writeFile(t, dir, "config.yaml", "source:\n  header_rows: 1\nlogging:\n  level: error\n")

	stdout, _, err := execute(t, "--config", cfg, "--identity", "name", data)
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(stdout, "Employee name: Jane Doe\n") {
		t.Fatalf("expected name-keyed output, got:\n%s", stdout)
	}
}

func TestRootCmd_MissingInputFails(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "logging:\n  level: error\n")

	_, _, err := execute(t, "--config", cfg, filepath.Join(dir, "missing.csv"))
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestRootCmd_ExplicitConfigMustExist(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEffectiveConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if path, explicit := effectiveConfigPath(""); path != defaultConfigPath || explicit {
		t.Fatalf("unexpected default path %q explicit=%v", path, explicit)
	}

	t.Setenv("CONFIG_PATH", "/etc/timecard.yaml")
	if path, explicit := effectiveConfigPath(""); path != "/etc/timecard.yaml" || !explicit {
		t.Fatalf("unexpected env path %q explicit=%v", path, explicit)
	}

	if path, _ := effectiveConfigPath("flag.yaml"); path != "flag.yaml" {
		t.Fatalf("flag should win, got %q", path)
	}
}
