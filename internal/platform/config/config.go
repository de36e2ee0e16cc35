package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// SourceConfig は勤務表ファイルの読み込み設定です。
type SourceConfig struct {
	Path        string         `yaml:"path"`
	Format      string         `yaml:"format"`
	Sheet       string         `yaml:"sheet"`
	HeaderRows  int            `yaml:"header_rows"`
	Identity    string         `yaml:"identity"`
	Columns     ColumnsConfig  `yaml:"columns"`
	TimeLayouts []string       `yaml:"time_layouts"`
	LocationRaw string         `yaml:"location"`
	Location    *time.Location `yaml:"-"`
}

// ColumnsConfig は 1 始まりの列番号です。0 は未使用を表します。
type ColumnsConfig struct {
	ID       int `yaml:"id"`
	Name     int `yaml:"name"`
	Start    int `yaml:"start"`
	End      int `yaml:"end"`
	Duration int `yaml:"duration"`
}

// RulesConfig は判定しきい値の設定です。
type RulesConfig struct {
	ConsecutiveDays int     `yaml:"consecutive_days"`
	MinBreakHours   float64 `yaml:"min_break_hours"`
	MaxBreakHours   float64 `yaml:"max_break_hours"`
	MaxShiftHours   float64 `yaml:"max_shift_hours"`
}

// LoggingConfig はロガーの設定です。
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// DefaultTimeLayouts はテキストのタイムスタンプを解釈する既定のレイアウトです。
var DefaultTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/06 15:04",
}

// Default は設定ファイルがない場合の既定値を返します。
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{ListenAddr: ":50051"},
		Source: SourceConfig{Path: "Assignment_Timecard.xlsx"},
	}
	// 既定値のみなので検証エラーは起きない
	_ = cfg.validateAndNormalize()
	return cfg
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Normalize は外部から上書きした値を含めて設定を再検証します。
func (c *Config) Normalize() error {
	return c.validateAndNormalize()
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":50051"
	}

	if err := c.Source.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Rules.validateAndNormalize(); err != nil {
		return err
	}

	switch strings.ToLower(c.Logging.Level) {
	case "":
		c.Logging.Level = "info"
	case "debug", "info", "warn", "error":
		c.Logging.Level = strings.ToLower(c.Logging.Level)
	default:
		return fmt.Errorf("config: logging.level %q is not supported", c.Logging.Level)
	}

	return nil
}

func (s *SourceConfig) validateAndNormalize() error {
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if s.Format == "" && s.Path != "" {
		s.Format = FormatFromPath(s.Path)
	}
	switch s.Format {
	case "", FormatXLSX, FormatCSV:
	default:
		return fmt.Errorf("config: source.format %q is not supported", s.Format)
	}

	switch strings.ToLower(strings.TrimSpace(s.Identity)) {
	case "", "id":
		s.Identity = "id"
	case "name":
		s.Identity = "name"
	default:
		return fmt.Errorf("config: source.identity must be \"id\" or \"name\", got %q", s.Identity)
	}

	if s.HeaderRows < 0 {
		return fmt.Errorf("config: source.header_rows must not be negative")
	}

	c := &s.Columns
	if c.ID == 0 && c.Name == 0 && c.Start == 0 && c.End == 0 && c.Duration == 0 {
		c.ID, c.Name, c.Start, c.End, c.Duration = 9, 8, 3, 4, 5
	}
	if c.ID < 0 || c.Name < 0 || c.Start < 0 || c.End < 0 || c.Duration < 0 {
		return fmt.Errorf("config: source.columns must not be negative")
	}
	if c.Start == 0 || c.End == 0 || c.Duration == 0 {
		return fmt.Errorf("config: source.columns.start, end and duration must be set")
	}
	if s.Identity == "id" && c.ID == 0 {
		return fmt.Errorf("config: source.columns.id must be set when identity is id")
	}
	if s.Identity == "name" && c.Name == 0 {
		return fmt.Errorf("config: source.columns.name must be set when identity is name")
	}

	if len(s.TimeLayouts) == 0 {
		s.TimeLayouts = append([]string(nil), DefaultTimeLayouts...)
	}

	loc, err := loadLocationAllowEmpty(s.LocationRaw)
	if err != nil {
		return fmt.Errorf("config: source.location: %w", err)
	}
	s.Location = loc

	return nil
}

func (r *RulesConfig) validateAndNormalize() error {
	if r.ConsecutiveDays == 0 {
		r.ConsecutiveDays = 7
	}
	if r.MinBreakHours == 0 && r.MaxBreakHours == 0 {
		r.MinBreakHours, r.MaxBreakHours = 1, 10
	}
	if r.MaxShiftHours == 0 {
		r.MaxShiftHours = 14
	}

	if r.ConsecutiveDays < 0 {
		return fmt.Errorf("config: rules.consecutive_days must be positive")
	}
	if r.MinBreakHours >= r.MaxBreakHours {
		return fmt.Errorf("config: rules.min_break_hours must be less than rules.max_break_hours")
	}
	if r.MaxShiftHours < 0 {
		return fmt.Errorf("config: rules.max_shift_hours must not be negative")
	}
	return nil
}

func loadLocationAllowEmpty(raw string) (*time.Location, error) {
	if raw == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(raw)
}

// FormatFromPath は拡張子から入力形式を推定します。
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	default:
		return ""
	}
}
