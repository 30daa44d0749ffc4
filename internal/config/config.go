// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/framebench/internal/benchmark"
	"github.com/jeranaias/framebench/internal/util"
	"github.com/jeranaias/framebench/internal/workload"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete framebench configuration.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	// What to run
	Benchmark BenchmarkSettings `toml:"benchmark" json:"benchmark" yaml:"benchmark"`

	// Iteration windows
	Timing TimingConfig `toml:"timing" json:"timing" yaml:"timing"`

	// Frame clock
	Clock ClockConfig `toml:"clock" json:"clock" yaml:"clock"`

	// Deck list workload
	Workload WorkloadConfig `toml:"workload" json:"workload" yaml:"workload"`

	// Report destinations
	Output OutputConfig `toml:"output" json:"output" yaml:"output"`

	// Prometheus export
	Metrics MetricsConfig `toml:"metrics" json:"metrics" yaml:"metrics"`
}

// BenchmarkSettings selects the benchmark and its size.
type BenchmarkSettings struct {
	Items       int     `toml:"items" json:"items" yaml:"items"`
	Iterations  int     `toml:"iterations" json:"iterations" yaml:"iterations"`
	Type        string  `toml:"type" json:"type" yaml:"type"` // static, scroll, memory
	Suite       string  `toml:"suite" json:"suite" yaml:"suite"`
	ScrollSpeed float64 `toml:"scroll_speed" json:"scroll_speed" yaml:"scroll_speed"` // px/s
}

// TimingConfig holds the iteration windows in milliseconds.
type TimingConfig struct {
	StaticSettleMs   int `toml:"static_settle_ms" json:"static_settle_ms" yaml:"static_settle_ms"`
	PreRollMs        int `toml:"pre_roll_ms" json:"pre_roll_ms" yaml:"pre_roll_ms"`
	ScrollSettleMs   int `toml:"scroll_settle_ms" json:"scroll_settle_ms" yaml:"scroll_settle_ms"`
	InterIterationMs int `toml:"inter_iteration_ms" json:"inter_iteration_ms" yaml:"inter_iteration_ms"`
	BaselineDelayMs  int `toml:"baseline_delay_ms" json:"baseline_delay_ms" yaml:"baseline_delay_ms"`
}

// ClockConfig picks the frame source.
type ClockConfig struct {
	// Mode is "virtual" (simulated time, as fast as possible) or "ticker"
	// (wall clock).
	Mode      string  `toml:"mode" json:"mode" yaml:"mode"`
	RefreshHz float64 `toml:"refresh_hz" json:"refresh_hz" yaml:"refresh_hz"`
}

// WorkloadConfig sizes the deck list.
type WorkloadConfig struct {
	DBPath      string  `toml:"db_path" json:"db_path" yaml:"db_path"`
	RowHeightPx float64 `toml:"row_height_px" json:"row_height_px" yaml:"row_height_px"`
	ViewportPx  float64 `toml:"viewport_px" json:"viewport_px" yaml:"viewport_px"`
	RowCostUs   int     `toml:"row_cost_us" json:"row_cost_us" yaml:"row_cost_us"`
	FrameCostUs int     `toml:"frame_cost_us" json:"frame_cost_us" yaml:"frame_cost_us"`
}

// OutputConfig controls where the report goes.
type OutputConfig struct {
	ReportFile string `toml:"report_file" json:"report_file" yaml:"report_file"`
	// Style is "auto", "plain" or "styled".
	Style    string `toml:"style" json:"style" yaml:"style"`
	Progress bool   `toml:"progress" json:"progress" yaml:"progress"`
}

// MetricsConfig controls Prometheus export. Both are off when empty.
type MetricsConfig struct {
	TextfilePath string `toml:"textfile_path" json:"textfile_path" yaml:"textfile_path"`
	ListenAddr   string `toml:"listen_addr" json:"listen_addr" yaml:"listen_addr"`
}

// Clock modes.
const (
	ClockVirtual = "virtual"
	ClockTicker  = "ticker"
)

// Output styles.
const (
	StyleAuto   = "auto"
	StylePlain  = "plain"
	StyleStyled = "styled"
)

// =============================================================================
// DEFAULT VALUES
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	bc := benchmark.DefaultConfig()
	tm := bc.Timing
	lo := workload.DefaultListOptions()

	return &Config{
		Version: "1.0.0",

		Benchmark: BenchmarkSettings{
			Items:       bc.ItemCount,
			Iterations:  bc.Iterations,
			Type:        string(bc.Type),
			ScrollSpeed: bc.ScrollSpeedPxPerSec,
		},

		Timing: TimingConfig{
			StaticSettleMs:   int(tm.StaticSettle / time.Millisecond),
			PreRollMs:        int(tm.PreRoll / time.Millisecond),
			ScrollSettleMs:   int(tm.ScrollSettle / time.Millisecond),
			InterIterationMs: int(tm.InterIteration / time.Millisecond),
			BaselineDelayMs:  int(tm.BaselineDelay / time.Millisecond),
		},

		Clock: ClockConfig{
			Mode:      ClockVirtual,
			RefreshHz: bc.RefreshRateHz,
		},

		Workload: WorkloadConfig{
			DBPath:      ":memory:",
			RowHeightPx: lo.RowHeightPx,
			ViewportPx:  lo.ViewportPx,
			RowCostUs:   int(lo.RowCost / time.Microsecond),
			FrameCostUs: int(lo.FrameCost / time.Microsecond),
		},

		Output: OutputConfig{
			Style:    StyleAuto,
			Progress: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the framebench configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".framebench"), nil
}

// ConfigPaths returns the candidate config files in load order.
func ConfigPaths() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.yaml"),
	}, nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found under
// ~/.framebench (TOML, then JSON, then YAML) and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	paths, err := ConfigPaths()
	if err == nil {
		for _, path := range paths {
			if _, statErr := os.Stat(path); statErr != nil {
				continue
			}
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadYAML loads configuration from a YAML file.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format follows the extension; anything unrecognized is
// read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveToPath writes cfg in the format implied by path's extension,
// TOML when unrecognized.
func SaveToPath(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(cfg, path)
	case ".yaml", ".yml":
		return SaveYAML(cfg, path)
	default:
		return SaveTOML(cfg, path)
	}
}

// SaveTOML writes the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# framebench configuration file")
	fmt.Fprintln(&buf, "# Generated by framebench - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveYAML writes the configuration to a YAML file atomically.
func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Benchmark
	// ==========================================================================

	if c.Benchmark.Items <= 0 {
		errs = append(errs, ValidationError{
			Field:   "benchmark.items",
			Message: fmt.Sprintf("must be positive, got %d", c.Benchmark.Items),
		})
	}
	if c.Benchmark.Iterations <= 0 {
		errs = append(errs, ValidationError{
			Field:   "benchmark.iterations",
			Message: fmt.Sprintf("must be positive, got %d", c.Benchmark.Iterations),
		})
	}
	if _, err := benchmark.ParseType(c.Benchmark.Type); err != nil {
		errs = append(errs, ValidationError{
			Field:   "benchmark.type",
			Message: fmt.Sprintf("invalid type '%s', must be one of: static, scroll, memory", c.Benchmark.Type),
		})
	}
	if c.Benchmark.Suite != "" {
		if _, err := benchmark.FindSuite(c.Benchmark.Suite); err != nil {
			errs = append(errs, ValidationError{
				Field:   "benchmark.suite",
				Message: err.Error(),
			})
		}
	}
	if c.Benchmark.ScrollSpeed <= 0 {
		errs = append(errs, ValidationError{
			Field:   "benchmark.scroll_speed",
			Message: fmt.Sprintf("must be positive, got %v", c.Benchmark.ScrollSpeed),
		})
	}

	// ==========================================================================
	// Timing
	// ==========================================================================

	timings := map[string]int{
		"timing.static_settle_ms":   c.Timing.StaticSettleMs,
		"timing.pre_roll_ms":        c.Timing.PreRollMs,
		"timing.scroll_settle_ms":   c.Timing.ScrollSettleMs,
		"timing.inter_iteration_ms": c.Timing.InterIterationMs,
		"timing.baseline_delay_ms":  c.Timing.BaselineDelayMs,
	}
	for _, field := range slices.Sorted(maps.Keys(timings)) {
		if timings[field] < 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must not be negative, got %d", timings[field]),
			})
		}
	}

	// ==========================================================================
	// Clock
	// ==========================================================================

	validModes := map[string]bool{ClockVirtual: true, ClockTicker: true}
	if !validModes[strings.ToLower(c.Clock.Mode)] {
		errs = append(errs, ValidationError{
			Field:   "clock.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: virtual, ticker", c.Clock.Mode),
		})
	}
	if c.Clock.RefreshHz <= 0 || c.Clock.RefreshHz > 1000 {
		errs = append(errs, ValidationError{
			Field:   "clock.refresh_hz",
			Message: fmt.Sprintf("must be in (0, 1000], got %v", c.Clock.RefreshHz),
		})
	}

	// ==========================================================================
	// Workload
	// ==========================================================================

	if c.Workload.DBPath == "" {
		errs = append(errs, ValidationError{
			Field:   "workload.db_path",
			Message: "must not be empty (use :memory: for an in-memory database)",
		})
	}
	if c.Workload.RowHeightPx <= 0 {
		errs = append(errs, ValidationError{
			Field:   "workload.row_height_px",
			Message: fmt.Sprintf("must be positive, got %v", c.Workload.RowHeightPx),
		})
	}
	if c.Workload.ViewportPx <= 0 {
		errs = append(errs, ValidationError{
			Field:   "workload.viewport_px",
			Message: fmt.Sprintf("must be positive, got %v", c.Workload.ViewportPx),
		})
	}
	if c.Workload.RowCostUs < 0 || c.Workload.FrameCostUs < 0 {
		errs = append(errs, ValidationError{
			Field:   "workload.row_cost_us",
			Message: "render costs must not be negative",
		})
	}

	// ==========================================================================
	// Output and metrics
	// ==========================================================================

	validStyles := map[string]bool{StyleAuto: true, StylePlain: true, StyleStyled: true}
	if !validStyles[strings.ToLower(c.Output.Style)] {
		errs = append(errs, ValidationError{
			Field:   "output.style",
			Message: fmt.Sprintf("invalid style '%s', must be one of: auto, plain, styled", c.Output.Style),
		})
	}
	if c.Metrics.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(c.Metrics.ListenAddr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "metrics.listen_addr",
				Message: fmt.Sprintf("invalid address '%s': %v", c.Metrics.ListenAddr, err),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
// The timing block is only defaulted when every window is zero, matching
// the engine: a single zero window is kept as configured.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Benchmark.Items == 0 {
		c.Benchmark.Items = defaults.Benchmark.Items
	}
	if c.Benchmark.Iterations == 0 {
		c.Benchmark.Iterations = defaults.Benchmark.Iterations
	}
	if c.Benchmark.Type == "" {
		c.Benchmark.Type = defaults.Benchmark.Type
	}
	if c.Benchmark.ScrollSpeed == 0 {
		c.Benchmark.ScrollSpeed = defaults.Benchmark.ScrollSpeed
	}

	if c.Timing == (TimingConfig{}) {
		c.Timing = defaults.Timing
	}

	if c.Clock.Mode == "" {
		c.Clock.Mode = defaults.Clock.Mode
	}
	c.Clock.Mode = strings.ToLower(c.Clock.Mode)
	if c.Clock.RefreshHz == 0 {
		c.Clock.RefreshHz = defaults.Clock.RefreshHz
	}

	if c.Workload.DBPath == "" {
		c.Workload.DBPath = defaults.Workload.DBPath
	}
	if c.Workload.RowHeightPx == 0 {
		c.Workload.RowHeightPx = defaults.Workload.RowHeightPx
	}
	if c.Workload.ViewportPx == 0 {
		c.Workload.ViewportPx = defaults.Workload.ViewportPx
	}
	if c.Workload.RowCostUs == 0 && c.Workload.FrameCostUs == 0 {
		c.Workload.RowCostUs = defaults.Workload.RowCostUs
		c.Workload.FrameCostUs = defaults.Workload.FrameCostUs
	}

	if c.Output.Style == "" {
		c.Output.Style = defaults.Output.Style
	}
	c.Output.Style = strings.ToLower(c.Output.Style)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
// Unparseable numbers are ignored.
//
// Supported environment variables:
//   - FRAMEBENCH_ITEMS: overrides benchmark.items
//   - FRAMEBENCH_ITERATIONS: overrides benchmark.iterations
//   - FRAMEBENCH_TYPE: overrides benchmark.type
//   - FRAMEBENCH_REFRESH_HZ: overrides clock.refresh_hz
//   - FRAMEBENCH_CLOCK: overrides clock.mode
//   - FRAMEBENCH_DB: overrides workload.db_path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FRAMEBENCH_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Benchmark.Items = n
		}
	}

	if v := os.Getenv("FRAMEBENCH_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Benchmark.Iterations = n
		}
	}

	if v := os.Getenv("FRAMEBENCH_TYPE"); v != "" {
		c.Benchmark.Type = v
	}

	if v := os.Getenv("FRAMEBENCH_REFRESH_HZ"); v != "" {
		if hz, err := strconv.ParseFloat(v, 64); err == nil {
			c.Clock.RefreshHz = hz
		}
	}

	if v := os.Getenv("FRAMEBENCH_CLOCK"); v != "" {
		c.Clock.Mode = v
	}

	if v := os.Getenv("FRAMEBENCH_DB"); v != "" {
		c.Workload.DBPath = v
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

// BenchmarkConfig converts the file settings into the engine's run
// configuration. A named suite overrides items, iterations and type.
func (c *Config) BenchmarkConfig() (benchmark.Config, error) {
	t, err := benchmark.ParseType(c.Benchmark.Type)
	if err != nil {
		return benchmark.Config{}, err
	}

	bc := benchmark.Config{
		ItemCount:           c.Benchmark.Items,
		Iterations:          c.Benchmark.Iterations,
		Type:                t,
		RefreshRateHz:       c.Clock.RefreshHz,
		ScrollSpeedPxPerSec: c.Benchmark.ScrollSpeed,
		Timing: benchmark.Timing{
			StaticSettle:   ms(c.Timing.StaticSettleMs),
			PreRoll:        ms(c.Timing.PreRollMs),
			ScrollSettle:   ms(c.Timing.ScrollSettleMs),
			InterIteration: ms(c.Timing.InterIterationMs),
			BaselineDelay:  ms(c.Timing.BaselineDelayMs),
		},
	}

	if c.Benchmark.Suite != "" {
		suite, err := benchmark.FindSuite(c.Benchmark.Suite)
		if err != nil {
			return benchmark.Config{}, err
		}
		bc = suite.Apply(bc)
	}
	return bc, nil
}

// ListOptions converts the workload section for workload.NewDeckList.
func (c *Config) ListOptions() workload.ListOptions {
	return workload.ListOptions{
		RowHeightPx: c.Workload.RowHeightPx,
		ViewportPx:  c.Workload.ViewportPx,
		RowCost:     time.Duration(c.Workload.RowCostUs) * time.Microsecond,
		FrameCost:   time.Duration(c.Workload.FrameCostUs) * time.Microsecond,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "clock.refresh_hz").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "benchmark.items").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"benchmark.items",
		"benchmark.iterations",
		"benchmark.type",
		"benchmark.suite",
		"benchmark.scroll_speed",
		"timing.static_settle_ms",
		"timing.pre_roll_ms",
		"timing.scroll_settle_ms",
		"timing.inter_iteration_ms",
		"timing.baseline_delay_ms",
		"clock.mode",
		"clock.refresh_hz",
		"workload.db_path",
		"workload.row_height_px",
		"workload.viewport_px",
		"workload.row_cost_us",
		"workload.frame_cost_us",
		"output.report_file",
		"output.style",
		"output.progress",
		"metrics.textfile_path",
		"metrics.listen_addr",
	}
}

// Clone returns a copy of the configuration. Config holds no reference
// types, so a value copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
