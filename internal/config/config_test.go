package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 检查默认值
	if cfg.Samples != 20000 {
		t.Errorf("Expected SAMPLES default 20000, got %d", cfg.Samples)
	}

	if cfg.TargetPrevalence != 0.29 {
		t.Errorf("Expected TARGET_PREVALENCE default 0.29, got %g", cfg.TargetPrevalence)
	}

	if cfg.Seed != 42 {
		t.Errorf("Expected SEED default 42, got %d", cfg.Seed)
	}

	if cfg.Tolerance != 0.01 {
		t.Errorf("Expected TOLERANCE default 0.01, got %g", cfg.Tolerance)
	}

	if cfg.StartDate != "2023-01-01" {
		t.Errorf("Expected START_DATE default '2023-01-01', got '%s'", cfg.StartDate)
	}

	if cfg.Output.Dir != "dataset" {
		t.Errorf("Expected OUTPUT_DIR default 'dataset', got '%s'", cfg.Output.Dir)
	}

	if cfg.Output.File != "dummy_data.csv" {
		t.Errorf("Expected OUTPUT_FILE default 'dummy_data.csv', got '%s'", cfg.Output.File)
	}

	if cfg.Output.Format != "csv" {
		t.Errorf("Expected OUTPUT_FORMAT default 'csv', got '%s'", cfg.Output.Format)
	}

	if cfg.DBEnabled {
		t.Error("Expected DB_ENABLED default false")
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected DB_HOST default 'localhost', got '%s'", cfg.Database.Host)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT default 5432, got %d", cfg.Database.Port)
	}

	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// 设置环境变量
	os.Setenv("SAMPLES", "1000")
	os.Setenv("TARGET_PREVALENCE", "0.35")
	os.Setenv("SEED", "7")
	os.Setenv("OUTPUT_DIR", "out")
	os.Setenv("OUTPUT_FORMAT", "xlsx")
	os.Setenv("DB_ENABLED", "true")
	os.Setenv("DB_NAME", "test-db")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("SAMPLES")
		os.Unsetenv("TARGET_PREVALENCE")
		os.Unsetenv("SEED")
		os.Unsetenv("OUTPUT_DIR")
		os.Unsetenv("OUTPUT_FORMAT")
		os.Unsetenv("DB_ENABLED")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 检查环境变量值
	if cfg.Samples != 1000 {
		t.Errorf("Expected SAMPLES 1000, got %d", cfg.Samples)
	}

	if cfg.TargetPrevalence != 0.35 {
		t.Errorf("Expected TARGET_PREVALENCE 0.35, got %g", cfg.TargetPrevalence)
	}

	if cfg.Seed != 7 {
		t.Errorf("Expected SEED 7, got %d", cfg.Seed)
	}

	if cfg.Output.Dir != "out" {
		t.Errorf("Expected OUTPUT_DIR 'out', got '%s'", cfg.Output.Dir)
	}

	if cfg.Output.Format != "xlsx" {
		t.Errorf("Expected OUTPUT_FORMAT 'xlsx', got '%s'", cfg.Output.Format)
	}

	if !cfg.DBEnabled {
		t.Error("Expected DB_ENABLED true")
	}

	if cfg.Database.Database != "test-db" {
		t.Errorf("Expected DB_NAME 'test-db', got '%s'", cfg.Database.Database)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_MalformedGenerationParams(t *testing.T) {
	// 生成参数格式错误必须报错，不能静默取默认值
	cases := []struct {
		key   string
		value string
	}{
		{"SAMPLES", "abc"},
		{"TARGET_PREVALENCE", "zero.29"},
		{"SEED", "not-a-seed"},
		{"TOLERANCE", "1%"},
	}

	for _, tc := range cases {
		os.Clearenv()
		os.Setenv(tc.key, tc.value)

		_, err := Load()
		if err == nil {
			t.Errorf("Expected error for %s=%q, got nil", tc.key, tc.value)
		}
	}
	os.Clearenv()
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		return cfg
	}

	// 合法配置
	if err := base().Validate(); err != nil {
		t.Errorf("Expected valid default config, got %v", err)
	}

	// N <= 0
	cfg := base()
	cfg.Samples = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}

	cfg = base()
	cfg.Samples = -5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}

	// t 不在 (0,1)
	cfg = base()
	cfg.TargetPrevalence = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidPrevalence) {
		t.Errorf("Expected ErrInvalidPrevalence, got %v", err)
	}

	cfg = base()
	cfg.TargetPrevalence = 1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidPrevalence) {
		t.Errorf("Expected ErrInvalidPrevalence, got %v", err)
	}

	// 容差越界
	cfg = base()
	cfg.Tolerance = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("Expected ErrInvalidTolerance, got %v", err)
	}

	// 输出格式
	cfg = base()
	cfg.Output.Format = "parquet"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}

	// 基准日期
	cfg = base()
	cfg.StartDate = "01/01/2023"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidStartDate) {
		t.Errorf("Expected ErrInvalidStartDate, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	os.Clearenv()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`samples: 500
target_prevalence: 0.4
seed: 99
output:
  dir: custom
  format: xlsx
log:
  level: warn
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Samples != 500 {
		t.Errorf("Expected samples 500 from file, got %d", cfg.Samples)
	}
	if cfg.TargetPrevalence != 0.4 {
		t.Errorf("Expected target_prevalence 0.4 from file, got %g", cfg.TargetPrevalence)
	}
	if cfg.Seed != 99 {
		t.Errorf("Expected seed 99 from file, got %d", cfg.Seed)
	}
	if cfg.Output.Dir != "custom" {
		t.Errorf("Expected output dir 'custom' from file, got '%s'", cfg.Output.Dir)
	}
	// 文件中未出现的字段保持默认值
	if cfg.Output.File != "dummy_data.csv" {
		t.Errorf("Expected output file default to survive file overlay, got '%s'", cfg.Output.File)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected log level 'warn' from file, got '%s'", cfg.Log.Level)
	}

	// 不存在的文件
	if err := cfg.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}
