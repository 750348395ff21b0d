package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置校验错误（在任何采样开始前返回）
var (
	ErrInvalidSamples    = errors.New("samples must be a positive integer")
	ErrInvalidPrevalence = errors.New("target prevalence must be in (0, 1)")
	ErrInvalidTolerance  = errors.New("tolerance must be in (0, 1)")
	ErrInvalidStartDate  = errors.New("start date must be in YYYY-MM-DD format")
	ErrInvalidFormat     = errors.New("output format must be csv or xlsx")
)

// startDateLayout 录入时间基准日期的格式
const startDateLayout = "2006-01-02"

// DatabaseConfig 数据库配置（运行登记目录用）
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Config 数据集工具配置
// 所有管线阶段都由这一份配置驱动；输出是 (config, seed) 的纯函数
type Config struct {
	// 生成参数
	Samples          int     `yaml:"samples"`           // 样本数 N（必须 > 0）
	TargetPrevalence float64 `yaml:"target_prevalence"` // 目标阳性率 t ∈ (0,1)
	Seed             int64   `yaml:"seed"`              // 随机种子
	Tolerance        float64 `yaml:"tolerance"`         // 阳性率校准容差（默认 0.01）
	StartDate        string  `yaml:"start_date"`        // input_time 基准日期（YYYY-MM-DD）

	// 输出
	Output struct {
		Dir    string `yaml:"dir"`    // 输出目录
		File   string `yaml:"file"`   // 输出文件名
		Format string `yaml:"format"` // csv 或 xlsx
	} `yaml:"output"`

	// 运行登记目录（可选；连接失败时退回内存实现，不影响生成）
	DBEnabled bool           `yaml:"db_enabled"`
	Database  DatabaseConfig `yaml:"database"`

	// 运行摘要发布（可选）
	RedisEnabled bool `yaml:"redis_enabled"`
	Redis        struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load 从环境变量加载配置（未设置的项取默认值）
// 生成参数（SAMPLES / TARGET_PREVALENCE / SEED / TOLERANCE）格式错误直接报错，
// 不做静默兜底：种子被静默替换后"同种子复现"就失效了
func Load() (*Config, error) {
	cfg := &Config{}

	var err error
	cfg.Samples, err = parseIntStrict("SAMPLES", 20000)
	if err != nil {
		return nil, err
	}
	cfg.TargetPrevalence, err = parseFloatStrict("TARGET_PREVALENCE", 0.29)
	if err != nil {
		return nil, err
	}
	cfg.Seed, err = parseInt64Strict("SEED", 42)
	if err != nil {
		return nil, err
	}
	cfg.Tolerance, err = parseFloatStrict("TOLERANCE", 0.01)
	if err != nil {
		return nil, err
	}
	cfg.StartDate = getEnv("START_DATE", "2023-01-01")

	cfg.Output.Dir = getEnv("OUTPUT_DIR", "dataset")
	cfg.Output.File = getEnv("OUTPUT_FILE", "dummy_data.csv")
	cfg.Output.Format = getEnv("OUTPUT_FORMAT", "csv")

	// 登记目录默认关闭：单次生成不强依赖数据库
	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "disease_ml")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

// LoadFile 从 YAML 文件覆盖配置（文件中未出现的字段保持原值）
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate 校验生成参数（在任何采样开始前调用）
func (c *Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.Samples)
	}
	if c.TargetPrevalence <= 0 || c.TargetPrevalence >= 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidPrevalence, c.TargetPrevalence)
	}
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidTolerance, c.Tolerance)
	}
	if c.Output.Format != "csv" && c.Output.Format != "xlsx" {
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.Format)
	}
	if _, err := time.Parse(startDateLayout, c.StartDate); err != nil {
		return fmt.Errorf("%w: got %q", ErrInvalidStartDate, c.StartDate)
	}
	return nil
}

// BaseTime 解析 input_time 基准日期（调用前需先 Validate）
func (c *Config) BaseTime() time.Time {
	t, _ := time.Parse(startDateLayout, c.StartDate)
	return t
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseIntStrict(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return i, nil
}

func parseInt64Strict(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return i, nil
}

func parseFloatStrict(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}
