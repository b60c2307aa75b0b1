// Package config loads service and command settings. Values resolve in
// order: built-in defaults, an optional YAML file, environment variables
// (including a .env file) and finally command-line flags.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the variable holding an optional YAML config path.
const EnvConfigFile = "QRFORM_CONFIG"

// Config holds every tunable of the server and the commands.
type Config struct {
	AppEnv string `yaml:"appEnv"`
	Addr   string `yaml:"addr"`
	Locale string `yaml:"locale"`

	HTTPReadTimeout  time.Duration `yaml:"httpReadTimeout"`
	HTTPWriteTimeout time.Duration `yaml:"httpWriteTimeout"`
	HTTPIdleTimeout  time.Duration `yaml:"httpIdleTimeout"`
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes     int64         `yaml:"maxBodyBytes"`

	Encoder EncoderConfig `yaml:"encoder"`
	Redis   RedisConfig   `yaml:"redis"`
}

// EncoderConfig configures the raster encoder.
type EncoderConfig struct {
	ModuleSize  int    `yaml:"moduleSize"`
	QuietZone   int    `yaml:"quietZone"`
	Recovery    string `yaml:"recovery"`
	JPEGQuality int    `yaml:"jpegQuality"`
}

// RedisConfig configures the optional image cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AppEnv:           "production",
		Addr:             ":8080",
		Locale:           "en",
		HTTPReadTimeout:  15 * time.Second,
		HTTPWriteTimeout: 30 * time.Second,
		HTTPIdleTimeout:  60 * time.Second,
		ShutdownTimeout:  10 * time.Second,
		MaxBodyBytes:     1 << 20,
		Encoder: EncoderConfig{
			ModuleSize:  10,
			QuietZone:   4,
			Recovery:    "medium",
			JPEGQuality: 90,
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
	}
}

// Load reads .env (when present), the YAML file named by QRFORM_CONFIG and
// the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML document at path onto c. Keys absent from the
// file keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with any QRFORM_* variables that are set.
func (c *Config) ApplyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.Addr = getEnv("QRFORM_ADDR", c.Addr)
	if port := getEnv("PORT", ""); port != "" && os.Getenv("QRFORM_ADDR") == "" {
		c.Addr = ":" + port
	}
	c.Locale = getEnv("QRFORM_LOCALE", c.Locale)
	c.HTTPReadTimeout = getEnvDuration("QRFORM_HTTP_READ_TIMEOUT", c.HTTPReadTimeout)
	c.HTTPWriteTimeout = getEnvDuration("QRFORM_HTTP_WRITE_TIMEOUT", c.HTTPWriteTimeout)
	c.HTTPIdleTimeout = getEnvDuration("QRFORM_HTTP_IDLE_TIMEOUT", c.HTTPIdleTimeout)
	c.ShutdownTimeout = getEnvDuration("QRFORM_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.MaxBodyBytes = int64(getEnvInt("QRFORM_MAX_BODY_BYTES", int(c.MaxBodyBytes)))

	c.Encoder.ModuleSize = getEnvInt("QRFORM_MODULE_SIZE", c.Encoder.ModuleSize)
	c.Encoder.QuietZone = getEnvInt("QRFORM_QUIET_ZONE", c.Encoder.QuietZone)
	c.Encoder.Recovery = getEnv("QRFORM_RECOVERY", c.Encoder.Recovery)
	c.Encoder.JPEGQuality = getEnvInt("QRFORM_JPEG_QUALITY", c.Encoder.JPEGQuality)

	c.Redis.Addr = getEnv("QRFORM_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("QRFORM_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("QRFORM_REDIS_DB", c.Redis.DB)
	c.Redis.TTL = getEnvDuration("QRFORM_CACHE_TTL", c.Redis.TTL)
}

// BindEncoderFlags registers encoder flags on fs using the current values as
// defaults, so parsed flags win over file and environment.
func (c *Config) BindEncoderFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Encoder.ModuleSize, "module-size", c.Encoder.ModuleSize, "pixels per module")
	fs.IntVar(&c.Encoder.QuietZone, "quiet-zone", c.Encoder.QuietZone, "quiet zone width in modules")
	fs.StringVar(&c.Encoder.Recovery, "recovery", c.Encoder.Recovery, "error recovery level (low, medium, high, highest)")
	fs.IntVar(&c.Encoder.JPEGQuality, "jpeg-quality", c.Encoder.JPEGQuality, "JPEG quality 1-100")
}

// BindServerFlags registers server flags on fs.
func (c *Config) BindServerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.StringVar(&c.AppEnv, "env", c.AppEnv, "application environment (development, production)")
	fs.StringVar(&c.Locale, "locale", c.Locale, "default form locale")
	fs.StringVar(&c.Redis.Addr, "redis", c.Redis.Addr, "redis address for the image cache (empty disables)")
	c.BindEncoderFlags(fs)
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.Encoder.ModuleSize < 1 {
		errs = append(errs, fmt.Errorf("module size must be positive, got %d", c.Encoder.ModuleSize))
	}
	if c.Encoder.QuietZone < 0 {
		errs = append(errs, fmt.Errorf("quiet zone must not be negative, got %d", c.Encoder.QuietZone))
	}
	if c.Encoder.JPEGQuality < 1 || c.Encoder.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality must be within 1-100, got %d", c.Encoder.JPEGQuality))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Development reports whether AppEnv selects development behaviour.
func (c Config) Development() bool {
	return strings.EqualFold(c.AppEnv, "development") || strings.EqualFold(c.AppEnv, "dev")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s") or bare seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
