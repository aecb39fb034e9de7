package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig covers everything except the database connection.
type AppConfig struct {
	// Listen addresses.
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"`

	// Timezone appointments' date and time are expressed in.
	Timezone string `yaml:"timezone"`

	// Calendar export.
	EventDuration time.Duration `yaml:"event_duration"`
	CalendarUID   string        `yaml:"calendar_uid_domain"`
	ProductID     string        `yaml:"calendar_product_id"`

	// No-show sweep: cron spec and how long after the start an unattended
	// appointment is flagged. Empty spec disables the sweep.
	NoShowCron  string        `yaml:"no_show_cron"`
	NoShowGrace time.Duration `yaml:"no_show_grace"`

	// Per-peer gRPC rate limit, requests per second and burst.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// Default page size for list responses.
	PageSize int `yaml:"page_size"`

	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		GRPCAddr:      ":50051",
		HTTPAddr:      ":8080",
		Timezone:      "Europe/Paris",
		EventDuration: time.Hour,
		CalendarUID:   "rdvdesk",
		ProductID:     "-//rdvdesk//Appointment Core//FR",
		NoShowCron:    "*/15 * * * *",
		NoShowGrace:   30 * time.Minute,
		RateLimit:     5,
		RateBurst:     10,
		PageSize:      20,
		LogLevel:      "info",
	}
}

// Normalize fills zero values with defaults.
func (c *AppConfig) Normalize() {
	def := DefaultAppConfig()
	if c.GRPCAddr == "" {
		c.GRPCAddr = def.GRPCAddr
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = def.HTTPAddr
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.EventDuration <= 0 {
		c.EventDuration = def.EventDuration
	}
	if c.CalendarUID == "" {
		c.CalendarUID = def.CalendarUID
	}
	if c.ProductID == "" {
		c.ProductID = def.ProductID
	}
	if c.NoShowGrace < 0 {
		c.NoShowGrace = def.NoShowGrace
	}
	if c.RateLimit <= 0 {
		c.RateLimit = def.RateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = def.RateBurst
	}
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Location resolves Timezone.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LoadAppConfig reads .env (if any), then the YAML file at path (a missing
// file means defaults), then applies environment overrides.
func LoadAppConfig(path string) (*AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultAppConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.Normalize()

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	c.GRPCAddr = getEnv("CORE_GRPC_ADDR", c.GRPCAddr)
	c.HTTPAddr = getEnv("CORE_HTTP_ADDR", c.HTTPAddr)
	c.Timezone = getEnv("CORE_TIMEZONE", c.Timezone)
	c.EventDuration = getEnvDuration("CORE_EVENT_DURATION", c.EventDuration)
	c.CalendarUID = getEnv("CORE_CALENDAR_UID_DOMAIN", c.CalendarUID)
	c.ProductID = getEnv("CORE_CALENDAR_PRODUCT_ID", c.ProductID)
	c.NoShowCron = getEnv("CORE_NO_SHOW_CRON", c.NoShowCron)
	c.NoShowGrace = getEnvDuration("CORE_NO_SHOW_GRACE", c.NoShowGrace)
	c.RateLimit = getEnvFloat("CORE_RATE_LIMIT", c.RateLimit)
	c.RateBurst = getEnvInt("CORE_RATE_BURST", c.RateBurst)
	c.PageSize = getEnvInt("CORE_PAGE_SIZE", c.PageSize)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if v, ok := os.LookupEnv("LOG_PRETTY"); ok {
		c.LogPretty = v == "1" || v == "true"
	}
}
