package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Board schema and selection policy
	Notion NotionConfig
	Queue  QueueConfig

	// Automation loop
	Automation AutomationConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// NotionConfig describes the user's board schema. Status and type labels are
// free-form in Notion, so they are configuration, never constants in code.
type NotionConfig struct {
	Statuses       StatusConfig
	TypeValues     TypeValuesConfig
	StatusProperty string // Name of the property carrying task status
}

type StatusConfig struct {
	NotStarted string
	InProgress string
	Done       string
}

type TypeValuesConfig struct {
	Epic string
}

type QueueConfig struct {
	Order string // Ordering policy within a partition ("created")
}

type AutomationConfig struct {
	Enabled      bool
	PollInterval time.Duration // How often the loop runs a selection cycle
	CacheSize    int           // Max per-task entries in the board cache
	CacheTTL     time.Duration // Staleness bound without an invalidation
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & logger
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Board schema
	cfg.Notion.Statuses.NotStarted = viper.GetString("notion.statuses.not_started")
	cfg.Notion.Statuses.InProgress = viper.GetString("notion.statuses.in_progress")
	cfg.Notion.Statuses.Done = viper.GetString("notion.statuses.done")
	cfg.Notion.TypeValues.Epic = viper.GetString("notion.type_values.epic")
	cfg.Notion.StatusProperty = viper.GetString("notion.status_property")

	// Selection policy
	cfg.Queue.Order = viper.GetString("queue.order")

	// Automation loop
	cfg.Automation.Enabled = viper.GetBool("automation.enabled")
	cfg.Automation.PollInterval = viper.GetDuration("automation.poll_interval")
	cfg.Automation.CacheSize = viper.GetInt("automation.cache_size")
	cfg.Automation.CacheTTL = viper.GetDuration("automation.cache_ttl")

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Webhook.AllowedIPs = ips

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields the selection engine depends on. The engine
// never defends against missing labels itself, so a bad config must fail
// here, at the boundary.
func (c *Config) Validate() error {
	statuses := []struct {
		key   string
		value string
	}{
		{"notion.statuses.not_started", c.Notion.Statuses.NotStarted},
		{"notion.statuses.in_progress", c.Notion.Statuses.InProgress},
		{"notion.statuses.done", c.Notion.Statuses.Done},
	}

	seen := make(map[string]string, len(statuses))
	for _, s := range statuses {
		if s.value == "" {
			return fmt.Errorf("config: %s is required", s.key)
		}
		if prev, dup := seen[s.value]; dup {
			return fmt.Errorf("config: %s and %s share the label %q", prev, s.key, s.value)
		}
		seen[s.value] = s.key
	}

	if c.Notion.TypeValues.Epic == "" {
		return fmt.Errorf("config: notion.type_values.epic is required")
	}
	if c.Notion.StatusProperty == "" {
		return fmt.Errorf("config: notion.status_property is required")
	}

	switch c.Queue.Order {
	case "created":
	default:
		return fmt.Errorf("config: unknown queue.order %q", c.Queue.Order)
	}

	if c.Automation.PollInterval <= 0 {
		return fmt.Errorf("config: automation.poll_interval must be positive")
	}
	if c.Automation.CacheSize <= 0 {
		return fmt.Errorf("config: automation.cache_size must be positive")
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("notion.statuses.not_started", "Not Started")
	viper.SetDefault("notion.statuses.in_progress", "In Progress")
	viper.SetDefault("notion.statuses.done", "Done")
	viper.SetDefault("notion.type_values.epic", "Epic")
	viper.SetDefault("notion.status_property", "Status")

	viper.SetDefault("queue.order", "created")

	viper.SetDefault("automation.enabled", true)
	viper.SetDefault("automation.poll_interval", "30s")
	viper.SetDefault("automation.cache_size", 512)
	viper.SetDefault("automation.cache_ttl", "5m")

	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}
