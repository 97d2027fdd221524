// Package config loads trigger configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/westat/peregrine/pkg/logging"
	"github.com/westat/peregrine/pkg/trigger"
)

// EnvPrefix is prepended to every environment override, e.g. PEREGRINE_CRAWLER_NAME.
const EnvPrefix = "PEREGRINE"

type Config struct {
	Crawler CrawlerConfig  `mapstructure:"crawler"`
	AWS     AWSConfig      `mapstructure:"aws"`
	Log     logging.Config `mapstructure:"log"`
	Server  ServerConfig   `mapstructure:"server"`
}

// CrawlerConfig names the crawler and how a start against a running crawler is reported.
type CrawlerConfig struct {
	Name           string `mapstructure:"name"`
	AlreadyRunning string `mapstructure:"already_running"`
}

// AWSConfig overrides parts of the ambient AWS configuration. Empty values keep the SDK defaults.
type AWSConfig struct {
	Region           string `mapstructure:"region"`
	Profile          string `mapstructure:"profile"`
	Endpoint         string `mapstructure:"endpoint"`
	RetryMaxAttempts int    `mapstructure:"retry_max_attempts"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Load builds a Config from defaults, an optional file and the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.name", trigger.DefaultCrawlerName)
	v.SetDefault("crawler.already_running", string(trigger.PolicyFail))
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.retry_max_attempts", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)
	v.SetDefault("server.port", 8080)
}

// Validate enforces required values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Crawler.Name) == "" {
		return fmt.Errorf("crawler.name must be set")
	}
	if _, err := trigger.ParseAlreadyRunningPolicy(c.Crawler.AlreadyRunning); err != nil {
		return fmt.Errorf("crawler.already_running: %w", err)
	}
	if c.AWS.RetryMaxAttempts < 0 {
		return fmt.Errorf("aws.retry_max_attempts must be >= 0")
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("log.format must be %q or %q", logging.FormatJSON, logging.FormatText)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	return nil
}

// Policy returns the validated already-running policy.
func (c Config) Policy() trigger.AlreadyRunningPolicy {
	p, err := trigger.ParseAlreadyRunningPolicy(c.Crawler.AlreadyRunning)
	if err != nil {
		return trigger.PolicyFail
	}
	return p
}
