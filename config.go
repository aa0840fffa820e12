package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr = ":8080"
	defaultSubmitRate = "30-M"
)

// Options are read from the command line and the environment. Values left
// unset there are taken from the YAML file named by --config, if any.
type Options struct {
	ConfigFile  string   `long:"config" env:"CONFIG_FILE" yaml:"-" description:"YAML configuration file"`
	ServerURL   string   `short:"s" long:"server" env:"SERVER_URL" yaml:"server" description:"API server host or base URL"`
	ListenAddr  string   `short:"l" long:"listen" env:"LISTEN_ADDR" yaml:"listen" description:"Address to listen on (default :8080)"`
	CORSOrigins []string `long:"cors-origin" env:"CORS_ORIGINS" env-delim:"," yaml:"cors_origins" description:"Origin allowed to call the server, may be repeated"`
	SubmitRate  string   `long:"submit-rate" env:"SUBMIT_RATE" yaml:"submit_rate" description:"Score submissions allowed per client, e.g. 30-M, or off (default 30-M)"`
	Metrics     bool     `long:"metrics" env:"METRICS_ENABLED" yaml:"metrics" description:"Expose Prometheus metrics on /metrics"`
	LogLevel    string   `long:"log-level" env:"LOG_LEVEL" yaml:"log_level" description:"debug, info, warn or error (default info)"`
}

// mergeFile fills every field not already set from the YAML file.
func (o *Options) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var file Options
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if o.ServerURL == "" {
		o.ServerURL = file.ServerURL
	}
	if o.ListenAddr == "" {
		o.ListenAddr = file.ListenAddr
	}
	if len(o.CORSOrigins) == 0 {
		o.CORSOrigins = file.CORSOrigins
	}
	if o.SubmitRate == "" {
		o.SubmitRate = file.SubmitRate
	}
	if !o.Metrics {
		o.Metrics = file.Metrics
	}
	if o.LogLevel == "" {
		o.LogLevel = file.LogLevel
	}
	return nil
}

// finalize loads the config file, applies defaults and checks that the
// required settings are present.
func (o *Options) finalize() error {
	if o.ConfigFile != "" {
		if err := o.mergeFile(o.ConfigFile); err != nil {
			return err
		}
	}
	if o.ListenAddr == "" {
		o.ListenAddr = defaultListenAddr
	}
	if o.SubmitRate == "" {
		o.SubmitRate = defaultSubmitRate
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}

	if strings.TrimSpace(o.ServerURL) == "" {
		return fmt.Errorf("SERVER_URL is not set")
	}
	if _, err := parseServerURL(o.ServerURL); err != nil {
		return err
	}
	if _, err := o.logLevel(); err != nil {
		return err
	}
	return nil
}

func (o *Options) logLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return level, nil
}

func (o *Options) submitRateDisabled() bool {
	return strings.EqualFold(o.SubmitRate, "off")
}
