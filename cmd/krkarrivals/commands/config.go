package commands

import (
	"errors"
	"krkarrivals/internal/components/configutil"
	"krkarrivals/internal/components/telemetry"
	"krkarrivals/internal/scrapers/krakowairport"
	"os"
	"time"
)

const (
	defaultConfigName   = "krkarrivals.json5"
	defaultDebugHttpDir = ".dev/resty"
)

// Config is read from krkarrivals.json5 (and krkarrivals.local.json5), every
// field is optional and falls back to the fixed defaults of the scraper.
type Config struct {
	Url            string           `json:"url"`
	UserAgent      string           `json:"user_agent"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	Output         string           `json:"output"`
	DebugHttpDir   string           `json:"debug_http_dir"`
	Telemetry      telemetry.Config `json:"telemetry"`
}

// loadConfig reads the config at `path`, if `path` is empty the default config
// name is searched for upwards from the cwd and a missing file is not an error.
func loadConfig(path string) (Config, error) {
	if path != "" {
		return configutil.ReadConfig[Config](path)
	}
	cfg, err := configutil.ReadRecursively[Config](defaultConfigName)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// withFlags applies command line flags on top of the config file.
func (c Config) withFlags(out string, debug bool) Config {
	if out != "" {
		c.Output = out
	}
	if debug && c.DebugHttpDir == "" {
		c.DebugHttpDir = defaultDebugHttpDir
	}
	return c
}

func (c Config) clientOptions() krakowairport.ClientOptions {
	return krakowairport.ClientOptions{
		Url:       c.Url,
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}
