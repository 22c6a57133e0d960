package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getcarekorea/content-engine/internal/performance"
	"github.com/getcarekorea/content-engine/internal/platform/envutil"
)

type CollectionConfig struct {
	RowLimit     int64                  `yaml:"row_limit"`
	ChunkSize    int                    `yaml:"chunk_size"`
	ChunkDelayMS int                    `yaml:"chunk_delay_ms"`
	Thresholds   performance.Thresholds `yaml:"thresholds"`
}

type Config struct {
	HTTPAddr    string           `yaml:"http_addr"`
	SiteBaseURL string           `yaml:"site_base_url"`
	Locales     []string         `yaml:"locales"`
	Collection  CollectionConfig `yaml:"collection"`
}

func defaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		SiteBaseURL: "https://getcarekorea.com",
		Locales:     []string{"en", "ko", "zh", "ja", "th", "vi"},
		Collection: CollectionConfig{
			RowLimit:     1000,
			ChunkSize:    10,
			ChunkDelayMS: 2000,
			Thresholds:   performance.DefaultThresholds(),
		},
	}
}

// LoadConfig layers an optional YAML file (CONFIG_FILE) over built-in
// defaults, then applies environment overrides for deploy-time knobs.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.SiteBaseURL = strings.TrimRight(envutil.String("SITE_BASE_URL", cfg.SiteBaseURL), "/")
	return cfg, nil
}

func (c Config) CollectorConfig() performance.Config {
	return performance.Config{
		SiteBaseURL: c.SiteBaseURL,
		RowLimit:    c.Collection.RowLimit,
		ChunkSize:   c.Collection.ChunkSize,
		ChunkDelay:  time.Duration(c.Collection.ChunkDelayMS) * time.Millisecond,
		Thresholds:  c.Collection.Thresholds,
	}
}
