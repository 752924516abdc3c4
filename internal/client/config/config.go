package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the vendorrisk CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the review gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - Offline: work against the built-in sample data without a server.
//   - DownloadDir: where downloaded documents are written.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	Offline             bool
	DownloadDir         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.Offline = false
	c.DownloadDir = "downloads"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. A non-positive online check interval panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)

	if cfg.OnlineCheckInterval <= 0 {
		panic(fmt.Errorf("online check interval must be positive, got %s", cfg.OnlineCheckInterval))
	}
	return cfg
}
