// Package config handles configuration for the review server: defaults, an
// optional .env file and VENDORRISK_* environment variables, an optional JSON
// file and finally command-line flags, each layer overriding the previous.
package config

import "time"

// Config holds runtime settings for the vendorrisk server.
//
// An empty DatabaseDSN selects the in-memory repository, an empty
// S3BaseEndpoint disables document links and an empty RedisAddr disables
// intake rate limiting.
type Config struct {
	EndpointAddrGRPC string
	EndpointAddrHTTP string
	DatabaseDSN      string
	SeedSampleData   bool
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	RedisAddr        string
	IntakeRateLimit  int
	GelfAddr         string
	RequestTimeout   time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SeedSampleData = true
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "assessments"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.RedisAddr = ""
	c.IntakeRateLimit = 30
	c.GelfAddr = ""
	c.RequestTimeout = 10 * time.Second
}

// DocumentStoreEnabled reports whether an S3 endpoint is configured.
func (c *Config) DocumentStoreEnabled() bool {
	return c.S3BaseEndpoint != ""
}

// LoadConfig builds a Config by applying defaults, then the environment,
// then an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
