package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vendorrisk/internal/flagx"
	"github.com/dmitrijs2005/vendorrisk/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Absent keys
// leave the current value untouched; durations accept "10s" or integer
// nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SeedSampleData   *bool           `json:"seed_sample_data"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	RedisAddr        *string         `json:"redis_addr"`
	IntakeRateLimit  *int            `json:"intake_rate_limit"`
	GelfAddr         *string         `json:"gelf_addr"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
}

// parseJson overlays the JSON file named by -c/-config, if any. Unreadable
// or malformed files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.GelfAddr, c.GelfAddr)

	if c.SeedSampleData != nil {
		config.SeedSampleData = *c.SeedSampleData
	}
	if c.IntakeRateLimit != nil {
		config.IntakeRateLimit = *c.IntakeRateLimit
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
