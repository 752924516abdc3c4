// Package config loads runtime configuration for the vendorrisk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the review gRPC endpoint
//	-i int      online status check interval (seconds)
//	-o bool     offline mode: sample data, no server
//	-d string   directory for downloaded documents
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "offline": false,
//	  "download_dir": "downloads"
//	}
//
// Keys that are absent keep their default.
package config
