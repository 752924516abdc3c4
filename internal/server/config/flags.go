package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-l string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-m bool     seed the sample assessment into an empty store (use -m=false)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint, empty disables document links
//	-r string   Redis address for the intake rate limiter
//	-q int      intake submissions allowed per client per minute
//	-o string   GELF UDP address
//	-t int      per-request timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-l", "-d", "-m", "-u", "-p", "-b", "-g", "-e", "-r", "-q", "-o", "-t",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.SeedSampleData, "m", config.SeedSampleData, "seed sample data")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	fs.IntVar(&config.IntakeRateLimit, "q", config.IntakeRateLimit, "intake submissions per minute")
	fs.StringVar(&config.GelfAddr, "o", config.GelfAddr, "GELF UDP address")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t overrides only when given, env and JSON may hold sub-second values
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
