package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// envPrefix namespaces every variable read by parseEnv.
const envPrefix = "VENDORRISK_"

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

// readEnvFile loads KEY=VALUE pairs from the file named by -env-file, or from
// ./.env when it exists. An explicitly named file that cannot be read panics.
func readEnvFile() map[string]string {
	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}
		}
		panic(err)
	}
	return values
}

// parseEnv overlays settings from the .env file and the process
// environment. Real environment variables win over the file.
func parseEnv(config *Config) {
	file := readEnvFile()

	get := func(key string) (string, bool) {
		if v, ok := lookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := file[envPrefix+key]
		return v, ok
	}

	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}

	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("REDIS_ADDR", &config.RedisAddr)
	str("GELF_ADDR", &config.GelfAddr)

	if v, ok := get("SEED_SAMPLE_DATA"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.SeedSampleData = b
	}

	if v, ok := get("INTAKE_RATE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.IntakeRateLimit = n
	}

	if v, ok := get("REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.RequestTimeout = d
	}
}
