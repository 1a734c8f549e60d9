package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/imposter-project/jsonmock/pkg/logger"
)

const (
	DefaultPort        = "3000"
	DefaultDBFile      = "db.json"
	DefaultSQLitePath  = "jsonmock.db"
	DefaultRedisExpiry = 30 * time.Minute

	// DefaultDelay is applied to every request before it is forwarded.
	DefaultDelay = 3000 * time.Millisecond

	// DefaultMaxBodySize caps request bodies read by the body parser.
	DefaultMaxBodySize int64 = 10 << 20

	// RejectedTechnology is the POST body `technology` value that triggers a simulated failure.
	RejectedTechnology = "AnyOther"
)

// Store drivers
const (
	StoreDriverInMemory = "store-inmemory"
	StoreDriverRedis    = "store-redis"
	StoreDriverDynamoDB = "store-dynamodb"
	StoreDriverSQLite   = "store-sqlite"
)

// InterceptorConfig holds the fixed parameters of the request interceptor chain
type InterceptorConfig struct {
	Delay              time.Duration
	RejectedTechnology string
	MaxBodySize        int64
}

// StoreConfig selects and configures the store provider
type StoreConfig struct {
	Driver        string
	KeyPrefix     string
	RedisAddr     string
	RedisPassword string
	RedisExpiry   time.Duration
	AWSRegion     string
	DynamoDBTable string
	SQLitePath    string
}

// ServerConfig holds application-wide configuration. It is loaded once at
// startup and must not be modified afterwards.
type ServerConfig struct {
	ServerPort  string
	DBFile      string
	LogLevel    string
	LogFile     string
	Store       StoreConfig
	Interceptor InterceptorConfig
}

// DefaultInterceptorConfig returns the interceptor chain parameters used by the server
func DefaultInterceptorConfig() InterceptorConfig {
	return InterceptorConfig{
		Delay:              DefaultDelay,
		RejectedTechnology: RejectedTechnology,
		MaxBodySize:        DefaultMaxBodySize,
	}
}

// envBindings maps configuration keys to the environment variables that set them
var envBindings = map[string]string{
	"port":                 "PORT",
	"db.file":              "JSONMOCK_DB_FILE",
	"log.level":            "JSONMOCK_LOG_LEVEL",
	"log.file":             "JSONMOCK_LOG_FILE",
	"store.driver":         "JSONMOCK_STORE_DRIVER",
	"store.keyprefix":      "JSONMOCK_STORE_KEY_PREFIX",
	"store.redis.addr":     "REDIS_ADDR",
	"store.redis.password": "REDIS_PASSWORD",
	"store.redis.expiry":   "JSONMOCK_STORE_REDIS_EXPIRY",
	"store.dynamodb.table": "JSONMOCK_DYNAMODB_TABLE",
	"store.sqlite.path":    "JSONMOCK_SQLITE_PATH",
	"aws.region":           "AWS_REGION",
}

// LoadServerConfig loads configuration from the environment, after loading
// any .env file in the working directory. A non-empty dbFileArg takes
// precedence over JSONMOCK_DB_FILE.
func LoadServerConfig(dbFileArg string) (*ServerConfig, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debugln("loaded environment from .env")
	}

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("db.file", DefaultDBFile)
	v.SetDefault("store.driver", StoreDriverInMemory)
	v.SetDefault("store.redis.expiry", DefaultRedisExpiry.String())
	v.SetDefault("store.sqlite.path", DefaultSQLitePath)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	port := v.GetString("port")
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return nil, fmt.Errorf("invalid port: %q", port)
	}

	dbFile := v.GetString("db.file")
	if dbFileArg != "" {
		dbFile = dbFileArg
	}

	return &ServerConfig{
		ServerPort:  port,
		DBFile:      dbFile,
		LogLevel:    v.GetString("log.level"),
		LogFile:     v.GetString("log.file"),
		Store:       loadStoreConfig(v),
		Interceptor: DefaultInterceptorConfig(),
	}, nil
}

func loadStoreConfig(v *viper.Viper) StoreConfig {
	expiry, err := time.ParseDuration(v.GetString("store.redis.expiry"))
	if err != nil || expiry <= 0 {
		logger.Warnf("invalid store expiry %q, using %v", v.GetString("store.redis.expiry"), DefaultRedisExpiry)
		expiry = DefaultRedisExpiry
	}

	return StoreConfig{
		Driver:        v.GetString("store.driver"),
		KeyPrefix:     v.GetString("store.keyprefix"),
		RedisAddr:     v.GetString("store.redis.addr"),
		RedisPassword: v.GetString("store.redis.password"),
		RedisExpiry:   expiry,
		AWSRegion:     v.GetString("aws.region"),
		DynamoDBTable: v.GetString("store.dynamodb.table"),
		SQLitePath:    v.GetString("store.sqlite.path"),
	}
}
