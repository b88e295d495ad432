package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port            int
	APIKey          string // API key for authentication
	TrustedProxies  []string
	MaxRequestBytes int64
	Environment     string
	ServiceName     string
	Version         string

	LogLevel  string
	LogFormat string
	LogDir    string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	MigrationsDir     string
	AutoMigrate       bool

	SubmissionTimeout         time.Duration
	WorkerCount               int
	WorkerQueueSize           int
	VerificationFailurePolicy string
	TokenomicsPath            string
	GamificationCatalogPath   string

	ProfileCacheSize int
	ProfileCacheTTL  time.Duration

	PhotoStore          string
	PhotoMemoryCapacity int
	PhotoBucket         string
	PhotoRegion         string
	PhotoEndpoint       string
	PhotoAccessKeyID    string
	PhotoSecretKey      string
	PhotoPublicDomain   string

	Issuer               string
	EthRPCURL            string
	EthChainID           int64
	EthPrivateKey        string
	TokenContractAddress string
	TokenDecimals        int

	EventRetentionDays   int
	EventCleanupInterval time.Duration
	StatsExportInterval  time.Duration
	DeadLetterPath       string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:          getEnv("API_KEY", ""),
		TrustedProxies:  splitList(getEnv("TRUSTED_PROXIES", "")),
		MaxRequestBytes: int64(getEnvAsInt("MAX_REQUEST_BYTES", DefaultMaxRequestBytes)),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		ServiceName:     getEnv("SERVICE_NAME", "ecohunt-engine"),
		Version:         getEnv("VERSION", "dev"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogDir:    getEnv("LOG_DIR", "logs"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "ecohunt"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", DefaultMigrationsDir),
		AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", false),

		SubmissionTimeout:         getEnvAsDuration("SUBMISSION_TIMEOUT", DefaultSubmissionTimeout),
		WorkerCount:               getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:           getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		VerificationFailurePolicy: strings.ToLower(getEnv("VERIFICATION_FAILURE_POLICY", VerificationPolicyDegrade)),
		TokenomicsPath:            getEnv("TOKENOMICS_PATH", ""),
		GamificationCatalogPath:   getEnv("GAMIFICATION_CATALOG_PATH", ""),

		ProfileCacheSize: getEnvAsInt("PROFILE_CACHE_SIZE", DefaultProfileCacheSize),
		ProfileCacheTTL:  getEnvAsDuration("PROFILE_CACHE_TTL", DefaultProfileCacheTTL),

		PhotoStore:          strings.ToLower(getEnv("PHOTO_STORE", PhotoStoreMemory)),
		PhotoMemoryCapacity: getEnvAsInt("PHOTO_STORE_MEMORY_CAPACITY", DefaultPhotoMemoryCapacity),
		PhotoBucket:         getEnv("PHOTO_STORE_BUCKET", ""),
		PhotoRegion:         getEnv("PHOTO_STORE_REGION", "auto"),
		PhotoEndpoint:       getEnv("PHOTO_STORE_ENDPOINT", ""),
		PhotoAccessKeyID:    getEnv("PHOTO_STORE_ACCESS_KEY_ID", ""),
		PhotoSecretKey:      getEnv("PHOTO_STORE_SECRET_ACCESS_KEY", ""),
		PhotoPublicDomain:   getEnv("PHOTO_STORE_PUBLIC_DOMAIN", ""),

		Issuer:               strings.ToLower(getEnv("ISSUER", IssuerSimulated)),
		EthRPCURL:            getEnv("ETH_RPC_URL", ""),
		EthChainID:           int64(getEnvAsInt("ETH_CHAIN_ID", 0)),
		EthPrivateKey:        getEnv("ETH_PRIVATE_KEY", ""),
		TokenContractAddress: getEnv("TOKEN_CONTRACT_ADDRESS", ""),
		TokenDecimals:        getEnvAsInt("TOKEN_DECIMALS", DefaultTokenDecimals),

		EventRetentionDays:   getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays),
		EventCleanupInterval: getEnvAsDuration("EVENT_CLEANUP_INTERVAL", DefaultEventCleanupInterval),
		StatsExportInterval:  getEnvAsDuration("STATS_EXPORT_INTERVAL", DefaultStatsExportInterval),
		DeadLetterPath:       getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyRequired)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints of the loaded configuration
func (c *Config) Validate() error {
	switch c.PhotoStore {
	case PhotoStoreMemory:
	case PhotoStoreS3:
		if c.PhotoBucket == "" {
			return errors.New(ErrMsgS3BucketRequired)
		}
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownPhotoStore, c.PhotoStore)
	}

	switch c.Issuer {
	case IssuerSimulated, IssuerDisabled:
	case IssuerEthereum:
		if c.EthRPCURL == "" || c.EthPrivateKey == "" || c.TokenContractAddress == "" {
			return errors.New(ErrMsgEthSettingsRequired)
		}
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownIssuer, c.Issuer)
	}

	switch c.VerificationFailurePolicy {
	case VerificationPolicyDegrade, VerificationPolicyAbort:
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownPolicy, c.VerificationFailurePolicy)
	}

	if c.SubmissionTimeout <= 0 {
		return errors.New(ErrMsgNonPositiveTimeout)
	}
	if c.WorkerCount <= 0 {
		return errors.New(ErrMsgNonPositiveWorkers)
	}
	return nil
}

// IsDevelopment reports whether the service runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList parses a comma separated list, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
