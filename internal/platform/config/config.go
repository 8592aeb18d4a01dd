package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Field encryption
	CipherSecret     string
	CipherProtocolID string

	// External collaborators
	AuditServiceURL  string
	WalletServiceURL string
	AMQPURL          string
	AMQPExchange     string
	AMQPQueue        string

	// Invoice blob store
	FileStoreDir string

	FrontendBaseURL string
	RateLimitPerMin int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "smallbooks-backend")
	viper.SetDefault("CIPHER_SECRET", "")
	viper.SetDefault("CIPHER_PROTOCOL_ID", "smallbooks-entry-v1")
	viper.SetDefault("AUDIT_SERVICE_URL", "")
	viper.SetDefault("WALLET_SERVICE_URL", "http://localhost:3321")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "smallbooks")
	viper.SetDefault("AMQP_QUEUE", "smallbooks.events")
	viper.SetDefault("FILE_STORE_DIR", "./data/invoices")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_PER_MIN", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CipherSecret = viper.GetString("CIPHER_SECRET")
	if cfg.CipherSecret == "" {
		log.Println("Warning: CIPHER_SECRET not set. Entry field encryption will refuse to start without it.")
	}
	cfg.CipherProtocolID = viper.GetString("CIPHER_PROTOCOL_ID")

	cfg.AuditServiceURL = viper.GetString("AUDIT_SERVICE_URL")
	if cfg.AuditServiceURL == "" {
		log.Println("Warning: AUDIT_SERVICE_URL not set. Audit records will be no-ops.")
	}
	cfg.WalletServiceURL = viper.GetString("WALLET_SERVICE_URL")

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Event publishing disabled.")
	}
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.AMQPQueue = viper.GetString("AMQP_QUEUE")

	cfg.FileStoreDir = viper.GetString("FILE_STORE_DIR")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.RateLimitPerMin = viper.GetInt64("RATE_LIMIT_PER_MIN")

	return cfg, nil
}
