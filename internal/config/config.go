package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ServerPort   string
	IsProduction bool

	DbDriver   string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	SqlitePath string

	JwtSecret string
	Issuer    string
	TokenTTL  time.Duration

	CorsAllowedOrigins []string

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	OtelStdout bool

	SubmitRateLimit float64
	SubmitRateBurst int

	AuditRetentionDays int
	SeedOnStart        bool
)

// LoadConfig reads .env, formflow.yaml (optional) and the process environment,
// in increasing order of precedence.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetConfigName("formflow")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Failed to read formflow.yaml: %v", err)
		}
	}

	ServerPort = v.GetString("SERVER_PORT")
	IsProduction = v.GetString("GIN_MODE") == "release"

	DbDriver = strings.ToLower(v.GetString("DB_DRIVER"))
	DbHost = v.GetString("DB_HOST")
	DbPort = v.GetString("DB_PORT")
	DbUser = v.GetString("DB_USER")
	DbPassword = v.GetString("DB_PASSWORD")
	DbName = v.GetString("DB_NAME")
	SqlitePath = v.GetString("SQLITE_PATH")

	JwtSecret = v.GetString("JWT_SECRET")
	Issuer = v.GetString("ISSUER")
	TokenTTL = v.GetDuration("TOKEN_TTL")

	CorsAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	LogLevel = v.GetString("LOG_LEVEL")
	LogFormat = v.GetString("LOG_FORMAT")

	RedisAddr = v.GetString("REDIS_ADDR")
	RedisPassword = v.GetString("REDIS_PASSWORD")
	RedisDB = v.GetInt("REDIS_DB")
	StatsCacheTTL = v.GetDuration("STATS_CACHE_TTL")

	MinioEndpoint = v.GetString("MINIO_ENDPOINT")
	MinioAccessKey = v.GetString("MINIO_ACCESS_KEY")
	MinioSecretKey = v.GetString("MINIO_SECRET_KEY")
	MinioBucket = v.GetString("MINIO_BUCKET")
	MinioUseSSL = v.GetBool("MINIO_USE_SSL")
	MinioPublicURL = v.GetString("MINIO_PUBLIC_URL")

	OtelStdout = v.GetBool("OTEL_STDOUT")

	SubmitRateLimit = v.GetFloat64("SUBMIT_RATE_LIMIT")
	SubmitRateBurst = v.GetInt("SUBMIT_RATE_BURST")

	AuditRetentionDays = v.GetInt("AUDIT_RETENTION_DAYS")
	SeedOnStart = v.GetBool("SEED_ON_START")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "formflow")
	v.SetDefault("SQLITE_PATH", "formflow.db")
	v.SetDefault("JWT_SECRET", "defaultsecret")
	v.SetDefault("ISSUER", "formflow")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATS_CACHE_TTL", "30s")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "formflow")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_PUBLIC_URL", "")
	v.SetDefault("OTEL_STDOUT", false)
	v.SetDefault("SUBMIT_RATE_LIMIT", 5.0)
	v.SetDefault("SUBMIT_RATE_BURST", 10)
	v.SetDefault("AUDIT_RETENTION_DAYS", 90)
	v.SetDefault("SEED_ON_START", false)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
