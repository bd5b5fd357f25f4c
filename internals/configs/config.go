package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"chilume_backend/internals/logger"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// DSN renders a libpq URL with the session timeouts the pool expects.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s&statement_timeout=3000&idle_in_transaction_session_timeout=5000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type AppConfig struct {
	Environment   string
	Port          string
	DocumentStore string

	DB         DBConfig
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	JWTTTL     time.Duration
	CorsOrigin []string

	AdminDefaultEmail    string
	AdminDefaultPassword string
	AdminDefaultName     string

	SnapshotTTL    time.Duration
	RequestTimeout time.Duration

	TelegramBotToken    string
	TelegramAdminChatID int64
}

// Cfg holds the last configuration produced by LoadEnv.
var Cfg AppConfig

// =======================
// ENV LOADER
// =======================
func LoadEnv() AppConfig {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logger.LogW("no .env file found, using system environment")
		} else {
			logger.LogI(".env file loaded")
		}
	} else {
		logger.LogI("running on Railway, using system environment")
	}

	Cfg = FromEnv()

	if Cfg.JWTSecret == "" {
		logger.LogE("JWT_SECRET is not set, admin sign-in will be rejected")
	}
	if Cfg.DocumentStore == StorePostgres && Cfg.DB.Host == "" {
		logger.LogW("DB_HOST is empty", "document_store", Cfg.DocumentStore)
	}
	return Cfg
}

// FromEnv reads the typed configuration without touching .env files.
func FromEnv() AppConfig {
	return AppConfig{
		Environment:   GetEnv("APP_ENV", "development"),
		Port:          GetEnv("PORT", "3000"),
		DocumentStore: strings.ToLower(GetEnv("DOCUMENT_STORE", StoreMemory)),
		DB: DBConfig{
			User:     GetEnv("DB_USER"),
			Password: GetEnv("DB_PASSWORD"),
			Host:     GetEnv("DB_HOST"),
			Port:     GetEnv("DB_PORT", "5432"),
			Name:     GetEnv("DB_NAME"),
			SSLMode:  GetEnv("DB_SSLMODE", "require"),
		},
		MongoURI:             GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:              GetEnv("MONGODB_DATABASE", "chilume"),
		JWTSecret:            GetEnv("JWT_SECRET"),
		JWTTTL:               getDuration("JWT_TTL", 12*time.Hour),
		CorsOrigin:           splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5500")),
		AdminDefaultEmail:    GetEnv("ADMIN_DEFAULT_EMAIL", "admin@chilume.fest"),
		AdminDefaultPassword: GetEnv("ADMIN_DEFAULT_PASSWORD"),
		AdminDefaultName:     GetEnv("ADMIN_DEFAULT_NAME", "Fest Admin"),
		SnapshotTTL:          getDuration("SNAPSHOT_TTL", 30*time.Second),
		RequestTimeout:       getDuration("REQUEST_TIMEOUT", 5*time.Second),
		TelegramBotToken:     GetEnv("TELEGRAM_BOT_TOKEN"),
		TelegramAdminChatID:  getInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.LogW("invalid duration, using default", "key", key, "value", raw, "default", def.String())
		return def
	}
	return d
}

func getInt64(key string, def int64) int64 {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.LogW("invalid integer, using default", "key", key, "value", raw)
		return def
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
