package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DOCUMENT_STORE", "JWT_TTL", "SNAPSHOT_TTL", "REQUEST_TIMEOUT", "CORS_ORIGINS", "TELEGRAM_ADMIN_CHAT_ID"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.DocumentStore)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5500"}, cfg.CorsOrigin)
	assert.Zero(t, cfg.TelegramAdminChatID)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DOCUMENT_STORE", "Mongo")
	t.Setenv("SNAPSHOT_TTL", "2m")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "-100123")
	t.Setenv("DB_USER", "fest")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "chilume")
	t.Setenv("DB_SSLMODE", "disable")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.DocumentStore)
	assert.Equal(t, 2*time.Minute, cfg.SnapshotTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigin)
	assert.Equal(t, int64(-100123), cfg.TelegramAdminChatID)
	assert.Equal(t,
		"postgresql://fest:pw@db.local:6543/chilume?sslmode=disable&statement_timeout=3000&idle_in_transaction_session_timeout=5000",
		cfg.DB.DSN())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CHILUME_TEST_KEY", "  value ")
	assert.Equal(t, "value", GetEnv("CHILUME_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CHILUME_TEST_MISSING", "fallback"))
	assert.Equal(t, "", GetEnv("CHILUME_TEST_MISSING"))
}
