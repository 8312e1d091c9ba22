package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_DB", "JWT_EXP_MIN", "CORS_ORIGIN", "REQUIRE_AUTH_FOR_LIST", "OTP_TTL_MIN"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "eventhub", cfg.MongoDB)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
	assert.True(t, cfg.RequireAuthForList)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXP_MIN", "15")
	t.Setenv("REQUIRE_AUTH_FOR_LIST", "false")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.RequireAuthForList)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("JWT_EXP_MIN", "soon")
	t.Setenv("REQUIRE_AUTH_FOR_LIST", "maybe")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RequireAuthForList)
}
