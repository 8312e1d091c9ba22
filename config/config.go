package config

import (
	"os"
	"strconv"
	"time"

	"github.com/niteen-codes/go-eventhub/utils"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	TokenTTL  time.Duration
	// CORSOrigin is the browser origin allowed to call the API.
	CORSOrigin string
	// RequireAuthForList gates GET /api/events (and GET /api/events/:id)
	// behind a bearer token. Earlier deployments allowed unauthenticated
	// listing; the stricter default is on.
	RequireAuthForList bool
	OTPTTL             time.Duration
	SMTP               utils.Mailer
}

// Load reads the configuration from the environment, applying defaults for
// everything except the secrets and connection strings validated in main.
func Load() Config {
	return Config{
		Port:               getenv("PORT", "8080"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDB:            getenv("MONGO_DB", "eventhub"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           time.Duration(getint("JWT_EXP_MIN", 60)) * time.Minute,
		CORSOrigin:         getenv("CORS_ORIGIN", "http://localhost:3000"),
		RequireAuthForList: getbool("REQUIRE_AUTH_FOR_LIST", true),
		OTPTTL:             time.Duration(getint("OTP_TTL_MIN", 10)) * time.Minute,
		SMTP: utils.Mailer{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
