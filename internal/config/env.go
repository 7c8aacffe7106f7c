package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"valleycars/internal/pricing"
	"valleycars/internal/utils"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr     string
	RedisRulesTTL time.Duration

	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	AdminAPIToken string
	AdminEmail    string
	AdminPassword string

	CORSAllowedOrigins []string

	StrictRuleSigns bool
	ServiceAreaPins []string
	WhatsAppNumber  string
}

// LoadEnv reads configuration from the environment, after loading .env when present.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not read .env: %v", err)
	}

	pins := utils.SplitList(os.Getenv("SERVICE_AREA_PINS"))
	if len(pins) == 0 {
		pins = pricing.DefaultSrinagarPins
	}

	return Env{
		AppAddr: envOr("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: envOr("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: envOr("DB_HOST", "127.0.0.1:3306"),
		DBName: envOr("DB_NAME", "valley_cars"),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisRulesTTL: envDuration("REDIS_RULES_TTL", time.Minute),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     envOr("JWT_ISSUER", "valleycars"),
		JWTTTL:        envDuration("JWT_TTL", 24*time.Hour),
		AdminAPIToken: strings.TrimSpace(os.Getenv("ADMIN_API_TOKEN")),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CORSAllowedOrigins: utils.SplitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		StrictRuleSigns: envBool("PRICING_STRICT_RULE_SIGNS", false),
		ServiceAreaPins: pins,
		WhatsAppNumber:  strings.TrimSpace(os.Getenv("WHATSAPP_NUMBER")),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// envDuration accepts Go durations ("90s") or plain seconds ("90").
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
