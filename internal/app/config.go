package app

import (
	"time"

	"github.com/opsdeck/qcdesk-backend/internal/platform/envutil"
)

type Config struct {
	Port            string
	Environment     string
	Version         string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PersistenceMode string
	CatalogPath     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

func LoadConfig() Config {
	return Config{
		Port:            envutil.Str("PORT", "8080"),
		Environment:     envutil.Str("APP_ENV", "development"),
		Version:         envutil.Str("APP_VERSION", "dev"),
		JWTSecretKey:    envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", 3600),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 86400),
		PersistenceMode: envutil.Str("PERSISTENCE_MODE", "remote_then_local"),
		CatalogPath:     envutil.Str("QC_CATALOG_PATH", ""),
		RedisAddr:       envutil.Str("REDIS_ADDR", ""),
		RedisPassword:   envutil.Str("REDIS_PASSWORD", ""),
		RedisDB:         envutil.Int("REDIS_DB", 0),
	}
}
