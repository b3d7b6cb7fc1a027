package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "MOODKEEPER_"

// parseEnv overlays cfg with MOODKEEPER_* variables. A .env file in the
// working directory is loaded first; variables already set in the process
// environment win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(".env")

	setString(&cfg.GatewayDSN, "GATEWAY_DSN")
	setString(&cfg.SessionDB, "SESSION_DB")
	setString(&cfg.SecretKey, "SECRET_KEY")
	setString(&cfg.LogFile, "LOG_FILE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LettersDir, "LETTERS_DIR")
	setDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	setDuration(&cfg.AccessTokenValidityDuration, "ACCESS_TOKEN_VALIDITY")
	setDuration(&cfg.RefreshTokenValidityDuration, "REFRESH_TOKEN_VALIDITY")
	setDuration(&cfg.LockboxTokenValidityDuration, "LOCKBOX_TOKEN_VALIDITY")

	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
