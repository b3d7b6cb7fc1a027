package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/flagx"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for unmarshalling config files.
// Durations go through timex.Duration so files can say "15m".
type FileConfig struct {
	GatewayDSN           string         `json:"gateway_dsn" yaml:"gateway_dsn"`
	SessionDB            string         `json:"session_db" yaml:"session_db"`
	SecretKey            string         `json:"secret_key" yaml:"secret_key"`
	LogFile              string         `json:"log_file" yaml:"log_file"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
	RequestTimeout       timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LettersDir           string         `json:"letters_dir" yaml:"letters_dir"`
	AccessTokenValidity  timex.Duration `json:"access_token_validity" yaml:"access_token_validity"`
	RefreshTokenValidity timex.Duration `json:"refresh_token_validity" yaml:"refresh_token_validity"`
	LockboxTokenValidity timex.Duration `json:"lockbox_token_validity" yaml:"lockbox_token_validity"`
	S3                   FileS3         `json:"s3" yaml:"s3"`
}

type FileS3 struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// parseFile overlays cfg with the file named by -c/-config in args. Files
// ending in .yaml or .yml are YAML, anything else JSON. Keys absent from
// the file keep their earlier values. Read and decode errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, v timex.Duration) {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	str(&cfg.GatewayDSN, fc.GatewayDSN)
	str(&cfg.SessionDB, fc.SessionDB)
	str(&cfg.SecretKey, fc.SecretKey)
	str(&cfg.LogFile, fc.LogFile)
	str(&cfg.LogLevel, fc.LogLevel)
	str(&cfg.LettersDir, fc.LettersDir)
	dur(&cfg.RequestTimeout, fc.RequestTimeout)
	dur(&cfg.AccessTokenValidityDuration, fc.AccessTokenValidity)
	dur(&cfg.RefreshTokenValidityDuration, fc.RefreshTokenValidity)
	dur(&cfg.LockboxTokenValidityDuration, fc.LockboxTokenValidity)

	str(&cfg.S3.Endpoint, fc.S3.Endpoint)
	str(&cfg.S3.Region, fc.S3.Region)
	str(&cfg.S3.Bucket, fc.S3.Bucket)
	str(&cfg.S3.AccessKey, fc.S3.AccessKey)
	str(&cfg.S3.SecretKey, fc.S3.SecretKey)
}
