package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/flagx"
)

// S3 locates the optional letter archive.
type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether letters should be archived.
func (s S3) Enabled() bool { return s.Bucket != "" }

// Config holds runtime settings for the moodkeeper CLI.
type Config struct {
	GatewayDSN     string
	SessionDB      string
	SecretKey      string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
	LettersDir     string

	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	LockboxTokenValidityDuration time.Duration

	S3 S3
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayDSN = "sqlite:moodkeeper.db"
	c.SessionDB = "moodkeeper-session.db"
	c.LogFile = "moodkeeper.log"
	c.LogLevel = "info"
	c.RequestTimeout = 10 * time.Second
	c.LettersDir = "letters"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 30 * 24 * time.Hour
	c.LockboxTokenValidityDuration = 10 * time.Minute
	c.S3.Region = "us-east-1"
}

// Flags lists the command-line flags owned by this package. They are only
// recognized ahead of the command name.
var Flags = []string{"-c", "-config", "-g", "-s", "-k", "-l", "-v", "-t", "-o", "-b"}

// LoadConfig builds the configuration from the leading flags of os.Args
// and returns the remaining arguments for the command tree.
func LoadConfig() (*Config, []string) {
	leading, rest := flagx.SplitLeading(os.Args[1:], Flags)
	return Load(leading), rest
}

// Load applies defaults, environment, config file and flags from args, in
// that order. Malformed input panics.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg, args)
	parseFlags(cfg, args)

	if cfg.SecretKey == "" {
		// tokens then only live as long as the process; sessions resume
		// through the stored refresh token
		key, err := common.MakeRandHexString(32)
		if err != nil {
			panic(err)
		}
		cfg.SecretKey = key
	}
	return cfg
}
