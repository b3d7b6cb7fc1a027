package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, so subcommand arguments do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-g", "-s", "-k", "-l", "-v", "-t", "-o", "-b"})

	fs := flag.NewFlagSet("moodkeeper", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayDSN, "g", cfg.GatewayDSN, "record store DSN (postgres://, sqlite:, grpc://)")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "local session database path")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing secret")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file path")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LettersDir, "o", cfg.LettersDir, "future notes directory")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket for the letter archive")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
