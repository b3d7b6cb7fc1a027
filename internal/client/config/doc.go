// Package config loads runtime configuration for the moodkeeper CLI.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: MOODKEEPER_* variables, with a .env file in the working
//     directory loaded first (see parseEnv).
//  3. Optional config file selected with -c or -config; JSON or YAML by
//     extension (see parseFile).
//  4. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-g string   record store DSN: postgres://..., sqlite:path or grpc://host:port
//	-s string   path of the local session database
//	-k string   secret used to sign tokens of the SQL record store
//	-l string   log file path
//	-v string   log level (debug|info|warn|error)
//	-t int      request timeout (seconds)
//	-o string   directory future notes are saved to
//	-b string   S3 bucket letters are archived to (empty disables archiving)
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "15m" or
// integer nanoseconds:
//
//	gateway_dsn: sqlite:moodkeeper.db
//	request_timeout: 10s
//	s3:
//	  endpoint: http://localhost:9000
//	  bucket: letters
package config
