// Package flagx splits a command line between the configuration layer and
// the command tree: configuration flags are consumed by a standard
// flag.FlagSet, everything else is handed to the CLI commands.
package flagx

import (
	"flag"
	"strings"
)

// Partition splits args into the arguments that belong to allowedFlags (with
// their values) and the remaining ones, preserving order in both.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.yaml
//  2. Flag and value combined with '=':      -config=conf.yaml
//
// A separate value is only consumed when it does not itself look like a flag.
func Partition(args []string, allowedFlags []string) (matched, rest []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				matched = append(matched, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			rest = append(rest, arg)
			continue
		}

		matched = append(matched, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			matched = append(matched, args[i+1])
			i++
		}
	}

	return matched, rest
}

// FilterArgs returns only the allowed flags (and their values) from args.
func FilterArgs(args []string, allowedFlags []string) []string {
	matched, _ := Partition(args, allowedFlags)
	return matched
}

// StripArgs returns args without the allowed flags and their values.
func StripArgs(args []string, allowedFlags []string) []string {
	_, rest := Partition(args, allowedFlags)
	return rest
}

// SplitLeading separates the allowed flags (and their values) that precede
// the first other argument from everything after it. Command flags that
// share a name with a configuration flag (-t, -c) are then left to the
// command.
func SplitLeading(args []string, allowedFlags []string) (leading, rest []string) {
	i := 0
	for i < len(args) {
		matched, _ := Partition(args[i:i+1], allowedFlags)
		if len(matched) == 0 {
			break
		}
		i++
		if !strings.Contains(args[i-1], "=") && i < len(args) && !strings.HasPrefix(args[i], "-") {
			i++
		}
	}
	return args[:i:i], args[i:]
}

// ConfigFileFlag extracts the config file path given via -c or -config.
// Other arguments are ignored. When the flag repeats, the last one wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file (JSON or YAML)")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
