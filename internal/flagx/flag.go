// Package flagx extracts individual flags from the process arguments so that
// each configuration layer can parse only the flags it owns.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowedFlags, together with their
// values. Both "-c conf.json" and "-c=conf.json" forms are recognised. A value
// starting with "-" is treated as the next flag, not as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// lookupString returns the value of a string flag known under any of names,
// or "" when it is absent. Later occurrences win.
func lookupString(args []string, long, short, usage string) string {
	var v string

	filtered := FilterArgs(args, []string{"-" + long, "--" + long, "-" + short, "--" + short})

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&v, long, "", usage)
	fs.StringVar(&v, short, "", usage+" (short)")
	_ = fs.Parse(filtered)

	return v
}

// JsonConfigFlags returns the JSON config path given with -c or -config, or ""
// when neither is present.
func JsonConfigFlags() string {
	return JsonConfigFlagsFrom(os.Args[1:])
}

// JsonConfigFlagsFrom is JsonConfigFlags over an explicit argument list.
func JsonConfigFlagsFrom(args []string) string {
	return lookupString(args, "config", "c", "Path to config file")
}

// EnvFileFlags returns the dotenv path given with -env-file, or "" when absent.
func EnvFileFlags() string {
	return EnvFileFlagsFrom(os.Args[1:])
}

// EnvFileFlagsFrom is EnvFileFlags over an explicit argument list.
func EnvFileFlagsFrom(args []string) string {
	return lookupString(args, "env-file", "env", "Path to .env file")
}
