package cli

import (
	"path/filepath"
	"strings"

	"github.com/ardnew/includer/config"
	"github.com/ardnew/includer/pkg"
)

// envConfig returns the environment variable overriding the default
// configuration file path, e.g. INCLUDER_CONFIG.
func envConfig() string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(pkg.Prefix())) +
		"_CONFIG"
}

func defaultConfigPath() string {
	return filepath.Join(pkg.ConfigDir(), config.FileName)
}

// scanConfig returns the configuration file named on the command line, or
// def if none is given. Kong parses the flag again later; the file must be
// known earlier to resolve the other flags.
func scanConfig(args []string, def string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return def

		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}

		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")

		case strings.HasPrefix(arg, "-c") && len(arg) > 2 && !strings.HasPrefix(arg, "--"):
			return strings.TrimPrefix(strings.TrimPrefix(arg, "-c"), "=")
		}
	}

	return def
}
