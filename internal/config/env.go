package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches environment variable references in configuration values.
// Supports formats:
//   - ${VAR_NAME} - standard shell-like format
//   - ${VAR_NAME:-default} - with default value if unset or empty
//   - $VAR_NAME - simple format (word characters only)
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in a string.
// Unknown or unset variables without defaults are replaced with empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if !strings.HasPrefix(match, "${") {
			return os.Getenv(match[1:])
		}
		inner := match[2 : len(match)-1]
		name, def, hasDefault := strings.Cut(inner, ":-")
		if val := os.Getenv(name); val != "" || !hasDefault {
			return val
		}
		return def
	})
}

// ExpandEnvConfig expands environment variables in the string fields of cfg:
// the window title, font names and script path. Colors are expanded when
// they are decoded.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Window.Title = ExpandEnv(cfg.Window.Title)
	cfg.Theme.Font = ExpandEnv(cfg.Theme.Font)
	cfg.Theme.FallbackFont = ExpandEnv(cfg.Theme.FallbackFont)
	cfg.Script.Path = ExpandEnv(cfg.Script.Path)
}
