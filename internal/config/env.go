package config

import (
	"errors"
	"log/slog"
	"os"
	"regexp"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// envFiles are tried in order; the first readable one wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from .env/.env.local so ${VAR}
// references in the configuration can be resolved. Variables already present
// in the process environment are not overwritten.
func loadEnvFile() (string, error) {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return envPath, err
		}
		slog.Debug("Loaded environment variables", logfields.File(envPath))
		return envPath, nil
	}
	return "", errNoEnvFile
}

var errNoEnvFile = errors.New("no .env file found")

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR} references to set variables. Bare $NAME and
// references to unset variables are kept as written, so head scripts and
// prose containing '$' survive.
func expandEnv(data []byte) []byte {
	return envRefPattern.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRefPattern.FindSubmatch(ref)[1]
		if v, ok := os.LookupEnv(string(name)); ok {
			return []byte(v)
		}
		return ref
	})
}
