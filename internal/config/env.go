package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one present is loaded.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first existing env file. Variables already set in the
// process environment win.
func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
		slog.Debug("Loaded environment variables", slog.String("file", name))
		return nil
	}
	return errors.New("no .env file found")
}
