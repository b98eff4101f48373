package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads the given files if they exist. Variables already present in the
// environment win; missing files are skipped.
func loadEnvFiles(paths ...string) {
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return
	}
	_ = godotenv.Load(existing...)
}
