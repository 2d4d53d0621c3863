package config

import "os"

// Get returns the environment value for key, or fallback when unset or
// empty. Environment loading itself (.env) happens in the composition
// roots via godotenv.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
