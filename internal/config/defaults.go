package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Workers:     0, // autodetect
		MinFileSize: "0",
		// No exclusions by default; every regular file under the root is
		// a duplicate candidate.
		ExcludePatterns: []string{},
		Output:          "summary",
		DryRun:          false,
	}
}
