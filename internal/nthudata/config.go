package nthudata

import "time"

type Config struct {
	BaseURL string
	// DetailsTTL bounds how long a file_details.json listing is trusted
	// before the commit hashes are checked again.
	DetailsTTL     time.Duration
	RequestTimeout time.Duration
	MaxRetries     uint64
	CacheSize      int
}

func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://data.nthusa.tw",
		DetailsTTL:     time.Minute,
		RequestTimeout: 10 * time.Second,
		MaxRetries:     3,
		CacheSize:      64,
	}
}
