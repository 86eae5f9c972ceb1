package hint

import "time"

// Config holds hint generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single hint request including retries. Zero means
	// no deadline beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for hint generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		Timeout:     30 * time.Second,
	}
}
