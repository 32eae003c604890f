package sse

import "time"

// Config holds configuration for SSE connections
type Config struct {
	// KeepAliveInterval is how often to send keep-alive comments to prevent proxy timeouts
	KeepAliveInterval time.Duration

	// Buffer is the per-connection event buffer. A client that falls further
	// behind than this misses events.
	Buffer int
}

// DefaultConfig returns the default SSE configuration
// 10 seconds is safe for most proxies
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
		Buffer:            32,
	}
}
