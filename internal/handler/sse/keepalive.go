package sse

import "time"

// KeepAlive paces keep-alive comments for one connection.
// The stream loop selects on Ticks next to its event channel, so all writes
// happen on one goroutine.
type KeepAlive interface {
	// Ticks fires whenever a keep-alive comment is due
	Ticks() <-chan time.Time

	// Stop releases the timer. Safe to call multiple times.
	Stop()
}

// TickerKeepAlive fires at a fixed interval
type TickerKeepAlive struct {
	ticker *time.Ticker
}

// NewTickerKeepAlive creates a ticker-based keep-alive.
// interval: how often to send keep-alive comments (e.g., 10 * time.Second)
func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{ticker: time.NewTicker(interval)}
}

// Ticks implements KeepAlive
func (k *TickerKeepAlive) Ticks() <-chan time.Time {
	return k.ticker.C
}

// Stop implements KeepAlive
func (k *TickerKeepAlive) Stop() {
	k.ticker.Stop()
}
