// Package limiter windows a result list for printing: a leading slice, an offset
// page, or the last few entries.
package limiter

import "fmt"

// Config holds the window parameters.
type Config struct {
	Limit  int // show only this many results (0 = unlimited)
	Offset int // skip the first N results
	Tail   int // show only the last N results; exclusive with Limit
}

// Validate rejects negative values and Limit combined with Tail. Offset is ignored
// when Tail is set.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any windowing is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the half-open window [start, end) over n items.
func (c Config) Bounds(n int) (int, int) {
	if c.Tail > 0 {
		return max(0, n-c.Tail), n
	}
	start := min(c.Offset, n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns the window of items. The result shares the backing array.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() {
		return items
	}
	start, end := c.Bounds(len(items))
	return items[start:end]
}
