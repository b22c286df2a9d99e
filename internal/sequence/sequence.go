package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefixes for the human-readable document numbers.
const (
	PrefixOrder = "ES"
	PrefixClaim = "WR"
)

var (
	ErrInvalidIdentifier = fmt.Errorf("invalid identifier")
)

// Scope returns the per-month counter scope, e.g. "ES-2405" for May 2024.
// Numbering restarts each calendar month because each month is its own scope.
func Scope(prefix string, at time.Time) string {
	return prefix + "-" + at.Format("0601")
}

// Format builds the full identifier, e.g. Format("ES", may2024, 1) == "ES-2405-0001".
func Format(prefix string, at time.Time, n int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, at.Format("0601"), n)
}

// Parse splits an identifier of the form PREFIX-YYMM-NNNN.
func Parse(id string) (prefix, yymm string, seq int64, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] == "" || len(parts[1]) != 4 || len(parts[2]) != 4 {
		return "", "", 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	seq, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return parts[0], parts[1], seq, nil
}

// Counter hands out monotonically increasing values per scope. Implementations
// must serialize concurrent calls for the same scope so that no two callers
// observe the same value.
type Counter interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// Generator produces document numbers from a Counter.
type Generator struct {
	counter Counter
}

func NewGenerator(c Counter) *Generator {
	return &Generator{counter: c}
}

// Next returns the next identifier in the prefix's series for the month of at.
func (g *Generator) Next(ctx context.Context, prefix string, at time.Time) (string, error) {
	n, err := g.counter.Next(ctx, Scope(prefix, at))
	if err != nil {
		return "", fmt.Errorf("sequence next for %s: %w", prefix, err)
	}
	return Format(prefix, at, n), nil
}
