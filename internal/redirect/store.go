// Package redirect resolves incoming request URLs against a persistent table of
// source => target rules and manages those rules.
//
// The package owns no transport and no storage. A Store backend is injected at
// composition time; the HTTP hook lives in api/v1/middleware.
package redirect

import (
	"context"
	"fmt"
)

// MaxURLLength matches the width of the source and target columns
const MaxURLLength = 512

// Column selects which side of a rule an existence check runs against
type Column string

const (
	ColumnSource Column = "source"
	ColumnTarget Column = "target"
)

// ParseColumn converts a user supplied column name
func ParseColumn(s string) (Column, error) {
	switch Column(s) {
	case ColumnSource, ColumnTarget:
		return Column(s), nil
	}
	return "", fmt.Errorf("unknown column %q (expected %q or %q)", s, ColumnSource, ColumnTarget)
}

// Store is the persistence backend for redirect rules.
//
// Implementations must not overwrite an existing source on Insert, and must set
// the creation time themselves.
type Store interface {
	// FindTarget looks up the target for an exact source. found is false when no rule matches.
	FindTarget(ctx context.Context, source string) (target string, found bool, err error)
	// Exists reports whether value is present in the given column.
	Exists(ctx context.Context, value string, column Column) (bool, error)
	// Insert saves a new rule.
	Insert(ctx context.Context, source, target string) error
	// EachTarget streams every rule's target in store scan order.
	// An error returned by fn stops the scan and is returned unchanged.
	EachTarget(ctx context.Context, fn func(target string) error) error
}
