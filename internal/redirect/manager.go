package redirect

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Manager adds rules and reports loop forming entries
type Manager struct {
	store Store
}

// NewManager creates a Manager over the given store
func NewManager(store Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("redirect store is required")
	}
	return &Manager{store: store}, nil
}

// AddRule saves a new source => target rule.
//
// The loop check and the insert are two separate store calls; only the
// uniqueness of source is guaranteed by the store.
func (m *Manager) AddRule(ctx context.Context, source, target string) error {
	if err := validateURL("source", source); err != nil {
		return err
	}
	if err := validateURL("target", target); err != nil {
		return err
	}

	loop, err := m.store.Exists(ctx, target, ColumnSource)
	if err != nil {
		return &StoreReadError{Op: "exists", Value: target, Err: err}
	}
	if loop {
		return &LoopPreventedError{Source: source, Target: target}
	}

	if err := m.store.Insert(ctx, source, target); err != nil {
		return &StoreWriteError{Source: source, Target: target, Err: err}
	}
	return nil
}

// HasURL reports whether url is present in the given column
func (m *Manager) HasURL(ctx context.Context, url string, column Column) (bool, error) {
	if _, err := ParseColumn(string(column)); err != nil {
		return false, err
	}

	ok, err := m.store.Exists(ctx, url, column)
	if err != nil {
		return false, &StoreReadError{Op: "exists", Value: url, Err: err}
	}
	return ok, nil
}

// FindLoopURLs returns, in scan order, every target that is also used as a source.
// Only one hop loops are detected.
func (m *Manager) FindLoopURLs(ctx context.Context) ([]string, error) {
	loops := []string{}

	err := m.store.EachTarget(ctx, func(target string) error {
		ok, err := m.store.Exists(ctx, target, ColumnSource)
		if err != nil {
			return &StoreReadError{Op: "exists", Value: target, Err: err}
		}
		if ok {
			loops = append(loops, target)
		}
		return nil
	})
	if err != nil {
		var readErr *StoreReadError
		if errors.As(err, &readErr) {
			return nil, err
		}
		return nil, &StoreReadError{Op: "scan", Err: err}
	}

	return loops, nil
}

func validateURL(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if n := utf8.RuneCountInString(value); n > MaxURLLength {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("length %d exceeds %d characters", n, MaxURLLength)}
	}
	return nil
}
