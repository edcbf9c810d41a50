package redirect

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is against the typed errors below
var (
	ErrLoopPrevented = errors.New("redirect loop prevented")
	ErrStoreWrite    = errors.New("redirect store write failed")
	ErrStoreRead     = errors.New("redirect store read failed")
	ErrInvalidURL    = errors.New("invalid redirect url")
)

// LoopPreventedError is returned by AddRule when the target is already used as a source
type LoopPreventedError struct {
	Source string
	Target string
}

func (e *LoopPreventedError) Error() string {
	return fmt.Sprintf("can not add redirect %s => %s: target is already a redirect source", e.Source, e.Target)
}

// Is reports whether target is ErrLoopPrevented
func (e *LoopPreventedError) Is(target error) bool {
	return target == ErrLoopPrevented
}

// StoreWriteError is returned when a rule could not be saved
type StoreWriteError struct {
	Source string
	Target string
	Err    error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("can not save redirect: %s => %s: %v", e.Source, e.Target, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStoreWrite
func (e *StoreWriteError) Is(target error) bool {
	return target == ErrStoreWrite
}

// StoreReadError is returned when a lookup, existence check or scan failed
type StoreReadError struct {
	Op    string
	Value string
	Err   error
}

func (e *StoreReadError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("redirect %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("redirect %s failed for %q: %v", e.Op, e.Value, e.Err)
}

func (e *StoreReadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStoreRead
func (e *StoreReadError) Is(target error) bool {
	return target == ErrStoreRead
}

// ValidationError describes a source or target that violates the column constraints
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s url: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidURL
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidURL
}
