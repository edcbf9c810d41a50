package redirect

import (
	"context"
	"errors"
	"fmt"
)

// memStore keeps rules in insertion order and counts calls
type memStore struct {
	sources []string
	targets map[string]string

	reads   int
	inserts int

	findErr   error
	existsErr error
	insertErr error
	scanErr   error
}

func newMemStore() *memStore {
	return &memStore{targets: map[string]string{}}
}

func (s *memStore) FindTarget(_ context.Context, source string) (string, bool, error) {
	s.reads++
	if s.findErr != nil {
		return "", false, s.findErr
	}
	target, ok := s.targets[source]
	return target, ok, nil
}

func (s *memStore) Exists(_ context.Context, value string, column Column) (bool, error) {
	s.reads++
	if s.existsErr != nil {
		return false, s.existsErr
	}
	switch column {
	case ColumnSource:
		_, ok := s.targets[value]
		return ok, nil
	case ColumnTarget:
		for _, t := range s.targets {
			if t == value {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("unknown column %q", column)
}

func (s *memStore) Insert(_ context.Context, source, target string) error {
	s.inserts++
	if s.insertErr != nil {
		return s.insertErr
	}
	if _, ok := s.targets[source]; ok {
		return errors.New("duplicate key")
	}
	s.sources = append(s.sources, source)
	s.targets[source] = target
	return nil
}

func (s *memStore) EachTarget(_ context.Context, fn func(string) error) error {
	if s.scanErr != nil {
		return s.scanErr
	}
	for _, src := range s.sources {
		if err := fn(s.targets[src]); err != nil {
			return err
		}
	}
	return nil
}
