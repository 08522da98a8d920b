package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/agentry/riskgate/service/dao"
)

// Memory is a generic in-memory implementation of dao.Service keeping
// entities of type *T mapped by a comparable key K obtained from the
// supplied keySelector.
//
// Save stores a private copy of the entity and Load returns a copy, so
// callers can never mutate a stored record behind the store's back; the
// only way to change persisted state is Save or Update. Update runs its
// callback under the write lock, which is what the approval service relies
// on for its guarded status transitions.
type Memory[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]T
	keySelector func(*T) K
}

// NewMemory creates a new in-memory store. keySelector extracts the entity
// key (usually the ID field) from a value.
func NewMemory[K comparable, T any](keySelector func(*T) K) *Memory[K, T] {
	return &Memory[K, T]{
		records:     make(map[K]T),
		keySelector: keySelector,
	}
}

// Save stores or overwrites a record.
func (s *Memory[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = *v
	return nil
}

// Load returns a copy of the record stored under key, or (nil, nil) when
// absent - callers that require existence translate the nil into their own
// not-found error.
func (s *Memory[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// Delete removes a record.
func (s *Memory[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// List returns a copy of every stored record matching all supplied
// parameters. A parameter matches when the record has an exported field
// named Parameter.Name whose value equals Parameter.Value; a []string value
// matches when any element equals the field. Records of non-struct types
// never match a parameter.
func (s *Memory[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		record := v
		if !matches(&record, parameters) {
			continue
		}
		out = append(out, &record)
	}
	return out, nil
}

func matches[T any](record *T, parameters []*dao.Parameter) bool {
	if len(parameters) == 0 {
		return true
	}
	rv := reflect.ValueOf(record).Elem()
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		field := rv.FieldByName(parameter.Name)
		if !field.IsValid() || !field.CanInterface() {
			return false
		}
		if !valueMatches(field.Interface(), parameter.Value) {
			return false
		}
	}
	return true
}

func valueMatches(have, want interface{}) bool {
	if values, ok := want.([]string); ok {
		for _, value := range values {
			if fmt.Sprint(have) == value {
				return true
			}
		}
		return false
	}
	return fmt.Sprint(have) == fmt.Sprint(want)
}

// Update atomically applies fn to the record stored under key. fn receives
// a copy; when it returns nil the copy replaces the stored record, when it
// returns an error the store is left unchanged and the error is propagated.
// Returns dao.ErrNotFound when no record exists under key.
func (s *Memory[K, T]) Update(_ context.Context, key K, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	if !ok {
		return dao.ErrNotFound
	}
	if err := fn(&v); err != nil {
		return err
	}
	s.records[key] = v
	return nil
}

var _ dao.Service[string, any] = (*Memory[string, any])(nil)
var _ dao.Mutator[string, any] = (*Memory[string, any])(nil)
