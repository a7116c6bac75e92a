package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrNoChange can be returned by a Mutate transform to signal that the
// collection is unchanged and the durable write should be skipped.
var ErrNoChange = errors.New("storage: no change")

// Durable is the persistence contract under the Store: one opaque JSON
// document per collection name. Read reports ok=false when no state exists
// for the collection yet; that is not an error.
type Durable interface {
	Read(name string) (data []byte, ok bool, err error)
	Write(name string, data []byte) error
}

// Store serializes access to named collections. Operations on different
// collections never block each other; operations on the same collection are
// mutually exclusive, with waiters parked on a mutex. No fairness or arrival
// ordering is guaranteed, only exclusivity.
type Store struct {
	durable Durable

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(d Durable) *Store {
	return &Store{
		durable: d,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Load reads a collection under its lock, so a reader sees the state before
// or after an in-flight mutation, never a mixture. Missing state yields the
// zero value of T and no error.
func Load[T any](s *Store, name string) (T, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return loadLocked[T](s, name)
}

func loadLocked[T any](s *Store, name string) (T, error) {
	var v T
	data, ok, err := s.durable.Read(name)
	if err != nil {
		return v, fmt.Errorf("storage: read %s: %w", name, err)
	}
	if !ok {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("storage: decode %s: %w", name, err)
	}
	return v, nil
}

// Save replaces a collection's durable state under its lock.
func Save[T any](s *Store, name string, v T) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return saveLocked(s, name, v)
}

func saveLocked[T any](s *Store, name string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", name, err)
	}
	if err := s.durable.Write(name, data); err != nil {
		log.Printf("storage: write %s failed: %v", name, err)
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Mutate is the only sanctioned read-modify-write path: it acquires the
// collection lock, loads current state, applies fn, persists the result, and
// releases the lock on every exit path. When fn or the durable write fails,
// nothing is persisted and the error propagates to the caller.
func Mutate[T any](s *Store, name string, fn func(T) (T, error)) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	cur, err := loadLocked[T](s, name)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return saveLocked(s, name, next)
}
