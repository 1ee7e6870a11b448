package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/sirupsen/logrus"
)

var errStoreDown = errors.New("store down")

type fakeRecordStore struct {
	mu      sync.Mutex
	records map[string][]byte
	sets    int
	failGet bool
	failSet bool
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string][]byte)}
}

func (s *fakeRecordStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, errStoreDown
	}
	v, ok := s.records[key]
	if !ok {
		return nil, entity.ErrRecordNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *fakeRecordStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	s.sets++
	s.records[key] = append([]byte(nil), value...)
	return nil
}

func (s *fakeRecordStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *fakeRecordStore) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	return string(v), ok
}

func (s *fakeRecordStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

type mapHints map[string]string

func (m mapHints) Generate(text string) string { return m[text] }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestItemUsecase returns an item usecase with sequential ids and a fixed clock.
func newTestItemUsecase(store *fakeRecordStore, hints HintGenerator) *itemUsecase {
	uc := NewItemUsecase(store, hints, quietLogger()).(*itemUsecase)
	uc.clock = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	seq := 0
	uc.newID = func(time.Time) string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return uc
}
