package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type memoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
	sets map[string]map[string]struct{}
}

// NewInMemory creates a Store that serializes transactions with a mutex.
// Documents are kept as JSON so callers never share memory with the store.
func NewInMemory() Store {
	return &memoryStore{
		docs: map[string][]byte{},
		sets: map[string]map[string]struct{}{},
	}
}

var _ Store = (*memoryStore)(nil)

func (s *memoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	data, ok := s.docs[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, decode(key, data, dest)
}

func (s *memoryStore) Members(_ context.Context, setKey string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]string, 0, len(s.sets[setKey]))
	for m := range s.sets[setKey] {
		members = append(members, m)
	}
	return members, nil
}

func (s *memoryStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "transaction cancelled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, staging: newStaging()}
	if err := fn(tx); err != nil {
		return err
	}

	for _, o := range tx.ops {
		switch o.kind {
		case opSave:
			s.docs[o.key] = o.data
		case opDelete:
			delete(s.docs, o.key)
		case opSetAdd:
			if s.sets[o.key] == nil {
				s.sets[o.key] = map[string]struct{}{}
			}
			s.sets[o.key][o.member] = struct{}{}
		case opSetRemove:
			delete(s.sets[o.key], o.member)
		}
	}
	return nil
}

// memoryTx runs while the store lock is held
type memoryTx struct {
	store *memoryStore
	*staging
}

func (t *memoryTx) Load(_ context.Context, key string, dest any) (bool, error) {
	data, found, staged := t.lookup(key)
	if !staged {
		data, found = t.store.docs[key]
	}
	if !found {
		return false, nil
	}
	return true, decode(key, data, dest)
}

func (t *memoryTx) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}
	t.save(key, data)
	return nil
}

func (t *memoryTx) Delete(key string) {
	t.remove(key)
}

func (t *memoryTx) AddToSet(setKey, member string) {
	t.addToSet(setKey, member)
}

func (t *memoryTx) RemoveFromSet(setKey, member string) {
	t.removeFromSet(setKey, member)
}
