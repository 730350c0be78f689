package store

import (
	"context"
	"sort"
)

// Fetch loads key from a running transaction into a new T
func Fetch[T any](ctx context.Context, tx Tx, key string) (*T, bool, error) {
	var v T
	found, err := tx.Load(ctx, key, &v)
	if err != nil || !found {
		return nil, found, err
	}
	return &v, true, nil
}

// Read loads key outside a transaction into a new T
func Read[T any](ctx context.Context, s Store, key string) (*T, bool, error) {
	var v T
	found, err := s.Get(ctx, key, &v)
	if err != nil || !found {
		return nil, found, err
	}
	return &v, true, nil
}

// ReadAll loads every member of setKey, ordered by member id. Members whose
// document has disappeared are skipped.
func ReadAll[T any](ctx context.Context, s Store, setKey string, keyOf func(id string) string) ([]*T, error) {
	ids, err := s.Members(ctx, setKey)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		v, found, err := Read[T](ctx, s, keyOf(id))
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, v)
		}
	}
	return out, nil
}
