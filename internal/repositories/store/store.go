// Package store provides key-addressed JSON document storage with atomic
// multi-document transactions.
//
// Repositories build on Store instead of talking to Redis directly so that
// one Atomically call can read and write an account, a guild and a
// challenge together. Every key read through a Tx is guarded: if another
// writer commits to it before the Tx commits, the whole function is re-run
// against fresh data.
package store

import (
	"context"
)

// DefaultMaxAttempts bounds how many times a conflicting transaction is re-run
const DefaultMaxAttempts = 8

// Tx is the view of the store inside one Atomically call. Writes are staged
// and only become visible when the function returns nil.
type Tx interface {
	// Load decodes key into dest and reports whether it existed. A key staged
	// for writing in this Tx reads back the staged value.
	Load(ctx context.Context, key string, dest any) (bool, error)

	// Save stages value under key
	Save(key string, value any) error

	// Delete stages removal of key
	Delete(key string)

	// AddToSet stages adding member to the set at setKey
	AddToSet(setKey, member string)

	// RemoveFromSet stages removing member from the set at setKey
	RemoveFromSet(setKey, member string)
}

// Store reads documents and runs transactions
type Store interface {
	// Get decodes key into dest and reports whether it existed
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Members lists the set at setKey in no particular order
	Members(ctx context.Context, setKey string) ([]string, error)

	// Atomically runs fn and commits its staged writes as one unit.
	// Returns the error from fn unchanged, errors.Aborted when conflicts
	// outlast the retry budget, or errors.Internal for storage failures.
	Atomically(ctx context.Context, fn func(tx Tx) error) error
}

type opKind int

const (
	opSave opKind = iota
	opDelete
	opSetAdd
	opSetRemove
)

type op struct {
	kind   opKind
	key    string
	member string
	data   []byte
}

// staging keeps the ordered write log plus a read-your-writes view
type staging struct {
	ops     []op
	written map[string][]byte
	deleted map[string]bool
}

func newStaging() *staging {
	return &staging{
		written: map[string][]byte{},
		deleted: map[string]bool{},
	}
}

func (s *staging) lookup(key string) (data []byte, found, staged bool) {
	if s.deleted[key] {
		return nil, false, true
	}
	if data, ok := s.written[key]; ok {
		return data, true, true
	}
	return nil, false, false
}

func (s *staging) save(key string, data []byte) {
	delete(s.deleted, key)
	s.written[key] = data
	s.ops = append(s.ops, op{kind: opSave, key: key, data: data})
}

func (s *staging) remove(key string) {
	delete(s.written, key)
	s.deleted[key] = true
	s.ops = append(s.ops, op{kind: opDelete, key: key})
}

func (s *staging) addToSet(setKey, member string) {
	s.ops = append(s.ops, op{kind: opSetAdd, key: setKey, member: member})
}

func (s *staging) removeFromSet(setKey, member string) {
	s.ops = append(s.ops, op{kind: opSetRemove, key: setKey, member: member})
}
