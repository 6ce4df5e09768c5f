// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidKey is returned for record keys that are not simple names.
	ErrInvalidKey = errors.New("invalid record key")

	// ErrUnknownBackend is returned by Open for an unsupported kind.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("storage closed")

	// ErrLocked is returned when another process is using a data directory.
	ErrLocked = errors.New("data directory is in use by another geminipad")
)

// RecordError describes a failed read or write of one record.
type RecordError struct {
	Op  string // "get" or "put"
	Key string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// =============================================================================
// BACKEND
// =============================================================================

// Backend stores opaque record values by key.
type Backend interface {
	// Get returns the stored bytes and whether the record exists.
	Get(key string) ([]byte, bool, error)
	// Put replaces the record.
	Put(key string, data []byte) error
	// Name identifies the backend in logs and the status line.
	Name() string
	Close() error
}

// Kind selects a backend implementation.
type Kind string

const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Kinds lists the supported backends.
func Kinds() []Kind {
	return []Kind{KindJSON, KindSQLite, KindMemory}
}

// KindList names the supported backends for help and error text.
func KindList() string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	last := len(names) - 1
	return strings.Join(names[:last], ", ") + " or " + names[last]
}

// ParseKind maps a config string to a Kind. Empty selects KindJSON.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindJSON, nil
	}
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q (want %s)", ErrUnknownBackend, s, KindList())
}

// Open creates the backend of the given kind rooted at dir. dir is ignored
// for KindMemory.
func Open(kind Kind, dir string) (Backend, error) {
	switch kind {
	case KindJSON:
		return NewFileBackend(dir)
	case KindSQLite:
		return NewSQLiteBackend(SQLitePath(dir))
	case KindMemory:
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
