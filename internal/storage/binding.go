// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/geminipad/internal/logger"
)

// Binding is a typed view of one record.
type Binding[T any] struct {
	backend Backend
	key     string
	def     func() T
}

// Bind returns a binding for key. def is returned by Read whenever the
// record cannot be used.
func Bind[T any](backend Backend, key string, def T) *Binding[T] {
	return BindFunc(backend, key, func() T { return def })
}

// BindFunc is Bind with a default built on demand, for defaults that hold
// slices or maps a caller may mutate.
func BindFunc[T any](backend Backend, key string, def func() T) *Binding[T] {
	return &Binding[T]{backend: backend, key: key, def: def}
}

// Key returns the record key.
func (b *Binding[T]) Key() string {
	return b.key
}

// Read loads and decodes the record. It never fails: any problem is logged
// and the default is returned.
func (b *Binding[T]) Read() T {
	data, ok, err := b.backend.Get(b.key)
	if err != nil {
		logger.WithError(err).WithField("key", b.key).Warnf("record unreadable, using default")
		return b.def()
	}
	if !ok {
		logger.WithField("key", b.key).Debugf("record absent, using default")
		return b.def()
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.WithError(err).WithField("key", b.key).Warnf("record corrupt, using default")
		return b.def()
	}
	return v
}

// Write encodes v and stores it.
func (b *Binding[T]) Write(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &RecordError{Op: "put", Key: b.key, Err: fmt.Errorf("encode: %w", err)}
	}
	return b.backend.Put(b.key, data)
}
