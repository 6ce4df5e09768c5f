// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists geminipad's state as named JSON records.
//
// A Backend is a dumb byte store keyed by record name. Three backends exist:
//
//   - FileBackend: one <key>.json file per record, replaced atomically; the
//     directory is locked while open so two processes never interleave writes
//   - SQLiteBackend: a single records table in a SQLite database
//   - MemoryBackend: a map, for tests and --ephemeral runs
//
// Binding[T] puts a typed face on one record. Read never fails: an absent,
// unreadable or undecodable record yields the binding's default value, and
// the recovery is logged. Write serializes the whole value and stores it
// before returning.
//
//	backend, err := storage.Open(storage.KindJSON, dataDir)
//	files := storage.Bind(backend, storage.KeyFiles, []model.FileItem{})
//	list := files.Read()
//	err = files.Write(append(list, f))
package storage
