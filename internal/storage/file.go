// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/geminipad/internal/util"
)

// FilePerm is the mode of record files; they may contain the API key.
const FilePerm os.FileMode = 0600

// LockFile is held open by the process that owns a data directory.
const LockFile = ".lock"

// FileBackend keeps each record in <dir>/<key>.json. Records are replaced
// whole, so one process at a time owns the directory.
type FileBackend struct {
	dir  string
	lock *os.File

	mu     sync.Mutex
	closed bool
}

// NewFileBackend creates dir if needed and locks it. It returns ErrLocked
// while another backend holds the directory.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("file backend needs a directory")
	}
	if err := os.MkdirAll(dir, util.DirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock, err := os.OpenFile(filepath.Join(dir, LockFile), os.O_CREATE|os.O_RDWR, FilePerm)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(lock); err != nil {
		lock.Close()
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
		}
		return nil, fmt.Errorf("lock data directory: %w", err)
	}
	return &FileBackend{dir: dir, lock: lock}, nil
}

// Dir returns the directory holding the record files.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, false, ErrClosed
	}

	data, err := os.ReadFile(b.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &RecordError{Op: "get", Key: key, Err: err}
	}
	return data, true, nil
}

func (b *FileBackend) Put(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	if err := util.AtomicWriteFile(b.Path(key), data, FilePerm); err != nil {
		return &RecordError{Op: "put", Key: key, Err: err}
	}
	return nil
}

func (b *FileBackend) Name() string {
	return "json:" + b.dir
}

func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := unlockFile(b.lock)
	if cerr := b.lock.Close(); err == nil {
		err = cerr
	}
	return err
}
