// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly || windows)

package storage

import "os"

// Platforms without flock run unlocked.
func lockFile(*os.File) error   { return nil }
func unlockFile(*os.File) error { return nil }
