// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package paths centralizes the on-disk locations used by avg-scan for
// configuration and persisted feedback state.
package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "avg-scan"

// ConfigDir returns the directory searched for the optional avg-scan.yaml
// configuration file.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return "."
}

// DataDir returns the directory holding persisted state such as the
// feedback database. Falls back to the working directory when the user data
// location cannot be resolved.
func DataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, "."+appDirName)
	}
	return "."
}

// FeedbackDBFile returns the default path of the SQLite feedback database.
func FeedbackDBFile() string {
	return filepath.Join(DataDir(), "feedback.db")
}

// EnsureDir creates dir (and parents) with user-only permissions.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0700)
}
