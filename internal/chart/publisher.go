// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for publish names that are empty or contain a path.
var ErrInvalidName = errors.New("chart: invalid publish name")

// Publisher writes rendered charts to a directory. A Publisher with an
// empty directory is disabled and Publish is a no-op.
type Publisher struct {
	dir string
}

// NewPublisher returns a Publisher writing into dir.
func NewPublisher(dir string) *Publisher {
	return &Publisher{dir: dir}
}

// Enabled reports whether Publish writes files.
func (p *Publisher) Enabled() bool {
	return p != nil && p.dir != ""
}

// Dir returns the output directory.
func (p *Publisher) Dir() string {
	if p == nil {
		return ""
	}
	return p.dir
}

// Publish atomically replaces <dir>/<name>.png with png and returns the
// final path. Concurrent publishes of the same name never interleave; the
// last rename wins. Disabled publishers return "", nil.
func (p *Publisher) Publish(name string, png []byte) (path string, err error) {
	if !p.Enabled() {
		return "", nil
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", p.dir, err)
	}

	target := filepath.Join(p.dir, name+".png")
	tmp, err := os.CreateTemp(p.dir, "."+name+"-*.png.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", target, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(png); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("rename %s to %s: %w", tmp.Name(), target, err)
	}
	return target, nil
}
