// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docs provides the local document library used as suggestion input.
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// Document is one requirements file the user can feed to the suggester.
type Document struct {
	// Name is the file name relative to the library directory.
	Name string
	// Size in bytes.
	Size int64
	// ModTime is the last modification time.
	ModTime time.Time
}

// supportedExtensions lists the file types treated as documents.
var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// ErrDocumentNotFound is returned when a named document is not in the library.
var ErrDocumentNotFound = errors.New("document not found")

// MaxDocumentSize caps how large a file the library will read (1MB). The
// suggestion prompt embeds the whole document, so anything bigger is almost
// certainly not a requirements doc.
const MaxDocumentSize = 1 * 1024 * 1024

// =============================================================================
// LIBRARY
// =============================================================================

// Library tracks the documents in a directory. With watching enabled the
// listing refreshes automatically as files change on disk.
type Library struct {
	root string

	mu   sync.RWMutex
	docs map[string]Document

	watcher *watcher
}

// NewLibrary creates a library over dir, creating the directory if needed,
// and performs the initial scan.
func NewLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create docs directory: %w", err)
	}

	lib := &Library{
		root: dir,
		docs: make(map[string]Document),
	}
	if err := lib.Rescan(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Root returns the library directory.
func (l *Library) Root() string {
	return l.root
}

// Rescan rebuilds the document listing from disk.
func (l *Library) Rescan() error {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return fmt.Errorf("failed to read docs directory: %w", err)
	}

	docs := make(map[string]Document)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs[entry.Name()] = Document{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
	}

	l.mu.Lock()
	l.docs = docs
	l.mu.Unlock()
	return nil
}

// List returns the documents sorted by name.
func (l *Library) List() []Document {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Document, 0, len(l.docs))
	for _, d := range l.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Read returns the text of a named document.
func (l *Library) Read(name string) (string, error) {
	l.mu.RLock()
	_, ok := l.docs[name]
	l.mu.RUnlock()
	if !ok {
		return "", ErrDocumentNotFound
	}

	// Names come from the listing, but reject separators anyway so a stale
	// entry can never escape the library root.
	if name != filepath.Base(name) {
		return "", ErrDocumentNotFound
	}

	path := filepath.Join(l.root, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", ErrDocumentNotFound
	}
	if info.Size() > MaxDocumentSize {
		return "", fmt.Errorf("document %s exceeds maximum size of %d bytes", name, MaxDocumentSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

// updateEntry refreshes one document's metadata after a change event.
func (l *Library) updateEntry(path string) {
	name := filepath.Base(path)
	if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		l.removeEntry(path)
		return
	}
	if info.IsDir() {
		return
	}

	l.mu.Lock()
	l.docs[name] = Document{Name: name, Size: info.Size(), ModTime: info.ModTime()}
	l.mu.Unlock()
}

// removeEntry drops one document after a delete or rename event.
func (l *Library) removeEntry(path string) {
	l.mu.Lock()
	delete(l.docs, filepath.Base(path))
	l.mu.Unlock()
}

// StartWatching begins refreshing the listing on filesystem events.
// No-op if already watching.
func (l *Library) StartWatching() error {
	if l.watcher != nil {
		return nil
	}
	w, err := newWatcher(l, 200*time.Millisecond)
	if err != nil {
		return err
	}
	if err := w.Watch(); err != nil {
		w.Close()
		return err
	}
	l.watcher = w
	return nil
}

// Close stops the watcher if one is running.
func (l *Library) Close() error {
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}
