// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docs provides the local document library used as suggestion input.
//
// A Library lists the .txt and .md files in a directory (default
// ~/.planrun/docs) so the TUI can offer them as input for plan suggestions
// without a file picker. With watching enabled, an fsnotify watcher keeps
// the listing current as files are added, edited, or removed; events are
// debounced so editor save bursts coalesce into one update.
package docs
