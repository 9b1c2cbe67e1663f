// Package repository contains the storage layer for the Guestbook API
package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/akinsira/guestbookapi/internal/models"
	"github.com/natefinch/atomic"
)

// MessageRepository persists the message collection as a single JSON
// document. Every mutation is a full load-transform-save cycle; the lock
// makes each cycle atomic relative to all other store operations, so
// concurrent writers cannot lose each other's updates.
type MessageRepository struct {
	path string
	mu   sync.RWMutex
}

// NewMessageRepository creates a repository backed by the given file path
func NewMessageRepository(path string) *MessageRepository {
	return &MessageRepository{path: path}
}

// EnsureFile creates an empty collection file if none exists yet
func (r *MessageRepository) EnsureFile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat messages file: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create messages directory: %w", err)
		}
	}
	return r.save([]models.Message{})
}

// List returns the full collection, newest first
func (r *MessageRepository) List() ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load()
}

// Mutate runs fn over the full collection under the write lock and persists
// the returned collection. If fn returns an error nothing is written and the
// error is passed through unchanged, so callers can reject a mutation from
// inside the cycle.
func (r *MessageRepository) Mutate(fn func([]models.Message) ([]models.Message, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.load()
	if err != nil {
		return err
	}
	updated, err := fn(messages)
	if err != nil {
		return err
	}
	return r.save(updated)
}

func (r *MessageRepository) load() ([]models.Message, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	var messages []models.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

func (r *MessageRepository) save(messages []models.Message) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize messages: %w", err)
	}

	// rename-based atomic rewrite, a half-written file never replaces the
	// previous collection
	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write messages file: %w", err)
	}
	return nil
}
