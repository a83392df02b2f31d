//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CreateDeck creates a temporary directory to hold card files
func (tf *TUITestFramework) CreateDeck() (string, error) {
	tmpDir, err := os.MkdirTemp("", "deckgrip-test-*")
	if err != nil {
		return "", err
	}

	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteCard writes a card file into the deck directory
func (tf *TUITestFramework) WriteCard(name, body string, options ...CardOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("deck not created")
	}

	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", err
	}

	// Apply options
	opts := &cardOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if !opts.modTime.IsZero() {
		if err := os.Chtimes(path, opts.modTime, opts.modTime); err != nil {
			return "", err
		}
	}

	return path, nil
}

// CardOption is a function that configures card creation
type CardOption func(*cardOptions)

type cardOptions struct {
	modTime time.Time
}

// WithModTime backdates the card file so modified-order sorts are deterministic
func WithModTime(t time.Time) CardOption {
	return func(opts *cardOptions) {
		opts.modTime = t
	}
}
