package domain

import "time"

// Card represents a file-backed card in the deck
type Card struct {
	Path    string
	Name    string // base file name, extension included
	Title   string // first heading of the body, falls back to the name stem
	Ext     string // lowercased extension, including the dot
	Preview []string
	Size    int64
	ModTime time.Time
}

// SortMode determines the deck ordering
type SortMode string

const (
	SortByName     SortMode = "name"
	SortByModified SortMode = "modified"
	SortBySize     SortMode = "size"
)

// ScanProgress represents the current scanning state
type ScanProgress struct {
	IsScanning bool
	CardsFound int
}
