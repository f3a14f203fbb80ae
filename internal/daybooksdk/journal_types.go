package daybooksdk

import "time"

// GetEntryParams identifies the entry to fetch
type GetEntryParams struct {
	Date string `json:"date"`
}

// EntryResponse is the remote snapshot of a journal entry
type EntryResponse struct {
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	// Digest is the server's line-ending-normalized sha256 of Content.
	// Older servers omit it; callers must recompute when empty.
	Digest string `json:"digest,omitempty"`
}

// PutEntryParams carries the content to store for a date key
type PutEntryParams struct {
	Date    string `json:"date"`
	Content string `json:"content"`
	// ClientModified is the local mtime at the moment of the push,
	// recorded server-side for audit only.
	ClientModified time.Time `json:"client_modified"`
}

// PutEntryResponse returns the server-assigned update timestamp
type PutEntryResponse struct {
	Date      string    `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}
