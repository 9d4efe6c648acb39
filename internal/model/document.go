package model

import "time"

// Document is the metadata of an uploaded file. The bytes live in the blob store under the key
// that forms the last path segment of FileURL.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
}
