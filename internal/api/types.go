// Package api defines the shared HTTP response types used by all feature handlers.
package api

import "time"

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by /auth/login on success.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileResponse is returned by /users/me.
type ProfileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DocumentResponse describes one uploaded document.
type DocumentResponse struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"upload_date"`
}

// SummaryResponse describes one generated summary.
// FolderID is null while the summary is unfiled; Note is omitted until set.
type SummaryResponse struct {
	ID        uint      `json:"id"`
	DocID     uint      `json:"doc_id"`
	Filename  string    `json:"filename"`
	Mode      string    `json:"mode"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	FolderID  *uint     `json:"folder_id"`
	Note      *string   `json:"note,omitempty"`
}

// FolderResponse describes one summary folder.
type FolderResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
