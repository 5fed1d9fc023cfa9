package model

import (
	"time"
)

// Document represents an uploaded legal document
type Document struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"original_filename"`
	ObjectName       string    `json:"object_name,omitempty"`
	DocumentType     string    `json:"document_type"` // contract, lease, loan, nda, terms, other
	Status           string    `json:"status"`        // uploaded, analyzing, analyzed, error
	UserNotes        string    `json:"user_notes,omitempty"`
	FileSize         int64     `json:"file_size"`
	ContentText      string    `json:"content_text,omitempty"`
	ErrorMsg         string    `json:"error_msg,omitempty"`
	UploadDate       time.Time `json:"upload_date"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Document lifecycle states
const (
	StatusUploaded  = "uploaded"
	StatusAnalyzing = "analyzing"
	StatusAnalyzed  = "analyzed"
	StatusError     = "error"
)

// ChatMessage is a single turn in a document chat session
type ChatMessage struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	SessionID   string    `json:"session_id"`
	MessageType string    `json:"message_type"` // user, assistant
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}
