package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/legalclear/backend/model"
)

// ErrNotFound is returned when a document, analysis, or chat session does
// not exist.
var ErrNotFound = errors.New("not found")

// DocumentStore persists documents, analyses, and chat history in sqlite.
// Analysis aggregates are stored as JSON columns; they are read back whole
// and never queried field-by-field.
type DocumentStore struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	original_filename TEXT NOT NULL,
	object_name TEXT,
	document_type TEXT NOT NULL,
	status TEXT NOT NULL,
	user_notes TEXT,
	file_size INTEGER NOT NULL,
	content_text TEXT,
	error_msg TEXT,
	upload_date TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id),
	payload TEXT NOT NULL,
	analysis_date TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_document ON analyses(document_id);

CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id),
	session_id TEXT NOT NULL,
	message_type TEXT NOT NULL,
	message TEXT NOT NULL,
	timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_document_session ON chat_messages(document_id, session_id);
`

// NewDocumentStore opens (and if needed creates) the sqlite database at
// path. Use ":memory:" for tests.
func NewDocumentStore(path string) (*DocumentStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DocumentStore{db: db}, nil
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// SaveDocument inserts a new document record.
func (s *DocumentStore) SaveDocument(doc *model.Document) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (id, name, original_filename, object_name, document_type, status,
			user_notes, file_size, content_text, error_msg, upload_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Name, doc.OriginalFilename, doc.ObjectName, doc.DocumentType, doc.Status,
		doc.UserNotes, doc.FileSize, doc.ContentText, doc.ErrorMsg, doc.UploadDate, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetDocument fetches one document by ID.
func (s *DocumentStore) GetDocument(id string) (*model.Document, error) {
	row := s.db.QueryRow(`
		SELECT id, name, original_filename, object_name, document_type, status,
			user_notes, file_size, content_text, error_msg, upload_date, updated_at
		FROM documents WHERE id = ?`, id)

	var doc model.Document
	err := row.Scan(&doc.ID, &doc.Name, &doc.OriginalFilename, &doc.ObjectName, &doc.DocumentType,
		&doc.Status, &doc.UserNotes, &doc.FileSize, &doc.ContentText, &doc.ErrorMsg,
		&doc.UploadDate, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *DocumentStore) ListDocuments() ([]*model.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, name, original_filename, object_name, document_type, status,
			user_notes, file_size, content_text, error_msg, upload_date, updated_at
		FROM documents ORDER BY upload_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		var doc model.Document
		err := rows.Scan(&doc.ID, &doc.Name, &doc.OriginalFilename, &doc.ObjectName, &doc.DocumentType,
			&doc.Status, &doc.UserNotes, &doc.FileSize, &doc.ContentText, &doc.ErrorMsg,
			&doc.UploadDate, &doc.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document along with its analyses and chat
// history.
func (s *DocumentStore) DeleteDocument(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM analyses WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete analyses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM chat_messages WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// UpdateStatus moves a document through its lifecycle. The error message is
// cleared unless the new status is the error state.
func (s *DocumentStore) UpdateStatus(id, status, errorMsg string) error {
	if status != model.StatusError {
		errorMsg = ""
	}
	result, err := s.db.Exec(`UPDATE documents SET status = ?, error_msg = ?, updated_at = ? WHERE id = ?`,
		status, errorMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateContentText stores the extracted text for a document.
func (s *DocumentStore) UpdateContentText(id, text string) error {
	result, err := s.db.Exec(`UPDATE documents SET content_text = ?, updated_at = ? WHERE id = ?`,
		text, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update content text: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveAnalysis stores a complete analysis, replacing any earlier analysis
// of the same document.
func (s *DocumentStore) SaveAnalysis(a *model.DocumentAnalysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM analyses WHERE document_id = ?`, a.DocumentID); err != nil {
		return fmt.Errorf("failed to replace analysis: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO analyses (id, document_id, payload, analysis_date) VALUES (?, ?, ?, ?)`,
		a.ID, a.DocumentID, string(payload), a.AnalysisDate); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return tx.Commit()
}

// GetAnalysis fetches the analysis for a document.
func (s *DocumentStore) GetAnalysis(documentID string) (*model.DocumentAnalysis, error) {
	row := s.db.QueryRow(`SELECT payload FROM analyses WHERE document_id = ?`, documentID)

	var payload string
	err := row.Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var analysis model.DocumentAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &analysis, nil
}

// SaveChatMessage appends one chat turn.
func (s *DocumentStore) SaveChatMessage(msg *model.ChatMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO chat_messages (id, document_id, session_id, message_type, message, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.DocumentID, msg.SessionID, msg.MessageType, msg.Message, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// GetChatHistory returns all turns of one document chat session in
// chronological order.
func (s *DocumentStore) GetChatHistory(documentID, sessionID string) ([]*model.ChatMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, document_id, session_id, message_type, message, timestamp
		FROM chat_messages WHERE document_id = ? AND session_id = ?
		ORDER BY timestamp ASC`, documentID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	defer rows.Close()

	var messages []*model.ChatMessage
	for rows.Next() {
		var msg model.ChatMessage
		err := rows.Scan(&msg.ID, &msg.DocumentID, &msg.SessionID, &msg.MessageType, &msg.Message, &msg.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
