package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/legalclear/backend/analysis"
	"github.com/legalclear/backend/config"
	"github.com/legalclear/backend/model"
	"github.com/legalclear/backend/pkg/logger"
	"github.com/legalclear/backend/service"
)

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Extractor turns uploaded document bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, content []byte, filename string) (string, error)
}

// ObjectStorage is the slice of MinioService the handler needs.
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, objectName string) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

type DocumentHandler struct {
	storage   ObjectStorage
	extractor Extractor
	engine    *analysis.Engine
	store     *service.DocumentStore
	maxSize   int64
}

func NewDocumentHandler(storage ObjectStorage, extractor Extractor, engine *analysis.Engine, store *service.DocumentStore, cfg *config.UploadConfig) *DocumentHandler {
	return &DocumentHandler{
		storage:   storage,
		extractor: extractor,
		engine:    engine,
		store:     store,
		maxSize:   int64(cfg.MaxSizeMB) * 1024 * 1024,
	}
}

// Upload accepts a document file plus its metadata and kicks off analysis
// in the background.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOC, DOCX and TXT files are allowed"})
		return
	}

	if header.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File exceeds the %dMB limit", h.maxSize/(1024*1024))})
		return
	}

	name := c.PostForm("document_name")
	if name == "" {
		name = header.Filename
	}
	documentType := c.PostForm("document_type")
	if documentType == "" {
		documentType = "other"
	}

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	documentID := uuid.New().String()
	objectName := fmt.Sprintf("documents/%s/%s", documentID, header.Filename)

	err = h.storage.UploadFile(c.Request.Context(), objectName, bytes.NewReader(content), int64(len(content)), contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file: " + err.Error()})
		return
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:               documentID,
		Name:             name,
		OriginalFilename: header.Filename,
		ObjectName:       objectName,
		DocumentType:     documentType,
		Status:           model.StatusUploaded,
		UserNotes:        c.PostForm("notes"),
		FileSize:         int64(len(content)),
		UploadDate:       now,
		UpdatedAt:        now,
	}
	if err := h.store.SaveDocument(doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document: " + err.Error()})
		return
	}

	go h.processDocument(doc, content)

	c.JSON(http.StatusOK, gin.H{
		"id":            doc.ID,
		"name":          doc.Name,
		"document_type": doc.DocumentType,
		"status":        doc.Status,
	})
}

// processDocument runs extraction and analysis asynchronously. Extraction
// failure is not fatal: analysis proceeds on empty text and still produces
// the deterministic fallback output.
func (h *DocumentHandler) processDocument(doc *model.Document, content []byte) {
	ctx := context.WithValue(context.Background(), logger.DocumentIDKey, doc.ID)

	if err := h.store.UpdateStatus(doc.ID, model.StatusAnalyzing, ""); err != nil {
		logger.Error(ctx, "failed to mark document analyzing", "error", err)
		return
	}

	text := ""
	if h.extractor != nil {
		extracted, err := h.extractor.Extract(ctx, content, doc.OriginalFilename)
		if err != nil {
			logger.Warn(ctx, "text extraction failed, analyzing without content", "error", err)
		} else {
			text = analysis.CleanText(extracted)
		}
	}

	if err := h.store.UpdateContentText(doc.ID, text); err != nil {
		logger.Error(ctx, "failed to save content text", "error", err)
		h.store.UpdateStatus(doc.ID, model.StatusError, err.Error())
		return
	}

	result := h.engine.Analyze(ctx, text, doc.DocumentType, doc.ID)
	if err := h.store.SaveAnalysis(&result); err != nil {
		logger.Error(ctx, "failed to save analysis", "error", err)
		h.store.UpdateStatus(doc.ID, model.StatusError, err.Error())
		return
	}

	if err := h.store.UpdateStatus(doc.ID, model.StatusAnalyzed, ""); err != nil {
		logger.Error(ctx, "failed to mark document analyzed", "error", err)
	}
	logger.Info(ctx, "document analyzed", "degraded", result.Degraded)
}

// List returns all documents with a per-document summary line and
// complexity rating.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.store.ListDocuments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents: " + err.Error()})
		return
	}

	items := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		items = append(items, gin.H{
			"id":            doc.ID,
			"name":          doc.Name,
			"document_type": doc.DocumentType,
			"status":        doc.Status,
			"file_size":     doc.FileSize,
			"upload_date":   doc.UploadDate,
			"summary":       analysis.TypeSummary(doc.ContentText, doc.DocumentType),
			"complexity":    analysis.DetermineComplexity(doc.ContentText),
		})
	}

	c.JSON(http.StatusOK, gin.H{"documents": items})
}

// Get returns one document with its analysis (if available) and a download
// URL.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, ok := h.fetchDocument(c)
	if !ok {
		return
	}

	response := gin.H{"document": doc}

	if result, err := h.store.GetAnalysis(doc.ID); err == nil {
		response["analysis"] = result
	}
	if url, err := h.storage.GetPresignedURL(c.Request.Context(), doc.ObjectName); err == nil {
		response["download_url"] = url
	}

	c.JSON(http.StatusOK, response)
}

// GetStatus returns the document's lifecycle state.
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	doc, ok := h.fetchDocument(c)
	if !ok {
		return
	}

	response := gin.H{
		"id":     doc.ID,
		"status": doc.Status,
	}
	if doc.ErrorMsg != "" {
		response["error_msg"] = doc.ErrorMsg
	}
	c.JSON(http.StatusOK, response)
}

// GetAnalysis returns the stored analysis for a document.
func (h *DocumentHandler) GetAnalysis(c *gin.Context) {
	doc, ok := h.fetchDocument(c)
	if !ok {
		return
	}

	result, err := h.store.GetAnalysis(doc.ID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not ready"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analysis: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSchema builds the structured contract view on demand, including
// simulated scenarios.
func (h *DocumentHandler) GetSchema(c *gin.Context) {
	doc, ok := h.fetchDocument(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	schema := h.engine.BuildSchema(ctx, doc.ContentText)
	scenarios := analysis.SimulateScenarios(analysis.SplitClauses(doc.ContentText))

	c.JSON(http.StatusOK, gin.H{
		"schema":    schema,
		"scenarios": h.engine.ExplainScenarios(ctx, scenarios),
	})
}

// Delete removes the document, its stored file, analysis and chat history.
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc, ok := h.fetchDocument(c)
	if !ok {
		return
	}

	if doc.ObjectName != "" {
		if err := h.storage.DeleteFile(c.Request.Context(), doc.ObjectName); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete stored file", "error", err, "object", doc.ObjectName)
		}
	}

	if err := h.store.DeleteDocument(doc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

func (h *DocumentHandler) fetchDocument(c *gin.Context) (*model.Document, bool) {
	doc, err := h.store.GetDocument(c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document: " + err.Error()})
		return nil, false
	}
	return doc, true
}
