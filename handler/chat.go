package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/legalclear/backend/model"
	"github.com/legalclear/backend/pkg/logger"
	"github.com/legalclear/backend/service"
)

type ChatHandler struct {
	engine *service.ChatEngine
	store  *service.DocumentStore
}

func NewChatHandler(engine *service.ChatEngine, store *service.DocumentStore) *ChatHandler {
	return &ChatHandler{engine: engine, store: store}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// SendMessage answers a user question about a document and records both
// turns in the session history.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	documentID := c.Param("id")

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	doc, err := h.store.GetDocument(documentID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document: " + err.Error()})
		return
	}

	history, err := h.store.GetChatHistory(documentID, req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	answer := h.engine.AnswerQuestion(ctx, doc, history, req.Message)

	now := time.Now().UTC()
	userTurn := &model.ChatMessage{
		ID:          uuid.New().String(),
		DocumentID:  documentID,
		SessionID:   req.SessionID,
		MessageType: "user",
		Message:     req.Message,
		Timestamp:   now,
	}
	assistantTurn := &model.ChatMessage{
		ID:          uuid.New().String(),
		DocumentID:  documentID,
		SessionID:   req.SessionID,
		MessageType: "assistant",
		Message:     answer,
		Timestamp:   now.Add(time.Millisecond),
	}
	if err := h.store.SaveChatMessage(userTurn); err != nil {
		logger.Warn(ctx, "failed to save user turn", "error", err)
	}
	if err := h.store.SaveChatMessage(assistantTurn); err != nil {
		logger.Warn(ctx, "failed to save assistant turn", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"answer":     answer,
	})
}

// GetHistory returns all turns of a chat session.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	documentID := c.Param("id")
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	if _, err := h.store.GetDocument(documentID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document: " + err.Error()})
		return
	}

	history, err := h.store.GetChatHistory(documentID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history: " + err.Error()})
		return
	}
	if history == nil {
		history = []*model.ChatMessage{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": history})
}
