package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalclear/backend/analysis"
	"github.com/legalclear/backend/model"
	"github.com/legalclear/backend/pkg/logger"
)

// chatHistoryLimit caps how many prior turns are included in the prompt.
const chatHistoryLimit = 10

// chatTextLimit caps how much document text is included in the prompt.
const chatTextLimit = 4000

// ChatEngine answers user questions about a specific document. It degrades
// gracefully: without a generator, or when generation fails, the user gets
// a canned answer instead of an error.
type ChatEngine struct {
	gen analysis.TextGenerator
}

func NewChatEngine(gen analysis.TextGenerator) *ChatEngine {
	return &ChatEngine{gen: gen}
}

// AnswerQuestion builds a prompt from the document text, recent history,
// and the question, then asks the generation service.
func (e *ChatEngine) AnswerQuestion(ctx context.Context, doc *model.Document, history []*model.ChatMessage, question string) string {
	if e.gen == nil {
		return fmt.Sprintf("Based on the document, here's what I found: %s",
			analysis.TypeSummary(doc.ContentText, doc.DocumentType))
	}

	answer, err := e.gen.Generate(ctx, e.buildPrompt(doc, history, question))
	if err != nil {
		logger.Warn(ctx, "chat generation failed", "error", err)
		return "Sorry, I couldn't process your question due to an internal error."
	}
	return strings.TrimSpace(answer)
}

func (e *ChatEngine) buildPrompt(doc *model.Document, history []*model.ChatMessage, question string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful legal assistant. Answer the user's question about their document ")
	sb.WriteString("in plain, simple English. Do not give formal legal advice.\n\nDocument:\n")

	sb.WriteString(analysis.Truncate(doc.ContentText, chatTextLimit))

	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		for _, msg := range history {
			sb.WriteString(msg.MessageType)
			sb.WriteString(": ")
			sb.WriteString(msg.Message)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
