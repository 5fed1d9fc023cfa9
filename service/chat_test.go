package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/legalclear/backend/model"
)

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func chatTestDocument() *model.Document {
	return &model.Document{
		ID:           "doc-1",
		Name:         "Lease",
		DocumentType: "lease",
		ContentText:  "This lease agreement runs for twelve months at $1,200 per month.",
	}
}

func TestChatEngineAnswerQuestion(t *testing.T) {
	gen := &fakeGenerator{response: "Your rent is $1,200 per month."}
	engine := NewChatEngine(gen)

	answer := engine.AnswerQuestion(context.Background(), chatTestDocument(), nil, "How much is rent?")
	if answer != "Your rent is $1,200 per month." {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(gen.lastPrompt, "twelve months") {
		t.Error("prompt should include document text")
	}
	if !strings.Contains(gen.lastPrompt, "How much is rent?") {
		t.Error("prompt should include the question")
	}
}

func TestChatEngineWithoutGenerator(t *testing.T) {
	engine := NewChatEngine(nil)
	answer := engine.AnswerQuestion(context.Background(), chatTestDocument(), nil, "anything")

	if !strings.HasPrefix(answer, "Based on the document, here's what I found: ") {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(answer, "lease agreement") {
		t.Errorf("answer = %q, want the type summary", answer)
	}
}

func TestChatEngineGeneratorError(t *testing.T) {
	engine := NewChatEngine(&fakeGenerator{err: errors.New("down")})
	answer := engine.AnswerQuestion(context.Background(), chatTestDocument(), nil, "anything")

	if answer != "Sorry, I couldn't process your question due to an internal error." {
		t.Errorf("answer = %q", answer)
	}
}

func TestChatEngineHistoryLimit(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	engine := NewChatEngine(gen)

	var history []*model.ChatMessage
	for i := 0; i < 15; i++ {
		history = append(history, &model.ChatMessage{
			MessageType: "user",
			Message:     "turn-" + string(rune('a'+i)),
		})
	}

	engine.AnswerQuestion(context.Background(), chatTestDocument(), history, "q")

	if strings.Contains(gen.lastPrompt, "turn-a") {
		t.Error("oldest turns should be dropped from the prompt")
	}
	if !strings.Contains(gen.lastPrompt, "turn-o") {
		t.Error("latest turn should be in the prompt")
	}
}

func TestChatEngineDocumentTextTruncated(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	engine := NewChatEngine(gen)

	doc := chatTestDocument()
	doc.ContentText = strings.Repeat("x", chatTextLimit+500)
	engine.AnswerQuestion(context.Background(), doc, nil, "q")

	if strings.Contains(gen.lastPrompt, strings.Repeat("x", chatTextLimit+1)) {
		t.Error("document text should be truncated in the prompt")
	}
}

func TestChatEnginePromptStaysValidUTF8(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	engine := NewChatEngine(gen)

	// Multi-byte text long enough to be truncated must not be cut mid-rune.
	doc := chatTestDocument()
	doc.ContentText = strings.Repeat("€", chatTextLimit+100)
	engine.AnswerQuestion(context.Background(), doc, nil, "q")

	if !utf8.ValidString(gen.lastPrompt) {
		t.Error("prompt contains a split multi-byte rune")
	}
	if !strings.Contains(gen.lastPrompt, strings.Repeat("€", chatTextLimit)) {
		t.Error("truncation should keep the full rune budget")
	}
}
