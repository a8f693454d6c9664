package models

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/promptpanel/internal/errors"
)

const contentPath = "choices.0.message.content"

// Choice is one completion returned by the API
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse is the subset of the chat-completion response we read
type ChatResponse struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

// FirstChoice returns the first completion, if the server sent any
func (r *ChatResponse) FirstChoice() (Choice, bool) {
	if r == nil || len(r.Choices) == 0 {
		return Choice{}, false
	}
	return r.Choices[0], true
}

// Text returns the first completion's content trimmed of surrounding whitespace
func (r *ChatResponse) Text() (string, error) {
	choice, ok := r.FirstChoice()
	if !ok {
		return "", apierrors.NewDecodingError("response has no choices", "choices", nil)
	}
	return strings.TrimSpace(choice.Message.Content), nil
}

// DecodeChatResponse decodes raw JSON into a ChatResponse
func DecodeChatResponse(raw []byte) (*ChatResponse, error) {
	if !gjson.ValidBytes(raw) {
		return nil, apierrors.NewDecodingError("malformed JSON", "", nil)
	}

	var resp ChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apierrors.NewDecodingError("unexpected response shape", "", err)
	}

	// The first choice must carry string content; "" is a valid empty reply
	if len(resp.Choices) > 0 {
		if gjson.GetBytes(raw, contentPath).Type != gjson.String {
			return nil, apierrors.NewDecodingError("response has no message content", contentPath, nil)
		}
	}

	return &resp, nil
}

// ParseChatResponse extracts choices[0].message.content, trimmed.
// An empty choices list is a DecodingError, never an index fault.
func ParseChatResponse(raw []byte) (string, error) {
	resp, err := DecodeChatResponse(raw)
	if err != nil {
		return "", err
	}
	return resp.Text()
}
