package models

import "encoding/json"

// Message is a single role-tagged chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat-completion request
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// NewChatRequest builds the single-message request for prompt.
// The prompt is sent as-is; escaping is left to the JSON encoder.
func NewChatRequest(model, prompt string) ChatRequest {
	return ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleUser, Content: prompt},
		},
	}
}

// Marshal serializes the request to JSON
func (r ChatRequest) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
