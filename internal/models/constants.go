// Package models contains data types and constants for the chat-completion API.
package models

// Endpoints for the chat-completion API
const (
	EndpointChatCompletions = "https://api.openai.com/v1/chat/completions"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultModel is the model used when neither flag nor config names one
const DefaultModel = "gpt-3.5-turbo"

// AllModels returns the model identifiers offered in the config menu.
// Any other identifier is passed to the API unchanged.
func AllModels() []string {
	return []string{
		"gpt-3.5-turbo",
		"gpt-4o-mini",
		"gpt-4o",
		"gpt-4.1",
	}
}

// IsKnownModel reports whether name is one of AllModels
func IsKnownModel(name string) bool {
	for _, m := range AllModels() {
		if m == name {
			return true
		}
	}
	return false
}

// DefaultHeaders returns the headers sent with every chat-completion request
func DefaultHeaders(apiKey string) map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"Authorization": "Bearer " + apiKey,
		"User-Agent":    "promptpanel",
	}
}
