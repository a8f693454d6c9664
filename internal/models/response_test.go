package models

import (
	"testing"

	apierrors "github.com/diogo/promptpanel/internal/errors"
)

func TestParseChatResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "trims surrounding whitespace",
			raw:  `{"choices":[{"message":{"role":"assistant","content":"  hi  "}}]}`,
			want: "hi",
		},
		{
			name: "trailing newline",
			raw:  `{"choices":[{"message":{"role":"assistant","content":"Hi there!\n"}}]}`,
			want: "Hi there!",
		},
		{
			name: "uses first choice only",
			raw:  `{"choices":[{"message":{"content":"first"}},{"message":{"content":"second"}}]}`,
			want: "first",
		},
		{
			name: "full API payload",
			raw: `{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-3.5-turbo",
				"choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}],
				"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`,
			want: "ok",
		},
		{
			name: "empty content is not an error",
			raw:  `{"choices":[{"message":{"role":"assistant","content":""}}]}`,
			want: "",
		},
		{name: "empty choices", raw: `{"choices":[]}`, wantErr: true},
		{name: "missing choices", raw: `{"id":"x"}`, wantErr: true},
		{name: "null choices", raw: `{"choices":null}`, wantErr: true},
		{name: "malformed JSON", raw: `{"choices":[`, wantErr: true},
		{name: "wrong shape", raw: `{"choices":"nope"}`, wantErr: true},
		{name: "top-level array", raw: `[1,2,3]`, wantErr: true},
		{name: "empty body", raw: ``, wantErr: true},
		{name: "empty choice object", raw: `{"choices":[{}]}`, wantErr: true},
		{name: "null choice", raw: `{"choices":[null]}`, wantErr: true},
		{name: "null message", raw: `{"choices":[{"message":null}]}`, wantErr: true},
		{name: "message without content", raw: `{"choices":[{"message":{"role":"assistant"}}]}`, wantErr: true},
		{name: "non-string content", raw: `{"choices":[{"message":{"content":42}}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChatResponse([]byte(tt.raw))

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseChatResponse() = %q, want error", got)
				}
				if !apierrors.IsDecodingError(err) {
					t.Errorf("error %v is not a DecodingError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseChatResponse() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseChatResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChatResponse_FirstChoice(t *testing.T) {
	var nilResp *ChatResponse
	if _, ok := nilResp.FirstChoice(); ok {
		t.Error("nil response should have no first choice")
	}

	empty := &ChatResponse{}
	if _, ok := empty.FirstChoice(); ok {
		t.Error("empty response should have no first choice")
	}

	resp := &ChatResponse{Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: "x"}}}}
	choice, ok := resp.FirstChoice()
	if !ok {
		t.Fatal("expected a first choice")
	}
	if choice.Message.Content != "x" {
		t.Errorf("Content = %q", choice.Message.Content)
	}
}

func TestDecodeChatResponse_KeepsMetadata(t *testing.T) {
	resp, err := DecodeChatResponse([]byte(`{"id":"chatcmpl-9","model":"gpt-4o","choices":[]}`))
	if err != nil {
		t.Fatalf("DecodeChatResponse() error: %v", err)
	}
	if resp.ID != "chatcmpl-9" || resp.Model != "gpt-4o" {
		t.Errorf("metadata = %q/%q", resp.ID, resp.Model)
	}
	if _, err := resp.Text(); !apierrors.IsDecodingError(err) {
		t.Errorf("Text() on empty choices = %v, want DecodingError", err)
	}
}
