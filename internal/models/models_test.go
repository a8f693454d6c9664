package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAllModels(t *testing.T) {
	models := AllModels()

	if len(models) == 0 {
		t.Fatal("Expected at least one model")
	}
	if models[0] != DefaultModel {
		t.Errorf("first model = %s, want default %s", models[0], DefaultModel)
	}
	for _, m := range models {
		if !IsKnownModel(m) {
			t.Errorf("IsKnownModel(%s) = false", m)
		}
	}
	if IsKnownModel("no-such-model") {
		t.Error("IsKnownModel should reject unknown names")
	}
}

func TestDefaultHeaders(t *testing.T) {
	headers := DefaultHeaders("sk-test")

	required := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer sk-test",
	}
	for key, want := range required {
		if got := headers[key]; got != want {
			t.Errorf("header %s = %q, want %q", key, got, want)
		}
	}
}

func TestNewChatRequest(t *testing.T) {
	prompts := []string{
		"Say hi",
		"multi\nline\tprompt",
		`quotes " and \ backslashes`,
		"unicode ✦ 日本語",
	}

	for _, prompt := range prompts {
		t.Run(prompt, func(t *testing.T) {
			req := NewChatRequest("gpt-3.5-turbo", prompt)

			if req.Model != "gpt-3.5-turbo" {
				t.Errorf("Model = %s", req.Model)
			}
			if len(req.Messages) != 1 {
				t.Fatalf("len(Messages) = %d, want 1", len(req.Messages))
			}
			if req.Messages[0].Role != RoleUser {
				t.Errorf("Role = %s, want user", req.Messages[0].Role)
			}
			if req.Messages[0].Content != prompt {
				t.Errorf("Content = %q, want %q", req.Messages[0].Content, prompt)
			}
		})
	}
}

func TestChatRequest_MarshalRoundTrip(t *testing.T) {
	req := NewChatRequest("gpt-4o", "Explain \"goroutines\"\n\tbriefly")

	data, err := req.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded ChatRequest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if !reflect.DeepEqual(req, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, req)
	}
}

func TestChatRequest_WireShape(t *testing.T) {
	data, err := NewChatRequest("gpt-3.5-turbo", "hi").Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `{"model":"gpt-3.5-turbo","messages":[{"role":"user","content":"hi"}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
