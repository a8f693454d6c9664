package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/promptpanel/internal/errors"
	"github.com/diogo/promptpanel/internal/models"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// HeaderRequestID carries the client-generated request id
const HeaderRequestID = "X-Client-Request-Id"

// Generate sends prompt as a single user message and returns the trimmed reply.
// Empty prompts and empty keys fail before any network I/O.
func (c *Client) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apierrors.ErrEmptyPrompt
	}
	if apiKey == "" {
		return "", apierrors.NewCredentialMissingError("")
	}

	requestID := RequestIDFromContext(ctx)
	ctx = WithRequestID(ctx, requestID)

	raw, err := c.Send(ctx, models.NewChatRequest(c.model, prompt), apiKey)
	if err != nil {
		return "", err
	}

	text, err := models.ParseChatResponse(raw)
	if err != nil {
		c.logger.Printf("request %s: %v", requestID, err)
		c.logger.Printf("response body: %s", truncate(string(raw), maxErrorBody))
		return "", err
	}

	return text, nil
}

// Send posts req to the endpoint and returns the raw response body.
// Network failures, timeouts and non-2xx statuses come back as transport errors.
func (c *Client) Send(ctx context.Context, req models.ChatRequest, apiKey string) ([]byte, error) {
	payload, err := req.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	requestID := RequestIDFromContext(ctx)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders(apiKey) {
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set(HeaderRequestID, requestID)

	c.logger.Printf("request %s: POST %s model=%s", requestID, c.endpoint, req.Model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		tErr := classifyTransportError(ctx, c.endpoint, err)
		c.logger.Printf("request %s failed: %v", requestID, tErr)
		return nil, tErr
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := apierrors.NewAPIErrorWithBody(
			resp.StatusCode,
			c.endpoint,
			errorMessage(resp.StatusCode, errorBody),
			string(errorBody),
		)
		apiErr.RequestID = requestID
		c.logger.Printf("request %s failed: %v", requestID, apiErr)
		c.logger.Printf("response body: %s", apiErr.Body)
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tErr := classifyTransportError(ctx, c.endpoint, err)
		c.logger.Printf("request %s: reading body: %v", requestID, tErr)
		return nil, tErr
	}

	c.logger.Printf("request %s: %d, %d bytes", requestID, resp.StatusCode, len(body))
	return body, nil
}

// errorMessage prefers the API's own error.message over the status text
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToLower(text)
	}
	return "request failed"
}

func classifyTransportError(ctx context.Context, endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(err.Error())
	}

	return apierrors.NewNetworkError("chat completion", endpoint, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
