package api

import (
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockHttpClient is a mock HTTPDoer that records the last request
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	Calls       int
	LastRequest *fhttp.Request
	LastBody    string
}

// Do implements HTTPDoer
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.Calls++
	m.LastRequest = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.LastBody = string(data)
	}
	return m.Response, m.Err
}

// NewMockHttpClient creates a new MockHttpClient with a canned response
func NewMockHttpClient(body string, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(fhttp.Header),
		},
	}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}

// timeoutErr satisfies net.Error with Timeout() == true
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

// failingBody errors on read
type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (failingBody) Close() error             { return nil }
