// Package panel holds the prompt panel's state machine, independent of any UI.
//
// A Controller is owned by a single goroutine (the UI loop). The only work
// that leaves that goroutine is the Job returned by Submit, which touches
// nothing but the values it captured and reports back through Settle.
package panel

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/diogo/promptpanel/internal/api"
	"github.com/diogo/promptpanel/internal/config"
	apierrors "github.com/diogo/promptpanel/internal/errors"
)

// Phase is the controller's request lifecycle state
type Phase int

const (
	Idle Phase = iota
	Generating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	default:
		return "unknown"
	}
}

// Result is the outcome of the last submission: text or error, never both
type Result struct {
	Text      string
	Err       error
	RequestID string
}

// Failed reports whether the submission ended in an error
func (r Result) Failed() bool {
	return r.Err != nil
}

// State is everything the panel renders
type State struct {
	Prompt     string
	APIKey     string
	ShowAPIKey bool
	Phase      Phase
	// Result is nil until the first submission settles, and is cleared on submit
	Result *Result
	// RequestID identifies the in-flight request while Generating
	RequestID string
}

// CredentialStore persists the API key
type CredentialStore interface {
	Save(value string) error
	Load() (string, error)
	Delete() error
}

// Outcome is what a Job reports back to Settle
type Outcome struct {
	RequestID string
	Text      string
	Err       error
}

// Job performs one request. It is safe to run on another goroutine.
type Job func() Outcome

// Controller drives the Idle -> Generating -> Idle cycle
type Controller struct {
	client api.ChatClientInterface
	creds  CredentialStore
	state  State
	logger *log.Logger
	newID  func() string
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger for failed-request diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDs replaces the UUID generator
func WithRequestIDs(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a Controller in the Idle phase
func New(client api.ChatClientInterface, creds CredentialStore, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		creds:  creds,
		logger: log.New(io.Discard, "", 0),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state
func (c *Controller) State() State {
	s := c.state
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

// Model returns the model identifier requests are sent with
func (c *Controller) Model() string {
	return c.client.Model()
}

func (c *Controller) SetPrompt(prompt string) {
	c.state.Prompt = prompt
}

func (c *Controller) ClearPrompt() {
	c.state.Prompt = ""
}

func (c *Controller) SetAPIKey(key string) {
	c.state.APIKey = key
}

// ToggleAPIKey shows or hides the API key field and returns the new visibility
func (c *Controller) ToggleAPIKey() bool {
	c.state.ShowAPIKey = !c.state.ShowAPIKey
	return c.state.ShowAPIKey
}

// SaveAPIKey writes the key field to the credential store
func (c *Controller) SaveAPIKey() error {
	return c.creds.Save(c.state.APIKey)
}

// LoadAPIKey replaces the key field with the stored key ("" if none)
func (c *Controller) LoadAPIKey() error {
	key, err := c.creds.Load()
	if err != nil {
		return err
	}
	c.state.APIKey = key
	return nil
}

// DeleteAPIKey removes the stored key and clears the field
func (c *Controller) DeleteAPIKey() error {
	err := c.creds.Delete()
	c.state.APIKey = ""
	return err
}

// CanSubmit reports whether Submit would start a request
func (c *Controller) CanSubmit() bool {
	return c.state.Phase != Generating
}

// Submit starts a request for the current prompt and key.
//
// While Generating it does nothing and returns false. A blank prompt or an
// empty key settles immediately with an error and also returns false.
// Otherwise the controller enters Generating and the returned Job must be
// run and its Outcome passed to Settle.
func (c *Controller) Submit(ctx context.Context) (Job, bool) {
	if c.state.Phase == Generating {
		return nil, false
	}

	c.state.Result = nil
	prompt := c.state.Prompt
	key := c.state.APIKey

	if strings.TrimSpace(prompt) == "" {
		c.state.Result = &Result{Err: apierrors.ErrEmptyPrompt}
		return nil, false
	}
	if key == "" {
		c.state.Result = &Result{Err: apierrors.NewCredentialMissingError(config.CredentialKey)}
		return nil, false
	}

	id := c.newID()
	c.state.Phase = Generating
	c.state.RequestID = id

	reqCtx := api.WithRequestID(ctx, id)
	client := c.client

	return func() Outcome {
		text, err := client.Generate(reqCtx, prompt, key)
		return Outcome{RequestID: id, Text: text, Err: err}
	}, true
}

// Settle finishes the in-flight request and returns to Idle.
// Outcomes for any other request are ignored and Settle returns false.
func (c *Controller) Settle(o Outcome) bool {
	if c.state.Phase != Generating || o.RequestID != c.state.RequestID {
		return false
	}

	c.state.Phase = Idle
	c.state.RequestID = ""

	if o.Err != nil {
		c.logger.Printf("request %s failed: %v", o.RequestID, o.Err)
		if body := apierrors.GetResponseBody(o.Err); body != "" {
			c.logger.Printf("response body: %s", body)
		}
		c.state.Result = &Result{Err: o.Err, RequestID: o.RequestID}
		return true
	}

	c.state.Result = &Result{Text: o.Text, RequestID: o.RequestID}
	return true
}

// Display returns what the result area shows and whether it is an error.
// Errors display their literal description.
func (c *Controller) Display() (text string, isError bool) {
	r := c.state.Result
	if r == nil {
		return "", false
	}
	if r.Err != nil {
		return r.Err.Error(), true
	}
	return r.Text, false
}

// Run submits and waits for the outcome on the calling goroutine
func (c *Controller) Run(ctx context.Context) Result {
	if job, ok := c.Submit(ctx); ok {
		c.Settle(job())
	}
	if c.state.Result == nil {
		return Result{}
	}
	return *c.state.Result
}
