package commands

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/diogo/promptpanel/internal/api"
	"github.com/diogo/promptpanel/internal/config"
	"github.com/diogo/promptpanel/internal/panel"
	"github.com/diogo/promptpanel/internal/render"
	"github.com/diogo/promptpanel/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunPanel(ctrl *panel.Controller, palette render.Palette, opts render.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client replaces the HTTP chat client when set.
	Client api.ChatClientInterface

	// Store replaces the configured credential store when set.
	Store panel.CredentialStore

	// TUI is the terminal user interface.
	TUI TUIInterface

	// LoadConfig returns the effective configuration.
	LoadConfig func() (config.Config, error)

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// ReadSecret reads a value without echoing it.
	ReadSecret func(prompt string) (string, error)

	// StdinPiped reports whether stdin carries input.
	StdinPiped func() bool

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunPanel(ctrl *panel.Controller, palette render.Palette, opts render.Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !isStdoutTTY() {
		return fmt.Errorf("the panel needs an interactive terminal; use 'promptpanel ask' instead")
	}
	return tui.RunPanel(ctrl, palette, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:        &DefaultTUI{},
		LoadConfig: config.LoadConfig,
		Clipboard:  clipboard.WriteAll,
		ReadSecret: readSecret,
		StdinPiped: stdinPiped,
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
	}
}

// loadConfig returns the effective configuration, falling back to defaults
// with a warning when the file is unreadable
func (d *Dependencies) loadConfig() config.Config {
	cfg, err := d.LoadConfig()
	if err != nil {
		fmt.Fprintf(d.Err, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// store returns the credential store selected by cfg
func (d *Dependencies) store(cfg config.Config) (panel.CredentialStore, error) {
	if d.Store != nil {
		return d.Store, nil
	}
	store, err := config.OpenCredentialStore(cfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// client returns the chat client for model
func (d *Dependencies) client(cfg config.Config, model string, logger *log.Logger) (api.ChatClientInterface, error) {
	if d.Client != nil {
		return d.Client, nil
	}
	client, err := api.NewClient(
		api.WithModel(model),
		api.WithEndpoint(cfg.Endpoint),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// controller wires a panel controller from cfg
func (d *Dependencies) controller(cfg config.Config, model string, logger *log.Logger) (*panel.Controller, error) {
	store, err := d.store(cfg)
	if err != nil {
		return nil, err
	}
	client, err := d.client(cfg, model, logger)
	if err != nil {
		return nil, err
	}
	return panel.New(client, store, panel.WithLogger(logger)), nil
}

// fileLogger routes the standard logger to debug.log when verbose is set.
// The full-screen panel owns the terminal, so nothing may go to stderr.
func fileLogger(cfg config.Config) (*log.Logger, func(), error) {
	if !cfg.Verbose {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	if _, err := config.EnsureConfigDir(); err != nil {
		return nil, nil, err
	}
	path, err := config.GetLogPath()
	if err != nil {
		return nil, nil, err
	}
	f, err := tea.LogToFile(path, "promptpanel")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.Default(), func() { _ = f.Close() }, nil
}

// stderrLogger prints "[verbose]" lines when verbose is set
func stderrLogger(cfg config.Config, w io.Writer) *log.Logger {
	if !cfg.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "[verbose] ", 0)
}

func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
