package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/promptpanel/internal/panel"
	"github.com/diogo/promptpanel/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// outcomeMsg carries a finished Job back to the UI loop
type outcomeMsg panel.Outcome

type focusField int

const (
	focusPrompt focusField = iota
	focusKey
)

// Fixed layout heights
const (
	headerHeight   = 3
	fieldHeight    = 3
	resultChrome   = 3 // border plus label line
	feedbackHeight = 1
	helpHeight     = 1
	minViewport    = 3
)

// Model is the bubbletea model of the prompt panel
type Model struct {
	ctrl       *panel.Controller
	ctx        context.Context
	renderOpts render.Options
	copyFn     func(string) error

	// UI components
	prompt   textinput.Model
	apiKey   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	focus    focusField

	ready          bool
	animationFrame int
	feedback       string
	feedbackErr    bool

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithRenderOptions sets the markdown options used for results
func WithRenderOptions(opts render.Options) Option {
	return func(m *Model) {
		m.renderOpts = opts
	}
}

// WithClipboard replaces the clipboard writer
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		if fn != nil {
			m.copyFn = fn
		}
	}
}

// WithContext sets the context requests are issued under
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// NewModel creates the panel model around a controller
func NewModel(ctrl *panel.Controller, opts ...Option) Model {
	prompt := textinput.New()
	prompt.Placeholder = "Ask anything..."
	prompt.Prompt = ""
	prompt.CharLimit = 8000
	prompt.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	prompt.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	prompt.Focus()

	apiKey := textinput.New()
	apiKey.Placeholder = "sk-..."
	apiKey.Prompt = ""
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.EchoCharacter = '•'
	apiKey.TextStyle = prompt.TextStyle
	apiKey.PlaceholderStyle = prompt.PlaceholderStyle

	state := ctrl.State()
	prompt.SetValue(state.Prompt)
	apiKey.SetValue(state.APIKey)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Down:     key.NewBinding(key.WithKeys("down")),
		Up:       key.NewBinding(key.WithKeys("up")),
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(colorTextDim).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(colorTextMute)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(colorTextMute)

	m := Model{
		ctrl:       ctrl,
		ctx:        context.Background(),
		renderOpts: render.DefaultOptions(),
		copyFn:     clipboard.WriteAll,
		prompt:     prompt,
		apiKey:     apiKey,
		spinner:    s,
		viewport:   vp,
		help:       h,
		keys:       defaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.keys.setKeyFieldVisible(state.ShowAPIKey)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// runJob executes a controller Job off the UI loop
func runJob(job panel.Job) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(job())
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refreshResult()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			return m.submit()

		case key.Matches(msg, m.keys.ClearPrompt):
			m.prompt.Reset()
			m.ctrl.ClearPrompt()
			return m, nil

		case key.Matches(msg, m.keys.ToggleKey):
			return m.toggleKeyField()

		case key.Matches(msg, m.keys.SwitchFocus):
			return m.switchFocus()

		case key.Matches(msg, m.keys.SaveKey):
			m.ctrl.SetAPIKey(m.apiKey.Value())
			m.setFeedback("API key saved", m.ctrl.SaveAPIKey())
			return m, nil

		case key.Matches(msg, m.keys.LoadKey):
			err := m.ctrl.LoadAPIKey()
			m.apiKey.SetValue(m.ctrl.State().APIKey)
			if err == nil && m.apiKey.Value() == "" {
				m.setFeedbackError("No API key stored")
				return m, nil
			}
			m.setFeedback("API key loaded", err)
			return m, nil

		case key.Matches(msg, m.keys.DeleteKey):
			err := m.ctrl.DeleteAPIKey()
			m.apiKey.Reset()
			m.setFeedback("API key cleared", err)
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			m.copyResult()
			return m, nil

		case key.Matches(msg, m.viewport.KeyMap.PageUp, m.viewport.KeyMap.PageDown,
			m.viewport.KeyMap.Up, m.viewport.KeyMap.Down):
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Typing goes to the focused field only
		if m.focus == focusKey {
			m.apiKey, cmd = m.apiKey.Update(msg)
			m.ctrl.SetAPIKey(m.apiKey.Value())
		} else {
			m.prompt, cmd = m.prompt.Update(msg)
			m.ctrl.SetPrompt(m.prompt.Value())
		}
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case outcomeMsg:
		if m.ctrl.Settle(panel.Outcome(msg)) {
			m.refreshResult()
		}

	case spinner.TickMsg:
		if m.generating() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.generating() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}

	default:
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
		m.apiKey, cmd = m.apiKey.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) generating() bool {
	return m.ctrl.State().Phase == panel.Generating
}

// submit asks the controller for a Job and schedules it
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.ctrl.CanSubmit() {
		return m, nil
	}

	m.ctrl.SetPrompt(m.prompt.Value())
	m.ctrl.SetAPIKey(m.apiKey.Value())
	m.feedback = ""

	job, ok := m.ctrl.Submit(m.ctx)
	m.refreshResult()
	if !ok {
		return m, nil
	}

	m.animationFrame = 0
	return m, tea.Batch(
		runJob(job),
		m.spinner.Tick,
		animationTick(),
	)
}

func (m Model) toggleKeyField() (tea.Model, tea.Cmd) {
	visible := m.ctrl.ToggleAPIKey()
	m.keys.setKeyFieldVisible(visible)
	m.layout()

	if visible {
		m.focus = focusKey
		m.prompt.Blur()
		return m, m.apiKey.Focus()
	}
	m.focus = focusPrompt
	m.apiKey.Blur()
	return m, m.prompt.Focus()
}

func (m Model) switchFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusKey {
		m.focus = focusPrompt
		m.apiKey.Blur()
		return m, m.prompt.Focus()
	}
	m.focus = focusKey
	m.prompt.Blur()
	return m, m.apiKey.Focus()
}

func (m *Model) copyResult() {
	text, isError := m.ctrl.Display()
	if text == "" || isError {
		m.setFeedbackError("Nothing to copy")
		return
	}
	m.setFeedback("Copied to clipboard", m.copyFn(text))
}

func (m *Model) setFeedback(ok string, err error) {
	if err != nil {
		m.setFeedbackError(err.Error())
		return
	}
	m.feedback = ok
	m.feedbackErr = false
}

func (m *Model) setFeedbackError(text string) {
	m.feedback = text
	m.feedbackErr = true
}

// layout sizes the components for the current window and key-field visibility
func (m *Model) layout() {
	if !m.ready {
		return
	}
	contentWidth := m.width - 2

	fields := fieldHeight
	if m.ctrl.State().ShowAPIKey {
		fields += fieldHeight
	}

	vpHeight := m.height - headerHeight - fields - resultChrome - feedbackHeight - helpHeight
	if vpHeight < minViewport {
		vpHeight = minViewport
	}

	m.viewport.Width = contentWidth - 4
	m.viewport.Height = vpHeight
	m.prompt.Width = contentWidth - 14
	m.apiKey.Width = contentWidth - 14
	m.help.Width = contentWidth
}

// refreshResult re-renders the controller's result into the viewport
func (m *Model) refreshResult() {
	state := m.ctrl.State()
	if state.Result == nil {
		m.viewport.SetContent("")
		return
	}

	if state.Result.Failed() {
		m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(FormatError(state.Result.Err)))
	} else {
		m.viewport.SetContent(render.Reply(state.Result.Text, m.renderOpts.WithWidth(m.viewport.Width)))
	}
	m.viewport.GotoTop()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	state := m.ctrl.State()
	contentWidth := m.width - 2
	var sections []string

	// Header
	phase := phaseIdleStyle.Render(state.Phase.String())
	if state.Phase == panel.Generating {
		phase = phaseBusyStyle.Render(state.Phase.String())
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("◆ Prompt Panel"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.ctrl.Model()),
		hintStyle.Render("  •  "),
		phase,
	)
	sections = append(sections, headerStyle.Width(contentWidth-2).Render(headerContent))

	// Prompt field
	sections = append(sections, m.renderField("Prompt", m.prompt.View(), m.focus == focusPrompt, contentWidth))

	// API key field
	if state.ShowAPIKey {
		sections = append(sections, m.renderField("API Key", m.apiKey.View(), m.focus == focusKey, contentWidth))
	}

	// Result area
	sections = append(sections, m.renderResult(state, contentWidth))

	// Feedback line
	feedback := ""
	if m.feedback != "" {
		if m.feedbackErr {
			feedback = feedbackErrStyle.Render(m.feedback)
		} else {
			feedback = feedbackOkStyle.Render(m.feedback)
		}
	}
	sections = append(sections, feedback)

	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderField(label, input string, focused bool, width int) string {
	style := inputPanelStyle
	if focused {
		style = inputFocusedStyle
	}
	content := lipgloss.JoinHorizontal(lipgloss.Left,
		inputLabelStyle.Width(9).Render(label),
		input,
	)
	return style.Width(width - 2).Render(content)
}

func (m Model) renderResult(state panel.State, width int) string {
	var label, body string

	switch {
	case state.Phase == panel.Generating:
		label = resultLabelStyle.Render("Result")
		body = m.renderLoadingAnimation()
	case state.Result == nil:
		label = resultLabelStyle.Render("Result")
		body = hintStyle.Render("Type a prompt and press enter.")
	case state.Result.Failed():
		label = errorStyle.Render("Error")
		body = m.viewport.View()
	default:
		label = resultLabelStyle.Render("Result")
		body = m.viewport.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, label, body)
	return resultAreaStyle.
		Width(width - 2).
		Height(m.viewport.Height + 1).
		Render(content)
}

// renderLoadingAnimation renders the spinner with a gradient bar
func (m Model) renderLoadingAnimation() string {
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}
	frame := m.animationFrame

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dots += lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Generating ")

	return fmt.Sprintf("%s %s %s %s", m.spinner.View(), bar.String(), text, dots)
}

// RunPanel starts the full-screen panel and blocks until it exits
func RunPanel(ctrl *panel.Controller, palette render.Palette, opts render.Options) error {
	UpdateTheme(palette)

	m := NewModel(ctrl, WithRenderOptions(opts))
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
