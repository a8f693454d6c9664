package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/promptpanel/internal/render"
)

// CLI output shares the panel's default palette
var cliPalette = render.ResolvePalette(render.DefaultPalette)

var (
	colorText    = cliPalette.Text
	colorTextDim = cliPalette.TextDim
	colorSuccess = cliPalette.Secondary
	colorPrimary = cliPalette.Primary
	colorError   = cliPalette.Error
)

// progress animates a single status line on w while a request is in flight.
// Frames are the panel's spinner.Points.
type progress struct {
	w     io.Writer
	label string
	kind  spinner.Spinner

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func startProgress(w io.Writer, label string) *progress {
	p := &progress{
		w:     w,
		label: label,
		kind:  spinner.Points,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *progress) loop() {
	defer close(p.done)

	tick := time.NewTicker(p.kind.FPS)
	defer tick.Stop()

	fmt.Fprint(p.w, "\033[?25l")
	defer fmt.Fprint(p.w, "\r\033[K\033[?25h")

	for frame := 0; ; frame++ {
		fmt.Fprint(p.w, "\r\033[K"+p.line(frame))
		select {
		case <-p.quit:
			return
		case <-tick.C:
		}
	}
}

// line renders one frame: the spinner glyph in a cycling accent, then the label
func (p *progress) line(frame int) string {
	accents := []lipgloss.Color{cliPalette.Primary, cliPalette.Accent, cliPalette.Secondary}
	glyph := p.kind.Frames[frame%len(p.kind.Frames)]
	return lipgloss.NewStyle().Foreground(accents[(frame/len(p.kind.Frames))%len(accents)]).Render(glyph) +
		" " + lipgloss.NewStyle().Foreground(colorText).Render(p.label) +
		lipgloss.NewStyle().Foreground(colorTextDim).Render(fmt.Sprintf(" %ds", frame*int(p.kind.FPS)/int(time.Second)))
}

// stop clears the status line. A non-empty message is printed as a success line.
func (p *progress) stop(message string) {
	p.stopOnce.Do(func() { close(p.quit) })
	<-p.done

	if message != "" {
		fmt.Fprintln(p.w, lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓ "+message))
	}
}
