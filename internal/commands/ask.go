package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/promptpanel/internal/config"
	apierrors "github.com/diogo/promptpanel/internal/errors"
	"github.com/diogo/promptpanel/internal/render"
	"github.com/diogo/promptpanel/internal/tui"
)

var (
	resultLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	resultBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

type askOptions struct {
	file   string
	output string
	raw    bool
	copy   bool
}

func newAskCmd(deps *Dependencies, modelFlag *string) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a single prompt and print the reply",
		Long: `Send one prompt through the same controller the panel uses and print the
reply. The prompt comes from the argument, a file (-f) or stdin.

The API key is read from the credential store. When none is stored,
OPENAI_API_KEY is used instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, ok, err := readPrompt(deps, opts.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}
			return runAsk(cmd.Context(), deps, *modelFlag, prompt, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save response to file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the reply to the clipboard")

	return cmd
}

// readPrompt picks the prompt from a file, stdin or the argument, in that order.
// ok is false when no source was given.
func readPrompt(deps *Dependencies, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.In)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}
	return "", false, nil
}

// runAsk submits one prompt and writes the reply
func runAsk(ctx context.Context, deps *Dependencies, modelFlag, prompt string, opts askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := deps.loadConfig()
	model := resolveModel(cfg, modelFlag, deps)

	logger := stderrLogger(cfg, deps.Err)
	if opts.raw {
		logger.SetOutput(io.Discard)
	}

	ctrl, err := deps.controller(cfg, model, logger)
	if err != nil {
		return err
	}
	if err := ctrl.LoadAPIKey(); err != nil {
		return fmt.Errorf("failed to load API key: %w", err)
	}
	if ctrl.State().APIKey == "" {
		if key := config.EnvAPIKeyValue(); key != "" {
			logger.Printf("using %s", config.EnvAPIKey)
			ctrl.SetAPIKey(key)
		}
	}
	ctrl.SetPrompt(prompt)

	logger.Printf("Model: %s", model)
	logger.Printf("Endpoint: %s", cfg.Endpoint)

	var status *progress
	if !opts.raw {
		status = startProgress(deps.Err, "Generating response")
	}

	startTime := time.Now()
	result := ctrl.Run(ctx)
	requestDuration := time.Since(startTime)

	if result.Failed() {
		if !opts.raw {
			status.stop("")
			fmt.Fprintln(deps.Err, formatErrorMessage(result.Err, "Generation failed"))
		}
		return fmt.Errorf("generation failed: %w", result.Err)
	}
	if !opts.raw {
		status.stop("Done")
	}

	logger.Printf("Request %s took %s", result.RequestID, requestDuration.Round(time.Millisecond))

	return writeReply(deps, cfg, model, result.Text, opts)
}

// writeReply prints, saves or copies the reply
func writeReply(deps *Dependencies, cfg config.Config, model, text string, opts askOptions) error {
	if opts.raw {
		if opts.output != "" {
			if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Fprint(deps.Out, text)
		return nil
	}

	fmt.Fprintln(deps.Err)

	if cfg.CopyToClipboard || opts.copy {
		if err := deps.Clipboard(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(deps.Err, warnMsg)
		} else {
			fmt.Fprintln(deps.Err, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", opts.output),
		)
		fmt.Fprintln(deps.Err, successMsg)
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(deps.Out, resultLabelStyle.Render("◆ "+model))

	rendered := render.Reply(text, render.OptionsFromConfig(cfg.Markdown).WithWidth(contentWidth))
	fmt.Fprintln(deps.Out, resultBubbleStyle.Width(bubbleWidth).Render(rendered))

	return nil
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, prefix string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", prefix, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	} else if apierrors.IsCredentialMissing(err) {
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'promptpanel key set' or export " + config.EnvAPIKey))
	} else if hint := tui.ErrorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}
