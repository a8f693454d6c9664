// Package commands provides CLI commands for promptpanel.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/promptpanel/internal/config"
	"github.com/diogo/promptpanel/internal/models"
	"github.com/diogo/promptpanel/internal/render"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var modelFlag string

	cmd := &cobra.Command{
		Use:   "promptpanel",
		Short: "A one-prompt panel for OpenAI chat completions",
		Long: `promptpanel opens a terminal panel with a prompt field, an API key field
and a result area. Each submission sends the prompt as a single user message
to the chat-completions endpoint and shows the reply.

Examples:
  promptpanel                         Open the panel
  promptpanel ask "What is Go?"       Send a single prompt
  promptpanel ask -f prompt.md        Read the prompt from a file
  cat prompt.md | promptpanel ask     Read the prompt from stdin
  promptpanel key set                 Store the API key
  promptpanel config                  Show the effective configuration`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Out, "promptpanel %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runPanel(deps, modelFlag)
		},
	}

	cmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., gpt-4o-mini)")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newAskCmd(deps, &modelFlag))
	cmd.AddCommand(newKeyCmd(deps))
	cmd.AddCommand(newConfigCmd(deps, &modelFlag))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveModel returns the model to use (from flag or config)
func resolveModel(cfg config.Config, flag string, deps *Dependencies) string {
	model := flag
	if model == "" {
		model = cfg.DefaultModel
	}
	if model == "" {
		model = models.DefaultModel
	}
	if !models.IsKnownModel(model) {
		fmt.Fprintf(deps.Err, "Warning: unknown model %q, sending it as-is\n", model)
	}
	return model
}

// panelRenderOptions uses the palette's markdown style unless one is configured
func panelRenderOptions(cfg config.Config, palette render.Palette) render.Options {
	opts := render.OptionsFromConfig(cfg.Markdown)
	if cfg.Markdown.Style == "" && os.Getenv(render.EnvGlamourStyle) == "" {
		opts.Style = palette.MarkdownStyle
	}
	return opts
}

// runPanel opens the interactive panel with the stored key preloaded
func runPanel(deps *Dependencies, modelFlag string) error {
	cfg := deps.loadConfig()
	model := resolveModel(cfg, modelFlag, deps)

	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl, err := deps.controller(cfg, model, logger)
	if err != nil {
		return err
	}
	if err := ctrl.LoadAPIKey(); err != nil {
		logger.Printf("could not load stored API key: %v", err)
	}
	logger.Printf("panel opened: model=%s endpoint=%s backend=%s", model, cfg.Endpoint, backendName(cfg))

	palette := render.ResolvePalette(cfg.TUITheme)
	return deps.TUI.RunPanel(ctrl, palette, panelRenderOptions(cfg, palette))
}

func backendName(cfg config.Config) string {
	if cfg.CredentialBackend == "" {
		return config.BackendPrefs
	}
	return cfg.CredentialBackend
}
