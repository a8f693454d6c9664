package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/promptpanel/internal/config"
)

var (
	configSectionStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	configKeyStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Width(20)

	configValueStyle = lipgloss.NewStyle().
				Foreground(colorText)
)

// newConfigCmd creates the config command
func newConfigCmd(deps *Dependencies, modelFlag *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after config.json, .env files and PROMPTPANEL_*
environment variables are applied, along with the files promptpanel uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.loadConfig()
			if *modelFlag != "" {
				cfg.DefaultModel = *modelFlag
			}

			if asJSON {
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(deps.Out, string(data))
				return nil
			}

			printConfig(deps.Out, cfg, storedKeyStatus(deps, cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the configuration as JSON")
	return cmd
}

// storedKeyStatus describes the stored key without revealing it
func storedKeyStatus(deps *Dependencies, cfg config.Config) string {
	store, err := deps.store(cfg)
	if err != nil {
		return "unavailable: " + err.Error()
	}
	key, err := store.Load()
	switch {
	case err != nil:
		return "unavailable: " + err.Error()
	case key == "":
		return "not set"
	default:
		return config.MaskSecret(key)
	}
}

func printConfig(w io.Writer, cfg config.Config, keyStatus string) {
	row := func(k, v string) {
		fmt.Fprintln(w, configKeyStyle.Render(k)+configValueStyle.Render(v))
	}
	path := func(get func() (string, error)) string {
		p, err := get()
		if err != nil {
			return "unknown"
		}
		return p
	}

	fmt.Fprintln(w, configSectionStyle.Render("Settings"))
	row("default_model", cfg.DefaultModel)
	row("endpoint", cfg.Endpoint)
	row("timeout_seconds", fmt.Sprintf("%d", cfg.TimeoutSeconds))
	row("credential_backend", backendName(cfg))
	row("verbose", fmt.Sprintf("%t", cfg.Verbose))
	row("copy_to_clipboard", fmt.Sprintf("%t", cfg.CopyToClipboard))
	row("tui_theme", cfg.TUITheme)
	row("markdown.style", cfg.Markdown.Style)

	fmt.Fprintln(w)
	fmt.Fprintln(w, configSectionStyle.Render("API key"))
	row(config.CredentialKey, keyStatus)

	fmt.Fprintln(w)
	fmt.Fprintln(w, configSectionStyle.Render("Files"))
	row("config", path(config.GetConfigPath))
	row("prefs", path(config.GetPrefsPath))
	row("debug log", path(config.GetLogPath))
}
