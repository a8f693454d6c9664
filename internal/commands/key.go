package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/promptpanel/internal/config"
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	dimStyle = lipgloss.NewStyle().Foreground(colorTextDim)
)

func newKeyCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
		Long: `Save, show or delete the API key used by the panel and by 'ask'.

The key lives in ~/.promptpanel/prefs.json or, with credential_backend set
to "keyring", in the OS keychain.`,
	}

	cmd.AddCommand(newKeySetCmd(deps))
	cmd.AddCommand(newKeyShowCmd(deps))
	cmd.AddCommand(newKeyDeleteCmd(deps))
	return cmd
}

func newKeySetCmd(deps *Dependencies) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key",
		Long:  `Store the API key. Without --value the key is read with hidden input.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.loadConfig()
			store, err := deps.store(cfg)
			if err != nil {
				return err
			}

			key := strings.TrimSpace(value)
			if key == "" {
				key, err = deps.ReadSecret("API key: ")
				if err != nil {
					return err
				}
			}
			if key == "" {
				return fmt.Errorf("no API key given")
			}

			if err := store.Save(key); err != nil {
				return fmt.Errorf("failed to save API key: %w", err)
			}
			fmt.Fprintln(deps.Out, okStyle.Render(fmt.Sprintf("✓ API key saved (%s)", backendName(cfg))))
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "API key to store (skips the prompt)")
	return cmd
}

func newKeyShowCmd(deps *Dependencies) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.loadConfig()
			store, err := deps.store(cfg)
			if err != nil {
				return err
			}

			key, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load API key: %w", err)
			}
			if key == "" {
				fmt.Fprintln(deps.Out, dimStyle.Render("No API key stored"))
				return nil
			}
			if reveal {
				fmt.Fprintln(deps.Out, key)
				return nil
			}
			fmt.Fprintln(deps.Out, config.MaskSecret(key))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print the key in full")
	return cmd
}

func newKeyDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm", "clear"},
		Short:   "Delete the stored API key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.loadConfig()
			store, err := deps.store(cfg)
			if err != nil {
				return err
			}
			if err := store.Delete(); err != nil {
				return fmt.Errorf("failed to delete API key: %w", err)
			}
			fmt.Fprintln(deps.Out, okStyle.Render("✓ API key deleted"))
			return nil
		},
	}
}
