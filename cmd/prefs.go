package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/config"
	"github.com/spiffcs/folio/internal/prefs"
)

// NewCmdPrefs creates the prefs command with subcommands.
func NewCmdPrefs() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
		Long: `Show or change the language and theme remembered between runs.

Saved preferences override the config file; --lang and --theme override both.
The theme is also saved when toggled in the interactive calendar.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPrefsStore(cmd.Context(), func(s *prefs.Store) error {
				return runPrefsShow(cmd.Context(), cmd.OutOrStdout(), s)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a preference (language: en, es; theme: dark, light)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefsStore(cmd.Context(), func(s *prefs.Store) error {
				return runPrefsSet(cmd.Context(), cmd.OutOrStdout(), s, args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget every saved preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPrefsStore(cmd.Context(), func(s *prefs.Store) error {
				if err := s.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset.")
				return nil
			})
		},
	})

	return cmd
}

// withPrefsStore opens the preference database with config-derived
// defaults for the duration of fn.
func withPrefsStore(ctx context.Context, fn func(*prefs.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	defaults := prefs.Defaults()
	if defaults.Language, err = cfg.GetLanguage(); err != nil {
		return err
	}
	if defaults.Theme, err = cfg.GetTheme(); err != nil {
		return err
	}

	path, err := prefs.DefaultPath()
	if err != nil {
		return err
	}
	store, err := prefs.Open(ctx, path, defaults)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func runPrefsShow(ctx context.Context, out io.Writer, s *prefs.Store) error {
	stored, err := s.All(ctx)
	if err != nil {
		return err
	}
	for _, key := range prefs.Keys() {
		v, err := s.Get(ctx, key)
		if err != nil {
			return err
		}
		origin := "default"
		if _, ok := stored[key]; ok {
			origin = "saved"
		}
		fmt.Fprintf(out, "%-9s %-6s (%s)\n", key, v, origin)
	}
	return nil
}

func runPrefsSet(ctx context.Context, out io.Writer, s *prefs.Store, key, value string) error {
	v, err := s.Set(ctx, prefs.Key(key), value)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s saved as %s.\n", key, v)
	return nil
}
