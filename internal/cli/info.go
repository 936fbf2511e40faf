package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/rhea/internal/console"
	"github.com/yildizm/rhea/internal/formatter"
)

func newPanelsCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "panels",
		Short: "List panels and the profile each dispatches with",
		Example: `  rhea panels
  rhea panels --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			f, err := formatter.New(format, colorEnabled(cfg), !cfg.Output.NoEmoji)
			if err != nil {
				return err
			}

			output, err := f.FormatPanels(formatter.PanelRows(cfg.ProfileSet()))
			if err != nil {
				return fmt.Errorf("failed to format panels: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return cmd
}

func newStatusCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show system identity, provider and agent status",
		Long: `Show the console identity, the configured provider and whether an API
key is present, the agent roster, and the current neural load.

The key itself is never printed; only the name of the variable it was found in.`,
		Example: `  rhea status
  rhea status --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			f, err := formatter.New(format, colorEnabled(cfg), !cfg.Output.NoEmoji)
			if err != nil {
				return err
			}

			state := console.NewState(nil, cfg.ProfileSet(), console.WithBootLines(false))
			status := &formatter.Status{
				SystemName:  console.SystemName,
				Version:     console.Version,
				Identity:    console.CoreIdentity,
				Node:        console.NodeID,
				Provider:    cfg.AI.Provider,
				Endpoint:    cfg.AI.Endpoint,
				KeyEnv:      cfg.AI.APIKeyEnv,
				KeyFoundIn:  credentialSource(cfg.AI.APIKeyEnv),
				Theme:       cfg.Console.Theme,
				ConfigFiles: opts.loader.LoadedFiles(),
				Agents:      state.Agents,
				Load:        state.Gauge.Value(),
			}

			output, err := f.FormatStatus(status)
			if err != nil {
				return fmt.Errorf("failed to format status: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return cmd
}
