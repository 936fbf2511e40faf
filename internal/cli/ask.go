package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/rhea/internal/console"
	"github.com/yildizm/rhea/internal/emoji"
	"github.com/yildizm/rhea/internal/formatter"
)

type askOptions struct {
	panel  string
	format string
}

func newAskCommand(opts *globalOptions) *cobra.Command {
	askOpts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [command...]",
		Short: "Send one command and print the result",
		Long: `Send a single command from a panel without opening the console.

The command is dispatched exactly as the console would dispatch it from the
chosen panel. The echo line and the outcome line are printed. A failed
request is printed as a CORE_EXCEPTION line and does not fail the process.`,
		Example: `  # Ask the reasoning core
  rhea ask "summarize the deployment plan"

  # Generate code from the builder panel
  rhea ask --panel builder "REST API for a todo list"

  # Audit a snippet and emit JSON
  rhea ask --panel security --format json "eval(input())"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, askOpts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&askOpts.panel, "panel", "p", "dashboard", "panel to dispatch from")
	cmd.Flags().StringVarP(&askOpts.format, "format", "f", "text", "output format (text, json)")

	return cmd
}

func runAsk(cmd *cobra.Command, opts *globalOptions, askOpts *askOptions, command string) error {
	panel, err := console.ParsePanel(askOpts.panel)
	if err != nil {
		return err
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	emoji.SetEmojiDisabled(cfg.Output.NoEmoji)

	f, err := formatter.New(askOpts.format, colorEnabled(cfg), !cfg.Output.NoEmoji)
	if err != nil {
		return err
	}

	log := newStderrLogger(opts)
	defer func() { _ = log.Sync() }()

	provider, err := createProvider(&cfg.AI)
	if err != nil {
		return err
	}
	defer closeProvider(provider, log)

	state := console.NewState(provider, cfg.ProfileSet(),
		console.WithLogger(log),
		console.WithBootLines(false))
	if err := state.Selector.Select(panel); err != nil {
		return err
	}

	start := time.Now()
	outcome, err := state.Submit(cmd.Context(), command)
	if err != nil {
		if errors.Is(err, console.ErrEmptyCommand) {
			return fmt.Errorf("nothing to send: command is empty")
		}
		return err
	}

	profile := state.Dispatcher.Profiles().ForPanel(panel)
	output, err := f.FormatAsk(&formatter.AskResult{
		Panel:     panel,
		Profile:   profile.Kind,
		Model:     profile.Model,
		RequestID: outcome.RequestID,
		Lines:     state.Logs.Lines(),
		Outcome:   outcome,
		Duration:  time.Since(start),
	})
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(output)
	return err
}
