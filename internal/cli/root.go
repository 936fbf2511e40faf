package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yildizm/rhea/internal/config"
	"github.com/yildizm/rhea/internal/console"
	"github.com/yildizm/rhea/internal/emoji"
	"github.com/yildizm/rhea/internal/ui"
)

// globalOptions holds the persistent flags and the configuration they select
type globalOptions struct {
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
	theme   string

	loader *config.Loader
	cfg    *config.Config
}

// IsVerbose implements logger.VerboseChecker
func (o *globalOptions) IsVerbose() bool {
	if o.verbose {
		return true
	}
	return o.cfg != nil && o.cfg.Logging.Verbose
}

// loadConfig loads configuration once and applies flag overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	if o.loader == nil {
		o.loader = config.NewLoader()
	}
	cfg, err := o.loader.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	o.applyFlags(cfg)

	o.cfg = cfg
	return cfg, nil
}

func (o *globalOptions) applyFlags(cfg *config.Config) {
	if o.theme != "" {
		cfg.Console.Theme = o.theme
	}
	if o.noColor {
		cfg.Output.ColorMode = "never"
	}
	if o.noEmoji {
		cfg.Output.NoEmoji = true
	}
}

// colorEnabled resolves the configured color mode
func colorEnabled(cfg *config.Config) bool {
	switch cfg.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !ui.IsColorDisabled()
	}
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "rhea",
		Short: "RHEA-AI engineering console",
		Long: `RHEA-AI is a terminal console for an autonomous AI engineering laboratory.

It forwards commands typed into its terminal to a generative-language model,
choosing the model and persona by the active panel, and keeps a short
scrolling log of everything sent and received.

Run without a subcommand to open the console.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				opts.noEmoji = true
			}
			emoji.SetEmojiDisabled(opts.noEmoji)

			if opts.theme != "" {
				if _, ok := ui.ThemeByName(opts.theme); !ok {
					return fmt.Errorf("unknown theme %q (available: %v)", opts.theme, ui.GetAvailableThemes())
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&opts.noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "console theme (emerald, high-contrast, minimal)")

	rootCmd.AddCommand(newConsoleCommand(opts))
	rootCmd.AddCommand(newAskCommand(opts))
	rootCmd.AddCommand(newPanelsCommand(opts))
	rootCmd.AddCommand(newStatusCommand(opts))
	rootCmd.AddCommand(newLogsCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = console.Version
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s) built on %s\n", console.SystemName, displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
