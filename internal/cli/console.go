package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/rhea/internal/config"
	"github.com/yildizm/rhea/internal/console"
	"github.com/yildizm/rhea/internal/emoji"
	"github.com/yildizm/rhea/internal/logger"
	"github.com/yildizm/rhea/internal/ui"
)

func newConsoleCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Open the full-screen console.

Commands typed into the terminal are sent with the profile of the active panel:
the Full-Stack Builder synthesizes code, Cyber-Defense audits it, and every
other panel uses the general reasoning core. Edits to the loaded config file
are applied while the console runs.`,
		Example: `  # Open the console
  rhea console

  # Open with a different theme
  rhea --theme high-contrast`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts)
		},
	}
}

func runConsole(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	emoji.SetEmojiDisabled(cfg.Output.NoEmoji)

	log := newFileLogger(opts, cfg)
	defer func() { _ = log.Sync() }()

	provider, err := createProvider(&cfg.AI)
	if err != nil {
		return err
	}
	defer closeProvider(provider, log)

	state := console.NewState(provider, cfg.ProfileSet(),
		console.WithLogger(log),
		console.WithBootLines(cfg.Console.BootLines))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	reloads := startReloads(gctx, g, opts, log)

	log.Info("console started (provider=%s, theme=%s)", provider.Name(), cfg.Console.Theme)
	runErr := ui.Run(ctx, state, ui.Options{
		Theme:         cfg.Console.Theme,
		GaugeInterval: cfg.Console.GaugeInterval,
		Reloads:       reloads,
		Logger:        log,
	})

	cancel()
	if err := g.Wait(); err != nil {
		log.Warn("config watcher stopped: %v", err)
	}

	if runErr != nil {
		return fmt.Errorf("console failed: %w", runErr)
	}
	return nil
}

// startReloads watches the loaded config files and translates each reload
// into a ui.Reload. It returns nil when no file was loaded.
func startReloads(ctx context.Context, g *errgroup.Group, opts *globalOptions, log *logger.Logger) <-chan ui.Reload {
	files := opts.loader.LoadedFiles()
	if len(files) == 0 {
		return nil
	}

	watcher, err := config.NewWatcher(opts.loader, opts.cfgFile)
	if err != nil {
		log.Warn("config reload disabled: %v", err)
		return nil
	}
	log.Debug("watching %d config file(s)", len(files))

	reloads := make(chan ui.Reload)
	g.Go(func() error {
		return watcher.Run(ctx)
	})
	g.Go(func() error {
		defer close(reloads)
		return bridgeReloads(ctx, watcher.Updates(), watcher.Errors(), reloads, opts, log)
	})
	return reloads
}

// bridgeReloads forwards configs from updates until both inputs close or ctx
// is done
func bridgeReloads(ctx context.Context, updates <-chan *config.Config, errs <-chan error,
	out chan<- ui.Reload, opts *globalOptions, log *logger.Logger) error {
	for updates != nil || errs != nil {
		select {
		case <-ctx.Done():
			return nil

		case cfg, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			opts.applyFlags(cfg)
			reload := ui.Reload{Profiles: cfg.ProfileSet(), Theme: cfg.Console.Theme}
			select {
			case out <- reload:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.WarnWithFields("config reload failed", []logger.Field{logger.Error(err)})
		}
	}
	return nil
}
