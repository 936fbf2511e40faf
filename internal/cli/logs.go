package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-logparser"
)

type logsOptions struct {
	all    bool
	follow bool
	file   string
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
	levelFatal
)

func parseLogLevel(s string) logLevel {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return levelDebug
	case "WARN", "WARNING":
		return levelWarn
	case "ERROR":
		return levelError
	case "FATAL", "PANIC", "DPANIC":
		return levelFatal
	default:
		return levelInfo
	}
}

func newLogsCommand(opts *globalOptions) *cobra.Command {
	logsOpts := &logsOptions{}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show console diagnostics",
		Long: `Show the diagnostic log written while the console runs.

By default only warnings and errors are shown, such as failed dispatches and
rejected config reloads. Use --follow to keep printing new entries as they
are written. Press Ctrl+C to stop following.`,
		Example: `  # Show warnings and errors
  rhea logs

  # Show everything and keep watching
  rhea logs --all --follow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, opts, logsOpts)
		},
	}

	cmd.Flags().BoolVarP(&logsOpts.all, "all", "a", false, "show entries of every level")
	cmd.Flags().BoolVarP(&logsOpts.follow, "follow", "F", false, "keep printing new entries")
	cmd.Flags().StringVar(&logsOpts.file, "file", "", "log file to read (default: logging.file)")

	return cmd
}

func runLogs(cmd *cobra.Command, opts *globalOptions, logsOpts *logsOptions) error {
	filename := logsOpts.file
	if filename == "" {
		cfg, err := opts.loadConfig()
		if err != nil {
			return err
		}
		filename = cfg.LogFile()
	}

	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid log file: %w", err)
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer cleanupFile(file, opts)

	out := cmd.OutOrStdout()
	p := newLogPrinter(out, logsOpts.all, opts)
	if err := p.printNewLines(file); err != nil {
		return err
	}

	if !logsOpts.follow {
		return nil
	}

	watcher, err := createWatcher(filename, opts)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher, opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.IsVerbose() {
		fmt.Fprintf(os.Stderr, "Following %s\nPress Ctrl+C to stop...\n\n", filename)
	}
	return runWatchLoop(ctx, watcher, file, p, opts)
}

// logPrinter parses raw lines and prints the entries that pass the level filter
type logPrinter struct {
	out    io.Writer
	all    bool
	parser logparser.Parser
	opts   *globalOptions
}

func newLogPrinter(out io.Writer, all bool, opts *globalOptions) *logPrinter {
	return &logPrinter{out: out, all: all, opts: opts}
}

// printNewLines reads file from its current offset to EOF
func (p *logPrinter) printNewLines(file *os.File) error {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var newLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			newLines = append(newLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	if len(newLines) == 0 {
		return nil
	}

	// Auto-detect the format on first use
	if p.parser == nil {
		p.parser = logparser.New()
	}

	entries, err := p.parser.ParseString(strings.Join(newLines, "\n"))
	if err != nil {
		if p.opts.IsVerbose() {
			fmt.Fprintf(os.Stderr, "Failed to parse lines: %v\n", err)
		}
		return nil
	}

	for _, entry := range entries {
		level := parseLogLevel(entry.Level)
		if !p.all && level < levelWarn {
			continue
		}
		timestamp := entry.Timestamp.Format("15:04:05")
		fmt.Fprintf(p.out, "[%s] %s: %s\n", timestamp, strings.ToUpper(entry.Level), entry.Message)
	}
	return nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, opts *globalOptions) {
	if err := watcher.Close(); err != nil && opts.IsVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File, opts *globalOptions) {
	if err := file.Close(); err != nil && opts.IsVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string, opts *globalOptions) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher, opts)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// runWatchLoop prints new entries until ctx is done
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, file *os.File, p *logPrinter, opts *globalOptions) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := handleWatchEvent(event, file, p); err != nil && opts.IsVerbose() {
				fmt.Fprintf(os.Stderr, "Error handling event: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if opts.IsVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// handleWatchEvent processes file system events
func handleWatchEvent(event fsnotify.Event, file *os.File, p *logPrinter) error {
	// Only process write events
	if !event.Has(fsnotify.Write) {
		return nil
	}
	if err := p.printNewLines(file); err != nil {
		return fmt.Errorf("error processing new lines: %w", err)
	}
	return nil
}

// validateWatchFilePath validates that a file path is safe to read
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
