package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/samkit-io/samkit/internal/editor"
	"github.com/samkit-io/samkit/internal/validation"
)

// newWatchCmd creates the "watch" subcommand for auto-validating on file changes.
func newWatchCmd() *cobra.Command {
	var (
		dirFlag  string
		lintFlag bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Auto-validate on template changes",
		Long: `Watch monitors the project's template.yaml and .env for changes and
automatically re-validates.

The watch command:
- Monitors the project directory for template.yaml and .env changes
- Runs the structural checks on each change
- Runs cfn-lint as well when --lint is set
- Debounces rapid changes to avoid excessive runs

Examples:
    samkit watch
    samkit watch --lint
    samkit watch --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(dirFlag, watchOptions{
				lint:     lintFlag,
				debounce: debounce,
			})
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().BoolVar(&lintFlag, "lint", false, "Run cfn-lint after the structural checks")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")

	return cmd
}

type watchOptions struct {
	lint     bool
	debounce time.Duration
}

// runWatch monitors the project files and validates on changes.
func runWatch(dir string, opts watchOptions) error {
	root, err := projectRoot(dir)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	fmt.Printf("Watching: %s\n", root)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initial validation
	fmt.Println("Running initial validation...")
	runWatchValidate(root, opts)

	// Debounce timer
	var debounceTimer *time.Timer
	revalidateChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only the template and the env file matter
			if !watchedFile(event.Name) {
				continue
			}

			// Only process write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case revalidateChan <- struct{}{}:
				default:
				}
			})

		case <-revalidateChan:
			fmt.Printf("\n[%s] Change detected, validating...\n", time.Now().Format("15:04:05"))
			runWatchValidate(root, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// watchedFile reports whether the event path is one samkit rewrites.
func watchedFile(path string) bool {
	base := filepath.Base(path)
	return base == editor.TemplateFile || base == editor.EnvFile
}

// runWatchValidate runs the structural checks and optionally cfn-lint.
func runWatchValidate(root string, opts watchOptions) {
	path := filepath.Join(root, editor.TemplateFile)
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		return
	}

	check := validation.Check(content)
	if !check.Passed {
		for _, issue := range check.Issues {
			fmt.Printf("error: %s\n", issue)
		}
		fmt.Println("Structural checks failed" + lintSkipNote(opts))
		return
	}

	fmt.Println("Structural checks passed")

	if !opts.lint {
		return
	}

	result, err := validation.RunCfnLint(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lint error: %v\n", err)
		return
	}
	if result.Passed {
		fmt.Println("cfn-lint passed")
		return
	}
	for _, msg := range result.Errors {
		fmt.Printf("error: %s\n", msg)
	}
	for _, msg := range result.Warnings {
		fmt.Printf("warning: %s\n", msg)
	}
}

// lintSkipNote names the skipped step when the structural checks fail.
func lintSkipNote(opts watchOptions) string {
	if opts.lint {
		return ", skipping cfn-lint"
	}
	return ""
}
