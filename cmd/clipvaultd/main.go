/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adaryorg/clipvault/internal/clipboard"
	"github.com/adaryorg/clipvault/internal/config"
	"github.com/adaryorg/clipvault/internal/logging"
	"github.com/adaryorg/clipvault/internal/maintenance"
	"github.com/adaryorg/clipvault/internal/storage"
	"github.com/adaryorg/clipvault/internal/tray"
	"github.com/adaryorg/clipvault/internal/version"
)

type options struct {
	configPath string
	logLevel   string
	noTray     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clipvaultd: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "clipvaultd",
		Short:         "Record clipboard history in the background",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	root.Flags().StringVar(&opts.configPath, "config", "", "Path to config.toml (default ~/.config/clipvault/config.toml)")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides [logging] level)")
	root.Flags().BoolVar(&opts.noTray, "no-tray", false, "Run without the tray icon")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Display version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String("clipvaultd"))
		},
	})
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func run(opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := cfg.Logging.File()
	if err != nil {
		return err
	}

	err = logging.InitLogger(logging.Options{
		File:       logFile,
		Level:      cfg.Logging.Level,
		MaxSize:    cfg.Logging.MaxSize,
		MaxAge:     cfg.Logging.MaxAge,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if opts.logLevel != "" {
		logging.SetLevel(opts.logLevel)
	}

	logging.Info("Starting ClipVault daemon %s with log level: %s", version.Version, logging.GetLevel())
	logging.Info("Log file: %s", logFile)

	store, err := openStore(cfg)
	if err != nil {
		logging.Error("Failed to initialize storage: %v", err)
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logging.Info("Database: %s", store.Path())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info("Received %s, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	scheduler := maintenance.New(store, maintenance.Options{
		Schedule:      cfg.Maintenance.Schedule,
		MaxEntries:    cfg.Maintenance.MaxEntries,
		RetentionDays: cfg.Maintenance.RetentionDays,
	})
	if err := scheduler.Start(); err != nil {
		logging.Error("Maintenance disabled: %v", err)
	}
	defer scheduler.Stop()

	watcher := clipboard.NewWatcher(clipboard.NewSystemReader(), func(content string, observedAt time.Time) {
		if _, err := store.SaveClip(content, observedAt); err != nil {
			logging.Error("Failed to store clipboard content: %v", err)
		}
	})
	watcher.SetInterval(cfg.Watcher.Interval())

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- watcher.Start(ctx)
	}()

	if opts.noTray {
		<-ctx.Done()
	} else {
		runTray(ctx, cancel, cfg)
	}

	if err := <-watchDone; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("Watcher failed: %v", err)
		return fmt.Errorf("watcher failed: %w", err)
	}
	logging.Info("ClipVault daemon stopped")
	return nil
}

// runTray blocks in the tray main loop until ctx is cancelled.
func runTray(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) {
	uiPath, err := tray.FindUI("clipvault")
	if err != nil {
		logging.Warn("clipvault binary not found, Open will fail: %v", err)
	}

	launcher := tray.TerminalLauncher{
		Terminal: cfg.Tray.Terminal,
		UIPath:   uiPath,
	}

	events := make(chan tray.Event)
	dispatcher := tray.NewDispatcher(launcher, func() {
		logging.Info("Quit requested from tray")
		cancel()
	})
	go dispatcher.Run(ctx, events)

	tray.Run(ctx, events)
}

func openStore(cfg *config.Config) (*storage.Storage, error) {
	path, err := cfg.Database.ResolvedPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return storage.New()
	}
	return storage.Open(path)
}
