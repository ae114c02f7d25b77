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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adaryorg/clipvault/internal/config"
	"github.com/adaryorg/clipvault/internal/logging"
	"github.com/adaryorg/clipvault/internal/storage"
	"github.com/adaryorg/clipvault/internal/version"
)

type app struct {
	configPath   string
	databasePath string
	logLevel     string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clipvault: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "clipvault",
		Short:         "Browse, search and tag your clipboard history",
		Long:          "ClipVault shows the clipboard history recorded by clipvaultd.\nRun without arguments to open the interactive browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config.toml (default ~/.config/clipvault/config.toml)")
	root.PersistentFlags().StringVar(&a.databasePath, "db", "", "Path to the clip database (overrides [database] path)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides [logging] level)")

	root.AddCommand(
		a.newAddCommand(),
		a.newListCommand(),
		a.newTagsCommand(),
		a.newResetCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Display version and build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String("clipvault"))
			},
		},
	)
	return root
}

func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := cfg.Logging.File()
	if err != nil {
		return nil, err
	}

	// The UI logs to file only so the screen stays clean.
	err = logging.InitLogger(logging.Options{
		File:       logFile,
		Level:      cfg.Logging.Level,
		MaxSize:    cfg.Logging.MaxSize,
		MaxAge:     cfg.Logging.MaxAge,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if a.logLevel != "" {
		logging.SetLevel(a.logLevel)
	}
	logging.Debug("Log level: %s", logging.GetLevel())
	return cfg, nil
}

func (a *app) openStore(cfg *config.Config) (*storage.Storage, error) {
	path := a.databasePath
	if path == "" {
		path = cfg.Database.Path
	}
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	var store *storage.Storage
	if path == "" {
		store, err = storage.New()
	} else {
		store, err = storage.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}
