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

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/clipvault/internal/clipboard"
	"github.com/adaryorg/clipvault/internal/config"
	"github.com/adaryorg/clipvault/internal/logging"
	"github.com/adaryorg/clipvault/internal/state"
	"github.com/adaryorg/clipvault/internal/ui"
)

func (a *app) runTUI() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	store, err := a.openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	settingsPath, err := config.SettingsPath()
	if err != nil {
		return err
	}
	settings := config.LoadSettings(settingsPath)

	appState := state.New(store, cfg.UI.RecentLimit)
	appState.Reload()

	model := ui.NewModel(ui.Options{
		State:        appState,
		Settings:     settings,
		DatabasePath: store.Path(),
		Copy:         clipboard.Copy,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if m, ok := final.(ui.Model); ok {
		settings = m.Settings()
	}
	if err := config.SaveSettings(settingsPath, settings); err != nil {
		logging.Warn("Failed to save settings: %v", err)
	}
	return nil
}
