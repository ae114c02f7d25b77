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

package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adaryorg/clipvault/internal/config"
	"github.com/adaryorg/clipvault/internal/logging"
	"github.com/adaryorg/clipvault/internal/state"
	"github.com/adaryorg/clipvault/internal/storage"
)

// Mode selects the central panel.
type Mode int

const (
	ModeMain Mode = iota
	ModeTagFilter
	ModeSettings
)

func (m Mode) String() string {
	switch m {
	case ModeTagFilter:
		return "tags"
	case ModeSettings:
		return "settings"
	default:
		return "main"
	}
}

// ParseMode is the inverse of Mode.String; unknown names map to ModeMain.
func ParseMode(name string) Mode {
	switch name {
	case "tags":
		return ModeTagFilter
	case "settings":
		return ModeSettings
	default:
		return ModeMain
	}
}

// Options configures a Model.
type Options struct {
	State    *state.State
	Settings config.Settings

	// DatabasePath enables auto-refresh when set.
	DatabasePath string

	// Copy writes to the system clipboard.
	Copy func(string) error
}

type Model struct {
	state    *state.State
	settings config.Settings
	copyFn   func(string) error
	watch    *dbWatcher
	now      func() time.Time

	mode         Mode
	top          topPanel
	main         mainView
	tags         tagView
	settingsView settingsView
	detail       *detailView
	popup        *popup

	styles      styles
	caps        TerminalCapabilities
	basicColors bool

	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) Model {
	caps := DetectTerminalCapabilities()
	m := Model{
		state:       opts.State,
		settings:    opts.Settings,
		copyFn:      opts.Copy,
		now:         time.Now,
		mode:        ParseMode(opts.Settings.Mode),
		top:         newTopPanel(),
		main:        newMainView(),
		styles:      newStyles(PaletteFor(opts.Settings.Theme)),
		caps:        caps,
		basicColors: !caps.Supports256,
		width:       100,
		height:      30,
	}

	if opts.DatabasePath != "" {
		watch, err := watchDatabase(opts.DatabasePath)
		if err != nil {
			logging.Warn("Auto-refresh disabled: %v", err)
		} else {
			m.watch = watch
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.watch != nil {
		return m.watch.wait()
	}
	return nil
}

// Settings returns the user settings including the current mode, for
// persisting on exit.
func (m Model) Settings() config.Settings {
	s := m.settings
	s.Mode = m.mode.String()
	return s
}

func (m Model) Mode() Mode { return m.mode }

// Close stops the database watcher.
func (m Model) Close() error {
	if m.watch != nil {
		return m.watch.Close()
	}
	return nil
}

// bodyHeight is the number of rows left for the central panel.
func (m Model) bodyHeight() int {
	// frame border (2) + top panel (2) + separators (2) + footer/status (2)
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) bodyWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dbChangedMsg:
		m.state.Reload()
		m.main.refilter(m.state.Clips)
		m.tags.clamp(len(m.state.Tags))
		return m, m.watch.wait()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		m.status = ""

		if m.popup != nil {
			resp, cmd := m.popup.handleKey(msg)
			return m.applyPopup(resp, cmd)
		}
		if m.detail != nil {
			resp := m.detail.handleKey(msg, m.bodyHeight()-2)
			return m.applyDetail(resp)
		}
		if m.mode == ModeMain && m.main.filtering {
			resp, cmd := m.main.handleKey(msg, m.state.Clips, m.bodyHeight()/cardHeight)
			return m.applyMain(resp, cmd)
		}

		resp, cmd := m.top.handleKey(msg, m.now())
		if resp.handled {
			return m.applyTop(resp, cmd)
		}

		switch m.mode {
		case ModeTagFilter:
			return m.applyTags(m.tags.handleKey(msg, m.state.Tags))
		case ModeSettings:
			return m.applySettings(m.settingsView.handleKey(msg))
		default:
			resp, cmd := m.main.handleKey(msg, m.state.Clips, m.bodyHeight()/cardHeight)
			return m.applyMain(resp, cmd)
		}
	}

	// Forward blink and other internal messages to focused inputs
	var cmd tea.Cmd
	switch {
	case m.popup != nil && m.popup.kind == popupCreateClip:
		m.popup.content, cmd = m.popup.content.Update(msg)
	case m.popup != nil:
		m.popup.name, cmd = m.popup.name.Update(msg)
	case m.top.active():
		m.top.input, cmd = m.top.input.Update(msg)
	case m.main.filtering:
		m.main.filterInput, cmd = m.main.filterInput.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.detail = nil
}

func (m *Model) setError(action string, err error) {
	m.status = m.styles.Warning.Render(friendlyError(action, err))
}

func friendlyError(action string, err error) string {
	switch {
	case errors.Is(err, storage.ErrDuplicateTag):
		return "A tag with that name already exists"
	case errors.Is(err, storage.ErrInvalidColor):
		return "Color must look like #RRGGBB"
	case errors.Is(err, storage.ErrEmptyName):
		return "Name is required"
	case errors.Is(err, storage.ErrEmptyContent):
		return "Clip is empty"
	case errors.Is(err, storage.ErrNotFound):
		return "Entry no longer exists"
	}
	return fmt.Sprintf("Could not %s", action)
}

func (m Model) copyClip(clip storage.Clip) (tea.Model, tea.Cmd) {
	if m.copyFn == nil {
		return m, nil
	}
	if err := m.copyFn(clip.Content); err != nil {
		logging.Error("Failed to copy to clipboard: %v", err)
		m.status = m.styles.Warning.Render("Copy failed: " + err.Error())
		return m, nil
	}
	if m.settings.AutoHide {
		return m.quit()
	}
	m.status = m.styles.Accent.Render("Copied to clipboard")
	return m, nil
}

func (m Model) applyTop(resp topPanelResponse, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case resp.quitRequested:
		return m.quit()
	case resp.searchSubmitted:
		m.setMode(ModeMain)
		m.state.Search(resp.query)
		m.main.cursor = 0
	case resp.dateSubmitted:
		m.setMode(ModeMain)
		m.state.ShowDate(resp.date)
		m.main.cursor = 0
	case resp.shiftDays != 0:
		m.setMode(ModeMain)
		m.state.ShiftDate(resp.shiftDays)
		m.main.cursor = 0
	case resp.todayRequested:
		m.setMode(ModeMain)
		m.state.ShowToday()
		m.main.cursor = 0
	case resp.toggleContent:
		m.settings.ShowContent = !m.settings.ShowContent
	case resp.toggleTheme:
		m.toggleTheme()
	case resp.showTags:
		if m.mode == ModeTagFilter {
			m.setMode(ModeMain)
		} else {
			m.state.ReloadTags()
			m.setMode(ModeTagFilter)
		}
	case resp.showSettings:
		if m.mode == ModeSettings {
			m.setMode(ModeMain)
		} else {
			m.setMode(ModeSettings)
		}
	case resp.refreshRequested:
		m.state.Reload()
		m.status = m.styles.Muted.Render("Refreshed")
	}
	m.main.refilter(m.state.Clips)
	return m, cmd
}

func (m *Model) toggleTheme() {
	if m.settings.Theme == config.ThemeLight {
		m.settings.Theme = config.ThemeDark
	} else {
		m.settings.Theme = config.ThemeLight
	}
	m.styles = newStyles(PaletteFor(m.settings.Theme))
}

func (m Model) applyMain(resp mainResponse, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	clip := resp.clip

	switch {
	case resp.copied:
		return m.copyClip(clip)
	case resp.pinToggled:
		if err := m.state.TogglePin(clip.ID); err != nil {
			m.setError("toggle pin", err)
		}
		m.main.refilter(m.state.Clips)
		m.main.selectID(m.state.Clips, clip.ID)
	case resp.deleteRequested:
		m.popup = newConfirmPopup(confirmClip, "Delete this clip?\n\n"+truncate(singleLine(clip.Content), 60), clip.ID, 0)
	case resp.addTagRequested:
		m.popup, cmd = newAssignTagPopup(clip.ID, m.state.Tags, m.state.TagsForClip(clip.ID))
	case resp.removeTagRequested:
		m.popup = newRemoveTagPopup(clip.ID, m.tagsOf(clip.ID))
	case resp.createClipRequested:
		m.popup, cmd = newCreateClipPopup(m.width)
	case resp.viewRequested:
		m.detail = newDetailView(clip, m.styles.palette, m.basicColors)
	case resp.clearSource:
		if m.state.Source() != state.SourceRecent {
			m.state.ShowRecent()
			m.main.cursor = 0
			m.main.refilter(m.state.Clips)
		}
	}
	return m, cmd
}

// tagsOf resolves a clip's tag names to tags.
func (m Model) tagsOf(clipID int64) []storage.Tag {
	var tags []storage.Tag
	for _, name := range m.state.TagsForClip(clipID) {
		if tag, ok := m.state.TagByName(name); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m Model) applyDetail(resp detailResponse) (tea.Model, tea.Cmd) {
	clip := m.detail.clip

	switch {
	case resp.closed:
		m.detail = nil
	case resp.copied:
		return m.copyClip(clip)
	case resp.pinToggled:
		if err := m.state.TogglePin(clip.ID); err != nil {
			m.setError("toggle pin", err)
			break
		}
		m.detail.clip.Pinned = !m.detail.clip.Pinned
		m.main.refilter(m.state.Clips)
		m.main.selectID(m.state.Clips, clip.ID)
	case resp.deleteRequested:
		m.popup = newConfirmPopup(confirmClip, "Delete this clip?\n\n"+truncate(singleLine(clip.Content), 60), clip.ID, 0)
	}
	return m, nil
}

func (m Model) applyTags(resp tagResponse) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	tag := resp.tag

	switch {
	case resp.back:
		m.setMode(ModeMain)
	case resp.showClips:
		m.state.ShowTag(tag)
		m.main.cursor = 0
		m.main.refilter(m.state.Clips)
		m.setMode(ModeMain)
	case resp.createRequested:
		m.popup, cmd = newCreateTagPopup()
	case resp.editRequested:
		m.popup, cmd = newEditTagPopup(tag)
	case resp.cycleColor:
		if err := m.state.UpdateTagColor(tag.ID, NextPresetColor(tag.Color)); err != nil {
			m.setError("change color", err)
		}
	case resp.resetColor:
		if err := m.state.UpdateTagColor(tag.ID, ""); err != nil {
			m.setError("reset color", err)
		}
	case resp.deleteRequested:
		msg := fmt.Sprintf("Delete tag %q?\nClips carrying it are kept.", tag.Name)
		m.popup = newConfirmPopup(confirmTag, msg, 0, tag.ID)
	}
	return m, cmd
}

func (m Model) applySettings(resp settingsResponse) (tea.Model, tea.Cmd) {
	switch {
	case resp.back:
		m.setMode(ModeMain)
	case resp.toggleAutoHide:
		m.settings.AutoHide = !m.settings.AutoHide
	case resp.toggleContent:
		m.settings.ShowContent = !m.settings.ShowContent
	case resp.toggleTheme:
		m.toggleTheme()
	case resp.resetSettings:
		m.settings = config.DefaultSettings()
		m.styles = newStyles(PaletteFor(m.settings.Theme))
		m.status = m.styles.Muted.Render("Settings reset")
	case resp.deleteAllRequested:
		m.popup = newConfirmPopup(confirmAll, "Delete every clip and tag?\nThis cannot be undone.", 0, 0)
	}
	return m, nil
}

func (m Model) applyPopup(resp popupResponse, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if resp.closed {
		m.popup = nil
		return m, nil
	}
	if !resp.submitted {
		return m, cmd
	}

	var err error
	action := ""

	switch resp.kind {
	case popupCreateTag:
		action = "create tag"
		_, err = m.state.CreateTag(resp.name)
	case popupEditTag:
		action = "update tag"
		err = m.state.UpdateTag(resp.tagID, resp.name, resp.color)
	case popupAssignTag:
		action = "assign tag"
		tagID := resp.tagID
		if tagID == 0 {
			tagID, err = m.state.CreateTag(resp.name)
		}
		if err == nil {
			err = m.state.AssignTag(resp.clipID, tagID)
		}
	case popupRemoveTag:
		action = "remove tag"
		err = m.state.UnassignTag(resp.clipID, resp.tagID)
	case popupCreateClip:
		action = "create clip"
		err = m.state.CreateClip(resp.content)
		if err == nil {
			m.main.cursor = 0
		}
	case popupConfirm:
		action = "delete"
		switch resp.confirm {
		case confirmClip:
			err = m.state.DeleteClip(resp.clipID)
			m.detail = nil
		case confirmTag:
			err = m.state.DeleteTag(resp.tagID)
			m.tags.clamp(len(m.state.Tags))
		case confirmAll:
			err = m.state.Reset()
			m.main.cursor = 0
			m.tags.cursor = 0
		}
	}

	m.main.refilter(m.state.Clips)

	if err != nil && resp.kind != popupConfirm {
		// Keep the popup open so the user can correct the input
		m.popup.err = friendlyError(action, err)
		return m, nil
	}
	m.popup = nil
	if err != nil {
		m.setError(action, err)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.bodyWidth()
	height := m.bodyHeight()
	st := m.styles

	top := renderTopPanel(m.top, m.state, m.settings.ShowContent, st, width)

	var body, footer string
	switch {
	case m.detail != nil:
		body = renderDetailView(m.detail, m.tagsOf(m.detail.clip.ID), m.caps, st, width, height)
		footer = st.footer("↑/↓", "scroll", "enter", "copy", "p", "pin", "x", "delete", "esc", "back")
	case m.mode == ModeTagFilter:
		body = renderTagView(&m.tags, m.state, st, width, height)
		footer = st.footer("enter", "show clips", "n", "new", "e", "edit", "c", "cycle color", "R", "reset color", "x", "delete", "esc", "back")
	case m.mode == ModeSettings:
		body = renderSettingsView(&m.settingsView, m.settings, len(m.state.Clips), st, width)
		footer = st.footer("enter", "toggle/run", "esc", "back", "q", "quit")
	default:
		body = renderMainView(&m.main, m.state, m.settings.ShowContent, m.caps, st, width, height)
		footer = st.footer("enter", "copy", "p", "pin", "x", "delete", "+/-", "tag", "n", "new", "v", "view", "f", "filter", "q", "quit")
	}

	separator := st.Muted.Render(strings.Repeat("─", width))
	status := m.status
	if status == "" {
		status = st.Muted.Render(pluralize(len(m.state.Clips), "clip") + " · " + m.mode.String())
	}

	body = lipgloss.NewStyle().Height(height).MaxHeight(height).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Left, top, separator, body, separator, truncateRendered(footer, width), status)
	frame := st.Frame.Width(m.width - 2).Render(content)

	if m.popup != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, renderPopup(m.popup, st))
	}
	return frame
}
