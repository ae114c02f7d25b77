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

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings are user preferences the UI persists between runs.
type Settings struct {
	Theme       string `toml:"theme"`
	Mode        string `toml:"mode"`
	AutoHide    bool   `toml:"auto_hide"`
	ShowContent bool   `toml:"show_content"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:    ThemeDark,
		Mode:     "main",
		AutoHide: true,
	}
}

func SettingsPath() (string, error) {
	configDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.toml"), nil
}

// LoadSettings never fails; unreadable files yield the defaults.
func LoadSettings(path string) Settings {
	settings := DefaultSettings()
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return DefaultSettings()
	}
	if settings.Theme != ThemeLight && settings.Theme != ThemeDark {
		settings.Theme = ThemeDark
	}
	if settings.Mode == "" {
		settings.Mode = "main"
	}
	return settings
}

func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(settings)
}
