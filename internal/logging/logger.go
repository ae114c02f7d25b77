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

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Nothing is written until InitLogger or SetOutput is called.
var globalLogger = zerolog.Nop()

const timeFormat = "2006-01-02 15:04:05"

// Options controls where log lines go and how the file is rotated.
type Options struct {
	// File must already be expanded (see config.ExpandHome).
	File       string
	Level      string
	MaxSize    int // MB
	MaxAge     int // days
	MaxBackups int

	// Console mirrors output to stdout when stdout is a terminal.
	Console bool
}

// InitLogger sets up logging with file rotation and, for the daemon, a
// console mirror. The UI passes Console=false so the screen stays clean.
func InitLogger(opts Options) error {
	logFile := opts.File
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    opts.MaxSize,
		MaxAge:     opts.MaxAge,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
		Compress:   true,
	}

	var out io.Writer = fileWriter
	if opts.Console && isatty.IsTerminal(os.Stdout.Fd()) {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: timeFormat,
		}
		out = io.MultiWriter(fileWriter, consoleWriter)
	}

	configure(out, parseLevel(opts.Level))
	return nil
}

// SetOutput points the logger at an arbitrary writer. Used by tests and
// by sub-commands that only want stderr.
func SetOutput(w io.Writer, level string) {
	configure(w, parseLevel(level))
}

func configure(w io.Writer, level zerolog.Level) {
	globalLogger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
	log.Logger = globalLogger
}

func parseLevel(level string) zerolog.Level {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return logLevel
}

func Debug(format string, args ...interface{}) {
	globalLogger.Debug().Msgf(format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.Info().Msgf(format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.Warn().Msgf(format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.Error().Msgf(format, args...)
}

// SetLevel changes the level of the current logger, e.g. from --log-level.
func SetLevel(level string) {
	globalLogger = globalLogger.Level(parseLevel(level))
	log.Logger = globalLogger
}

// GetLevel reports the active level name.
func GetLevel() string {
	return globalLogger.GetLevel().String()
}
