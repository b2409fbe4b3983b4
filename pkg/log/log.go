// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/event"
	"github.com/walteh/scaffoldrc/pkg/model"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent entries
	nameWidth   = 35 // Base width for the destination path
	typeWidth   = 10 // Width for the entry kind
	statusWidth = 10 // Width for status text
)

// 🎯 Logger prints lifecycle events to a console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	verbose bool

	mu      sync.Mutex
	root    string
	entries int
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Verbose makes the logger print start events too.
func (l *Logger) Verbose(v bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntry formats one per-entry event for display
func (l *Logger) formatEntry(e event.Event) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch e.Kind.Phase() {
	case event.PhaseError:
		symbol, symbolColor, status = '✗', color.FgRed, "FAILED"
	case event.PhaseStart:
		symbol, symbolColor, status = '…', color.Faint, "STARTED"
	default:
		symbol, symbolColor, status = '✓', color.FgGreen, "CREATED"
	}

	var typeColor color.Attribute
	switch e.Entry.Kind {
	case model.KindDirectory:
		typeColor = color.FgCyan
	case model.KindSymlink:
		typeColor = color.FgMagenta
	default:
		typeColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, l.display(e.Entry.Destination)),
		color.New(typeColor).Sprint(fmt.Sprintf("%-*s", typeWidth, e.Entry.Kind)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// display shows dest relative to the run's root when it is known.
func (l *Logger) display(dest string) string {
	if l.root == "" {
		return dest
	}
	rel, err := filepath.Rel(l.root, dest)
	if err != nil {
		return dest
	}
	return filepath.ToSlash(rel)
}

// 📣 Listen renders e. It satisfies event.Listener.
func (l *Logger) Listen(e event.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch e.Kind {
	case event.Complete:
		l.zlog.Info().Int("entries", len(e.Result)).Msg("scaffold complete")
		return
	case event.Error:
		l.zlog.Error().Err(e.Err).Msg("scaffold failed")
		return
	}

	// the root directory is always the first entry to start
	if l.root == "" && e.Kind == event.CreateDirectoryStart {
		l.root = e.Entry.Destination
	}

	level := zerolog.DebugLevel
	switch e.Kind.Phase() {
	case event.PhaseStart:
		level = zerolog.TraceLevel
	case event.PhaseError:
		level = zerolog.ErrorLevel
	case event.PhaseComplete:
		l.entries++
	}
	l.zlog.WithLevel(level).
		Err(e.Err).
		Str("event", e.Kind.String()).
		Str("kind", e.Entry.Kind.String()).
		Str("source", e.Entry.Source).
		Str("destination", e.Entry.Destination).
		Msg("entry")

	if e.Kind.Phase() == event.PhaseStart && !l.verbose {
		return
	}
	fmt.Fprintln(l.console, l.formatEntry(e))
}

// Entries returns how many entries completed since the last Header.
func (l *Logger) Entries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header and starts a new run
func (l *Logger) Header(template, destination string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.root = ""
	l.entries = 0

	name := color.New(color.Bold, color.FgCyan).Sprint("scaffoldrc")
	fmt.Fprintf(l.console, "\n%s %s\n", name, color.New(color.Faint).Sprint("• "+template))
	fmt.Fprintf(l.console, "%s %s\n\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.FgYellow).Sprint(destination))
	l.zlog.Info().Str("template", template).Str("destination", destination).Msg("scaffolding")
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
