// Package notify delivers short, transient, user-facing notifications
// (the terminal counterpart of a toast).
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Notifier never blocks the caller on user interaction.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type styles struct {
	success lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	error   lipgloss.Style
}

func defaultStyles() styles {
	base := lipgloss.NewStyle().Bold(true)
	return styles{
		success: base.Foreground(lipgloss.Color("42")),
		info:    base.Foreground(lipgloss.Color("39")),
		warn:    base.Foreground(lipgloss.Color("214")),
		error:   base.Foreground(lipgloss.Color("196")),
	}
}

// Terminal writes one styled line per notification.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, styles: defaultStyles()}
}

func (t *Terminal) write(style lipgloss.Style, tag, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", style.Render(tag), msg)
}

func (t *Terminal) Success(msg string) { t.write(t.styles.success, "✔", msg) }
func (t *Terminal) Info(msg string)    { t.write(t.styles.info, "•", msg) }
func (t *Terminal) Warn(msg string)    { t.write(t.styles.warn, "!", msg) }
func (t *Terminal) Error(msg string)   { t.write(t.styles.error, "✖", msg) }

// Note is one recorded notification.
type Note struct {
	Level   Level
	Message string
}

// Recorder keeps every notification in order. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) add(l Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Level: l, Message: msg})
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }
func (r *Recorder) Warn(msg string)    { r.add(LevelWarn, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

// Notes returns a copy of what has been recorded so far.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

// Last returns the most recent note, if any.
func (r *Recorder) Last() (Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Note{}, false
	}
	return r.notes[len(r.notes)-1], true
}
