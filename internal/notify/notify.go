// Package notify delivers short user-visible messages. Workflows receive a
// Notifier explicitly instead of reaching for a shared dispatcher.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Variant is the visual weight of a message.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Message is one toast.
type Message struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier fires a user-visible message.
type Notifier interface {
	Notify(msg Message)
}

// Success builds a default-variant message.
func Success(title, description string) Message {
	return Message{Title: title, Description: description, Variant: VariantDefault}
}

// Failure builds a destructive message.
func Failure(title, description string) Message {
	return Message{Title: title, Description: description, Variant: VariantDestructive}
}

// Console writes messages as single lines to w.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a Console notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notify implements Notifier.
func (c *Console) Notify(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	marker := "✔"
	if msg.Variant == VariantDestructive {
		marker = "✖"
	}
	fmt.Fprintf(c.w, "%s %s: %s\n", marker, msg.Title, msg.Description)
}

// Log records messages on a logger; destructive ones at warn level.
type Log struct {
	logger zerolog.Logger
}

// NewLog creates a Log notifier.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

// Notify implements Notifier.
func (l *Log) Notify(msg Message) {
	event := l.logger.Info()
	if msg.Variant == VariantDestructive {
		event = l.logger.Warn()
	}
	event.Str("title", msg.Title).Msg(msg.Description)
}

// Multi fans a message out to several notifiers.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(msg Message) {
	for _, n := range m {
		n.Notify(msg)
	}
}
