package fdrtrace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Message is a single diagnostic recorded during a trace.
type Message struct {
	Level slog.Level
	Text  string
}

// Diagnostics collects the messages of one trace so they can be returned with the
// result, and forwards each one to a logger. A nil *Diagnostics discards everything.
type Diagnostics struct {
	mu   sync.Mutex
	log  *slog.Logger
	msgs []Message
}

// NewDiagnostics returns a sink forwarding to l (nil for none).
func NewDiagnostics(l *slog.Logger) *Diagnostics {
	return &Diagnostics{log: l}
}

func (d *Diagnostics) Info(msg string, args ...any)  { d.add(slog.LevelInfo, msg, args) }
func (d *Diagnostics) Warn(msg string, args ...any)  { d.add(slog.LevelWarn, msg, args) }
func (d *Diagnostics) Error(msg string, args ...any) { d.add(slog.LevelError, msg, args) }

func (d *Diagnostics) add(lvl slog.Level, msg string, args []any) {
	if d == nil {
		return
	}
	if d.log != nil {
		d.log.Log(context.Background(), lvl, msg, args...)
	}
	txt := msg
	if len(args) > 0 {
		var sb strings.Builder
		sb.WriteString(msg)
		for i := 0; i+1 < len(args); i += 2 {
			fmt.Fprintf(&sb, " %v=%v", args[i], args[i+1])
		}
		txt = sb.String()
	}
	d.mu.Lock()
	d.msgs = append(d.msgs, Message{Level: lvl, Text: txt})
	d.mu.Unlock()
}

// Messages returns a copy of everything recorded so far.
func (d *Diagnostics) Messages() []Message {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	o := make([]Message, len(d.msgs))
	copy(o, d.msgs)
	return o
}

// Join returns the recorded messages separated by ';' with newlines flattened.
func (d *Diagnostics) Join() string {
	ms := d.Messages()
	s := make([]string, len(ms))
	for i, m := range ms {
		s[i] = strings.ReplaceAll(m.Text, "\n", " ")
	}
	return strings.Join(s, ";")
}
