package probe

import (
	"context"
	"log/slog"
	"sync"

	"github.com/autobrr/go-avprobe/internal/observability"
)

// Log categories as reported in the logs section.
const (
	CategoryNA        = 0
	CategoryInput     = 1
	CategoryOutput    = 2
	CategoryMuxer     = 3
	CategoryDemuxer   = 4
	CategoryEncoder   = 5
	CategoryDecoder   = 6
	CategoryResampler = 10
)

var componentCategories = map[string]int{
	"input":     CategoryInput,
	"output":    CategoryOutput,
	"muxer":     CategoryMuxer,
	"demuxer":   CategoryDemuxer,
	"encoder":   CategoryEncoder,
	"decoder":   CategoryDecoder,
	"resampler": CategoryResampler,
}

// LogEntry is one captured log record.
type LogEntry struct {
	Context        string
	Level          int
	Category       int
	ParentContext  string
	ParentCategory int
	Message        string
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogBuffer is a slog.Handler that keeps every record for the frame logs
// section and forwards it to the wrapped handler. Handlers derived with
// WithAttrs share one store.
type LogBuffer struct {
	inner  slog.Handler
	store  *logStore
	ctx    string
	parent string
}

func NewLogBuffer(inner slog.Handler) *LogBuffer {
	return &LogBuffer{inner: inner, store: &logStore{}}
}

func (b *LogBuffer) Enabled(context.Context, slog.Level) bool { return true }

func (b *LogBuffer) Handle(ctx context.Context, r slog.Record) error {
	e := LogEntry{
		Context:       b.ctx,
		Level:         observability.AV(r.Level),
		ParentContext: b.parent,
		Message:       r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "component":
			e.Context = a.Value.String()
		case "parent":
			e.ParentContext = a.Value.String()
		}
		return true
	})
	e.Category = componentCategories[e.Context]
	e.ParentCategory = componentCategories[e.ParentContext]

	b.store.mu.Lock()
	b.store.entries = append(b.store.entries, e)
	b.store.mu.Unlock()

	if b.inner.Enabled(ctx, r.Level) {
		return b.inner.Handle(ctx, r)
	}
	return nil
}

func (b *LogBuffer) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *b
	c.inner = b.inner.WithAttrs(attrs)
	for _, a := range attrs {
		switch a.Key {
		case "component":
			c.ctx = a.Value.String()
		case "parent":
			c.parent = a.Value.String()
		}
	}
	return &c
}

func (b *LogBuffer) WithGroup(name string) slog.Handler {
	c := *b
	c.inner = b.inner.WithGroup(name)
	return &c
}

// Drain returns the entries at or below maxLevel and empties the buffer.
// ok is false when nothing was buffered at all.
func (b *LogBuffer) Drain(maxLevel int) (entries []LogEntry, ok bool) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if len(b.store.entries) == 0 {
		return nil, false
	}
	for _, e := range b.store.entries {
		if e.Level <= maxLevel {
			entries = append(entries, e)
		}
	}
	b.store.entries = nil
	return entries, true
}

// Len reports the number of buffered entries.
func (b *LogBuffer) Len() int {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return len(b.store.entries)
}
