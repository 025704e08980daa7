package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	domcart "example.com/rocketshoes/app/internal/domain/cart"
)

type Logger struct {
	log logrus.FieldLogger
}

func NewLogger(log logrus.FieldLogger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Report(ctx context.Context, msg domcart.Message) {
	l.log.WithField("notification", string(msg)).Info("user notified")
}

type Entry struct {
	Message domcart.Message `json:"message"`
	At      time.Time       `json:"at"`
}

// Feed buffers the most recent messages until a UI drains them.
// Once full, the oldest entry is dropped.
type Feed struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
	now     func() time.Time
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 32
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) Report(ctx context.Context, msg domcart.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == f.limit {
		f.entries = f.entries[1:]
	}
	f.entries = append(f.entries, Entry{Message: msg, At: f.now()})
}

func (f *Feed) Drain() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.entries
	f.entries = nil
	if out == nil {
		out = []Entry{}
	}
	return out
}

type Multi []domcart.Notifier

func (m Multi) Report(ctx context.Context, msg domcart.Message) {
	for _, n := range m {
		n.Report(ctx, msg)
	}
}
