package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

const (
	sessionWriteTimeout = 5 * time.Second
	sessionQueueSize    = 64
)

// SessionWriter persists closed session records.
type SessionWriter interface {
	Insert(ctx context.Context, record model.SessionRecord) error
}

// SessionStore is a timer observer writing every closed record to a
// SessionWriter. Writes happen on a single background goroutine in the order
// records were closed, so a slow writer never holds up the countdown. Write
// failures are logged and dropped.
type SessionStore struct {
	writer SessionWriter
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
	queue  chan model.SessionRecord
	done   chan struct{}
}

func NewSessionStore(writer SessionWriter, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionStore{
		writer: writer,
		logger: logger,
		queue:  make(chan model.SessionRecord, sessionQueueSize),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *SessionStore) HandleEvent(event timer.Event) {
	if event.Type != timer.EventSessionClosed || event.Record == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Warn("session store closed, record dropped", zap.String("session_id", event.Record.ID))
		return
	}
	s.queue <- *event.Record
}

// Close stops accepting records and waits until the queued ones are written.
func (s *SessionStore) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *SessionStore) run() {
	defer close(s.done)
	for record := range s.queue {
		s.write(record)
	}
}

func (s *SessionStore) write(record model.SessionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionWriteTimeout)
	defer cancel()
	if err := s.writer.Insert(ctx, record); err != nil {
		s.logger.Error("persist session record",
			zap.String("user_id", record.UserID),
			zap.String("session_id", record.ID),
			zap.String("mode", string(record.Mode)),
			zap.Error(err),
		)
	}
}
