package timer

import (
	"sync"

	"go.uber.org/zap"

	"pausepad/internal/model"
)

const DefaultSessionLogCapacity = 100

// SessionLog keeps a bounded in-memory history of closed session records,
// newest first.
type SessionLog struct {
	mu       sync.Mutex
	capacity int
	records  []model.SessionRecord
	logger   *zap.Logger
}

func NewSessionLog(capacity int, logger *zap.Logger) *SessionLog {
	if capacity <= 0 {
		capacity = DefaultSessionLogCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionLog{capacity: capacity, logger: logger}
}

func (l *SessionLog) HandleEvent(event Event) {
	if event.Record == nil {
		return
	}

	record := *event.Record
	fields := []zap.Field{
		zap.String("session_id", record.ID),
		zap.String("mode", string(record.Mode)),
	}
	switch event.Type {
	case EventSessionOpened:
		l.logger.Debug("session opened", fields...)
	case EventSessionDiscarded:
		l.logger.Debug("session discarded", fields...)
	case EventSessionClosed:
		l.logger.Debug("session closed", append(fields,
			zap.Int("duration_seconds", record.DurationSeconds),
			zap.Bool("completed", record.Completed),
			zap.Bool("interrupted", record.Interrupted),
		)...)
		l.append(record)
	}
}

func (l *SessionLog) append(record model.SessionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]model.SessionRecord{record}, l.records...)
	if len(l.records) > l.capacity {
		l.records = l.records[:l.capacity]
	}
}

// Records returns up to limit records, newest first. A non-positive limit
// returns everything held.
func (l *SessionLog) Records(limit int) []model.SessionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || limit > len(l.records) {
		limit = len(l.records)
	}
	out := make([]model.SessionRecord, limit)
	copy(out, l.records[:limit])
	return out
}
