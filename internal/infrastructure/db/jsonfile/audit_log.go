package jsonfile

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// AuditLog appends timestamped lines to a flat file. Appends are serialized by
// a mutex so interleaved writers cannot shear lines.
type AuditLog struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewAuditLog(path string) *AuditLog {
	return &AuditLog{path: path, now: time.Now}
}

func (l *AuditLog) Append(_ context.Context, action string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", l.now().UTC().Format(time.RFC3339), action)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (l *AuditLog) Read(_ context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read audit log: %w", err)
	}
	return string(data), nil
}

func (l *AuditLog) Clear(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.WriteFile(l.path, nil, 0o644); err != nil {
		return fmt.Errorf("clear audit log: %w", err)
	}
	return nil
}
