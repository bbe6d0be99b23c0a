package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/motion-control/mcc/internal/command"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	Timestamp     time.Time `json:"ts"`
	CorrelationID string    `json:"correlationId"`
	Sender        string    `json:"sender"`
	Action        string    `json:"action"`
	Raw           string    `json:"raw"`
	Speed         int       `json:"speed"`
	Outcome       string    `json:"outcome"`
	LatencyMs     int64     `json:"latencyMs"`
}

// Logger implements the audit logging functionality with size-based
// rotation.
type Logger struct {
	mu       sync.Mutex
	filePath string
	writer   *lumberjack.Logger
}

// Compile-time assertion that Logger implements command.AuditLogger
var _ command.AuditLogger = (*Logger)(nil)

// NewLogger creates a new audit logger writing JSONL to
// <logDir>/audit.jsonl.
func NewLogger(logDir string, maxSizeMB, maxBackups int) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filePath := filepath.Join(logDir, "audit.jsonl")

	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &Logger{
		filePath: filePath,
		writer: &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
		},
	}, nil
}

// LogAction logs an audit record for one processed datagram. Sender and
// correlation ID are read from the context annotated by the receiver.
func (l *Logger) LogAction(ctx context.Context, action, raw string, speed int, result string, latency time.Duration) {
	entry := AuditEntry{
		Timestamp:     time.Now().UTC(),
		CorrelationID: command.CorrelationFromContext(ctx),
		Sender:        command.SenderFromContext(ctx),
		Action:        action,
		Raw:           raw,
		Speed:         speed,
		Outcome:       result,
		LatencyMs:     latency.Milliseconds(),
	}

	l.writeEntry(entry)
}

// writeEntry writes an audit entry to the log file.
func (l *Logger) writeEntry(entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit entry: %v\n", err)
		return
	}

	if _, err := l.writer.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write audit entry: %v\n", err)
	}
}

// GetFilePath returns the path to the audit log file.
func (l *Logger) GetFilePath() string {
	return l.filePath
}

// Rotate forces a rotation of the audit log file.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Rotate()
}

// Close closes the audit logger and its file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Close()
}
