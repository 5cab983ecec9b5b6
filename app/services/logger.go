package services

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger is the application log used by the example services.
type Logger interface {
	Log(message string)
	Logs() []string
}

// FileLogger keeps every entry in memory and appends it to a file.
type FileLogger struct {
	mu      sync.Mutex
	logFile string
	logs    []string
}

// NewFileLogger returns a logger appending to logFile.
func NewFileLogger(logFile string) *FileLogger {
	return &FileLogger{logFile: logFile}
}

// Log records a timestamped entry. A failed file write is kept in memory
// and reported as a second entry.
func (l *FileLogger) Log(message string) {
	entry := fmt.Sprintf("[%s] %s", time.Now().Format(time.DateTime), message)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, entry)
	if err := l.appendLine(entry); err != nil {
		l.logs = append(l.logs, fmt.Sprintf("[%s] log write failed: %v", time.Now().Format(time.DateTime), err))
	}
}

func (l *FileLogger) appendLine(line string) error {
	f, err := os.OpenFile(l.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Logs returns a copy of the entries recorded so far.
func (l *FileLogger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.logs...)
}

func (l *FileLogger) LogFile() string { return l.logFile }
