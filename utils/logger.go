package utils

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// LogLevel represents different log levels
type LogLevel string

const (
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
	DEBUG LogLevel = "DEBUG"
)

// LogEntry represents a structured log entry for one automation event
type LogEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Level     LogLevel    `json:"level"`
	Message   string      `json:"message"`
	JobURL    string      `json:"job_url,omitempty"`
	Platform  string      `json:"platform,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Logger provides structured logging for job-level automation events
type Logger struct {
	logger *log.Logger
}

// NewLogger creates a new structured logger writing to stdout
func NewLogger() *Logger {
	return &Logger{logger: log.New(os.Stdout, "", 0)}
}

// NewLoggerWithWriter creates a logger with a custom writer, used in tests
func NewLoggerWithWriter(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", 0)}
}

// Info logs an info message
func (l *Logger) Info(message string, data ...interface{}) {
	l.write(LogEntry{Level: INFO, Message: message, Data: first(data)})
}

// Warn logs a warning message
func (l *Logger) Warn(message string, data ...interface{}) {
	l.write(LogEntry{Level: WARN, Message: message, Data: first(data)})
}

// Error logs an error message
func (l *Logger) Error(message string, err error, data ...interface{}) {
	entry := LogEntry{Level: ERROR, Message: message, Data: first(data)}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, data ...interface{}) {
	l.write(LogEntry{Level: DEBUG, Message: message, Data: first(data)})
}

// JobEvent logs an event tied to a specific job URL and platform
func (l *Logger) JobEvent(level LogLevel, jobURL, platform, message string, err error) {
	entry := LogEntry{Level: level, Message: message, JobURL: jobURL, Platform: platform}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

func (l *Logger) write(entry LogEntry) {
	entry.Timestamp = time.Now()
	b, err := json.Marshal(entry)
	if err != nil {
		l.logger.Printf(`{"level":"ERROR","message":"failed to marshal log entry"}`)
		return
	}
	l.logger.Println(string(b))
}

func first(data []interface{}) interface{} {
	if len(data) > 0 {
		return data[0]
	}
	return nil
}
