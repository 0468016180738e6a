package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Logger struct {
	mu       sync.Mutex
	terminal io.Writer
	jsonOut  io.Writer
	logFile  *os.File
}

// NewLogger writes colored lines to stdout and, when dir is not empty, JSON
// lines to dir/reservas-YYYY-MM-DD.log.
func NewLogger(dir string) (*Logger, error) {
	l := &Logger{terminal: os.Stdout}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}

		name := filepath.Join(dir, fmt.Sprintf("reservas-%s.log", time.Now().Format("2006-01-02")))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.logFile = f
		l.jsonOut = f
		l.Info("LOGGER", fmt.Sprintf("Log file: %s", name))
	}

	return l, nil
}

// New builds a logger over arbitrary writers; either may be nil.
func New(terminal, jsonOut io.Writer) *Logger {
	return &Logger{terminal: terminal, jsonOut: jsonOut}
}

func Discard() *Logger {
	return &Logger{}
}

func (l *Logger) log(level LogLevel, category, message string) {
	if l == nil {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     levelToString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.terminal != nil {
		fmt.Fprint(l.terminal, formatTerminalOutput(entry))
	}
	if l.jsonOut != nil {
		if b, err := json.Marshal(entry); err == nil {
			l.jsonOut.Write(append(b, '\n'))
		}
	}
}

func formatTerminalOutput(entry LogEntry) string {
	timestamp := entry.Timestamp[11:19]

	var levelColor *color.Color
	switch entry.Level {
	case "DEBUG":
		levelColor = color.New(color.FgCyan)
	case "INFO":
		levelColor = color.New(color.FgGreen)
	case "WARN":
		levelColor = color.New(color.FgYellow)
	case "ERROR", "FATAL":
		levelColor = color.New(color.FgRed, color.Bold)
	default:
		levelColor = color.New(color.FgWhite)
	}

	timeStr := color.New(color.FgBlue).Sprint(timestamp)
	levelStr := levelColor.Sprintf("%-5s", entry.Level)
	categoryStr := levelColor.Add(color.Bold).Sprintf("[%-11s]", entry.Category)

	if entry.File != "" && entry.Line > 0 {
		fileInfo := color.New(color.FgMagenta).Sprintf(" (%s:%d)", entry.File, entry.Line)
		return fmt.Sprintf("%s %s %s %s%s\n", timeStr, levelStr, categoryStr, entry.Message, fileInfo)
	}
	return fmt.Sprintf("%s %s %s %s\n", timeStr, levelStr, categoryStr, entry.Message)
}

func levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "INFO"
	}
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	os.Exit(1)
}

func (l *Logger) LogAPI(method, path string, status int, duration time.Duration) {
	l.log(INFO, "API", fmt.Sprintf("%s %s - %d (%s)", method, path, status, duration))
}

func (l *Logger) LogReservation(action, reservationID, message string) {
	l.log(INFO, "RESERVATION", fmt.Sprintf("[%s] %s - %s", action, reservationID, message))
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.log(INFO, "DATABASE", fmt.Sprintf("[%s] %s - %s", operation, table, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.log(WARN, "SECURITY", fmt.Sprintf("[%s] %s", event, message))
}

func (l *Logger) Close() {
	if l == nil || l.logFile == nil {
		return
	}
	l.Info("LOGGER", "Closing log file")
	l.logFile.Close()
}
