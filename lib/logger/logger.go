package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

var levelStrings = map[LogLevel]string{
	DEBUG:   "DEBUG",
	INFO:    "INFO",
	WARNING: "WARNING",
	ERROR:   "ERROR",
	FATAL:   "FATAL",
}

// Options configures rotation and verbosity. Zero values fall back to
// logs/<component>.log, 10 MB files, 5 backups, 30 days, INFO.
type Options struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Level      LogLevel
}

type Logger struct {
	loggers   map[LogLevel]*log.Logger
	level     LogLevel
	component string
}

// New builds a leveled logger for one component ("TRENDS", "POLICY").
// Lines go to stdout and to a size-rotated file.
func New(component string, opts Options) (*Logger, error) {
	if opts.Path == "" {
		opts.Path = filepath.Join("logs", strings.ToLower(component)+".log")
	}
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = 5
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = 30
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	// Write to both file and stdout
	multiWriter := io.MultiWriter(rotator, os.Stdout)

	loggers := make(map[LogLevel]*log.Logger)
	for level, prefix := range levelStrings {
		loggers[level] = log.New(multiWriter, fmt.Sprintf("[%s] [%s] ", prefix, component), log.LstdFlags)
	}

	return &Logger{
		loggers:   loggers,
		level:     opts.Level,
		component: component,
	}, nil
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= DEBUG {
		l.loggers[DEBUG].Printf(format, v...)
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= INFO {
		l.loggers[INFO].Printf(format, v...)
	}
}

func (l *Logger) Warning(format string, v ...interface{}) {
	if l.level <= WARNING {
		l.loggers[WARNING].Printf(format, v...)
	}
}

func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= ERROR {
		l.loggers[ERROR].Printf(format, v...)
	}
}

// Fatal logs and exits 1.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.loggers[FATAL].Printf(format, v...)
	os.Exit(1)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// ParseLevel maps a config string to a level, defaulting to INFO.
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}
