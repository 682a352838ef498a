package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    = log.New(io.Discard, "", 0)
	Warn    = log.New(os.Stderr, "WARN: ", log.Ldate|log.Ltime) // stderr until Init
	Debug   = log.New(io.Discard, "", 0)
	Verbose = log.New(io.Discard, "", 0)
	Error   = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always  = log.New(io.Discard, "", 0) // Always logs to file regardless of log level

	// Current log level for filtering
	currentLogLevel string
)

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "fxvanilla.log")
}

func InitWithConfig(logLevel, logFilePath string) error {
	// Open log file
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	InitWithWriter(logLevel, logFile)
	Error.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return nil
}

// InitWithWriter routes every enabled level to w. Used by tools and tests
// that should not create a log file.
func InitWithWriter(logLevel string, w io.Writer) {
	currentLogLevel = logLevel

	// Create null writer for disabled log levels
	nullWriter := io.Discard

	Info = log.New(getWriter("info", w, nullWriter), "INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(getWriter("warn", w, nullWriter), "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(getWriter("debug", w, nullWriter), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Verbose = log.New(getWriter("verbose", w, nullWriter), "VERBOSE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always = log.New(w, "ALWAYS: ", log.Ldate|log.Ltime) // Always logs, bypasses level filtering
}

// Level returns the active level name
func Level() string {
	if _, ok := levels[currentLogLevel]; !ok {
		return "info"
	}
	return currentLogLevel
}

var levels = map[string]int{
	"error":   0,
	"warn":    1,
	"info":    2,
	"debug":   3,
	"verbose": 4,
}

// getWriter returns the appropriate writer based on log level
func getWriter(level string, activeWriter, disabledWriter io.Writer) io.Writer {
	if shouldLog(level) {
		return activeWriter
	}
	return disabledWriter
}

// shouldLog determines if a log level should be active
func shouldLog(level string) bool {
	currentLevel, exists := levels[currentLogLevel]
	if !exists {
		currentLevel = 2 // default to info
	}

	requiredLevel, exists := levels[level]
	if !exists {
		return false
	}

	return currentLevel >= requiredLevel
}
