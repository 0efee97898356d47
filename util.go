package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DualOutputHook is a logrus hook to send logs to multiple destinations
type DualOutputHook struct {
	Outputs   []io.Writer
	Formatter log.Formatter
	LogLevels []log.Level
}

// Fire handles a log event and sends it to multiple outputs
func (h *DualOutputHook) Fire(entry *log.Entry) error {
	line, err := h.Formatter.Format(entry)
	if err != nil {
		return err
	}

	for _, output := range h.Outputs {
		if _, err := output.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// Levels returns the log levels that this hook handles
func (h *DualOutputHook) Levels() []log.Level {
	return h.LogLevels
}

// setupLogs sets up log output to stdout (with color) and optionally a log file (without color).
// The returned file is nil unless ENABLE_FILE_LOGGING=1; the caller closes it.
func setupLogs() *os.File {
	consoleFormatter := &log.TextFormatter{
		FullTimestamp: true,
		DisableColors: false,
	}

	fileFormatter := &log.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	}

	var logFile *os.File
	if os.Getenv("ENABLE_FILE_LOGGING") == "1" {
		timestamp := time.Now().Format("20060102-150405")
		var err error
		logFile, err = os.OpenFile(fmt.Sprintf("migrate-%s.log", timestamp), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}

		log.AddHook(&DualOutputHook{
			Outputs:   []io.Writer{logFile},
			Formatter: fileFormatter,
			LogLevels: []log.Level{log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.FatalLevel},
		})
	}

	log.SetFormatter(consoleFormatter)
	log.SetLevel(parseLogLevel(os.Getenv("LOG_LEVEL")))
	return logFile
}

func parseLogLevel(s string) log.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return log.DebugLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERR", "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
