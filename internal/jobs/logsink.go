package jobs

import (
	"fmt"
	"io"
	"os"
)

// LogSink appends complete lines to a fixed-path log file. If the primary
// path cannot be opened it falls back to a file in the working directory,
// and as a last resort prints to standard output.
type LogSink struct {
	path     string
	fallback string
}

func NewLogSink(path, fallback string) *LogSink {
	return &LogSink{path: path, fallback: fallback}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}

// Append writes one log line, trying primary then fallback then stdout.
func (s *LogSink) Append(line string) {
	err := appendLine(s.path, line)
	if err == nil {
		return
	}
	fallbackErr := appendLine(s.fallback, line)
	if fallbackErr == nil {
		return
	}
	fmt.Printf("Failed to write log line: %v, %v\n", err, fallbackErr)
	fmt.Println(line)
}

// Writer opens the primary log file for streaming writes, falling back to
// the secondary path. Used by jobs that bind a log.Logger to the file.
func (s *LogSink) Writer() (io.WriteCloser, error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		return f, nil
	}
	f, fallbackErr := os.OpenFile(s.fallback, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fallbackErr == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot open %s (%v) or %s (%v)", s.path, err, s.fallback, fallbackErr)
}
