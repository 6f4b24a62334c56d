package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// shellHistoryPath returns the history file: $BUILDPLAN_HISTORY_FILE, or
// ~/.buildplan/shell_history.
func shellHistoryPath() string {
	if p := os.Getenv("BUILDPLAN_HISTORY_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".buildplan", "shell_history")
}

// shellHistory is the prompt's recall list, backed by a file. An empty
// path keeps history in memory only.
type shellHistory struct {
	path  string
	lines []string
	idx   int
}

func openShellHistory(path string) *shellHistory {
	h := &shellHistory{path: path}
	if path != "" {
		h.lines = loadHistoryFromPath(path)
	}
	h.idx = len(h.lines)
	return h
}

// add records line and resets the recall cursor. A repeat of the previous
// line is not stored twice.
func (h *shellHistory) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if h.path != "" {
			appendHistoryToPath(h.path, line)
		}
	}
	h.idx = len(h.lines)
}

// prev steps back one line. ok is false at the oldest entry.
func (h *shellHistory) prev() (string, bool) {
	if h.idx == 0 {
		return "", false
	}
	h.idx--
	return h.lines[h.idx], true
}

// next steps forward; past the newest entry it returns an empty line.
func (h *shellHistory) next() string {
	if h.idx < len(h.lines)-1 {
		h.idx++
		return h.lines[h.idx]
	}
	h.idx = len(h.lines)
	return ""
}

// loadHistoryFromPath reads command history from the given file.
// Returns nil if the file does not exist or cannot be read.
func loadHistoryFromPath(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	// Keep only the most recent entries.
	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistoryToPath appends a single line to the given history file.
// History is best-effort, so errors are dropped.
func appendHistoryToPath(path, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(line + "\n")
}
