package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// statusKind classifies a status line for coloring.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// statusLine is one labelled entry in a status section, e.g.
// "Failed snapshots: [ERROR] 2".
type statusLine struct {
	label  string
	kind   statusKind
	detail string
}

// statusSection groups status lines under an underlined header. The status
// command builds one section for warehouse contents and one for the database.
type statusSection struct {
	title string
	lines []statusLine
}

// render emits the section header followed by its lines, with labels padded
// to the widest label in the section.
func (s statusSection) render(colorize bool) []string {
	header := fmt.Sprintf("== %s ==", strings.TrimSpace(s.title))
	rule := strings.Repeat("-", len(header))
	if colorize {
		header = ansiBlue + header + ansiReset
		rule = ansiBlue + rule + ansiReset
	}

	width := 0
	for _, line := range s.lines {
		if len(line.label) > width {
			width = len(line.label)
		}
	}

	out := []string{header, rule}
	for _, line := range s.lines {
		text := fmt.Sprintf("  %-*s [%s]", width+1, line.label+":", line.kind.label())
		if line.detail != "" {
			text += " " + line.detail
		}
		if colorize {
			if color := line.kind.color(); color != "" {
				text = color + text + ansiReset
			}
		}
		out = append(out, text)
	}
	return out
}

func (k statusKind) label() string {
	switch k {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (k statusKind) color() string {
	switch k {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

// countKind maps a count to OK when zero and to bad otherwise, for the
// pending/failed snapshot lines.
func countKind(n int, bad statusKind) statusKind {
	if n > 0 {
		return bad
	}
	return statusOK
}

// shouldColorize enables ANSI colors only on real terminals, and honors the
// NO_COLOR convention.
func shouldColorize(writer io.Writer) bool {
	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
