package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/etsangsplk/hello-tracing/logging"
)

const (
	red    = 31
	green  = 32
	yellow = 33
	blue   = 36
)

type printer struct {
	out      io.Writer
	noColor  bool
	showHost bool
}

func (p *printer) processLines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry == nil {
			fmt.Fprintln(p.out, line)
			continue
		}
		p.printLine(entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading log lines: %w", err)
	}
	return nil
}

func extractAndRemove(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	delete(m, key)
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

func (p *printer) printLine(entry map[string]interface{}) {
	level, _ := extractAndRemove(entry, logging.LevelKey)
	timestamp, timestampExists := extractAndRemove(entry, logging.TimeKey)
	file, _ := extractAndRemove(entry, logging.FileKey)
	message, _ := extractAndRemove(entry, logging.MessageKey)
	callstack, callstackExists := extractAndRemove(entry, logging.CallstackKey)
	if !p.showHost {
		delete(entry, logging.HostnameKey)
		delete(entry, logging.ServiceKey)
	}

	if callstackExists {
		callstack = fmt.Sprintf(" callstack=\n%s", callstack)
	}
	if timestampExists {
		// leave unparseable timestamps as they are
		if parsed, err := time.Parse(time.RFC3339, timestamp); err == nil {
			timestamp = parsed.Format("0102 15:04:05.000")
		}
	}

	theRest := make([]string, 0, len(entry))
	for key, value := range entry {
		s := fmt.Sprintf("%v", value)
		if strings.ContainsAny(s, " \t") {
			s = fmt.Sprintf("%q", s)
		}
		theRest = append(theRest, p.colorize(blue, key)+"="+s)
	}
	sort.Strings(theRest)

	// pad before colorizing
	level = fmt.Sprintf("%-5s", level)
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "WARN":
		level = p.colorize(yellow, level)
	case "ERROR", "FATAL":
		level = p.colorize(red, level)
	default:
		level = p.colorize(green, level)
	}

	line := fmt.Sprintf("%-17s %s %-22s | %q", timestamp, level, file, message)
	if len(theRest) > 0 {
		line += " " + strings.Join(theRest, " ")
	}
	fmt.Fprintln(p.out, line+callstack)
}

func (p *printer) colorize(color int, s string) string {
	if p.noColor {
		return s
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, s)
}
