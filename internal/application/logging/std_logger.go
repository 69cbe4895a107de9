package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// StdLogger writes leveled records through the standard library logger, as text or one JSON
// object per line
type StdLogger struct {
	out      *log.Logger
	minLevel int
	json     bool
	now      func() time.Time
}

// NewStdLogger creates a logger writing to w. level is one of debug, info, warn, error;
// format is text or json.
func NewStdLogger(w io.Writer, level, format string) *StdLogger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &StdLogger{
		out:      log.New(w, "", 0),
		minLevel: rank,
		json:     strings.EqualFold(format, "json"),
		now:      time.Now,
	}
}

// Log writes one record when level is at or above the configured minimum
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	if rank, ok := levelRank[level]; ok && rank < l.minLevel {
		return
	}
	ts := l.now().UTC().Format(time.RFC3339)

	if l.json {
		record := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			record[k] = v
		}
		record["time"] = ts
		record["level"] = level
		record["msg"] = message
		data, err := json.Marshal(record)
		if err != nil {
			l.out.Printf("%s %s %s (metadata unencodable: %v)", ts, level, message, err)
			return
		}
		l.out.Println(string(data))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", ts, level, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	l.out.Println(b.String())
}
