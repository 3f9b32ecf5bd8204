package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Log is an ordered execution transcript. Order is the order events were
// produced in, not a sort over timestamps.
type Log []Event

// ReadLog decodes a transcript from r, one JSON-encoded event per line.
// Blank lines are skipped. A line that fails to decode aborts the read.
func ReadLog(r io.Reader) (Log, error) {
	var log Log
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, fmt.Errorf("decoding event at line %d: %w", line, err)
		}
		log = append(log, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return log, nil
}

// WriteLog encodes the transcript to w, one JSON-encoded event per line.
func (l Log) WriteLog(w io.Writer) error {
	enc := json.NewEncoder(w)
	for i, e := range l {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encoding event %d: %w", i, err)
		}
	}
	return nil
}
