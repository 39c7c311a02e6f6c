package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
)

// wireRecord mirrors EventRecord with pointer fields so that a missing key
// can be told apart from a zero value.
type wireRecord struct {
	Timestamp   *string  `json:"ts"`
	Mode        *string  `json:"mode"`
	Model       *string  `json:"model"`
	Query       *string  `json:"query"`
	ResponseLen *int     `json:"response_len"`
	EstCostUSD  *float64 `json:"est_cost_usd"`
	DurationMS  *int64   `json:"duration_ms"`
}

// ParseLine decodes a single log line. It returns false for blank lines,
// invalid JSON, lines missing any record key, keys of the wrong type and
// negative counters or costs. Unknown keys are ignored.
func ParseLine(line []byte) (EventRecord, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return EventRecord{}, false
	}
	var w wireRecord
	if err := json.Unmarshal(line, &w); err != nil {
		return EventRecord{}, false
	}
	if w.Timestamp == nil || w.Mode == nil || w.Model == nil || w.Query == nil ||
		w.ResponseLen == nil || w.EstCostUSD == nil || w.DurationMS == nil {
		return EventRecord{}, false
	}
	rec := EventRecord{
		Timestamp:   *w.Timestamp,
		Mode:        Mode(*w.Mode),
		Model:       *w.Model,
		Query:       *w.Query,
		ResponseLen: *w.ResponseLen,
		EstCostUSD:  *w.EstCostUSD,
		DurationMS:  *w.DurationMS,
	}
	if rec.ResponseLen < 0 || rec.DurationMS < 0 || rec.EstCostUSD < 0 {
		return EventRecord{}, false
	}
	return rec, true
}

// ParseRecords reads r line by line and keeps every line ParseLine accepts,
// in input order. Lines may be of any length; a final line without a
// trailing newline is parsed like the others. Rejected non-blank lines are
// reported to logger when it is non-nil. Only read errors from r are
// returned.
func ParseRecords(r io.Reader, logger *log.Logger) ([]EventRecord, error) {
	br := bufio.NewReader(r)
	var records []EventRecord
	lineNo := 0
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			if rec, ok := ParseLine(line); ok {
				records = append(records, rec)
			} else if logger != nil && len(bytes.TrimSpace(line)) > 0 {
				logger.Printf("store: skipping malformed line %d", lineNo)
			}
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
	}
}
