package store

import (
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"
)

// TimestampLayout is the on-disk timestamp format: second precision with an
// explicit numeric offset, so lexical order matches chronological order
// within one zone.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Mode is the query category. It drives the cost estimate and the display
// label color.
type Mode string

const (
	ModeSearch   Mode = "search"
	ModeAsk      Mode = "ask"
	ModeReason   Mode = "reason"
	ModeResearch Mode = "research"
)

// KnownModes lists the recognised modes in display priority order.
var KnownModes = []Mode{ModeSearch, ModeAsk, ModeReason, ModeResearch}

// Rank returns the display priority of m. Unknown modes share the lowest
// priority, len(KnownModes).
func (m Mode) Rank() int {
	for i, k := range KnownModes {
		if k == m {
			return i
		}
	}
	return len(KnownModes)
}

// Known reports whether m is one of KnownModes.
func (m Mode) Known() bool {
	return m.Rank() < len(KnownModes)
}

// SortModes orders modes by Rank, breaking ties (unknown modes) by name.
func SortModes(modes []Mode) {
	sort.SliceStable(modes, func(i, j int) bool {
		ri, rj := modes[i].Rank(), modes[j].Rank()
		if ri != rj {
			return ri < rj
		}
		return modes[i] < modes[j]
	})
}

// EventRecord is one persisted entry describing a single completed query.
// Records are written once and never modified.
type EventRecord struct {
	Timestamp   string  `json:"ts"`
	Mode        Mode    `json:"mode"`
	Model       string  `json:"model"`
	Query       string  `json:"query"`
	ResponseLen int     `json:"response_len"`
	EstCostUSD  float64 `json:"est_cost_usd"`
	DurationMS  int64   `json:"duration_ms"`
}

// NewRecord builds the record for a query that completed at now.
func NewRecord(now time.Time, mode Mode, model, query string, responseLen int, estCostUSD float64, duration time.Duration) EventRecord {
	return EventRecord{
		Timestamp:   FormatTimestamp(now),
		Mode:        mode,
		Model:       model,
		Query:       query,
		ResponseLen: responseLen,
		EstCostUSD:  estCostUSD,
		DurationMS:  duration.Milliseconds(),
	}
}

// FormatTimestamp renders t in TimestampLayout, truncated to the second.
func FormatTimestamp(t time.Time) string {
	return t.Truncate(time.Second).Format(TimestampLayout)
}

// Time parses the record's timestamp.
func (r EventRecord) Time() (time.Time, error) {
	return time.Parse(TimestampLayout, r.Timestamp)
}

// Duration returns the recorded round-trip time.
func (r EventRecord) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// Validate reports whether r can be written as a well-formed line.
func (r EventRecord) Validate() error {
	if r.ResponseLen < 0 {
		return fmt.Errorf("response_len must be >= 0, got %d", r.ResponseLen)
	}
	if r.DurationMS < 0 {
		return fmt.Errorf("duration_ms must be >= 0, got %d", r.DurationMS)
	}
	if math.IsNaN(r.EstCostUSD) || math.IsInf(r.EstCostUSD, 0) {
		return fmt.Errorf("est_cost_usd must be finite, got %v", r.EstCostUSD)
	}
	if r.EstCostUSD < 0 {
		return fmt.Errorf("est_cost_usd must be >= 0, got %v", r.EstCostUSD)
	}
	for name, s := range map[string]string{
		"ts":    r.Timestamp,
		"mode":  string(r.Mode),
		"model": r.Model,
		"query": r.Query,
	} {
		if !utf8.ValidString(s) {
			return fmt.Errorf("%s is not valid UTF-8", name)
		}
	}
	return nil
}
