package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/LISSConsulting/pplx/internal/store"
)

// Format is an output format for the log views.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a --format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (want text, json or jsonl)", s)
	}
}

// WriteRecords writes records as an indented JSON array (FormatJSON) or one
// object per line in the log's own wire format (FormatJSONL).
func WriteRecords(w io.Writer, records []store.EventRecord, f Format) error {
	switch f {
	case FormatJSON:
		if records == nil {
			records = []store.EventRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for records: %s", f)
	}
}

// WriteSummary writes s as indented JSON. JSONL is accepted and written as
// a single compact line.
func WriteSummary(w io.Writer, s Summary, f Format) error {
	enc := json.NewEncoder(w)
	switch f {
	case FormatJSON:
		enc.SetIndent("", "  ")
	case FormatJSONL:
	default:
		return fmt.Errorf("unsupported format for summary: %s", f)
	}
	return enc.Encode(s)
}
