package record

import (
	"encoding/json"
	"fmt"
	"io"
)

// DefaultIndent is the indentation used for pretty-printed output.
const DefaultIndent = "  "

// Output is the JSON form of a merged record. Exactly one of Created and
// Deleted is set, chosen by the record's Kind, so a zero timestamp is still
// written and the output decodes again.
type Output struct {
	Num     int     `json:"num"`
	Title   string  `json:"title"`
	Created *uint64 `json:"created,omitempty"`
	Deleted *uint64 `json:"deleted,omitempty"`
}

// ToOutput converts records to their output form, preserving order.
func ToOutput(records []Record) []Output {
	out := make([]Output, 0, len(records))
	for _, r := range records {
		o := Output{Num: r.Num, Title: r.Title}
		ts := r.Timestamp
		if r.Kind == Deleted {
			o.Deleted = &ts
		} else {
			o.Created = &ts
		}
		out = append(out, o)
	}
	return out
}

// Encode writes records as a JSON array followed by a newline. An empty
// indent produces compact output.
func Encode(w io.Writer, records []Record, indent string) error {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = json.Marshal(ToOutput(records))
	} else {
		data, err = json.MarshalIndent(ToOutput(records), "", indent)
	}
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
