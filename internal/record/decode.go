package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ValidationError reports a structurally invalid input list.
type ValidationError struct {
	Index  int // element index, -1 for the root value
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("element %d: %s", e.Index, e.Reason)
}

// rawRecord mirrors one input object. Pointers distinguish absent fields
// from zero values.
type rawRecord struct {
	Num     *int    `json:"num"`
	Title   *string `json:"title"`
	Created *uint64 `json:"created"`
	Deleted *uint64 `json:"deleted"`
}

// Decode parses a JSON array of record objects. Either every element is
// valid and all records are returned, or nothing is returned.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var root json.RawMessage
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse JSON: unexpected data after top-level value")
	}
	if !startsWith(root, '[') {
		return nil, &ValidationError{Index: -1, Reason: "root JSON value is not an array"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(root, &elems); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	records := make([]Record, 0, len(elems))
	for i, elem := range elems {
		rec, err := decodeElement(i, elem)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeElement(i int, elem json.RawMessage) (Record, error) {
	if !startsWith(elem, '{') {
		return Record{}, &ValidationError{Index: i, Reason: "element is not an object"}
	}

	var raw rawRecord
	if err := json.Unmarshal(elem, &raw); err != nil {
		return Record{}, fmt.Errorf("element %d: %w", i, err)
	}

	switch {
	case raw.Num == nil:
		return Record{}, &ValidationError{Index: i, Reason: "missing field `num`"}
	case raw.Title == nil:
		return Record{}, &ValidationError{Index: i, Reason: "missing field `title`"}
	case raw.Created != nil && raw.Deleted != nil:
		return Record{}, &ValidationError{Index: i, Reason: "both `created` and `deleted` fields are present"}
	case raw.Created == nil && raw.Deleted == nil:
		return Record{}, &ValidationError{Index: i, Reason: "both `created` and `deleted` fields are absent"}
	case raw.Created != nil:
		return NewCreated(*raw.Num, *raw.Title, *raw.Created), nil
	default:
		return NewDeleted(*raw.Num, *raw.Title, *raw.Deleted), nil
	}
}

// ReadFile opens path and decodes its records.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

func startsWith(data []byte, c byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == c
}
