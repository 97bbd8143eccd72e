package record

import "fmt"

// EventKind identifies which source field produced a record's timestamp.
type EventKind int

const (
	// Created means the timestamp came from the `created` field.
	Created EventKind = iota
	// Deleted means the timestamp came from the `deleted` field.
	Deleted
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Record is one keyed entry of an input list.
type Record struct {
	Num     int
	Title   string
	Created uint64
	Deleted uint64

	// Timestamp is whichever of Created or Deleted was present in the
	// source object. All ordering decisions use it.
	Timestamp uint64
	Kind      EventKind
}

// NewCreated returns a record stamped by its creation time.
func NewCreated(num int, title string, created uint64) Record {
	return Record{Num: num, Title: title, Created: created, Timestamp: created, Kind: Created}
}

// NewDeleted returns a record stamped by its deletion time.
func NewDeleted(num int, title string, deleted uint64) Record {
	return Record{Num: num, Title: title, Deleted: deleted, Timestamp: deleted, Kind: Deleted}
}

// Before reports whether r happened strictly before other.
func (r Record) Before(other Record) bool {
	return r.Timestamp < other.Timestamp
}
