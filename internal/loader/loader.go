// Package loader reads every input list before any merging starts.
package loader

import (
	"context"
	"fmt"

	"github.com/dusk-indust/mergelists/internal/record"
	"golang.org/x/sync/errgroup"
)

// FileError ties a read or validation failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to read `%s`: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Status is the state of a single file load.
type Status string

const (
	StatusPending Status = "pending"
	StatusReading Status = "reading"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// ProgressEvent reports a status change for one input file.
type ProgressEvent struct {
	Path    string
	Status  Status
	Records int    // set when Status is StatusDone
	Message string // set when Status is StatusFailed
}

// Loader reads input files into record lists.
type Loader struct {
	workers    int
	readFile   func(string) ([]record.Record, error)
	onProgress func(ProgressEvent)
}

// New creates a Loader reading up to workers files at once. workers below 1
// is treated as 1, which reads files strictly in order. onProgress may be nil
// and is called from the reading goroutines.
func New(workers int, onProgress func(ProgressEvent)) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		workers:    workers,
		readFile:   record.ReadFile,
		onProgress: onProgress,
	}
}

// Load reads every path and returns the decoded lists in argument order.
// The first failure cancels the remaining reads; the returned error belongs
// to the earliest failing path in argument order. No lists are returned on
// error.
func (l *Loader) Load(ctx context.Context, paths []string) ([][]record.Record, error) {
	lists := make([][]record.Record, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for _, p := range paths {
		l.emit(ProgressEvent{Path: p, Status: StatusPending})
	}

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			l.emit(ProgressEvent{Path: path, Status: StatusReading})

			recs, err := l.readFile(path)
			if err != nil {
				errs[i] = &FileError{Path: path, Err: err}
				l.emit(ProgressEvent{Path: path, Status: StatusFailed, Message: err.Error()})
				return errs[i] // cancels reads not yet started
			}

			lists[i] = recs
			l.emit(ProgressEvent{Path: path, Status: StatusDone, Records: len(recs)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

func (l *Loader) emit(ev ProgressEvent) {
	if l.onProgress != nil {
		l.onProgress(ev)
	}
}

// FormatProgress renders a ProgressEvent as a single status line.
func FormatProgress(ev ProgressEvent) string {
	switch ev.Status {
	case StatusPending:
		return fmt.Sprintf("  ○ %s (pending)", ev.Path)
	case StatusReading:
		return fmt.Sprintf("  ● %s...", ev.Path)
	case StatusDone:
		return fmt.Sprintf("  ✓ %s (%d records)", ev.Path, ev.Records)
	case StatusFailed:
		return fmt.Sprintf("  ✗ %s failed: %s", ev.Path, ev.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", ev.Path)
	}
}
