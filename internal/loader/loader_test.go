package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dusk-indust/mergelists/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"num":1,"title":"a","created":10}]`)
	b := writeFile(t, dir, "b.json", `[{"num":1,"title":"b","deleted":20},{"num":2,"title":"c","created":1}]`)

	for _, workers := range []int{0, 1, 4} {
		lists, err := New(workers, nil).Load(context.Background(), []string{a, b})
		require.NoError(t, err)
		require.Len(t, lists, 2)
		assert.Equal(t, []record.Record{record.NewCreated(1, "a", 10)}, lists[0])
		assert.Len(t, lists[1], 2)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[]`)
	missing := filepath.Join(dir, "missing.json")

	lists, err := New(1, nil).Load(context.Background(), []string{a, missing})
	require.Error(t, err)
	assert.Nil(t, lists)

	var ferr *FileError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, missing, ferr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.json")
}

func TestLoad_ValidationErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `[{"num":1,"title":"a","created":1,"deleted":2}]`)
	good := writeFile(t, dir, "good.json", `[]`)

	_, err := New(1, nil).Load(context.Background(), []string{good, bad})
	require.Error(t, err)

	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "bad.json")
	assert.Contains(t, err.Error(), "both `created` and `deleted` fields are present")
}

func TestLoad_SequentialStopsAtFirstFailure(t *testing.T) {
	var mu sync.Mutex
	var read []string

	l := New(1, nil)
	l.readFile = func(path string) ([]record.Record, error) {
		mu.Lock()
		read = append(read, path)
		mu.Unlock()
		if path == "second" {
			return nil, errors.New("boom")
		}
		return nil, nil
	}

	_, err := l.Load(context.Background(), []string{"first", "second", "third", "fourth"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second")
	assert.Equal(t, []string{"first", "second"}, read)
}

func TestLoad_ConcurrentReportsEarliestFailure(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	l := New(3, nil)
	l.readFile = func(path string) ([]record.Record, error) {
		switch path {
		case "early":
			close(started)
			<-release
			return nil, errors.New("early failure")
		case "late":
			<-started
			defer close(release)
			return nil, errors.New("late failure")
		}
		return nil, nil
	}

	_, err := l.Load(context.Background(), []string{"ok", "early", "late"})
	require.Error(t, err)

	var ferr *FileError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "early", ferr.Path)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(1, nil)
	l.readFile = func(string) ([]record.Record, error) {
		t.Fatal("no file should be read")
		return nil, nil
	}

	_, err := l.Load(ctx, []string{"a", "b"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Progress(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"num":1,"title":"a","created":10}]`)

	var events []ProgressEvent
	l := New(1, func(ev ProgressEvent) { events = append(events, ev) })

	_, err := l.Load(context.Background(), []string{a})
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, StatusPending, events[0].Status)
	assert.Equal(t, StatusReading, events[1].Status)
	assert.Equal(t, StatusDone, events[2].Status)
	assert.Equal(t, 1, events[2].Records)
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "  ✓ a.json (2 records)", FormatProgress(ProgressEvent{Path: "a.json", Status: StatusDone, Records: 2}))
	assert.Equal(t, "  ✗ b.json failed: nope", FormatProgress(ProgressEvent{Path: "b.json", Status: StatusFailed, Message: "nope"}))
	assert.Equal(t, "  ○ c.json (pending)", FormatProgress(ProgressEvent{Path: "c.json", Status: StatusPending}))
}
