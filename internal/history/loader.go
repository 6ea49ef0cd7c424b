package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultExtension = ".json"

	// Only the first few record errors are kept; the rest are just counted.
	maxRecordErrors = 20
)

// readFile is replaced in tests to inject read failures.
var readFile = os.ReadFile

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// LoadOptions controls how an export directory is read.
type LoadOptions struct {
	// File name suffix to read, compared case-insensitively. Defaults to
	// DefaultExtension.
	Extension string

	// Location the derived time features are computed in. Defaults to UTC.
	Location *time.Location

	// Abort on the first malformed file or record instead of skipping it.
	Strict bool

	// Maximum number of files parsed at once. Defaults to GOMAXPROCS.
	Workers int

	// Called once per file after it has been parsed. May be called
	// concurrently.
	OnFile func(path string)

	Logger *slog.Logger
}

// Result is the outcome of a Load.
type Result struct {
	Events *Collection

	// Files that were read, in concatenation order.
	Files []string

	// Number of records that were skipped.
	Skipped int

	// Sample of the skipped records' errors.
	RecordErrors []*RecordParseError

	// Files that were skipped entirely: a *FileReadError or a
	// *MalformedRecordError each.
	FileErrors []error
}

// ListExportFiles returns the paths of the export files in dir, sorted by
// file name.
func ListExportFiles(dir string, extension string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &DirectoryNotFoundError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryNotFoundError{Path: dir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	if extension == "" {
		extension = DefaultExtension
	}
	extension = strings.ToLower(extension)

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}

// Load reads every export file in dir and concatenates their events.
func Load(ctx context.Context, dir string, opts LoadOptions) (*Result, error) {
	files, err := ListExportFiles(dir, opts.Extension)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	parsed := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr, err := parseFile(path, opts.Location, opts.Strict)
			if err != nil {
				return err
			}
			parsed[i] = fr
			if opts.OnFile != nil {
				opts.OnFile(path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Files: files}
	var events []PlayEvent
	for _, fr := range parsed {
		if fr.fileErr != nil {
			logger.Warn("skipping export file", "path", fr.path, "err", fr.fileErr)
			result.FileErrors = append(result.FileErrors, fr.fileErr)
			continue
		}
		events = append(events, fr.events...)
		result.Skipped += fr.skipped
		for _, rerr := range fr.recordErrs {
			if len(result.RecordErrors) < maxRecordErrors {
				result.RecordErrors = append(result.RecordErrors, rerr)
			}
		}
		if fr.skipped > 0 {
			logger.Warn("skipped malformed records", "path", fr.path, "count", fr.skipped)
		}
	}
	result.Events = &Collection{events: events}

	return result, nil
}

type fileResult struct {
	path       string
	events     []PlayEvent
	skipped    int
	recordErrs []*RecordParseError
	fileErr    error
}

type rawRecord struct {
	Ts       *string `json:"ts"`
	MsPlayed *int64  `json:"ms_played"`
	Track    *string `json:"master_metadata_track_name"`
	Artist   *string `json:"master_metadata_album_artist_name"`
	Album    *string `json:"master_metadata_album_album_name"`
	Platform *string `json:"platform"`
	Skipped  *bool   `json:"skipped"`
}

// parseFile only returns an error when strict is set; otherwise failures are
// reported through the fileResult.
func parseFile(path string, loc *time.Location, strict bool) (fileResult, error) {
	fr := fileResult{path: path}

	content, err := readFile(path)
	if err != nil {
		rerr := &FileReadError{Path: path, Err: err}
		if strict {
			return fr, rerr
		}
		fr.fileErr = rerr
		return fr, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		merr := &MalformedRecordError{Path: path, Err: err}
		if strict {
			return fr, merr
		}
		fr.fileErr = merr
		return fr, nil
	}
	// A top-level null decodes to a nil slice without error.
	if raw == nil {
		merr := &MalformedRecordError{Path: path, Err: errors.New("expected a JSON array, got null")}
		if strict {
			return fr, merr
		}
		fr.fileErr = merr
		return fr, nil
	}

	fr.events = make([]PlayEvent, 0, len(raw))
	for i, msg := range raw {
		event, err := parseRecord(msg, loc)
		if err != nil {
			rerr := &RecordParseError{Path: path, Index: i, Err: err}
			if strict {
				return fr, rerr
			}
			fr.skipped++
			if len(fr.recordErrs) < maxRecordErrors {
				fr.recordErrs = append(fr.recordErrs, rerr)
			}
			continue
		}
		fr.events = append(fr.events, event)
	}

	return fr, nil
}

func parseRecord(msg json.RawMessage, loc *time.Location) (PlayEvent, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return PlayEvent{}, errors.New("record is not a JSON object")
	}

	var rec rawRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return PlayEvent{}, fmt.Errorf("decoding record: %w", err)
	}

	if rec.Ts == nil {
		return PlayEvent{}, errors.New("missing ts")
	}
	playedAt, err := ParseTimestamp(*rec.Ts)
	if err != nil {
		return PlayEvent{}, err
	}

	var ms int64
	if rec.MsPlayed != nil {
		ms = *rec.MsPlayed
	}
	if ms < 0 {
		return PlayEvent{}, fmt.Errorf("negative ms_played %d", ms)
	}

	event := NewPlayEvent(playedAt, ms, deref(rec.Track), deref(rec.Artist), loc)
	event.AlbumName = deref(rec.Album)
	event.Platform = deref(rec.Platform)
	if rec.Skipped != nil {
		event.Skipped = *rec.Skipped
	}
	return event, nil
}

// ParseTimestamp parses an export timestamp. Timestamps without a zone are
// taken to be UTC.
func ParseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, ts)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing timestamp %q: not an ISO-8601 instant", ts)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
