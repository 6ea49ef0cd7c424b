package history

import "fmt"

// DirectoryNotFoundError means the export directory is missing or is not a
// directory. It always aborts a load.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export directory %q not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("export directory %q not found", e.Path)
}

func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Err
}

// FileReadError means an export file could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// MalformedRecordError means a file's top-level content is not a JSON array
// of records.
type MalformedRecordError struct {
	Path string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: not a list of play records: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// RecordParseError describes a single record that could not be turned into
// a PlayEvent. Index is the zero-based position in the file's array.
type RecordParseError struct {
	Path  string
	Index int
	Err   error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("%s: record %d: %v", e.Path, e.Index, e.Err)
}

func (e *RecordParseError) Unwrap() error {
	return e.Err
}
