package errors

import (
	"errors"
	"fmt"
)

// ErrNoRecords is wrapped in a LoadError when an authoritative dataset pattern
// matches no records, which usually means a wrong data directory.
var ErrNoRecords = errors.New("no records matched")

// LoadError reports an unreadable or malformed local dataset file.
// It is fatal for the authoritative set and card migration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FetchError reports a failed request against an external API: transport
// failure, timeout, non-2xx status or an undecodable body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RecordError reports a single malformed record inside an otherwise valid batch.
type RecordError struct {
	Kind string
	Key  string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %q: %v", e.Kind, e.Key, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
