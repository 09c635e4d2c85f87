package menu

import "fmt"

type ErrorKind string

const (
	FetchFailed  ErrorKind = "fetch_failed"
	ParseFailed  ErrorKind = "parse_failed"
	StoreFailed  ErrorKind = "store_failed"
	NotifyFailed ErrorKind = "notify_failed"
)

// ScrapeError tags a pipeline failure with the stage it came from so the
// refresh boundary can record it in the StatusRecord.
type ScrapeError struct {
	Kind ErrorKind
	Err  error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

func errorf(kind ErrorKind, format string, args ...any) *ScrapeError {
	return &ScrapeError{Kind: kind, Err: fmt.Errorf(format, args...)}
}
