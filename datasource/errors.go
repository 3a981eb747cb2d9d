package datasource

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup failed
type Kind int

const (
	// KindProvider covers non-success statuses other than 404 and unusable bodies
	KindProvider Kind = iota
	// KindEmptyQuery means no request was made because the query was blank
	KindEmptyQuery
	// KindNotFound means the provider does not know the location
	KindNotFound
	// KindNetwork means the request could not complete
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindEmptyQuery:
		return "empty_query"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	default:
		return "provider"
	}
}

// LookupError is returned by every failed GetWeather call
type LookupError struct {
	Kind    Kind
	Query   string
	Status  int    // HTTP status, zero when no response was received
	Message string // provider supplied message, if any
	Err     error
}

func (e *LookupError) Error() string {
	switch {
	case e.Kind == KindEmptyQuery:
		return "lookup: empty query"
	case e.Err != nil:
		return fmt.Sprintf("lookup %q: %v", e.Query, e.Err)
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("lookup %q: API error (status %d): %s", e.Query, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("lookup %q: API error (status %d)", e.Query, e.Status)
	default:
		return fmt.Sprintf("lookup %q: %s failure", e.Query, e.Kind)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf returns the lookup kind carried by err. Errors that are not a
// LookupError are reported as KindProvider.
func KindOf(err error) Kind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindProvider
}
