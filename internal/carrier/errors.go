// Package carrier scrapes the IPS postal tracking site for the latest event
// of a shipment and looks up the place name behind a US zip code.
package carrier

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Reason classifies why a lookup produced no data.
type Reason string

const (
	ReasonNetwork  Reason = "network"   // transport error or timeout
	ReasonStatus   Reason = "status"    // unexpected HTTP status
	ReasonNotFound Reason = "not_found" // page lacked the expected elements
	ReasonParse    Reason = "parse"     // page could not be parsed
)

// FetchError is returned by every lookup that fails. Lookups never panic or
// return partial data alongside a FetchError.
type FetchError struct {
	Reason     Reason
	Key        string // tracking number or zip code
	StatusCode int
	// Message carries the site's own explanation when one was found.
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("carrier: %s: %s", e.Key, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the lookup failed because its deadline passed.
func (e *FetchError) Timeout() bool {
	if e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ReasonOf returns the Reason of a FetchError in err's chain, or "" when err
// is not a lookup failure.
func ReasonOf(err error) Reason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}
