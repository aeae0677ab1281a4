package riot

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownServer  = errors.New("unknown server")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoMatches      = errors.New("no matches found")
)

// UpstreamError is returned when the Riot API could not be reached or answered
// with an unexpected status. It is distinct from the not found errors so that
// callers can tell "no data" apart from "the API is failing".
type UpstreamError struct {
	Op         string // account, match-ids, match
	StatusCode int    // 0 when the request never got a response
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("riot %s request failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("riot %s request failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the player or their matches do not
// exist, as opposed to a failure talking to the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownServer) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrNoMatches)
}
