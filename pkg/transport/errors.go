package transport

import (
	"errors"
	"fmt"
)

// Error taxonomy of the link layer. The four kinds are distinct, actionable
// conditions:
//
//   - ErrNoCard: nothing is in the reader, or a wait for insertion timed
//     out. Retrying without user intervention cannot change the outcome.
//   - ReaderError: the requested reader does not exist. Raised at channel
//     construction, never later.
//   - ProtocolError: a connection-level fault. Callers may ResetCard() and
//     retry the whole operation themselves.
//   - SwMatchError: the card answered, but not with the status word the
//     caller expected. A logical outcome, never retried by this layer.

// ErrNoCard reports that no card is present. Wrapped errors add context;
// test with errors.Is.
var ErrNoCard = errors.New("no card present")

// ReaderError reports that the requested reader index does not exist.
type ReaderError struct {
	Index     int
	Available int
}

func (e *ReaderError) Error() string {
	return fmt.Sprintf("reader %d not found (%d readers available)", e.Index, e.Available)
}

// ProtocolError reports a connection-level failure while talking to the
// reader or the card.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// SwMatchError reports that the final status word of a checked send did not
// satisfy the caller's expected pattern. Observed and Expected are 4 hex
// digit strings; Expected is case-normalized to lowercase.
type SwMatchError struct {
	Observed string
	Expected string
}

func (e *SwMatchError) Error() string {
	return fmt.Sprintf("unexpected status word %s, expected %s", e.Observed, e.Expected)
}
