package transport

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err      error
		contains []string
	}{
		{
			&ReaderError{Index: 3, Available: 1},
			[]string{"reader 3", "1 readers available"},
		},
		{
			&ProtocolError{Op: "connect", Err: errors.New("link down")},
			[]string{"connect", "link down"},
		},
		{
			&ProtocolError{Op: "transmit: not connected"},
			[]string{"transmit: not connected"},
		},
		{
			&SwMatchError{Observed: "6a82", Expected: "9000"},
			[]string{"6a82", "9000"},
		},
	}

	for _, tt := range tests {
		msg := tt.err.Error()
		for _, want := range tt.contains {
			if !strings.Contains(msg, want) {
				t.Errorf("%T.Error() = %q, want containing %q", tt.err, msg, want)
			}
		}
	}
}

func TestProtocolError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("sending: %w", &ProtocolError{Op: "transmit", Err: cause})
	if !errors.Is(err, cause) {
		t.Error("ProtocolError should unwrap to its cause")
	}
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Error("errors.As should find the ProtocolError in the chain")
	}
}

func TestErrNoCard_Wrapping(t *testing.T) {
	err := fmt.Errorf("wait for card: %w", ErrNoCard)
	if !errors.Is(err, ErrNoCard) {
		t.Error("wrapped ErrNoCard should still be detectable")
	}
}
