package pcsc

import (
	"errors"
	"testing"

	"github.com/ebfe/scard"

	"github.com/cardside/simlink/pkg/transport"
)

var _ transport.RawChannel = (*Channel)(nil)

func TestMapScardError(t *testing.T) {
	tests := []struct {
		name      string
		in        error
		wantNoCrd bool
	}{
		{"No smartcard", scard.ErrNoSmartcard, true},
		{"Removed card", scard.ErrRemovedCard, true},
		{"Sharing violation", scard.ErrSharingViolation, false},
		{"Unknown reader", scard.ErrUnknownReader, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapScardError("transmit", tt.in)
			if got := errors.Is(err, transport.ErrNoCard); got != tt.wantNoCrd {
				t.Errorf("errors.Is(ErrNoCard) = %v, want %v (err = %v)", got, tt.wantNoCrd, err)
			}
			if !tt.wantNoCrd {
				var pe *transport.ProtocolError
				if !errors.As(err, &pe) {
					t.Errorf("expected *ProtocolError, got %T", err)
				} else if !errors.Is(err, tt.in) {
					t.Error("ProtocolError should unwrap to the scard error")
				}
			}
		})
	}
}
