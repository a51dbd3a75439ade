/*
Package transport implements the protocol-correctness layer between a caller
issuing card commands and the raw reader driver: transparent retry of a
single logical command on transient I/O failure, automatic GET RESPONSE
continuation when the card reports pending response bytes, and status word
verification against caller-supplied wildcard patterns.

The layers compose as thin decorators over one another:

	SendChecked -> Send -> SendFailsafe -> RawChannel.TransmitRaw

None of them holds state beyond call-scoped parameters. A Link and its
RawChannel are exclusively owned by one caller at a time; nothing here is
safe for concurrent use, by contract rather than by locking.
*/
package transport

import (
	"time"

	"github.com/cardside/simlink/pkg/iso7816"
)

// RawChannel abstracts the reader driver: connection management and raw APDU
// transmission. The PC/SC implementation lives in the pcsc subpackage; tests
// substitute scripted fakes.
//
// A transmission error reported by the channel is a transport-level fault.
// Card-level outcomes travel in the StatusWord, which is present on every
// successful transmission whatever its value.
type RawChannel interface {
	// Connect establishes a connection to the card. Implementations drop any
	// previous connection first so the handle is not leaked.
	Connect() error

	// Disconnect releases the card connection. Disconnecting an already
	// disconnected channel is a no-op.
	Disconnect() error

	// Reset power-cycles the card.
	Reset() error

	// WaitForCard blocks until a card is available and connects to it.
	// timeout <= 0 blocks indefinitely; exceeding a positive timeout
	// surfaces ErrNoCard. With newCardOnly an already inserted card is
	// ignored and only a fresh insertion satisfies the wait.
	WaitForCard(timeout time.Duration, newCardOnly bool) error

	// TransmitRaw sends one command APDU and returns the response data and
	// status word. The status word is always valid when err is nil.
	TransmitRaw(apdu []byte) (data []byte, sw iso7816.StatusWord, err error)

	// ATR returns the Answer To Reset of the connected card.
	ATR() ([]byte, error)
}
