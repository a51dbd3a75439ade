package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardside/simlink/pkg/iso7816"
)

// ExpectOK is the conventional status word expectation of SendChecked.
const ExpectOK iso7816.SwPattern = "9000"

// Link drives a RawChannel with the transport behaviors stacked on top of
// raw transmission. It is single-owner: one goroutine, one in-flight command.
type Link struct {
	ch    RawChannel
	log   *slog.Logger
	trace *iso7816.Trace
}

// Option configures a Link.
type Option func(*Link)

// WithLogger sets the logger receiving retry and teardown events.
func WithLogger(log *slog.Logger) Option {
	return func(l *Link) { l.log = log }
}

// WithTraceRecorder appends every physical exchange to t, for diagnostics.
func WithTraceRecorder(t *iso7816.Trace) Option {
	return func(l *Link) { l.trace = t }
}

// NewLink wraps a raw channel.
func NewLink(ch RawChannel, opts ...Option) *Link {
	l := &Link{ch: ch, log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SendRaw transmits one APDU with no retry, continuation fetching or status
// checking.
func (l *Link) SendRaw(apdu []byte) ([]byte, iso7816.StatusWord, error) {
	data, sw, err := l.ch.TransmitRaw(apdu)
	if err != nil {
		return nil, 0, err
	}
	if l.trace != nil {
		*l.trace = append(*l.trace, iso7816.Exchange{Command: apdu, Data: data, SW: sw})
	}
	return data, sw, nil
}

// SendFailsafe transmits apdu, re-attempting the identical command on
// transport-level failure until it succeeds or the retry budget is spent.
// A spent budget surfaces the fault unchanged. Absence faults (ErrNoCard,
// ReaderError) are surfaced immediately: re-sending cannot help when there
// is nothing to talk to.
//
// The status word is not interpreted here; any card-reported status is a
// success outcome for this layer.
func (l *Link) SendFailsafe(apdu []byte, retries int) ([]byte, iso7816.StatusWord, error) {
	attempt := 0
	for {
		data, sw, err := l.SendRaw(apdu)
		if err == nil {
			return data, sw, nil
		}
		if attempt >= retries || !retryable(err) {
			return nil, 0, err
		}
		attempt++
		l.log.Info("retrying command after transport fault",
			"apdu", iso7816.ToHex(apdu),
			"attempt", attempt,
			"remaining", retries-attempt,
			"error", err)
	}
}

// Send transmits apdu through SendFailsafe and fetches pending response
// bytes when the card announces them.
//
// SW1=0x9F (3GPP TS 51.011) and SW1=0x61 (ISO/IEC 7816-4) both mean "SW2
// response bytes available": a single GET RESPONSE continuation, built from
// the class byte of the original command, retrieves them and its result
// replaces the first response. The continuation is sent with its own
// independent retry budget and is never chased again, even if it reports
// more data itself.
func (l *Link) Send(apdu []byte, retries int) ([]byte, iso7816.StatusWord, error) {
	if err := iso7816.ValidateCommand(apdu); err != nil {
		return nil, 0, err
	}
	data, sw, err := l.SendFailsafe(apdu, retries)
	if err != nil {
		return nil, 0, err
	}
	if sw.IsMoreData() {
		return l.SendFailsafe(iso7816.GetResponse(apdu[0], sw.SW2()), retries)
	}
	return data, sw, nil
}

// SendChecked transmits apdu and verifies the final status word against the
// expected pattern; an empty pattern means ExpectOK. The retry budget is
// fixed at zero: callers that want the failsafe behavior use Send directly.
// A mismatch is reported as *SwMatchError carrying both values.
func (l *Link) SendChecked(apdu []byte, expected iso7816.SwPattern) ([]byte, iso7816.StatusWord, error) {
	if expected == "" {
		expected = ExpectOK
	}
	if err := expected.Validate(); err != nil {
		return nil, 0, err
	}
	data, sw, err := l.Send(apdu, 0)
	if err != nil {
		return nil, 0, err
	}
	if !sw.Matches(expected) {
		return nil, 0, &SwMatchError{Observed: sw.Hex(), Expected: expected.String()}
	}
	return data, sw, nil
}

// WaitForCard blocks until a card is available and connects to it. See
// RawChannel.WaitForCard for the timeout and newCardOnly semantics.
func (l *Link) WaitForCard(timeout time.Duration, newCardOnly bool) error {
	return l.ch.WaitForCard(timeout, newCardOnly)
}

// Connect connects to the card.
func (l *Link) Connect() error {
	return l.ch.Connect()
}

// Disconnect releases the card connection.
func (l *Link) Disconnect() error {
	return l.ch.Disconnect()
}

// ResetCard powers the card down and up by disconnecting and reconnecting.
// It returns 1 on success. The two steps are not atomic against concurrent
// use of the channel, which the single-owner contract already rules out.
func (l *Link) ResetCard() (int, error) {
	if err := l.ch.Disconnect(); err != nil {
		return 0, fmt.Errorf("reset card: %w", err)
	}
	if err := l.ch.Connect(); err != nil {
		return 0, fmt.Errorf("reset card: %w", err)
	}
	return 1, nil
}

// ATR returns the Answer To Reset of the connected card.
func (l *Link) ATR() ([]byte, error) {
	return l.ch.ATR()
}

// retryable reports whether a transport fault may be transient. Absence
// faults cannot resolve themselves between two attempts.
func retryable(err error) bool {
	if errors.Is(err, ErrNoCard) {
		return false
	}
	var re *ReaderError
	return !errors.As(err, &re)
}
