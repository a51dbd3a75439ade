// Package pcsc provides the PC/SC backed RawChannel implementation via
// github.com/ebfe/scard.
//
// Reader discovery happens once, at construction: New establishes the PC/SC
// context, enumerates the readers and binds the channel to the requested
// index. A missing reader is a construction failure, not a runtime surprise
// on the first transmit.
package pcsc

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ebfe/scard"

	"github.com/cardside/simlink/pkg/iso7816"
	"github.com/cardside/simlink/pkg/transport"
)

// Channel drives a single PC/SC reader. It implements transport.RawChannel
// and is single-owner: one goroutine, one in-flight command.
type Channel struct {
	ctx    *scard.Context
	reader string
	card   *scard.Card
	share  scard.ShareMode
	proto  scard.Protocol
	log    *slog.Logger
}

// Option configures a Channel.
type Option func(*Channel)

// WithShareMode selects the PC/SC share mode (default scard.ShareShared).
func WithShareMode(m scard.ShareMode) Option {
	return func(c *Channel) { c.share = m }
}

// WithProtocol restricts the card protocol (default scard.ProtocolAny,
// letting the stack pick T=0 or T=1).
func WithProtocol(p scard.Protocol) Option {
	return func(c *Channel) { c.proto = p }
}

// WithLogger sets the logger receiving teardown and housekeeping events.
func WithLogger(log *slog.Logger) Option {
	return func(c *Channel) { c.log = log }
}

// New establishes a PC/SC context and binds a channel to the reader at the
// given index. The returned channel is not yet connected to a card; use
// Connect or WaitForCard. Callers own the channel and must Close it.
func New(readerIndex int, opts ...Option) (*Channel, error) {
	c := &Channel{
		share: scard.ShareShared,
		proto: scard.ProtocolAny,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, &transport.ProtocolError{Op: "establish pcsc context", Err: err}
	}
	c.ctx = ctx

	readers, err := ctx.ListReaders()
	if err != nil {
		c.Close()
		return nil, &transport.ProtocolError{Op: "list readers", Err: err}
	}
	if readerIndex < 0 || readerIndex >= len(readers) {
		c.Close()
		return nil, &transport.ReaderError{Index: readerIndex, Available: len(readers)}
	}
	c.reader = readers[readerIndex]
	return c, nil
}

// ListReaders enumerates the names of the PC/SC readers currently attached.
func ListReaders() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, &transport.ProtocolError{Op: "establish pcsc context", Err: err}
	}
	defer func() {
		if err := ctx.Release(); err != nil {
			slog.Warn("failed to release pcsc context", "error", err)
		}
	}()
	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, &transport.ProtocolError{Op: "list readers", Err: err}
	}
	return readers, nil
}

// Reader returns the name of the reader this channel is bound to.
func (c *Channel) Reader() string {
	return c.reader
}

// Connect establishes a connection to the card in the reader. Any previous
// connection is dropped first so the handle is not leaked.
func (c *Channel) Connect() error {
	if err := c.Disconnect(); err != nil {
		c.log.Warn("disconnect before connect failed", "reader", c.reader, "error", err)
	}
	card, err := c.ctx.Connect(c.reader, c.share, c.proto)
	if err != nil {
		return mapScardError("connect "+c.reader, err)
	}
	c.card = card
	return nil
}

// Disconnect releases the card connection, leaving the card powered.
// Disconnecting an already disconnected channel is a no-op.
func (c *Channel) Disconnect() error {
	if c.card == nil {
		return nil
	}
	card := c.card
	c.card = nil
	if err := card.Disconnect(scard.LeaveCard); err != nil {
		return &transport.ProtocolError{Op: "disconnect " + c.reader, Err: err}
	}
	return nil
}

// Reset power-cycles the card without tearing down the reader context.
func (c *Channel) Reset() error {
	if c.card == nil {
		return &transport.ProtocolError{Op: "reset: not connected"}
	}
	if err := c.card.Reconnect(c.share, c.proto, scard.ResetCard); err != nil {
		return mapScardError("reset "+c.reader, err)
	}
	return nil
}

// WaitForCard blocks until a card is present in the reader and connects to
// it. timeout <= 0 blocks indefinitely; exceeding a positive timeout
// surfaces transport.ErrNoCard. With newCardOnly an already inserted card
// does not satisfy the wait, only a fresh insertion does.
func (c *Channel) WaitForCard(timeout time.Duration, newCardOnly bool) error {
	rs := []scard.ReaderState{{Reader: c.reader, CurrentState: scard.StateUnaware}}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		remaining := time.Duration(-1)
		if !deadline.IsZero() {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return fmt.Errorf("wait for card on %s: %w", c.reader, transport.ErrNoCard)
			}
		}

		if err := c.ctx.GetStatusChange(rs, remaining); err != nil {
			if err == scard.ErrTimeout {
				return fmt.Errorf("wait for card on %s: %w", c.reader, transport.ErrNoCard)
			}
			return &transport.ProtocolError{Op: "wait for card on " + c.reader, Err: err}
		}

		present := rs[0].EventState&scard.StatePresent != 0
		alreadyThere := rs[0].CurrentState == scard.StateUnaware ||
			rs[0].CurrentState&scard.StatePresent != 0
		if present && (!newCardOnly || !alreadyThere) {
			return c.Connect()
		}
		rs[0].CurrentState = rs[0].EventState
	}
}

// TransmitRaw sends one command APDU to the card and splits the reply into
// data and status word.
func (c *Channel) TransmitRaw(apdu []byte) ([]byte, iso7816.StatusWord, error) {
	if c.card == nil {
		return nil, 0, &transport.ProtocolError{Op: "transmit: not connected"}
	}
	raw, err := c.card.Transmit(apdu)
	if err != nil {
		return nil, 0, mapScardError("transmit", err)
	}
	data, sw, err := iso7816.SplitResponse(raw)
	if err != nil {
		return nil, 0, &transport.ProtocolError{Op: "transmit", Err: err}
	}
	return data, sw, nil
}

// ATR returns the Answer To Reset of the connected card.
func (c *Channel) ATR() ([]byte, error) {
	if c.card == nil {
		return nil, &transport.ProtocolError{Op: "atr: not connected"}
	}
	status, err := c.card.Status()
	if err != nil {
		return nil, mapScardError("card status", err)
	}
	return status.Atr, nil
}

// Close releases the card connection and the PC/SC context. Release faults
// are logged, never returned: teardown must not mask the error that caused
// it.
func (c *Channel) Close() {
	if c.card != nil {
		if err := c.card.Disconnect(scard.LeaveCard); err != nil {
			c.log.Warn("failed to disconnect card", "reader", c.reader, "error", err)
		}
		c.card = nil
	}
	if c.ctx != nil {
		if err := c.ctx.Release(); err != nil {
			c.log.Warn("failed to release pcsc context", "error", err)
		}
		c.ctx = nil
	}
}

// mapScardError folds PC/SC error codes into the transport taxonomy: card
// absence becomes ErrNoCard, everything else a ProtocolError.
func mapScardError(op string, err error) error {
	switch err {
	case scard.ErrNoSmartcard, scard.ErrRemovedCard:
		return fmt.Errorf("%s: %w", op, transport.ErrNoCard)
	}
	return &transport.ProtocolError{Op: op, Err: err}
}
