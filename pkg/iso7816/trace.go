package iso7816

import (
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// EXCHANGE:
// An Exchange is the atomic unit of communication defined in ISO 7816-3:
// one command APDU sent by the terminal, followed by the data field and
// status word returned by the card.
//
// TRACE:
// A Trace is a chronological sequence of Exchanges. A single logical command
// may produce several physical exchanges: a transport-level retry re-sends
// the same APDU, and a '61XX'/'9FXX' status triggers a GET RESPONSE
// continuation. The Trace captures the entire conversation; IsSuccess()
// evaluates the final outcome.

// Exchange represents a completed command-response pair.
type Exchange struct {
	Command []byte
	Data    []byte
	SW      StatusWord
}

// IsSuccess checks if the exchange ended with a successful status.
func (e *Exchange) IsSuccess() bool {
	return e.SW.IsSuccess()
}

// Trace is a sequence of exchanges representing the full history of a
// logical command (including retries and GET RESPONSE continuations).
type Trace []Exchange

// Last returns the final exchange of the trace, or nil if it is empty.
func (t Trace) Last() *Exchange {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// IsSuccess checks if the FINAL exchange in the trace was successful,
// regardless of intermediate '61XX'/'9FXX' statuses.
func (t Trace) IsSuccess() bool {
	last := t.Last()
	if last == nil {
		return false
	}
	return last.IsSuccess()
}

// Describe renders the trace as a human-readable report. Response data that
// parses as BER-TLV is additionally dumped tag by tag; anything else is left
// as plain hex. Purely diagnostic, no interpretation is attempted.
func (t Trace) Describe() string {
	var sb strings.Builder
	for i, e := range t {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, ">> %s  (%s)\n", strings.ToUpper(ToHex(e.Command)), describeCommand(e.Command))
		if len(e.Data) > 0 {
			fmt.Fprintf(&sb, "<< %s %s\n", strings.ToUpper(ToHex(e.Data)), e.SW.Verbose())
			writeTLVDump(&sb, e.Data)
		} else {
			fmt.Fprintf(&sb, "<< %s\n", e.SW.Verbose())
		}
	}
	return sb.String()
}

// describeCommand names the instruction byte of a command, best effort.
func describeCommand(apdu []byte) string {
	if len(apdu) < 2 {
		return "malformed"
	}
	if name, ok := insNames[apdu[1]]; ok {
		return name
	}
	return fmt.Sprintf("INS 0x%02X", apdu[1])
}

// writeTLVDump appends an indented BER-TLV rendering of data if it decodes
// cleanly; otherwise it appends nothing.
func writeTLVDump(sb *strings.Builder, data []byte) {
	packets, err := bertlv.Decode(data)
	if err != nil || len(packets) == 0 {
		return
	}
	writePackets(sb, packets, 1)
}

func writePackets(sb *strings.Builder, packets []bertlv.TLV, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, p := range packets {
		if len(p.TLVs) > 0 {
			fmt.Fprintf(sb, "%s- Tag %s:\n", indent, p.Tag)
			writePackets(sb, p.TLVs, depth+1)
			continue
		}
		fmt.Fprintf(sb, "%s- Tag %s: %s (%q)\n", indent, p.Tag,
			strings.ToUpper(ToHex(p.Value)), safeASCII(p.Value))
	}
}

// safeASCII maps non-printable bytes to '.' for display.
func safeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}

// insNames covers the interindustry instructions a SIM transport trace is
// likely to contain (ISO/IEC 7816-4 and 3GPP TS 51.011).
var insNames = map[byte]string{
	0x04: "DEACTIVATE FILE",
	0x20: "VERIFY",
	0x24: "CHANGE REFERENCE DATA",
	0x26: "DISABLE VERIFICATION REQ",
	0x28: "ENABLE VERIFICATION REQ",
	0x2C: "RESET RETRY COUNTER",
	0x44: "ACTIVATE FILE",
	0x88: "INTERNAL AUTHENTICATE / RUN GSM ALGORITHM",
	0xA4: "SELECT",
	0xB0: "READ BINARY",
	0xB2: "READ RECORD",
	0xC0: "GET RESPONSE",
	0xCA: "GET DATA",
	0xD6: "UPDATE BINARY",
	0xDC: "UPDATE RECORD",
	0xF2: "STATUS",
}
