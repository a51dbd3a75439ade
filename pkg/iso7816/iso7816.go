/*
Package iso7816 implements the ISO/IEC 7816 data structures needed to drive
the byte-oriented card transport: status words, status word pattern matching,
APDU hex encoding and the GET RESPONSE continuation command.

# Fundamentals

The communication with a smart card is strictly synchronous:
 1. The host sends a command APDU (header + optional body).
 2. The card processes it and returns a response APDU (optional body + trailer SW1/SW2).

# Status Words

Every response ends with a 2-byte Status Word (SW).
  - 0x9000: Success (OK).
  - 0x61XX: Success, but XX response bytes are still available (ISO/IEC 7816-4).
  - 0x9FXX: Same meaning on legacy SIM cards (3GPP TS 51.011).
  - Other: Various warning and error conditions.

# Pattern Matching

Callers state their expectation as a 4-digit pattern where any digit may be
masked with '?':

	iso7816.MatchSW("9100", "91??")  // true
	iso7816.MatchSW("6a82", "9000")  // false

# Tracing

A Trace records every physical exchange behind a logical command, including
transport retries and GET RESPONSE continuations, and can render itself as a
diagnostic report with a best-effort BER-TLV dump of response payloads.
*/
package iso7816
