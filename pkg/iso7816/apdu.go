package iso7816

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// APDU (Application Protocol Data Unit) wire helpers according to
// ISO/IEC 7816-3 and 7816-4.
//
// The transport layer treats a command APDU as an opaque byte sequence:
// the only structure it relies on is the leading class byte (CLA), which is
// reused when building the GET RESPONSE continuation command. Interpretation
// of the remaining header and body belongs to the card-application layer.
//
// At the boundary commands circulate either as raw bytes or as hex strings
// (e.g. "A0A40000023F00"); the two encodings are lossless and hex digits are
// case-insensitive.

// INS_GET_RESPONSE is the GET RESPONSE instruction byte (ISO/IEC 7816-4).
const INS_GET_RESPONSE = 0xC0

// minCommandLen is the mandatory command header: CLA, INS, P1, P2.
const minCommandLen = 4

// FromHex decodes a hex-encoded APDU. Spaces are tolerated to allow the
// "A0 A4 00 00" notation; digits may be upper or lower case.
func FromHex(parts ...string) ([]byte, error) {
	s := strings.ReplaceAll(strings.Join(parts, ""), " ", "")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return raw, nil
}

// ToHex encodes raw APDU bytes as a lowercase hex string.
func ToHex(raw []byte) string {
	return hex.EncodeToString(raw)
}

// ValidateCommand checks that a command APDU carries at least the 4-byte
// header required by ISO/IEC 7816-3.
func ValidateCommand(apdu []byte) error {
	if len(apdu) < minCommandLen {
		return fmt.Errorf("command APDU too short: %d bytes, need at least %d", len(apdu), minCommandLen)
	}
	return nil
}

// GetResponse builds the continuation command fetching le pending response
// bytes: the class byte of the original command followed by GET RESPONSE
// with P1=P2=00.
func GetResponse(cla, le byte) []byte {
	return []byte{cla, INS_GET_RESPONSE, 0x00, 0x00, le}
}

// SplitResponse separates a raw response APDU into its data field and the
// trailing status word. The input must contain at least 2 bytes (SW1, SW2).
func SplitResponse(raw []byte) ([]byte, StatusWord, error) {
	if len(raw) < 2 {
		return nil, 0, fmt.Errorf("response too short: length %d", len(raw))
	}
	split := len(raw) - 2
	return raw[:split], NewStatusWord(raw[split], raw[split+1]), nil
}
