package iso7816

import (
	"encoding/hex"
	"fmt"
)

// Status Word (SW) semantics according to ISO/IEC 7816-4 and 3GPP TS 51.011.
//
// Every response APDU ends with a 2-byte trailer (SW1, SW2). Most values are
// static outcome codes (0x9000 = success), but two families are dynamic and
// drive the transport layer itself:
//
// 1. '61XX' (SW1=0x61): Process completed, XX response bytes are available
//    and must be fetched with GET RESPONSE (ISO/IEC 7816-4, Table 5).
//
// 2. '9FXX' (SW1=0x9F): Same meaning for legacy SIM cards
//    (3GPP TS 51.011, 9.4.1 "Responses to commands which are correctly executed").

// StatusWord represents the two-byte status response (SW1-SW2) returned by the smart card.
type StatusWord uint16

// NewStatusWord creates a StatusWord instance from two separate bytes.
func NewStatusWord(sw1, sw2 byte) StatusWord {
	return StatusWord(uint16(sw1)<<8 | uint16(sw2))
}

// ParseStatusWord decodes a 4 hex digit string (e.g. "9000", case-insensitive)
// into a StatusWord.
func ParseStatusWord(s string) (StatusWord, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("status word must be 4 hex digits, got %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid status word %q: %w", s, err)
	}
	return NewStatusWord(raw[0], raw[1]), nil
}

// SW1 returns the first byte (high byte) of the status word.
func (sw StatusWord) SW1() byte {
	return byte(sw >> 8)
}

// SW2 returns the second byte (low byte) of the status word.
func (sw StatusWord) SW2() byte {
	return byte(sw)
}

// Hex returns the canonical 4 hex digit lowercase form, e.g. "9000".
func (sw StatusWord) Hex() string {
	return fmt.Sprintf("%04x", uint16(sw))
}

// Bytes returns the wire form (SW1, SW2).
func (sw StatusWord) Bytes() []byte {
	return []byte{sw.SW1(), sw.SW2()}
}

// IsSuccess returns true if the command was processed successfully (9000).
func (sw StatusWord) IsSuccess() bool {
	return sw == SW_NO_ERROR
}

// IsMoreData returns true if the card announced pending response bytes:
// SW1=0x61 (ISO 7816-4) or SW1=0x9F (3GPP TS 51.011). SW2 is the number of
// bytes waiting to be fetched with GET RESPONSE.
func (sw StatusWord) IsMoreData() bool {
	sw1 := sw.SW1()
	return sw1 == 0x61 || sw1 == 0x9F
}

// IsWarning returns true if the status indicates a warning (62XX or 63XX).
func (sw StatusWord) IsWarning() bool {
	sw1 := sw.SW1()
	return sw1 == 0x62 || sw1 == 0x63
}

// IsError returns true if the status indicates an execution or checking
// error (64XX to 6FXX).
func (sw StatusWord) IsError() bool {
	sw1 := sw.SW1()
	return sw1 >= 0x64 && sw1 <= 0x6F
}

// Verbose returns a human-readable description of the status word.
// Dynamic ISO families (61XX, 9FXX, 6CXX, 63CX) take precedence over the
// static code table.
func (sw StatusWord) Verbose() string {
	sw1 := sw.SW1()
	sw2 := sw.SW2()

	switch {
	case sw.IsMoreData():
		return fmt.Sprintf("[%04X] Process completed, %d bytes available", uint16(sw), sw2)
	case sw1 == 0x6C:
		return fmt.Sprintf("[%04X] Wrong length, correct Le is %d", uint16(sw), sw2)
	case sw1 == 0x63 && sw2>>4 == 0x0C:
		return fmt.Sprintf("[%04X] Warning: state changed, counter = %d", uint16(sw), sw2&0x0F)
	}

	if desc, ok := swText[sw]; ok {
		return fmt.Sprintf("[%04X] %s", uint16(sw), desc)
	}
	return fmt.Sprintf("[%04X] %s", uint16(sw), sw.genericCategoryDescription())
}

// genericCategoryDescription provides a fallback description based on SW1.
func (sw StatusWord) genericCategoryDescription() string {
	switch sw.SW1() {
	case 0x62:
		return "Warning: NV memory unchanged"
	case 0x63:
		return "Warning: NV memory changed"
	case 0x64:
		return "Execution Error: NV memory unchanged"
	case 0x65:
		return "Execution Error: NV memory changed"
	case 0x66:
		return "Execution Error: Security issue"
	case 0x68:
		return "Checking Error: Function not supported"
	case 0x69:
		return "Checking Error: Command not allowed"
	case 0x6A:
		return "Checking Error: Wrong parameters"
	default:
		return "Unknown Status"
	}
}

// Status Word codes defined in ISO/IEC 7816-4 that show up routinely when
// driving SIM/UICC cards.
const (
	SW_NO_ERROR StatusWord = 0x9000

	SW_WARN_EOF_REACHED      StatusWord = 0x6282
	SW_WARN_FILE_DEACTIVATED StatusWord = 0x6283

	SW_ERR_MEMORY_FAILURE StatusWord = 0x6581
	SW_ERR_WRONG_LENGTH   StatusWord = 0x6700

	SW_ERR_SECURITY_STATUS_NOT_SAT StatusWord = 0x6982
	SW_ERR_AUTH_METHOD_BLOCKED     StatusWord = 0x6983
	SW_ERR_REF_DATA_NOT_USABLE     StatusWord = 0x6984
	SW_ERR_COND_OF_USE_NOT_SAT     StatusWord = 0x6985

	SW_ERR_INCORRECT_PARAMS_DATA StatusWord = 0x6A80
	SW_ERR_FUNC_NOT_SUPPORTED    StatusWord = 0x6A81
	SW_ERR_FILE_NOT_FOUND        StatusWord = 0x6A82
	SW_ERR_RECORD_NOT_FOUND      StatusWord = 0x6A83
	SW_ERR_NOT_ENOUGH_MEMORY     StatusWord = 0x6A84
	SW_ERR_INCORRECT_PARAMS_P1P2 StatusWord = 0x6A86
	SW_ERR_REF_DATA_NOT_FOUND    StatusWord = 0x6A88

	SW_ERR_WRONG_P1P2        StatusWord = 0x6B00
	SW_ERR_INS_INVALID       StatusWord = 0x6D00
	SW_ERR_CLA_NOT_SUPPORTED StatusWord = 0x6E00
	SW_ERR_UNKNOWN           StatusWord = 0x6F00
)

var swText = map[StatusWord]string{
	SW_NO_ERROR:                    "Normal processing (OK)",
	SW_WARN_EOF_REACHED:            "Warning: end of file or record reached",
	SW_WARN_FILE_DEACTIVATED:       "Warning: selected file deactivated",
	SW_ERR_MEMORY_FAILURE:          "Execution Error: memory failure",
	SW_ERR_WRONG_LENGTH:            "Checking Error: wrong length",
	SW_ERR_SECURITY_STATUS_NOT_SAT: "Checking Error: security status not satisfied",
	SW_ERR_AUTH_METHOD_BLOCKED:     "Checking Error: authentication method blocked",
	SW_ERR_REF_DATA_NOT_USABLE:     "Checking Error: reference data not usable",
	SW_ERR_COND_OF_USE_NOT_SAT:     "Checking Error: conditions of use not satisfied",
	SW_ERR_INCORRECT_PARAMS_DATA:   "Checking Error: incorrect parameters in data field",
	SW_ERR_FUNC_NOT_SUPPORTED:      "Checking Error: function not supported",
	SW_ERR_FILE_NOT_FOUND:          "Checking Error: file not found",
	SW_ERR_RECORD_NOT_FOUND:        "Checking Error: record not found",
	SW_ERR_NOT_ENOUGH_MEMORY:       "Checking Error: not enough memory space in file",
	SW_ERR_INCORRECT_PARAMS_P1P2:   "Checking Error: incorrect parameters P1-P2",
	SW_ERR_REF_DATA_NOT_FOUND:      "Checking Error: referenced data not found",
	SW_ERR_WRONG_P1P2:              "Checking Error: wrong parameters P1-P2",
	SW_ERR_INS_INVALID:             "Checking Error: instruction not supported or invalid",
	SW_ERR_CLA_NOT_SUPPORTED:       "Checking Error: class not supported",
	SW_ERR_UNKNOWN:                 "Checking Error: no precise diagnosis",
}
