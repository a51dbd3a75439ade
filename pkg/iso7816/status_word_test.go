package iso7816

import (
	"strings"
	"testing"
)

func TestStatusWord_Parts(t *testing.T) {
	sw := NewStatusWord(0x9F, 0x05)
	if sw.SW1() != 0x9F {
		t.Errorf("SW1() = %02X, want 9F", sw.SW1())
	}
	if sw.SW2() != 0x05 {
		t.Errorf("SW2() = %02X, want 05", sw.SW2())
	}
	if got := sw.Hex(); got != "9f05" {
		t.Errorf("Hex() = %q, want %q", got, "9f05")
	}
}

func TestParseStatusWord(t *testing.T) {
	tests := []struct {
		in      string
		want    StatusWord
		wantErr bool
	}{
		{"9000", SW_NO_ERROR, false},
		{"6A82", SW_ERR_FILE_NOT_FOUND, false},
		{"6a82", SW_ERR_FILE_NOT_FOUND, false}, // case-insensitive
		{"90", 0, true},                        // too short
		{"900000", 0, true},                    // too long
		{"9zzz", 0, true},                      // not hex
	}

	for _, tt := range tests {
		got, err := ParseStatusWord(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatusWord(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseStatusWord(%q) = %04X, want %04X", tt.in, uint16(got), uint16(tt.want))
		}
	}
}

func TestStatusWord_Classification(t *testing.T) {
	tests := []struct {
		sw         StatusWord
		isSuccess  bool
		isMoreData bool
		isWarning  bool
		isError    bool
	}{
		{SW_NO_ERROR, true, false, false, false},
		{NewStatusWord(0x61, 0x10), false, true, false, false},
		{NewStatusWord(0x9F, 0x20), false, true, false, false},
		{SW_WARN_EOF_REACHED, false, false, true, false},
		{NewStatusWord(0x63, 0xC2), false, false, true, false},
		{SW_ERR_WRONG_LENGTH, false, false, false, true},
		{SW_ERR_FILE_NOT_FOUND, false, false, false, true},
	}

	for _, tt := range tests {
		if got := tt.sw.IsSuccess(); got != tt.isSuccess {
			t.Errorf("SW %X IsSuccess = %v, want %v", uint16(tt.sw), got, tt.isSuccess)
		}
		if got := tt.sw.IsMoreData(); got != tt.isMoreData {
			t.Errorf("SW %X IsMoreData = %v, want %v", uint16(tt.sw), got, tt.isMoreData)
		}
		if got := tt.sw.IsWarning(); got != tt.isWarning {
			t.Errorf("SW %X IsWarning = %v, want %v", uint16(tt.sw), got, tt.isWarning)
		}
		if got := tt.sw.IsError(); got != tt.isError {
			t.Errorf("SW %X IsError = %v, want %v", uint16(tt.sw), got, tt.isError)
		}
	}
}

func TestStatusWord_Verbose(t *testing.T) {
	tests := []struct {
		sw       StatusWord
		contains string
	}{
		{NewStatusWord(0x61, 0x20), "32 bytes available"},
		{NewStatusWord(0x9F, 0x05), "5 bytes available"},
		{NewStatusWord(0x6C, 0x05), "correct Le is 5"},
		{NewStatusWord(0x63, 0xC3), "counter = 3"},
		{SW_NO_ERROR, "OK"},
		{SW_ERR_FILE_NOT_FOUND, "file not found"},
		{NewStatusWord(0x69, 0x99), "Command not allowed"}, // generic fallback
	}

	for _, tt := range tests {
		got := tt.sw.Verbose()
		if !strings.Contains(got, tt.contains) {
			t.Errorf("Verbose(%X) = %q; want containing %q", uint16(tt.sw), got, tt.contains)
		}
	}
}
