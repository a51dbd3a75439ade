package iso7816

import "testing"

func TestMatchSW(t *testing.T) {
	tests := []struct {
		observed string
		pattern  SwPattern
		want     bool
	}{
		{"9000", "9000", true},
		{"9000", "90??", true},
		{"9001", "9000", false},
		// Wildcarding is per-digit, not per-byte: the literal first digit
		// still has to match even when its neighbour is masked.
		{"9100", "9?00", false},
		{"9100", "91??", true},
		{"6A82", "6a82", true}, // case-insensitive both ways
		{"6a82", "6A82", true},
		{"9000", "????", true},
		{"9000", "900", false},   // length mismatch
		{"900", "9000", false},   // length mismatch
		{"9f05", "9f??", true},
	}

	for _, tt := range tests {
		if got := MatchSW(tt.observed, tt.pattern); got != tt.want {
			t.Errorf("MatchSW(%q, %q) = %v, want %v", tt.observed, tt.pattern, got, tt.want)
		}
	}
}

func TestStatusWord_Matches(t *testing.T) {
	if !NewStatusWord(0x91, 0x23).Matches("91??") {
		t.Error("9123 should match 91??")
	}
	if NewStatusWord(0x61, 0x23).Matches("9000") {
		t.Error("6123 should not match 9000")
	}
}

func TestSwPattern_Validate(t *testing.T) {
	tests := []struct {
		pattern SwPattern
		wantErr bool
	}{
		{"9000", false},
		{"90??", false},
		{"????", false},
		{"9F0a", false},
		{"900", true},   // too short
		{"90000", true}, // too long
		{"90!0", true},  // invalid character
		{"9g00", true},  // not a hex digit
	}

	for _, tt := range tests {
		err := tt.pattern.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
		}
	}
}

func TestSwPattern_String(t *testing.T) {
	if got := SwPattern("9F??").String(); got != "9f??" {
		t.Errorf("String() = %q, want %q", got, "9f??")
	}
}
