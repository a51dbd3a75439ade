package iso7816

import (
	"strings"
	"testing"
)

func makeExchange(sw StatusWord) Exchange {
	return Exchange{
		Command: []byte{0xA0, 0xA4, 0x00, 0x00, 0x02, 0x3F, 0x00},
		SW:      sw,
	}
}

func TestTrace_Logic(t *testing.T) {
	t.Run("Empty Trace", func(t *testing.T) {
		var tr Trace
		if tr.Last() != nil {
			t.Error("empty trace Last() should be nil")
		}
		if tr.IsSuccess() {
			t.Error("empty trace IsSuccess() should be false")
		}
	})

	t.Run("Final exchange decides the outcome", func(t *testing.T) {
		tr := Trace{
			makeExchange(NewStatusWord(0x9F, 0x05)), // intermediate "more data"
			makeExchange(SW_NO_ERROR),
		}
		if !tr.IsSuccess() {
			t.Error("trace ending in 9000 should be a success")
		}
		if tr.Last().SW != SW_NO_ERROR {
			t.Errorf("Last().SW = %04X, want 9000", uint16(tr.Last().SW))
		}
	})

	t.Run("Failed final exchange", func(t *testing.T) {
		tr := Trace{
			makeExchange(SW_NO_ERROR),
			makeExchange(SW_ERR_FILE_NOT_FOUND),
		}
		if tr.IsSuccess() {
			t.Error("trace ending in 6A82 should not be a success")
		}
	})
}

func TestTrace_Describe(t *testing.T) {
	tr := Trace{
		{
			Command: []byte{0xA0, 0xA4, 0x00, 0x00, 0x02, 0x3F, 0x00},
			SW:      NewStatusWord(0x9F, 0x17),
		},
		{
			Command: []byte{0xA0, 0xC0, 0x00, 0x00, 0x17},
			// A BER-TLV payload: tag 84 holding "1PAY.SYS.DDF01".
			Data: append([]byte{0x84, 0x0E}, []byte("1PAY.SYS.DDF01")...),
			SW:   SW_NO_ERROR,
		},
	}
	got := tr.Describe()

	for _, want := range []string{
		"A0A40000023F00",
		"SELECT",
		"23 bytes available",
		"A0C0000017", // continuation command, uppercased
		"GET RESPONSE",
		"Tag 84",
		"1PAY.SYS.DDF01",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe() missing %q in:\n%s", want, got)
		}
	}
}

func TestTrace_DescribeNonTLVData(t *testing.T) {
	tr := Trace{
		{
			Command: []byte{0xA0, 0xB0, 0x00, 0x00, 0x03},
			Data:    []byte{0xFF, 0xFF, 0xFF},
			SW:      SW_NO_ERROR,
		},
	}
	got := tr.Describe()
	if !strings.Contains(got, "FFFFFF") {
		t.Errorf("Describe() should fall back to plain hex, got:\n%s", got)
	}
	if strings.Contains(got, "Tag") {
		t.Errorf("non-TLV data should not be dumped tag by tag:\n%s", got)
	}
}
