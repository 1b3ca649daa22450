package engine

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeOutputUTF8(t *testing.T) {
	got := DecodeOutput([]byte("time=5ms (interpreter)\n"))
	if got != "time=5ms (interpreter)\n" {
		t.Errorf("decoded = %q, want input unchanged", got)
	}
}

func TestDecodeOutputLatin1(t *testing.T) {
	// 0xE9 is not valid UTF-8; ISO 8859-1 maps it to 'é'.
	got := DecodeOutput([]byte{'t', '=', '1', 0xE9})
	if got != "t=1é" {
		t.Errorf("decoded = %q, want %q", got, "t=1é")
	}
}

func TestDecodeOutputNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0xFF, 0xFE, 0xFD},
		{0xC0, 0x80}, // overlong encoding
		[]byte("mixed \xf0\x28\x8c\x28 garbage"),
	}

	for _, raw := range inputs {
		got := DecodeOutput(raw)
		if !utf8.ValidString(got) {
			t.Errorf("DecodeOutput(%x) = %q, not valid UTF-8", raw, got)
		}
	}
}

func TestExtractTiming(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "interpreter line",
			raw:  "result\ntime=5ms (interpreter)\n",
			want: "5ms",
		},
		{
			name: "jit line",
			raw:  "result\ntime=2ms (jit; true)\n",
			want: "2ms",
		},
		{
			name: "no trailing text",
			raw:  "result\ntime=5ms\n",
			want: "5ms",
		},
		{
			name: "surrounding whitespace",
			raw:  "result\n  time=9ms (jit; false)  \n",
			want: "9ms",
		},
		{
			name: "value keeps everything after first equals",
			raw:  "x\nelapsed=1=2 tail\n",
			want: "1=2",
		},
		{
			name: "program output before timing line",
			raw:  "Hello World!\nloop done\ntime=120ms (interpreter)\n",
			want: "120ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTiming([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ExtractTiming failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("timing = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTimingIdempotent(t *testing.T) {
	raw := []byte("result\ntime=5ms (interpreter)\n")

	first, err := ExtractTiming(raw)
	if err != nil {
		t.Fatalf("first extraction failed: %v", err)
	}

	second, err := ExtractTiming(raw)
	if err != nil {
		t.Fatalf("second extraction failed: %v", err)
	}

	if first != second {
		t.Errorf("extractions differ: %q vs %q", first, second)
	}
}

func TestExtractTimingMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty output", ""},
		{"single line without newline", "single line"},
		{"timing line lacks equals", "result\njust words here\n"},
		{"bare token lacks equals", "result\n5ms\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTiming([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error for malformed output")
			}
			if !errors.Is(err, ErrMalformedOutput) {
				t.Errorf("error = %v, want ErrMalformedOutput", err)
			}
		})
	}
}

func TestExtractTimingErrorNamesLine(t *testing.T) {
	_, err := ExtractTiming([]byte("result\nno equals anywhere\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no") {
		t.Errorf("error %q should mention the offending token", err)
	}
}
