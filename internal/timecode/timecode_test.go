package timecode

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"zero", "00:00:00", 0, false},
		{"one minute", "00:01:00", 60, false},
		{"mixed", "01:02:03", 3723, false},
		{"unpadded hours", "1:00:00", 3600, false},
		{"long hours", "123:00:05", 442805, false},
		{"surrounding space", " 00:00:25 ", 25, false},
		{"two fields", "01:00", 0, true},
		{"four fields", "00:00:00:00", 0, true},
		{"empty", "", 0, true},
		{"letters", "aa:bb:cc", 0, true},
		{"negative", "00:-1:00", 0, true},
		{"fractional seconds", "00:00:01.5", 0, true},
		{"largest total", "0:0:9223372036854775807", math.MaxInt, false},
		{"hours overflow", "2562047788015216:00:00", 0, true},
		{"minutes overflow", "00:153722867280912931:00", 0, true},
		{"seconds overflow", "01:00:9223372036854775807", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var fe *FormatError
				if !errors.As(err, &fe) {
					t.Errorf("Parse(%q) error type = %T, want *FormatError", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{5, "00:00:05"},
		{60, "00:01:00"},
		{70, "00:01:10"},
		{3723, "01:02:03"},
		{86400, "24:00:00"},
		{360000, "100:00:00"},
		{-4, "00:00:00"},
	}

	for _, tt := range tests {
		if got := Format(tt.seconds); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for s := 0; s < 200000; s += 7 {
		got, err := Parse(Format(s))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) error: %v", s, err)
		}
		if got != s {
			t.Fatalf("Parse(Format(%d)) = %d", s, got)
		}
	}
}

func TestOffsetJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Start Offset `json:"start_time"`
	}{Start: 70})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"start_time":"00:01:10"}` {
		t.Errorf("Marshal = %s", b)
	}

	var out struct {
		Start Offset `json:"start_time"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out.Start != 70 {
		t.Errorf("Unmarshal = %d, want 70", out.Start)
	}
}
