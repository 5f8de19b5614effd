package duration

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"30m", 30 * time.Minute, false},
		{"12h", 12 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"7D", 7 * 24 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"1mo", 30 * 24 * time.Hour, false},
		{"2y", 2 * 365 * 24 * time.Hour, false},
		{"1h30m", 90 * time.Minute, false},
		{"", 0, true},
		{"invalid", 0, true},
		{"5parsecs", 0, true},
		{"-1d", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSince(t *testing.T) {
	result, err := Since("1w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	age := time.Since(result)
	// Allow 1 second tolerance for test execution time
	want := 7 * 24 * time.Hour
	if age < want-time.Second || age > want+time.Second {
		t.Errorf("expected age ~%v, got %v", want, age)
	}

	if _, err := Since("bogus"); err == nil {
		t.Error("expected error for bogus duration")
	}
}
