package capsim

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"today", Today(), false},
		{" 2026-08-17 ", NewDate(2026, time.August, 17), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStartMonday(t *testing.T) {
	// 2026-08-17 is a Monday.
	tests := []struct {
		name     string
		day      Date
		expected Date
	}{
		{"monday is kept", NewDate(2026, 8, 17), NewDate(2026, 8, 17)},
		{"tuesday backs up", NewDate(2026, 8, 18), NewDate(2026, 8, 17)},
		{"wednesday backs up", NewDate(2026, 8, 19), NewDate(2026, 8, 17)},
		{"thursday backs up", NewDate(2026, 8, 20), NewDate(2026, 8, 17)},
		{"friday backs up", NewDate(2026, 8, 21), NewDate(2026, 8, 17)},
		{"saturday jumps forward", NewDate(2026, 8, 22), NewDate(2026, 8, 24)},
		{"sunday jumps forward", NewDate(2026, 8, 23), NewDate(2026, 8, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.day.StartMonday()
			if got != tt.expected {
				t.Errorf("StartMonday(%v) = %v, want %v", tt.day, got, tt.expected)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("StartMonday(%v) = %v, not a Monday", tt.day, got)
			}
		})
	}
}

func TestAddWeeks(t *testing.T) {
	start := NewDate(2026, 8, 17) // a Monday
	tests := []struct {
		weeks    int
		expected Date
	}{
		{0, NewDate(2026, 8, 17)},
		{1, NewDate(2026, 8, 24)},
		{4, NewDate(2026, 9, 14)},
		{52, NewDate(2027, 8, 16)},
		{-1, NewDate(2026, 8, 10)},
	}

	for _, tt := range tests {
		got := start.AddWeeks(tt.weeks)
		if got != tt.expected {
			t.Errorf("AddWeeks(%d) = %v, want %v", tt.weeks, got, tt.expected)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("AddWeeks(%d) = %v, not a Monday", tt.weeks, got)
		}
	}
}

func TestBeginOfMonth(t *testing.T) {
	tests := []struct {
		day      Date
		expected Date
	}{
		{NewDate(2026, 8, 17), NewDate(2026, 8, 1)},
		{NewDate(2026, 8, 1), NewDate(2026, 8, 1)},
		{NewDate(2026, 12, 31), NewDate(2026, 12, 1)},
	}
	for _, tt := range tests {
		if got := tt.day.BeginOfMonth(); got != tt.expected {
			t.Errorf("BeginOfMonth(%v) = %v, want %v", tt.day, got, tt.expected)
		}
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected Date
		wantErr  bool
	}{
		{
			name:     "Zero Date from empty string",
			json:     `""`,
			expected: Date{},
			wantErr:  false,
		},
		{
			name:     "Non-Zero Date",
			json:     `"2024-05-21"`,
			expected: NewDate(2024, 5, 21),
			wantErr:  false,
		},
		{
			name:    "Invalid Date",
			json:    `"not-a-date"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.json), &d)
			if (err != nil) != tt.wantErr {
				t.Errorf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && d != tt.expected {
				t.Errorf("json.Unmarshal() got = %v, want %v", d, tt.expected)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		expected string
		wantErr  bool
	}{
		{
			name:     "Zero Date",
			date:     Date{},
			expected: `""`,
			wantErr:  false,
		},
		{
			name:     "Non-Zero Date",
			date:     NewDate(2024, 5, 21),
			expected: `"2024-05-21"`,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("json.Marshal() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if string(got) != tt.expected {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.expected)
			}
		})
	}
}
