package models

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{540, 570}, Interval{600, 630}, false},
		{"adjacent do not overlap", Interval{540, 570}, Interval{570, 600}, false},
		{"partial", Interval{540, 600}, Interval{570, 630}, true},
		{"identical", Interval{540, 570}, Interval{540, 570}, true},
		{"contained", Interval{540, 660}, Interval{570, 600}, true},
		{"touching at start", Interval{570, 600}, Interval{540, 570}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// The predicate is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	slot := Interval{540, 720} // 09:00-12:00
	tests := []struct {
		name string
		span Interval
		want bool
	}{
		{"fully inside", Interval{570, 630}, true},
		{"exact", Interval{540, 720}, true},
		{"starts before", Interval{530, 600}, false},
		{"ends after", Interval{700, 730}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slot.Contains(tt.span); got != tt.want {
				t.Fatalf("Contains(%v) = %v, want %v", tt.span, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   Interval
		want bool
	}{
		{"normal", Interval{540, 570}, true},
		{"whole day", Interval{0, MinutesPerDay}, true},
		{"empty", Interval{540, 540}, false},
		{"inverted", Interval{570, 540}, false},
		{"negative start", Interval{-10, 60}, false},
		{"past midnight", Interval{1400, 1470}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.want {
				t.Fatalf("Valid(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAddDuration(t *testing.T) {
	end, err := AddDuration(540, 30)
	if err != nil {
		t.Fatalf("AddDuration(540, 30) returned error: %v", err)
	}
	if end != 570 {
		t.Fatalf("AddDuration(540, 30) = %d, want 570", end)
	}

	// Ending exactly at midnight is the last permitted end.
	if end, err = AddDuration(MinutesPerDay-60, 60); err != nil || end != MinutesPerDay {
		t.Fatalf("AddDuration to 24:00 = (%d, %v), want (%d, nil)", end, err, MinutesPerDay)
	}

	if _, err = AddDuration(MinutesPerDay-15, 30); err == nil {
		t.Fatal("expected error for interval crossing midnight")
	}
	if _, err = AddDuration(540, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
	if _, err = AddDuration(-1, 30); err == nil {
		t.Fatal("expected error for negative start")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"0900", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 540, 555, 1439} {
		s := FormatClock(minutes)
		back, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(FormatClock(%d)) returned error: %v", minutes, err)
		}
		if back != minutes {
			t.Fatalf("round trip %d -> %q -> %d", minutes, s, back)
		}
	}
}
