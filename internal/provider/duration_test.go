package provider

import "testing"

func TestTimestampLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT4M5S", "4:05"},
		{"PT1H2M3S", "1:02:03"},
		{"PT45S", "0:45"},
		{"PT10M", "10:00"},
		{"PT2H", "2:00:00"},
		{"P1DT1M", "24:01:00"},
		{"garbage", "garbage"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TimestampLabel(tt.in); got != tt.want {
				t.Errorf("TimestampLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
