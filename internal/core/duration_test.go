package core

import "testing"

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"90", 90, true},
		{"0", 0, true},
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{" 15 ", 15, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMinutes(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[float64]string{
		0:    "0m",
		45:   "45m",
		60:   "1h",
		125:  "2h 05m",
		89.6: "1h 30m",
		-30:  "-30m",
		1440: "24h",
	}
	for in, want := range cases {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%v) = %q, want %q", in, got, want)
		}
	}
}
