package extractor

import "testing"

func TestFormatINR(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{600, "₹600.00"},
		{300000, "₹300,000.00"},
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{1234567.5, "₹1,234,567.50"},
		{12.5, "₹12.50"},
		{0.05, "₹0.05"},
	}

	for _, tc := range cases {
		if got := formatINR(tc.value); got != tc.want {
			t.Fatalf("formatINR(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
