package cmd

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "kr 0"},
		{42, "kr 42"},
		{999, "kr 999"},
		{1000, "kr 1 000"},
		{9001000, "kr 9 001 000"},
		{1234567.5, "kr 1 234 567,50"},
		{99.99, "kr 99,99"},
		{-2500, "-kr 2 500"},
	}
	for _, tc := range cases {
		if got := formatPrice(tc.amount); got != tc.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatPriceRoundsCarriedDecimals(t *testing.T) {
	// 0.999 rounds to a full krone, not "kr 1,100".
	if got := formatPrice(1.999); got != "kr 2" {
		t.Errorf("formatPrice(1.999) = %q, want %q", got, "kr 2")
	}
}

func TestGroupDigits(t *testing.T) {
	cases := map[string]string{
		"1":       "1",
		"123":     "123",
		"1234":    "1 234",
		"123456":  "123 456",
		"1234567": "1 234 567",
	}
	for in, want := range cases {
		if got := groupDigits(in); got != want {
			t.Errorf("groupDigits(%q) = %q, want %q", in, got, want)
		}
	}
}
