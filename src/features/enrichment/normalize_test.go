package enrichment

import "testing"

func TestNormalizeCountryCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AR", "AR"},
		{" gb ", "GB"},
		{`"US"`, "US"},
		{"de.", "DE"},
		{"FR The artist is French.", "FR"},
		{"?", "?"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeCountryCode(tc.in); got != tc.want {
			t.Errorf("NormalizeCountryCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
