package postgres

import "testing"

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Pune", want: "%Pune%"},
		{in: "100%", want: `%100\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `c:\x`, want: `%c:\\x%`},
	}

	for _, tc := range testCases {
		if got := containsPattern(tc.in); got != tc.want {
			t.Errorf("containsPattern(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
