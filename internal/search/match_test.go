package search

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"foo", "foo"},
		{"  foo   bar\tbaz  ", "foo bar baz"},
		{"a\n\nb", "a b"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	cases := []struct {
		s, substr string
		want      bool
	}{
		{"Cold Outreach Email", "email", true},
		{"Cold Outreach Email", "EMAIL", true},
		{"Cold Outreach Email", "outreach em", true},
		{"Cold Outreach Email", "phone", false},
		{"anything", "", true},
		{"", "x", false},
		// Unicode folding, not just ASCII lowering.
		{"GROSSE STRASSE", "straße", true},
		{"ΚΑΛΗΜΕΡΑ", "καλημέρα", false}, // folding is not accent-stripping
	}
	for _, tc := range cases {
		if got := ContainsFold(tc.s, tc.substr); got != tc.want {
			t.Fatalf("ContainsFold(%q, %q) = %v; want %v", tc.s, tc.substr, got, tc.want)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	fields := []string{"Cold Outreach Email", "Write a short, friendly intro...", "sales", "b2b"}

	if !MatchesAny("SALES", fields...) {
		t.Fatalf("expected tag match")
	}
	if !MatchesAny("friendly", fields...) {
		t.Fatalf("expected content match")
	}
	if !MatchesAny("outreach", fields...) {
		t.Fatalf("expected title match")
	}
	if MatchesAny("unrelated", fields...) {
		t.Fatalf("expected no match")
	}
	if !MatchesAny("", fields...) {
		t.Fatalf("empty query matches everything")
	}
	if MatchesAny("x") {
		t.Fatalf("no fields should not match non-empty query")
	}
}
