package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"", 10, 10},
		{"x", 5, 5},
		{"-3", 1, -3},
		{"3.5", 7, 7},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, size, def, max int
		wantPage, wantSize   int
	}{
		{0, 0, 20, 100, 1, 20},
		{-5, -1, 20, 100, 1, 20},
		{3, 50, 20, 100, 3, 50},
		{1, 500, 20, 100, 1, 100},
		{2, 500, 20, 0, 2, 500}, // max 0 = uncapped
	}
	for _, tc := range cases {
		p, s := ClampPage(tc.page, tc.size, tc.def, tc.max)
		if p != tc.wantPage || s != tc.wantSize {
			t.Fatalf("ClampPage(%d,%d,%d,%d) = (%d,%d); want (%d,%d)",
				tc.page, tc.size, tc.def, tc.max, p, s, tc.wantPage, tc.wantSize)
		}
	}
}
