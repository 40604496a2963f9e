package utils

import "testing"

func TestIsValidQueryInput(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"aaa", false},
		{"wwww", false},
		{"warszawa", true},
		{"nowy świat", true},
		{"ul. Nowa 3", true},
		{"???", false},
		{"nowy!", false},
		{"aa", true},
	}
	for _, tc := range cases {
		if got := IsValidQueryInput(tc.input); got != tc.want {
			t.Errorf("IsValidQueryInput(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestContainsSpecialChars(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"warszawa", false},
		{"nowy-swiat", false},
		{"al_3/maja", false},
		{"świętokrzyska", false},
		{"co?", true},
		{"(x)", true},
	}
	for _, tc := range cases {
		if got := ContainsSpecialChars(tc.input); got != tc.want {
			t.Errorf("ContainsSpecialChars(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
