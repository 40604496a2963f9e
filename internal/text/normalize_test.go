package text

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"This are b some-Words.", []string{"this", "are", "b", "some", "words"}},
		{"Nowy Świat", []string{"nowy", "swiat"}},
		{"Czerniakowska", []string{"czerniakowska"}},
		{"łódź", []string{"lodz"}},
		{"Gdańsk, ul. Długa 12", []string{"gdansk", "ul", "dluga", "12"}},
		{"  ", nil},
		{"...", nil},
		{"'s-Gravenhage", []string{"s", "gravenhage"}},
		{"Straße", []string{"strasse"}},
	}
	for _, tc := range cases {
		got := Tokenize(tc.input)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "Überlingen żółć ĄĘ čaj"
	first := Tokenize(input)
	for n := 0; n < 10; n++ {
		if !reflect.DeepEqual(Tokenize(input), first) {
			t.Fatalf("Tokenize is not deterministic for %q", input)
		}
	}
}

func TestFoldFixups(t *testing.T) {
	cases := map[string]string{
		"Łódź":    "lodz",
		"Đakovo":  "dakovo",
		"Ørsted":  "orsted",
		"groß":    "gross",
		"Kærlund": "kaerlund",
		"WARSZAWA": "warszawa",
	}
	for input, want := range cases {
		if got := Fold(input); got != want {
			t.Errorf("Fold(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTrigrams(t *testing.T) {
	cases := []struct {
		token string
		want  []string
	}{
		{"warszawa", []string{" wa", "war", "ars", "rsz", "sza", "zaw", "awa", "wa "}},
		{"nowy", []string{" no", "now", "owy", "wy "}},
		{"ab", []string{" ab", "ab "}},
		{"a", []string{" a "}},
		{"", nil},
	}
	for _, tc := range cases {
		got := Trigrams(tc.token)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Trigrams(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestTrigramsUnicode(t *testing.T) {
	// Windows must move over runes, not bytes.
	got := Trigrams("łza")
	want := []string{" łz", "łza", "za "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trigrams(łza) = %v, want %v", got, want)
	}
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"warszawa", "warsaw", 2},
		{"czerniawska", "czerniakowska", 2},
		{"nowy", "nowy", 0},
		{"", "abc", 3},
		{"kot", "kod", 1},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
