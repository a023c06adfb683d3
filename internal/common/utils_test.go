package common

import "testing"

func TestHasAny(t *testing.T) {
	cases := []struct {
		s    string
		subs []string
		want bool
	}{
		{"Tropical Storm approaching", []string{"storm", "cyclone"}, true},
		{"CYCLONE warning", []string{"storm", "cyclone"}, true},
		{"Clear skies", []string{"storm", "cyclone"}, false},
		{"light rain showers", []string{"rain"}, true},
		{"", []string{"rain"}, false},
	}

	for _, c := range cases {
		if got := HasAny(c.s, c.subs...); got != c.want {
			t.Errorf("HasAny(%q, %v) = %v, want %v", c.s, c.subs, got, c.want)
		}
	}
}
