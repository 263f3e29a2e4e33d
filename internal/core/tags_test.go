package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"home", "home"},
		{"  Home  ", "home"},
		{"Deep   Work", "deep work"},
		{"\tDeep\t \nWork ", "deep work"},
		{"", ""},
		{"   ", ""},
		{"UPPER", "upper"},
	}
	for _, c := range cases {
		if got := NormalizeTag(c.in); got != c.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Property: normalization is idempotent.
func TestProperty_NormalizeTagIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		once := NormalizeTag(s)
		twice := NormalizeTag(once)
		if once != twice {
			rt.Fatalf("NormalizeTag not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}
