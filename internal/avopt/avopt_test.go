package avopt

import (
	"errors"
	"testing"
)

func TestTokenEscapes(t *testing.T) {
	tok, rest := Token(`  a\:b'c,d' =x`, "=:")
	if tok != "a:bc,d" || rest != "=x" {
		t.Fatalf("got %q %q", tok, rest)
	}
}

func TestParseDict(t *testing.T) {
	pairs, err := ParseDict("s=,:nk=1:e='c:sv'", "=", ":")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Pair{{"s", ","}, {"nk", "1"}, {"e", "c:sv"}}
	if len(pairs) != len(want) {
		t.Fatalf("got %v", pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d: got %v want %v", i, pairs[i], want[i])
		}
	}
	if _, err := ParseDict("nokey", "=", ":"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestApply(t *testing.T) {
	var nokey bool
	var sep string
	opts := []Option{
		{Name: "nokey", Alias: "nk", Set: Bool(&nokey)},
		{Name: "item_sep", Alias: "s", Set: String(&sep)},
	}
	if err := Apply(opts, []Pair{{"nk", "yes"}, {"item_sep", ";"}}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !nokey || sep != ";" {
		t.Fatalf("nokey %v sep %q", nokey, sep)
	}
	if err := Apply(opts, []Pair{{"bogus", "1"}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := Apply(opts, []Pair{{"nk", "2"}}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected range error, got %v", err)
	}
}
