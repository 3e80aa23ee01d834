package mind

import "testing"

func TestExtractFact(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"I'm tired of waiting", "is tired of waiting", true},
		{"i am a night owl", "is a night owl", true},
		{"My name is Alice", "name is alice", true},
		{"I live in Berlin", "from berlin", true},
		{"I work as a plumber", "works as plumber", true},
		{"my job is gardener", "works as gardener", true},
		{"I like trains", "likes trains", true},
		{"I LOVE pineapple pizza", "likes pineapple pizza", true},
		{"hello there", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, c := range cases {
		got, ok := ExtractFact(c.in)
		if ok != c.ok {
			t.Fatalf("ExtractFact(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if got != c.want {
			t.Fatalf("ExtractFact(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractFactFirstRuleWins(t *testing.T) {
	// "i'm" shadows the origin rule when both could match.
	got, ok := ExtractFact("I'm from Norway")
	if !ok {
		t.Fatal("expected a fact")
	}
	if got != "is from norway" {
		t.Fatalf("ExtractFact = %q, want %q", got, "is from norway")
	}
}
