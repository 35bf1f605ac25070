package textnorm

import (
	"reflect"
	"strings"
	"testing"
)

func TestCleanRepairsMojibake(t *testing.T) {
	got := Clean("We canâ€™t go on like this")
	if got != "We can't go on like this." {
		t.Fatalf("got %q", got)
	}
}

func TestCleanNormalizesSmartPunctuation(t *testing.T) {
	got := Clean("“We will win” — that’s a promise…")
	want := `"We will win" -- that's a promise...`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCleanStripsMarkup(t *testing.T) {
	got := Clean("Hello <b>world</b> <span class=\"x\">again</span>.")
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("markup survived: %q", got)
	}
	if got != "Hello world again." {
		t.Fatalf("got %q", got)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("one    two\n\n\n\n\nthree .")
	if got != "one two\n\nthree." {
		t.Fatalf("got %q", got)
	}
}

func TestCleanAddsTerminalPunctuation(t *testing.T) {
	if got := Clean("no terminator"); !strings.HasSuffix(got, ".") {
		t.Fatalf("got %q", got)
	}
	if got := Clean("already done!"); got != "already done!" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanEmpty(t *testing.T) {
	if got := Clean("   \n\t "); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("We, the PEOPLE - won't forget!")
	want := []string{"we", "the", "people", "won", "t", "forget"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three\nfour"); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	if got := WordCount(""); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one! Third?? ")
	want := []string{"First one", "Second one", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
