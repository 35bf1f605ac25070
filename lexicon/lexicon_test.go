package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

const populistText = `The political establishment has failed you. The elites in Westminster
and Brussels have rigged the system against ordinary working people.
They are out of touch with real families. We must take back control
and drain the swamp. The forgotten people deserve better. Career
politicians have betrayed us for too long.`

const mainstreamText = `Our government is delivering strong economic growth and stability.
We have implemented responsible fiscal policies that benefit all
citizens. Through careful management and sound leadership, we are
creating opportunities for families across the nation. We remain
committed to prosperity and security for all.`

func TestAntiEliteSeparatesCategories(t *testing.T) {
	detector := NewAntiEliteDetector()

	pop := detector.Analyze(populistText)
	main := detector.Analyze(mainstreamText)

	if pop.TotalCount == 0 {
		t.Fatal("populist sample should contain anti-elite terms")
	}
	if pop.Density <= main.Density {
		t.Fatalf("populist density %.2f should exceed mainstream %.2f", pop.Density, main.Density)
	}
	if pop.TotalScore >= 0 {
		t.Fatalf("anti-elite total score should be negative, got %.2f", pop.TotalScore)
	}
	if _, ok := pop.AntiElite.TermsFound["establishment"]; !ok {
		t.Fatalf("expected 'establishment' in terms found, got %v", pop.AntiElite.TermsFound)
	}
	if _, ok := pop.SystemCriticism.TermsFound["rigged"]; !ok {
		t.Fatalf("expected 'rigged' in system criticism, got %v", pop.SystemCriticism.TermsFound)
	}
}

func TestPhraseMatchingPrefersLongestTerm(t *testing.T) {
	lex := Lexicon{"take back control": 2.5, "take control": 2.0}
	got := lex.Count("we will take back control of our laws")
	if got.TermsFound["take back control"] != 1 {
		t.Fatalf("expected phrase match, got %v", got.TermsFound)
	}
	if got.TermsFound["take control"] != 0 {
		t.Fatalf("embedded phrase should not double count, got %v", got.TermsFound)
	}
}

func TestShortTermsUseWordBoundaries(t *testing.T) {
	lex := Lexicon{"may": -1.5}
	got := lex.Count("the mayor may attend in May")
	// "mayor" must not match; "may" and "May" must.
	if got.Count != 2 {
		t.Fatalf("expected 2 boundary matches, got %d (%v)", got.Count, got.TermsFound)
	}
}

func TestCrisisDetector(t *testing.T) {
	detector := NewCrisisDetector()

	crisis := detector.Analyze(`We face a catastrophic crisis. Our country is under threat and time is
running out. The system is collapsing and chaos threatens everything.
This is an existential emergency. We must act now before it is too late.`)
	calm := detector.Analyze(mainstreamText)

	if crisis.TotalCount == 0 {
		t.Fatal("crisis sample should contain crisis terms")
	}
	if crisis.Density <= calm.Density {
		t.Fatalf("crisis density %.2f should exceed calm %.2f", crisis.Density, calm.Density)
	}
	if got := crisis.Intensity(); got <= 0 || got > 10 {
		t.Fatalf("intensity %.2f outside (0, 10]", got)
	}
}

func TestCertaintyDetector(t *testing.T) {
	detector := NewCertaintyDetector()

	confident := detector.Analyze(`Make no mistake, we will succeed. I guarantee that our plan will work.
This is absolutely certain. We must act and we shall prevail. Obviously, we are going to win.`)
	hedged := detector.Analyze(`We might be able to achieve some progress. Perhaps this approach could
work. It seems that there may be opportunities. It appears that we can potentially improve.`)

	if confident.TotalCertaintyCount <= hedged.TotalCertaintyCount {
		t.Fatalf("confident certainty count %d should exceed hedged %d",
			confident.TotalCertaintyCount, hedged.TotalCertaintyCount)
	}
	if hedged.Hedging.Count <= confident.Hedging.Count {
		t.Fatalf("hedged hedging count %d should exceed confident %d",
			hedged.Hedging.Count, confident.Hedging.Count)
	}
	if hedged.Hedging.Score >= 0 {
		t.Fatalf("hedging score should be negative, got %.2f", hedged.Hedging.Score)
	}
	if confident.Level() <= hedged.Level() {
		t.Fatalf("confident level %.2f should exceed hedged %.2f", confident.Level(), hedged.Level())
	}
}

func TestDensityZeroWords(t *testing.T) {
	if got := Density(5, 0); got != 0 {
		t.Fatalf("density with zero words = %.2f, want 0", got)
	}
}

func TestConfigOverridesMergeOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicons.yaml")
	content := `lexicons:
  anti_elite:
    establishment: 0
    globalists: -2.5
  crisis:
    meltdown: 3.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	antiElite, crisis, _ := cfg.Detectors()

	if _, ok := antiElite.AntiElite["establishment"]; ok {
		t.Fatal("zero-weight override should remove the term")
	}
	if antiElite.AntiElite["globalists"] != -2.5 {
		t.Fatalf("override term missing, lexicon: %v", antiElite.AntiElite)
	}
	if antiElite.AntiElite["elites"] != -2.5 {
		t.Fatal("untouched defaults should survive the merge")
	}
	if crisis.Crisis["meltdown"] != 3.5 {
		t.Fatal("crisis override term missing")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
