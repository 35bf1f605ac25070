package textnorm

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	spacesPattern     = regexp.MustCompile(` +`)
	newlinesPattern   = regexp.MustCompile(`\n{3,}`)
	spacePunctPattern = regexp.MustCompile(`\s+([.,!?;:])`)
	wordPattern       = regexp.MustCompile(`[^\w\s]`)
	sentenceDelim     = regexp.MustCompile(`[.!?]+`)
)

// Encoding artifacts commonly found in scraped speech transcripts.
// Mojibake sequences first (UTF-8 smart punctuation read as Latin-1),
// then the unicode punctuation they stand for.
var encodingFixes = []struct {
	old string
	new string
}{
	{"â€™", "'"},        // smart apostrophe
	{"â€˜", "'"},        // opening smart quote
	{"â€œ", "\""},       // opening smart double quote
	{"â€¦", "..."},      // ellipsis
	{"â€", "\""},             // closing smart double quote remnant
	{"’", "'"},
	{"‘", "'"},
	{"“", "\""},
	{"”", "\""},
	{"–", "-"},
	{"—", "--"},
	{"…", "..."},
	{" ", " "},
}

// Clean normalizes a raw transcript for analysis: repairs encoding
// artifacts, strips markup, collapses whitespace while keeping paragraph
// breaks, and tidies punctuation spacing.
func Clean(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	for _, fix := range encodingFixes {
		text = strings.ReplaceAll(text, fix.old, fix.new)
	}

	text = tagPattern.ReplaceAllString(text, "")
	text = spacesPattern.ReplaceAllString(text, " ")
	text = newlinesPattern.ReplaceAllString(text, "\n\n")
	text = spacePunctPattern.ReplaceAllString(text, "$1")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	if text != "" {
		if last := text[len(text)-1]; last != '.' && last != '!' && last != '?' {
			text += "."
		}
	}
	return text
}

// Tokenize lowercases the text, drops punctuation, and splits into words.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = wordPattern.ReplaceAllString(text, " ")
	return strings.Fields(text)
}

// WordCount counts whitespace-separated words without further cleanup,
// matching the density denominators used by the feature detectors.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Sentences splits text on terminal punctuation and trims fragments.
// Empty segments are dropped.
func Sentences(text string) []string {
	parts := sentenceDelim.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
