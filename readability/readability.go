// Package readability computes the standard readability formulas over
// speech transcripts. Syllables are estimated with a vowel-group
// heuristic rather than a pronunciation dictionary; the formulas are
// robust to small syllable miscounts at corpus scale.
package readability

import (
	"strings"
	"unicode"

	"speechlab/textnorm"
)

// Result holds the readability scores and the text statistics behind
// them for one speech.
type Result struct {
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade  float64 `json:"flesch_kincaid_grade"`
	GunningFog          float64 `json:"gunning_fog"`
	AutomatedReadability float64 `json:"automated_readability_index"`
	ColemanLiau         float64 `json:"coleman_liau_index"`

	WordCount     int `json:"word_count"`
	SentenceCount int `json:"sentence_count"`
	SyllableCount int `json:"syllable_count"`
	LetterCount   int `json:"char_count"`
	PolysyllableCount int `json:"polysyllabic_count"`

	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
}

// Analyze computes all readability metrics for the text. Empty text
// yields a zero Result.
func Analyze(text string) Result {
	words := textnorm.Tokenize(text)
	sentences := textnorm.Sentences(text)

	r := Result{
		WordCount:     len(words),
		SentenceCount: len(sentences),
	}
	if r.WordCount == 0 || r.SentenceCount == 0 {
		return r
	}

	for _, w := range words {
		syl := Syllables(w)
		r.SyllableCount += syl
		if syl >= 3 {
			r.PolysyllableCount++
		}
		for _, c := range w {
			if unicode.IsLetter(c) || unicode.IsDigit(c) {
				r.LetterCount++
			}
		}
	}

	wordCount := float64(r.WordCount)
	r.AvgSentenceLength = wordCount / float64(r.SentenceCount)
	r.AvgSyllablesPerWord = float64(r.SyllableCount) / wordCount

	r.FleschReadingEase = 206.835 - 1.015*r.AvgSentenceLength - 84.6*r.AvgSyllablesPerWord
	r.FleschKincaidGrade = 0.39*r.AvgSentenceLength + 11.8*r.AvgSyllablesPerWord - 15.59
	r.GunningFog = 0.4 * (r.AvgSentenceLength + 100*float64(r.PolysyllableCount)/wordCount)
	r.AutomatedReadability = 4.71*(float64(r.LetterCount)/wordCount) + 0.5*r.AvgSentenceLength - 21.43
	r.ColemanLiau = 0.0588*(float64(r.LetterCount)/wordCount*100) -
		0.296*(float64(r.SentenceCount)/wordCount*100) - 15.8
	return r
}

// ComplexityLevel classifies the Flesch-Kincaid grade on a 1-5 scale.
func (r Result) ComplexityLevel() (int, string) {
	grade := r.FleschKincaidGrade
	switch {
	case grade < 6:
		return 1, "Elementary"
	case grade < 9:
		return 2, "Middle School"
	case grade < 13:
		return 3, "High School"
	case grade < 16:
		return 4, "College"
	default:
		return 5, "Graduate"
	}
}

// InterpretFlesch describes a Flesch Reading Ease score.
func InterpretFlesch(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy (5th grade)"
	case score >= 80:
		return "Easy (6th grade)"
	case score >= 70:
		return "Fairly Easy (7th grade)"
	case score >= 60:
		return "Standard (8th-9th grade)"
	case score >= 50:
		return "Fairly Difficult (10th-12th grade)"
	case score >= 30:
		return "Difficult (College)"
	default:
		return "Very Difficult (Graduate)"
	}
}

// Syllables estimates the syllable count of a single lowercase word by
// counting vowel groups, with corrections for silent trailing e and the
// consonant-le ending. Every word counts at least one syllable.
func Syllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, c := range word {
		v := isVowel(c)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(c rune) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
