package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Category labels assigned by the researcher, not derived here.
const (
	CategoryMainstream = "mainstream"
	CategoryPopulist   = "populist"
)

// Countries covered by the study corpus.
const (
	CountryUK  = "UK"
	CountryUSA = "USA"
)

const (
	minYear = 1900
	maxYear = 2100
)

// SpeechRecord is one analyzed transcript with its study metadata.
// SentimentScore is the sentence-level averaged VADER compound for the
// speech, in [-1, 1]; it is zero until the speech has been scored.
type SpeechRecord struct {
	Filename       string  `json:"filename"`
	Speaker        string  `json:"speaker"`
	Party          string  `json:"party"`
	Category       string  `json:"category"`
	Country        string  `json:"country"`
	Year           int     `json:"year"`
	Date           string  `json:"date"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Validate checks the study invariants: exactly one known category and
// country, a plausible delivery year, and a score inside the VADER range.
func (r SpeechRecord) Validate() error {
	switch r.Category {
	case CategoryMainstream, CategoryPopulist:
	default:
		return fmt.Errorf("unknown category %q", r.Category)
	}
	switch r.Country {
	case CountryUK, CountryUSA:
	default:
		return fmt.Errorf("unknown country %q", r.Country)
	}
	if r.Speaker == "" {
		return fmt.Errorf("missing speaker")
	}
	if r.Year < minYear || r.Year > maxYear {
		return fmt.Errorf("year %d out of range", r.Year)
	}
	if r.SentimentScore < -1.0 || r.SentimentScore > 1.0 {
		return fmt.Errorf("sentiment score %f out of range", r.SentimentScore)
	}
	return nil
}

// LoadResult carries the usable records plus the count of rows rejected
// during validation. Malformed rows are skipped, never fatal.
type LoadResult struct {
	Records []SpeechRecord
	Skipped int
}

// LoadMetadata reads the corpus metadata CSV. Header names are matched
// case-insensitively (the source spreadsheets are inconsistent about
// Filename vs filename and similar).
func LoadMetadata(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	if len(rows) == 0 {
		return &LoadResult{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &LoadResult{}
	for _, row := range rows[1:] {
		rec := SpeechRecord{
			Filename: field(row, "filename"),
			Speaker:  field(row, "speaker"),
			Party:    field(row, "party"),
			Category: normalizeCategory(field(row, "category")),
			Country:  normalizeCountry(field(row, "country")),
			Date:     field(row, "date"),
		}
		year, err := yearFromDate(rec.Date)
		if err != nil {
			// Some sheets carry a bare Year column instead of a date.
			year, err = strconv.Atoi(field(row, "year"))
		}
		if err != nil {
			result.Skipped++
			continue
		}
		rec.Year = year
		if err := rec.Validate(); err != nil {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// CleanedFilename maps a raw transcript filename to its preprocessed
// counterpart, e.g. farage_2016.txt -> farage_2016_cleaned.txt.
func CleanedFilename(name string) string {
	if strings.HasSuffix(name, "_cleaned.txt") {
		return name
	}
	base := strings.TrimSuffix(name, ".txt")
	return base + "_cleaned.txt"
}

func normalizeCategory(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func normalizeCountry(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "UK", "GB", "GBR", "UNITED KINGDOM":
		return CountryUK
	case "USA", "US", "UNITED STATES":
		return CountryUSA
	default:
		return strings.ToUpper(strings.TrimSpace(v))
	}
}

// yearFromDate extracts the year from a DD/MM/YYYY date string.
func yearFromDate(date string) (int, error) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0, fmt.Errorf("date %q not DD/MM/YYYY", date)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0, fmt.Errorf("date %q: %w", date, err)
	}
	return year, nil
}
