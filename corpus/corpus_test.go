package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMetadata(t *testing.T) {
	path := writeCSV(t, `Filename,Speaker,Party,Category,Country,Date
farage_2016.txt,Nigel Farage,UKIP,Populist,UK,23/06/2016
obama_2008.txt,Barack Obama,Democratic,Mainstream,USA,04/11/2008
`)

	result, err := LoadMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if result.Skipped != 0 {
		t.Fatalf("got %d skipped, want 0", result.Skipped)
	}

	first := result.Records[0]
	if first.Speaker != "Nigel Farage" || first.Category != CategoryPopulist {
		t.Fatalf("unexpected first record %+v", first)
	}
	if first.Year != 2016 {
		t.Fatalf("year %d, want 2016 from date %q", first.Year, first.Date)
	}
	if result.Records[1].Country != CountryUSA {
		t.Fatalf("country %q, want USA", result.Records[1].Country)
	}
}

func TestLoadMetadataSkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, `filename,speaker,party,category,country,date
good.txt,Speaker A,Party,populist,UK,01/01/2010
badcat.txt,Speaker B,Party,independent,UK,01/01/2010
nodate.txt,Speaker C,Party,mainstream,USA,someday
noname.txt,,Party,mainstream,USA,01/01/2012
`)

	result, err := LoadMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(result.Records), result.Records)
	}
	if result.Skipped != 3 {
		t.Fatalf("got %d skipped, want 3", result.Skipped)
	}
}

func TestLoadMetadataYearColumnFallback(t *testing.T) {
	path := writeCSV(t, `filename,speaker,party,category,country,date,year
x.txt,Speaker,Party,mainstream,UK,,1999
`)
	result, err := LoadMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 1 || result.Records[0].Year != 1999 {
		t.Fatalf("year fallback failed: %+v", result)
	}
}

func TestLoadMetadataNormalizesCountry(t *testing.T) {
	path := writeCSV(t, `filename,speaker,party,category,country,date
a.txt,Speaker,Party,mainstream,United Kingdom,01/01/2010
b.txt,Speaker,Party,mainstream,US,01/01/2010
`)
	result, err := LoadMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if result.Records[0].Country != CountryUK {
		t.Fatalf("got %q, want UK", result.Records[0].Country)
	}
	if result.Records[1].Country != CountryUSA {
		t.Fatalf("got %q, want USA", result.Records[1].Country)
	}
}

func TestLoadMetadataMissingFile(t *testing.T) {
	if _, err := LoadMetadata(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	valid := SpeechRecord{
		Filename: "x.txt", Speaker: "Speaker", Category: CategoryMainstream,
		Country: CountryUK, Year: 2010, SentimentScore: 0.2,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SpeechRecord)
	}{
		{"category", func(r *SpeechRecord) { r.Category = "centrist" }},
		{"country", func(r *SpeechRecord) { r.Country = "FR" }},
		{"speaker", func(r *SpeechRecord) { r.Speaker = "" }},
		{"year", func(r *SpeechRecord) { r.Year = 1500 }},
		{"score", func(r *SpeechRecord) { r.SentimentScore = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Fatalf("expected validation failure for %s", tc.name)
			}
		})
	}
}

func TestCleanedFilename(t *testing.T) {
	if got := CleanedFilename("farage_2016.txt"); got != "farage_2016_cleaned.txt" {
		t.Fatalf("got %q", got)
	}
	if got := CleanedFilename("farage_2016_cleaned.txt"); got != "farage_2016_cleaned.txt" {
		t.Fatalf("already-cleaned name changed: %q", got)
	}
}
