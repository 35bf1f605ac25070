package lexicon

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries term-weight overrides for the built-in lexicons. A
// term with weight 0 removes it from the lexicon; any other weight adds
// or replaces the term. JSON files also parse, being a subset of YAML.
type Config struct {
	AntiElite        map[string]float64 `yaml:"anti_elite"`
	SystemCriticism  map[string]float64 `yaml:"system_criticism"`
	PopulistPositive map[string]float64 `yaml:"populist_positive"`
	PeopleNegative   map[string]float64 `yaml:"people_negative"`

	Crisis       map[string]float64 `yaml:"crisis"`
	Threat       map[string]float64 `yaml:"threat"`
	Decline      map[string]float64 `yaml:"decline"`
	Urgency      map[string]float64 `yaml:"urgency"`
	Catastrophic map[string]float64 `yaml:"catastrophic"`

	CertaintyMarkers  map[string]float64 `yaml:"certainty_markers"`
	CertaintyModals   map[string]float64 `yaml:"certainty_modals"`
	EmphaticCertainty map[string]float64 `yaml:"emphatic_certainty"`
	CertaintyPhrases  map[string]float64 `yaml:"certainty_phrases"`
	Hedging           map[string]float64 `yaml:"hedging"`
}

// LoadConfig reads a YAML lexicon override file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("empty lexicon config file")
	}
	var parsed struct {
		Lexicons Config `yaml:"lexicons"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, err
	}
	return parsed.Lexicons, nil
}

// Detectors builds the three detectors with the config's overrides
// merged over the built-in defaults.
func (c Config) Detectors() (*AntiEliteDetector, *CrisisDetector, *CertaintyDetector) {
	antiElite := &AntiEliteDetector{
		AntiElite:        merge(defaultAntiElite, c.AntiElite),
		SystemCriticism:  merge(defaultSystemCriticism, c.SystemCriticism),
		PopulistPositive: merge(defaultPopulistPositive, c.PopulistPositive),
		PeopleNegative:   merge(defaultPeopleNegative, c.PeopleNegative),
	}
	crisis := &CrisisDetector{
		Crisis:       merge(defaultCrisisTerms, c.Crisis),
		Threat:       merge(defaultThreatTerms, c.Threat),
		Decline:      merge(defaultDeclineTerms, c.Decline),
		Urgency:      merge(defaultUrgencyTerms, c.Urgency),
		Catastrophic: merge(defaultCatastrophicTerms, c.Catastrophic),
	}
	certainty := &CertaintyDetector{
		Markers:  merge(defaultCertaintyMarkers, c.CertaintyMarkers),
		Modals:   merge(defaultCertaintyModals, c.CertaintyModals),
		Emphatic: merge(defaultEmphaticCertainty, c.EmphaticCertainty),
		Phrases:  merge(defaultCertaintyPhrases, c.CertaintyPhrases),
		Hedging:  merge(defaultHedgingMarkers, c.Hedging),
	}
	return antiElite, crisis, certainty
}
