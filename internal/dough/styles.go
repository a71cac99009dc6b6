package dough

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Range is a bounded value with a default, used for hydration percentages
// and fermentation-hour windows.
type Range struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

// StyleProfile captures everything style-specific about a pizza dough.
type StyleProfile struct {
	Name string `yaml:"name"`
	// ThicknessFactor is dough weight per pan area in oz/in².
	ThicknessFactor float64 `yaml:"thickness_factor"`
	Hydration       Range   `yaml:"hydration"`
	SaltPercent     float64 `yaml:"salt_percent"`
	OilPercent      float64 `yaml:"oil_percent"`
	SugarPercent    float64 `yaml:"sugar_percent"`
	YeastPercent    float64 `yaml:"yeast_percent"`
	RoomHours       Range   `yaml:"room_hours"`
	ColdHours       Range   `yaml:"cold_hours"`
	// BallingLeadHours is the fixed gap between pulling dough from the cold
	// ferment and baking: enough time to ball, proof, and come to temperature.
	BallingLeadHours float64 `yaml:"balling_lead_hours"`
	// Display-only bake guidance.
	BakeTempF       float64 `yaml:"bake_temp_f"`
	BakeTimeMinutes float64 `yaml:"bake_time_minutes"`
}

// DefaultPercentages returns the style's baker's percentages with the default
// hydration.
func (s StyleProfile) DefaultPercentages() Percentages {
	return Percentages{
		Hydration: s.Hydration.Default,
		Salt:      s.SaltPercent,
		Oil:       s.OilPercent,
		Sugar:     s.SugarPercent,
		Yeast:     s.YeastPercent,
	}
}

// DefaultStyles returns the compiled-in style library.
func DefaultStyles() []StyleProfile {
	return []StyleProfile{
		{
			Name:             "New York",
			ThicknessFactor:  0.085,
			Hydration:        Range{Min: 58, Max: 65, Default: 62},
			SaltPercent:      2.5,
			OilPercent:       1.5,
			SugarPercent:     2,
			YeastPercent:     0.5,
			RoomHours:        Range{Min: 2, Max: 6, Default: 2},
			ColdHours:        Range{Min: 24, Max: 96, Default: 48},
			BallingLeadHours: 4,
			BakeTempF:        550,
			BakeTimeMinutes:  7,
		},
		{
			Name:             "Neapolitan",
			ThicknessFactor:  0.07,
			Hydration:        Range{Min: 58, Max: 70, Default: 62},
			SaltPercent:      2.8,
			YeastPercent:     0.2,
			RoomHours:        Range{Min: 4, Max: 24, Default: 8},
			ColdHours:        Range{Min: 0, Max: 48, Default: 16},
			BallingLeadHours: 5,
			BakeTempF:        850,
			BakeTimeMinutes:  1.5,
		},
		{
			Name:             "Detroit",
			ThicknessFactor:  0.13,
			Hydration:        Range{Min: 65, Max: 75, Default: 70},
			SaltPercent:      2,
			OilPercent:       2,
			SugarPercent:     1,
			YeastPercent:     0.6,
			RoomHours:        Range{Min: 2, Max: 4, Default: 2},
			ColdHours:        Range{Min: 12, Max: 72, Default: 24},
			BallingLeadHours: 3,
			BakeTempF:        500,
			BakeTimeMinutes:  14,
		},
		{
			Name:             "Sicilian",
			ThicknessFactor:  0.1461,
			Hydration:        Range{Min: 65, Max: 80, Default: 72},
			SaltPercent:      2.2,
			OilPercent:       3,
			SugarPercent:     1.5,
			YeastPercent:     0.7,
			RoomHours:        Range{Min: 2, Max: 8, Default: 3},
			ColdHours:        Range{Min: 12, Max: 72, Default: 24},
			BallingLeadHours: 3,
			BakeTempF:        475,
			BakeTimeMinutes:  18,
		},
	}
}

// LoadStyles reads style profiles from a YAML file, falling back to the
// compiled-in library when path is empty.
func LoadStyles(path string) ([]StyleProfile, error) {
	if path == "" {
		return DefaultStyles(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style file: %w", err)
	}

	var doc struct {
		Styles []StyleProfile `yaml:"styles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse style file: %w", err)
	}
	if len(doc.Styles) == 0 {
		return nil, fmt.Errorf("style file %s defines no styles", path)
	}

	return doc.Styles, nil
}

// FindStyle returns the named style from the list, or false when absent.
func FindStyle(styles []StyleProfile, name string) (StyleProfile, bool) {
	for _, s := range styles {
		if s.Name == name {
			return s, true
		}
	}
	return StyleProfile{}, false
}
