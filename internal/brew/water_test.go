package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaterChemistry_GypsumInFiveGallons(t *testing.T) {
	source := WaterIonProfile{Calcium: 20, Sulfate: 10}
	salts := SaltAdditions{Gypsum: 1}

	got := WaterChemistry(source, salts, 5)

	// 1 g gypsum in 5 gal adds 60/5 ppm Ca and 147/5 ppm SO4.
	assert.InDelta(t, 32, got.Profile.Calcium, 1e-9)
	assert.InDelta(t, 39.4, got.Profile.Sulfate, 1e-9)
	assert.Zero(t, got.Profile.Chloride)
}

func TestWaterChemistry_ZeroVolumeReturnsSourceUnchanged(t *testing.T) {
	source := WaterIonProfile{Calcium: 50, Magnesium: 10, Sodium: 15, Chloride: 40, Sulfate: 80, Bicarbonate: 120}
	salts := SaltAdditions{Gypsum: 4, CalciumChloride: 3, EpsomSalt: 2, TableSalt: 1, BakingSoda: 1, Chalk: 1}

	got := WaterChemistry(source, salts, 0)

	assert.Equal(t, source, got.Profile)
}

func TestWaterChemistry_LinearInSaltMass(t *testing.T) {
	source := WaterIonProfile{Calcium: 50, Chloride: 40, Sulfate: 80}
	salts := SaltAdditions{Gypsum: 2, CalciumChloride: 1.5, EpsomSalt: 1, TableSalt: 0.5, BakingSoda: 0.5, Chalk: 0.25}
	doubled := SaltAdditions{Gypsum: 4, CalciumChloride: 3, EpsomSalt: 2, TableSalt: 1, BakingSoda: 1, Chalk: 0.5}

	once := WaterChemistry(source, salts, 5).Profile
	twice := WaterChemistry(source, doubled, 5).Profile

	// Doubling every salt doubles each ion's contribution over the source.
	assert.InDelta(t, 2*(once.Calcium-source.Calcium), twice.Calcium-source.Calcium, 1e-9)
	assert.InDelta(t, 2*(once.Magnesium-source.Magnesium), twice.Magnesium-source.Magnesium, 1e-9)
	assert.InDelta(t, 2*(once.Sodium-source.Sodium), twice.Sodium-source.Sodium, 1e-9)
	assert.InDelta(t, 2*(once.Chloride-source.Chloride), twice.Chloride-source.Chloride, 1e-9)
	assert.InDelta(t, 2*(once.Sulfate-source.Sulfate), twice.Sulfate-source.Sulfate, 1e-9)
	assert.InDelta(t, 2*(once.Bicarbonate-source.Bicarbonate), twice.Bicarbonate-source.Bicarbonate, 1e-9)
}

func TestWaterChemistry_ChlorideSulfateRatio(t *testing.T) {
	got := WaterChemistry(WaterIonProfile{Chloride: 100, Sulfate: 50}, SaltAdditions{}, 5)
	assert.InDelta(t, 2, got.ChlorideSulfateRatio, 1e-9)

	noSulfate := WaterChemistry(WaterIonProfile{Chloride: 100}, SaltAdditions{}, 5)
	assert.Zero(t, noSulfate.ChlorideSulfateRatio)
}
