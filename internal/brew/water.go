package brew

// saltContribution is the ppm added per gram of salt per gallon of water,
// per ion. These are fixed empirical constants; reproduce exactly.
type saltContribution struct {
	calcium     float64
	magnesium   float64
	sodium      float64
	chloride    float64
	sulfate     float64
	bicarbonate float64
}

var (
	gypsumPPM          = saltContribution{calcium: 60, sulfate: 147}
	calciumChloridePPM = saltContribution{calcium: 72, chloride: 128}
	epsomSaltPPM       = saltContribution{magnesium: 24, sulfate: 98}
	tableSaltPPM       = saltContribution{sodium: 104, chloride: 160}
	bakingSodaPPM      = saltContribution{sodium: 72, bicarbonate: 184}
	chalkPPM           = saltContribution{calcium: 105, bicarbonate: 158}
)

// WaterResult holds the water chemistry engine output.
type WaterResult struct {
	Profile WaterIonProfile
	// ChlorideSulfateRatio is Cl:SO4 of the resulting profile, 0 when the
	// profile has no sulfate.
	ChlorideSulfateRatio float64
}

// WaterChemistry computes the ion profile resulting from adding brewing salts
// to source water. A volume of zero or less returns the source profile
// unchanged.
func WaterChemistry(source WaterIonProfile, salts SaltAdditions, volumeGal float64) WaterResult {
	out := source
	if volumeGal > 0 {
		add := func(c saltContribution, grams float64) {
			out.Calcium += c.calcium * grams / volumeGal
			out.Magnesium += c.magnesium * grams / volumeGal
			out.Sodium += c.sodium * grams / volumeGal
			out.Chloride += c.chloride * grams / volumeGal
			out.Sulfate += c.sulfate * grams / volumeGal
			out.Bicarbonate += c.bicarbonate * grams / volumeGal
		}

		add(gypsumPPM, salts.Gypsum)
		add(calciumChloridePPM, salts.CalciumChloride)
		add(epsomSaltPPM, salts.EpsomSalt)
		add(tableSaltPPM, salts.TableSalt)
		add(bakingSodaPPM, salts.BakingSoda)
		add(chalkPPM, salts.Chalk)
	}

	var ratio float64
	if out.Sulfate > 0 {
		ratio = out.Chloride / out.Sulfate
	}

	return WaterResult{Profile: out, ChlorideSulfateRatio: ratio}
}
