package brew

// GravityResult holds the output of the gravity engine.
type GravityResult struct {
	OriginalGravity float64
	PointsPerGallon float64
}

// Gravity computes original gravity from the grain bill, brewhouse efficiency,
// and batch volume. A volume of zero or less yields zero points rather than a
// division error.
func Gravity(bill []Fermentable, efficiencyPercent, volumeGal float64) GravityResult {
	var totalPoints float64
	for _, f := range bill {
		totalPoints += f.WeightLb * f.PotentialPPG
	}

	var ppg float64
	if volumeGal > 0 {
		ppg = totalPoints * (efficiencyPercent / 100.0) / volumeGal
	}

	return GravityResult{
		OriginalGravity: 1 + ppg/1000.0,
		PointsPerGallon: ppg,
	}
}

// EstimateFinalGravity returns the measured final gravity when one was taken,
// otherwise a fixed 75%-attenuation estimate. The crude estimate is kept on
// purpose: downstream ABV figures depend on it.
func EstimateFinalGravity(og, measuredFG float64) float64 {
	if measuredFG > 0 {
		return measuredFG
	}
	return 1 + (og-1)*0.25
}

// ABV computes alcohol by volume from the gravity drop.
func ABV(og, fg float64) float64 {
	return (og - fg) * 131.25
}

// BUGU computes the bitterness-to-gravity ratio. Gravity at or below 1.000
// yields 0.
func BUGU(ibu, og float64) float64 {
	gu := (og - 1) * 1000
	if gu <= 0 {
		return 0
	}
	return ibu / gu
}
