package brew

import "math"

const (
	// whirlpoolEquivalentMinutes is the fixed boil-time equivalent used for
	// whirlpool additions. The addition's own time field is ignored here;
	// this is a modeling choice carried over intact, not an oversight.
	whirlpoolEquivalentMinutes = 20.0

	// defaultWhirlpoolTempF is assumed when an addition does not record a
	// whirlpool temperature.
	defaultWhirlpoolTempF = 200.0
)

// Bitterness computes total bitterness units for a hop schedule using a
// Tinseth-style utilization model. Dry-hop additions contribute nothing.
// A volume of zero or less yields 0.
func Bitterness(schedule []HopAddition, og, volumeGal float64) float64 {
	if volumeGal <= 0 {
		return 0
	}

	var total float64
	for _, h := range schedule {
		total += additionIBU(h, og, volumeGal)
	}
	return total
}

func additionIBU(h HopAddition, og, volumeGal float64) float64 {
	if h.Use == HopDry {
		return 0
	}

	bigness := 1.65 * math.Pow(0.000125, og-1)

	minutes := h.TimeMinutes
	tempFactor := 1.0
	if h.Use == HopWhirlpool {
		minutes = whirlpoolEquivalentMinutes
		tempFactor = whirlpoolUtilization(h.WhirlpoolTempF)
	}

	timeFactor := (1 - math.Exp(-0.04*minutes)) / 4.15
	aau := h.AlphaAcid * h.WeightOz

	return aau * bigness * timeFactor * tempFactor * 74.9 / volumeGal
}

// whirlpoolUtilization scales bitterness extraction by stand temperature.
// Hotter stands isomerize more alpha acid.
func whirlpoolUtilization(tempF float64) float64 {
	if tempF == 0 {
		tempF = defaultWhirlpoolTempF
	}
	switch {
	case tempF > 180:
		return 0.5
	case tempF > 160:
		return 0.2
	default:
		return 0.05
	}
}
