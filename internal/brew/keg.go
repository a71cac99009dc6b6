package brew

// gravityLossPSIPerFt is the pressure lost per foot of vertical rise in the
// beer line.
const gravityLossPSIPerFt = 0.5

// KegResult holds the keg balance engine output.
type KegResult struct {
	ServingPSI   float64
	LineLengthFt float64
}

// KegBalance computes the regulator pressure needed to hold the target
// carbonation at the serving temperature, and the line length that balances
// that pressure against line resistance and vertical rise.
func KegBalance(cfg KegConfig) KegResult {
	psi := servingPressure(cfg.ServingTempF, cfg.CO2Volumes)

	var length float64
	if cfg.LineResistPSI > 0 {
		net := psi - cfg.RiseFt*gravityLossPSIPerFt
		length = net / cfg.LineResistPSI
		if length < 0 {
			length = 0
		}
	}

	return KegResult{ServingPSI: psi, LineLengthFt: length}
}

// servingPressure is the standard empirical fit of CO2 solubility in beer as
// a function of temperature (°F) and carbonation volumes.
func servingPressure(tempF, volumes float64) float64 {
	psi := -16.6999 -
		0.0101059*tempF +
		0.00116512*tempF*tempF +
		0.173354*tempF*volumes +
		4.24267*volumes -
		0.0684226*volumes*volumes
	if psi < 0 {
		return 0
	}
	return psi
}
